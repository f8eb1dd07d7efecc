package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestConfirmBrokerTokenSingleUse(t *testing.T) {
	broker := NewConfirmBroker()

	token := broker.issue("clear-attendance")
	if !broker.redeem(token, "clear-attendance") {
		t.Fatal("a fresh token must redeem")
	}
	if broker.redeem(token, "clear-attendance") {
		t.Error("a token must not redeem twice")
	}
}

func TestConfirmBrokerTokenBoundToAction(t *testing.T) {
	broker := NewConfirmBroker()

	token := broker.issue("delete-user:john_doe")
	if broker.redeem(token, "delete-user:jane_doe") {
		t.Error("a token must only redeem for the action it was issued for")
	}
}

func TestConfirmBrokerRejectsUnknownToken(t *testing.T) {
	broker := NewConfirmBroker()
	if broker.redeem("", "clear-attendance") {
		t.Error("an empty token must not redeem")
	}
	if broker.redeem("not-a-token", "clear-attendance") {
		t.Error("an unknown token must not redeem")
	}
}

func TestConfirmBrokerRequire(t *testing.T) {
	broker := NewConfirmBroker()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/john_doe", nil)
	rec := httptest.NewRecorder()
	if broker.Require(rec, req, "delete-user:john_doe", "Delete John Doe?") {
		t.Fatal("the first call must not pass the gate")
	}
	assertStatusCode(t, rec, http.StatusConflict)

	var challenge map[string]string
	parseJSONResponse(t, rec, &challenge)
	if challenge["prompt"] != "Delete John Doe?" {
		t.Errorf("unexpected prompt %q", challenge["prompt"])
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/users/john_doe", nil)
	req.Header.Set("X-Confirm-Token", challenge["confirm_token"])
	rec = httptest.NewRecorder()
	if !broker.Require(rec, req, "delete-user:john_doe", "Delete John Doe?") {
		t.Fatal("the retry with a valid token must pass the gate")
	}
}
