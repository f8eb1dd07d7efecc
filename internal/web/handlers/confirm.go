package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// confirmTokenHeader carries the token issued by the first call to a
// destructive endpoint back on the retry that actually executes it.
const confirmTokenHeader = "X-Confirm-Token"

const confirmTokenTTL = time.Minute

// ConfirmBroker implements the two-step confirmation exchange used by
// destructive endpoints. The first request is answered with 409 and a
// one-time token plus the consequence text; the client retries with the
// token to execute. Tokens are bound to one action and expire quickly.
type ConfirmBroker struct {
	mu     sync.Mutex
	issued map[string]pendingConfirm
}

type pendingConfirm struct {
	action  string
	expires time.Time
}

// NewConfirmBroker creates an empty broker.
func NewConfirmBroker() *ConfirmBroker {
	return &ConfirmBroker{issued: make(map[string]pendingConfirm)}
}

func (b *ConfirmBroker) issue(action string) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	for token, p := range b.issued {
		if now.After(p.expires) {
			delete(b.issued, token)
		}
	}

	token := uuid.NewString()
	b.issued[token] = pendingConfirm{action: action, expires: now.Add(confirmTokenTTL)}
	return token
}

func (b *ConfirmBroker) redeem(token, action string) bool {
	if token == "" {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.issued[token]
	if !ok {
		return false
	}
	delete(b.issued, token)
	return p.action == action && time.Now().Before(p.expires)
}

// Require gates a destructive request. It returns true when the request
// carries a valid token for action; otherwise it responds with 409 and a
// fresh token alongside the prompt the client should display.
func (b *ConfirmBroker) Require(w http.ResponseWriter, r *http.Request, action, prompt string) bool {
	if b.redeem(r.Header.Get(confirmTokenHeader), action) {
		return true
	}
	respondJSON(w, http.StatusConflict, map[string]string{
		"confirm_token": b.issue(action),
		"prompt":        prompt,
	})
	return false
}
