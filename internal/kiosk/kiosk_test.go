package kiosk

import (
	"context"
	"testing"
	"time"

	"github.com/kozaktomas/attend-kiosk/internal/config"
	"github.com/kozaktomas/attend-kiosk/internal/faceapi"
)

func testKioskConfig() *config.Config {
	cfg := config.Load()
	cfg.Kiosk.PollInterval = time.Hour
	cfg.Kiosk.AutoSwitchDelay = time.Millisecond
	cfg.Kiosk.BannerTTL = 50 * time.Millisecond
	return cfg
}

func TestKioskSetTabClearsTransientState(t *testing.T) {
	k := New(testKioskConfig(), &fakeGateway{}, &fakeCamera{}, AutoConfirm)

	k.Wizard.SetIdentity(Identity{Name: "John Doe"})
	if err := k.Wizard.Next(); err != nil {
		t.Fatal(err)
	}
	if err := k.Wizard.Attach(testArtifact()); err != nil {
		t.Fatal(err)
	}

	k.SetTab(TabManage)
	if k.Wizard.HasImage() {
		t.Error("leaving Register must discard the unsent capture")
	}
	if k.Wizard.Identity().Name != "John Doe" {
		t.Error("leaving Register must keep the identity fields")
	}

	k.SetTab(TabRecognize)
	seedSnapshot(k.Poller, trainedStatus(), nil)
	if _, err := k.Board.Recognize(context.Background()); err != nil {
		t.Fatal(err)
	}
	if k.Board.Outcome() == nil {
		t.Fatal("expected a stored outcome")
	}

	k.SetTab(TabManage)
	if k.Board.Outcome() != nil {
		t.Error("leaving Recognize must drop the last outcome")
	}
}

func TestKioskAutoSwitchWiredToPoller(t *testing.T) {
	gw := &fakeGateway{
		statusFn: func(ctx context.Context) (*faceapi.ModelStatus, error) {
			return &faceapi.ModelStatus{ModelTrained: true, TotalUsers: 2}, nil
		},
	}
	k := New(testKioskConfig(), gw, &fakeCamera{}, AutoConfirm)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go k.Run(ctx)

	waitFor(t, time.Second, func() bool {
		return k.Tabs.Active() == TabRecognize
	}, "a qualifying status must auto switch Register to Recognize")
}
