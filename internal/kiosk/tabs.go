package kiosk

import (
	"fmt"
	"sync"
	"time"

	"github.com/kozaktomas/attend-kiosk/internal/faceapi"
)

// Tab identifies one of the three workflow views.
type Tab string

const (
	TabRegister  Tab = "register"
	TabRecognize Tab = "recognize"
	TabManage    Tab = "manage"
)

// ParseTab validates a tab name coming from the CLI or HTTP surface.
func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case TabRegister, TabRecognize, TabManage:
		return Tab(s), nil
	}
	return "", fmt.Errorf("unknown tab %q", s)
}

// autoSwitchMinUsers is the user count required before the kiosk moves an
// idle Register view to Recognize on its own.
const autoSwitchMinUsers = 2

// Tabs selects the active workflow view. When a status refresh reports the
// model trained with enough users while Register is still active, a
// one-time delayed switch to Recognize is scheduled; the switch is a no-op
// if the operator navigated elsewhere before it fires.
type Tabs struct {
	delay time.Duration

	mu            sync.Mutex
	active        Tab
	prevQualified bool
	pending       *time.Timer
}

// NewTabs creates the tab controller with Register active.
func NewTabs(delay time.Duration) *Tabs {
	return &Tabs{delay: delay, active: TabRegister}
}

// Active returns the active tab.
func (t *Tabs) Active() Tab {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Activate switches to tab on behalf of the operator.
func (t *Tabs) Activate(tab Tab) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = tab
}

// OnStatus applies the auto-switch rule to a fresh status snapshot. It
// fires at most once per qualifying transition: only the edge from
// not-qualified to qualified schedules the switch, so repeated qualifying
// refreshes stay quiet.
func (t *Tabs) OnStatus(status *faceapi.ModelStatus) {
	if status == nil {
		return
	}
	qualified := status.ModelTrained && status.TotalUsers >= autoSwitchMinUsers

	t.mu.Lock()
	defer t.mu.Unlock()

	if qualified && !t.prevQualified && t.active == TabRegister {
		if t.pending != nil {
			t.pending.Stop()
		}
		t.pending = time.AfterFunc(t.delay, func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			if t.active == TabRegister {
				t.active = TabRecognize
			}
		})
	}
	t.prevQualified = qualified
}

// Stop cancels any pending auto switch.
func (t *Tabs) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}
