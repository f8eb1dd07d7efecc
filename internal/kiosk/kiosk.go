package kiosk

import (
	"context"

	"github.com/kozaktomas/attend-kiosk/internal/capture"
	"github.com/kozaktomas/attend-kiosk/internal/config"
)

// Kiosk wires the engine together: one poller feeding the tab controller,
// plus the wizard, board and directory sharing a single gateway.
type Kiosk struct {
	Poller    *Poller
	Wizard    *Wizard
	Board     *Board
	Directory *Directory
	Tabs      *Tabs
}

// New assembles the engine. The confirmer is injected into every
// destructive flow; the web layer passes AutoConfirm and enforces
// confirmation at its own boundary instead.
func New(cfg *config.Config, gw Gateway, camera capture.Source, confirm Confirmer) *Kiosk {
	poller := NewPoller(gw, cfg.Kiosk.PollInterval)
	tabs := NewTabs(cfg.Kiosk.AutoSwitchDelay)
	poller.Subscribe(func(snap Snapshot) {
		tabs.OnStatus(snap.Status)
	})

	return &Kiosk{
		Poller:    poller,
		Wizard:    NewWizard(gw, &cfg.Guidance, cfg.Kiosk.RequireDetails, poller.Refresh),
		Board:     NewBoard(gw, camera, poller, confirm, &cfg.Guidance, cfg.Kiosk.BannerTTL),
		Directory: NewDirectory(gw, confirm, &cfg.Guidance, poller.Refresh),
		Tabs:      tabs,
	}
}

// Run drives the polling loop until ctx is cancelled.
func (k *Kiosk) Run(ctx context.Context) {
	k.Poller.Run(ctx)
	k.Tabs.Stop()
}

// SetTab switches the active view. Per-tab transient state never outlives
// its tab: leaving Register discards an unsent capture, leaving Recognize
// drops the last outcome.
func (k *Kiosk) SetTab(tab Tab) {
	current := k.Tabs.Active()
	if current == tab {
		return
	}
	switch current {
	case TabRegister:
		k.Wizard.ClearImage()
	case TabRecognize:
		k.Board.ClearOutcome()
	}
	k.Tabs.Activate(tab)
}
