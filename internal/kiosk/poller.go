package kiosk

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/kozaktomas/attend-kiosk/internal/faceapi"
)

// Snapshot is the latest successfully fetched server state. A failed fetch
// leaves the previous value in place, so Status may lag Today (and vice
// versa) but neither is ever cleared by an error.
type Snapshot struct {
	Status    *faceapi.ModelStatus
	Today     []faceapi.AttendanceRecord
	UpdatedAt time.Time
}

// Poller fetches model status and today's attendance on a fixed interval
// and republishes the latest snapshot to subscribers. Ticks run strictly
// one at a time; a refresh requested while a tick is in flight is queued
// (at most one deep), so an older response can never overwrite a newer one.
type Poller struct {
	gw       Gateway
	interval time.Duration

	kick chan struct{}

	mu      sync.Mutex
	snap    Snapshot
	subs    []func(Snapshot)
	stopped bool
}

// NewPoller creates a poller. Run must be called to start the loop.
func NewPoller(gw Gateway, interval time.Duration) *Poller {
	return &Poller{
		gw:       gw,
		interval: interval,
		kick:     make(chan struct{}, 1),
	}
}

// Subscribe registers a callback invoked after every successful tick with
// the updated snapshot. Must be called before Run.
func (p *Poller) Subscribe(fn func(Snapshot)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, fn)
}

// Snapshot returns the latest published state.
func (p *Poller) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap
}

// Refresh requests an immediate tick without resetting the scheduled
// interval. Safe to call from any goroutine; extra requests while one is
// already queued are dropped.
func (p *Poller) Refresh() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// Run polls until ctx is cancelled. The first tick fires immediately.
// After Run returns no subscriber is ever called again, even if a request
// issued before cancellation resolves later.
func (p *Poller) Run(ctx context.Context) {
	p.tick(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.mu.Lock()
			p.stopped = true
			p.mu.Unlock()
			return
		case <-ticker.C:
			p.tick(ctx)
		case <-p.kick:
			p.tick(ctx)
		}
	}
}

// tick issues the status and attendance fetches concurrently (they are
// independent requests) and publishes whatever succeeded.
func (p *Poller) tick(ctx context.Context) {
	var (
		wg     sync.WaitGroup
		status *faceapi.ModelStatus
		today  []faceapi.AttendanceRecord

		statusOK, todayOK bool
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		st, err := p.gw.ModelStatus(ctx)
		if err != nil {
			log.Printf("poll: model status fetch failed: %v", err)
			return
		}
		status, statusOK = st, true
	}()
	go func() {
		defer wg.Done()
		records, err := p.gw.TodayAttendance(ctx)
		if err != nil {
			log.Printf("poll: today attendance fetch failed: %v", err)
			return
		}
		today, todayOK = records, true
	}()
	wg.Wait()

	if !statusOK && !todayOK {
		return
	}
	p.publish(ctx, status, statusOK, today, todayOK)
}

func (p *Poller) publish(ctx context.Context, status *faceapi.ModelStatus, statusOK bool, today []faceapi.AttendanceRecord, todayOK bool) {
	p.mu.Lock()
	if p.stopped || ctx.Err() != nil {
		p.mu.Unlock()
		return
	}
	if statusOK {
		p.snap.Status = status
	}
	if todayOK {
		p.snap.Today = today
	}
	p.snap.UpdatedAt = time.Now()
	snap := p.snap
	subs := make([]func(Snapshot), len(p.subs))
	copy(subs, p.subs)
	p.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
