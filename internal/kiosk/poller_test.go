package kiosk

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kozaktomas/attend-kiosk/internal/faceapi"
)

func TestPollerFirstTickImmediate(t *testing.T) {
	gw := &fakeGateway{
		statusFn: func(ctx context.Context) (*faceapi.ModelStatus, error) {
			return &faceapi.ModelStatus{ModelTrained: true, TotalUsers: 5}, nil
		},
		todayFn: func(ctx context.Context) ([]faceapi.AttendanceRecord, error) {
			return []faceapi.AttendanceRecord{{Username: "john_doe"}}, nil
		},
	}
	p := NewPoller(gw, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	waitFor(t, time.Second, func() bool {
		return p.Snapshot().Status != nil
	}, "expected an immediate first tick")

	snap := p.Snapshot()
	if snap.Status.TotalUsers != 5 {
		t.Errorf("expected 5 users in snapshot, got %d", snap.Status.TotalUsers)
	}
	if len(snap.Today) != 1 || snap.Today[0].Username != "john_doe" {
		t.Errorf("unexpected today records: %+v", snap.Today)
	}
}

func TestPollerFetchesRunConcurrently(t *testing.T) {
	statusStarted := make(chan struct{})
	todayStarted := make(chan struct{})

	gw := &fakeGateway{
		statusFn: func(ctx context.Context) (*faceapi.ModelStatus, error) {
			close(statusStarted)
			select {
			case <-todayStarted:
			case <-time.After(time.Second):
				return nil, errors.New("attendance fetch never started")
			}
			return trainedStatus(), nil
		},
		todayFn: func(ctx context.Context) ([]faceapi.AttendanceRecord, error) {
			close(todayStarted)
			select {
			case <-statusStarted:
			case <-time.After(time.Second):
				return nil, errors.New("status fetch never started")
			}
			return nil, nil
		},
	}
	p := NewPoller(gw, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	waitFor(t, 2*time.Second, func() bool {
		return p.Snapshot().Status != nil
	}, "fetches did not overlap")
}

func TestPollerKeepsSnapshotOnError(t *testing.T) {
	var failStatus atomic.Bool
	gw := &fakeGateway{
		statusFn: func(ctx context.Context) (*faceapi.ModelStatus, error) {
			if failStatus.Load() {
				return nil, errors.New("connection refused")
			}
			return &faceapi.ModelStatus{ModelTrained: true, TotalUsers: 4}, nil
		},
		todayFn: func(ctx context.Context) ([]faceapi.AttendanceRecord, error) {
			return []faceapi.AttendanceRecord{{Username: "jane_doe"}, {Username: "john_doe"}}, nil
		},
	}
	p := NewPoller(gw, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	waitFor(t, time.Second, func() bool {
		return p.Snapshot().Status != nil
	}, "first tick never completed")

	failStatus.Store(true)
	p.Refresh()

	waitFor(t, time.Second, func() bool {
		return gw.statusCalls.Load() >= 2
	}, "refresh tick never ran")
	waitFor(t, time.Second, func() bool {
		return len(p.Snapshot().Today) == 2
	}, "attendance was not republished")

	snap := p.Snapshot()
	if snap.Status == nil || snap.Status.TotalUsers != 4 {
		t.Errorf("failed status fetch must keep the previous value, got %+v", snap.Status)
	}
}

func TestPollerRefreshDoesNotBlock(t *testing.T) {
	p := NewPoller(&fakeGateway{}, time.Hour)

	// No Run loop is draining the queue; repeated calls must still return.
	for i := 0; i < 10; i++ {
		p.Refresh()
	}
	if !drainRefresh(p) {
		t.Fatal("expected a queued refresh request")
	}
	if drainRefresh(p) {
		t.Error("refresh requests must collapse into a single queued tick")
	}
}

func TestPollerNoPublishAfterStop(t *testing.T) {
	release := make(chan struct{})
	gw := &fakeGateway{
		statusFn: func(ctx context.Context) (*faceapi.ModelStatus, error) {
			<-release
			return trainedStatus(), nil
		},
		todayFn: func(ctx context.Context) ([]faceapi.AttendanceRecord, error) {
			<-release
			return []faceapi.AttendanceRecord{{Username: "late"}}, nil
		},
	}
	p := NewPoller(gw, time.Hour)

	var published atomic.Int64
	p.Subscribe(func(Snapshot) { published.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	waitFor(t, time.Second, func() bool {
		return gw.statusCalls.Load() == 1
	}, "first tick never started")

	// Tear down while the fetches are still in flight, then let them finish.
	cancel()
	close(release)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	if published.Load() != 0 {
		t.Errorf("expected no publishes after teardown, got %d", published.Load())
	}
	if snap := p.Snapshot(); snap.Status != nil || snap.Today != nil {
		t.Errorf("late responses must not update the snapshot, got %+v", snap)
	}
}

func TestPollerStopsPollingAfterCancel(t *testing.T) {
	gw := &fakeGateway{}
	p := NewPoller(gw, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	waitFor(t, time.Second, func() bool {
		return gw.statusCalls.Load() >= 2
	}, "interval ticks never ran")
	cancel()
	<-done

	calls := gw.statusCalls.Load()
	time.Sleep(30 * time.Millisecond)
	if got := gw.statusCalls.Load(); got != calls {
		t.Errorf("poller kept fetching after Run returned: %d -> %d", calls, got)
	}
}

func TestPollerNotifiesSubscribers(t *testing.T) {
	gw := &fakeGateway{
		statusFn: func(ctx context.Context) (*faceapi.ModelStatus, error) {
			return trainedStatus(), nil
		},
	}
	p := NewPoller(gw, time.Hour)

	var got atomic.Pointer[Snapshot]
	p.Subscribe(func(snap Snapshot) { got.Store(&snap) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	waitFor(t, time.Second, func() bool {
		return got.Load() != nil
	}, "subscriber was never notified")
	if got.Load().Status == nil || !got.Load().Status.ModelTrained {
		t.Errorf("subscriber got stale snapshot: %+v", got.Load())
	}
}
