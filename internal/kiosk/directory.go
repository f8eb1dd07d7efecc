package kiosk

import (
	"context"
	"log"
	"sync"

	"github.com/kozaktomas/attend-kiosk/internal/config"
	"github.com/kozaktomas/attend-kiosk/internal/faceapi"
)

// DetailState describes the lazily fetched detail pane.
type DetailState int

const (
	DetailNone DetailState = iota
	DetailLoading
	DetailLoaded
	DetailFailed
)

func (s DetailState) String() string {
	switch s {
	case DetailLoading:
		return "loading"
	case DetailLoaded:
		return "loaded"
	case DetailFailed:
		return "failed"
	}
	return "none"
}

// DirectoryStats are pure reductions over the loaded summary list; they are
// never fetched pre-aggregated.
type DirectoryStats struct {
	TotalUsers   int `json:"total_users"`
	TotalDays    int `json:"total_attendance_days"`
	TotalRecords int `json:"total_attendance_records"`
	WithImage    int `json:"with_image"`
}

// Directory lists registered people, serves one selected person's detail,
// and performs cascading user deletion.
type Directory struct {
	gw       Gateway
	confirm  Confirmer
	guidance *config.GuidanceConfig
	onChange func() // fired after a successful deletion (poller refresh)

	mu          sync.Mutex
	users       []faceapi.RegisteredUser
	selected    string
	detailState DetailState
	detail      *faceapi.UserDetail
	detailErr   error
}

// NewDirectory creates a directory. onChange fires after a user deletion so
// the parent can refresh shared state; it may be nil.
func NewDirectory(gw Gateway, confirm Confirmer, guidance *config.GuidanceConfig, onChange func()) *Directory {
	return &Directory{
		gw:       gw,
		confirm:  confirm,
		guidance: guidance,
		onChange: onChange,
	}
}

// Load fetches the summary list, replacing the previous one.
func (d *Directory) Load(ctx context.Context) error {
	users, err := d.gw.Users(ctx)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.users = users
	d.mu.Unlock()
	return nil
}

// Users returns the currently loaded summaries.
func (d *Directory) Users() []faceapi.RegisteredUser {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.users
}

// Stats reduces the loaded summary list to aggregate numbers.
func (d *Directory) Stats() DirectoryStats {
	d.mu.Lock()
	defer d.mu.Unlock()
	stats := DirectoryStats{TotalUsers: len(d.users)}
	for _, u := range d.users {
		stats.TotalDays += u.TotalAttendanceDays
		stats.TotalRecords += u.TotalAttendanceRecords
		if u.HasImage {
			stats.WithImage++
		}
	}
	return stats
}

// Select fetches one user's detail. While the fetch is in flight the detail
// pane reports DetailLoading; on failure it reports DetailFailed with the
// error rather than stale or empty data.
func (d *Directory) Select(ctx context.Context, username string) (*faceapi.UserDetail, error) {
	username = faceapi.NormalizeUsername(username)

	d.mu.Lock()
	d.selected = username
	d.detailState = DetailLoading
	d.detail = nil
	d.detailErr = nil
	d.mu.Unlock()

	detail, err := d.gw.User(ctx, username)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.selected != username {
		// The operator moved on while the fetch was in flight.
		return detail, err
	}
	if err != nil {
		d.detailState = DetailFailed
		d.detailErr = err
		return nil, err
	}
	d.detailState = DetailLoaded
	d.detail = detail
	return detail, nil
}

// Detail returns the detail pane state together with its data or error.
func (d *Directory) Detail() (DetailState, *faceapi.UserDetail, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.detailState, d.detail, d.detailErr
}

// Selected returns the username of the selected user, if any.
func (d *Directory) Selected() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selected
}

// ClearSelection returns the operator to the plain list.
func (d *Directory) ClearSelection() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selected = ""
	d.detailState = DetailNone
	d.detail = nil
	d.detailErr = nil
}

// Delete removes a user after a confirmation that spells out the cascade:
// attendance history and face data go with them and the model is
// retrained. On success the list is refreshed and, if the deleted person
// was selected, the detail pane is cleared.
func (d *Directory) Delete(ctx context.Context, username string) (*faceapi.DeleteUserResult, error) {
	username = faceapi.NormalizeUsername(username)

	if !d.confirm(d.guidance.Message("delete_user_consequences", faceapi.DisplayName(username))) {
		return nil, ErrConfirmationDeclined
	}

	result, err := d.gw.DeleteUser(ctx, username)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	if d.selected == username {
		d.selected = ""
		d.detailState = DetailNone
		d.detail = nil
		d.detailErr = nil
	}
	d.mu.Unlock()

	if err := d.Load(ctx); err != nil {
		log.Printf("directory: list refresh after delete failed: %v", err)
	}
	if d.onChange != nil {
		d.onChange()
	}
	return result, nil
}
