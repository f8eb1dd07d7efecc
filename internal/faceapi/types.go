package faceapi

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Recognition outcome statuses reported by the service.
const (
	StatusSuccess       = "success"
	StatusUnknown       = "unknown"
	StatusAlreadyMarked = "already_marked"
	StatusError         = "error"
)

// ModelStatus is the aggregate readiness signal published by the service.
type ModelStatus struct {
	ModelTrained       bool    `json:"model_trained"`
	TotalUsers         int     `json:"total_users"`
	TrainingInProgress bool    `json:"training_in_progress"`
	LastTrained        *string `json:"last_trained"`
	MinUsersRequired   int     `json:"min_users_required"`
}

// AttendanceRecord is one mark-event. Identity is assigned by the server;
// (username, timestamp) is unique from its perspective.
type AttendanceRecord struct {
	Username   string  `json:"username"`
	Timestamp  string  `json:"timestamp"`
	Date       string  `json:"date"`
	Confidence float64 `json:"confidence"`
	Method     string  `json:"method,omitempty"`
}

// RegisteredUser is the server-side aggregated summary of one person.
type RegisteredUser struct {
	Username               string  `json:"username"`
	DisplayName            string  `json:"display_name"`
	RegisteredDate         string  `json:"registered_date"`
	TotalAttendanceDays    int     `json:"total_attendance_days"`
	TotalAttendanceRecords int     `json:"total_attendance_records"`
	LatestAttendance       *string `json:"latest_attendance"`
	LatestAttendanceTime   *string `json:"latest_attendance_time,omitempty"`
	HasImage               bool    `json:"has_image"`
}

// UserDetail extends the summary with identity fields and recent records.
type UserDetail struct {
	RegisteredUser
	Email             string             `json:"email"`
	Department        string             `json:"department"`
	Role              string             `json:"role"`
	AttendanceRecords []AttendanceRecord `json:"attendance_records"`
}

// RecognitionOutcome is the transient result of one recognize attempt.
type RecognitionOutcome struct {
	Status     string   `json:"status"`
	User       string   `json:"user,omitempty"`
	Message    string   `json:"message"`
	Confidence *float64 `json:"confidence,omitempty"`
	Timestamp  string   `json:"timestamp,omitempty"`
}

// RegisterResult is the response to a successful registration.
type RegisterResult struct {
	Message    string `json:"message"`
	Username   string `json:"username"`
	TotalUsers int    `json:"total_users"`
}

// DeleteResult reports the outcome of an attendance deletion. Removed is
// false when no matching record existed or the delete was rejected; the
// service does not distinguish the two.
type DeleteResult struct {
	Message          string `json:"message"`
	Removed          bool   `json:"removed"`
	Username         string `json:"username"`
	Date             string `json:"date,omitempty"`
	RemovedCount     int    `json:"removed_count,omitempty"`
	RemainingRecords int    `json:"remaining_records,omitempty"`
}

// DeleteUserResult reports the outcome of a cascading user deletion.
type DeleteUserResult struct {
	Message                  string `json:"message"`
	Username                 string `json:"username"`
	RemainingUsers           int    `json:"remaining_users"`
	RemovedAttendanceRecords int    `json:"removed_attendance_records"`
	RetrainingStarted        bool   `json:"retraining_started"`
}

// RetrainResult is the response to a manual retrain request.
type RetrainResult struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

var titleCaser = cases.Title(language.English)

// DisplayName derives the human form of a canonical username
// ("jane_doe" -> "Jane Doe"), matching how the service formats names.
func DisplayName(username string) string {
	return titleCaser.String(strings.ReplaceAll(username, "_", " "))
}
