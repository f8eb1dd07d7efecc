package faceapi

import "context"

type attendanceList struct {
	Attendance []AttendanceRecord `json:"attendance"`
	Date       string             `json:"date,omitempty"`
	Total      int                `json:"total"`
}

// TodayAttendance fetches the attendance records marked today.
func (c *Client) TodayAttendance(ctx context.Context) ([]AttendanceRecord, error) {
	result, err := doGetJSON[attendanceList](ctx, c, "attendance/today")
	if err != nil {
		return nil, err
	}
	return result.Attendance, nil
}

// AllAttendance fetches the full attendance history.
func (c *Client) AllAttendance(ctx context.Context) ([]AttendanceRecord, error) {
	result, err := doGetJSON[attendanceList](ctx, c, "attendance")
	if err != nil {
		return nil, err
	}
	return result.Attendance, nil
}

// DeleteAttendance removes the record for a user on the given date
// (YYYY-MM-DD). An empty date deletes today's record.
func (c *Client) DeleteAttendance(ctx context.Context, username, date string) (*DeleteResult, error) {
	endpoint := "attendance/" + NormalizeUsername(username)
	if date != "" {
		endpoint += "?date=" + date
	}
	return doDeleteJSON[DeleteResult](ctx, c, endpoint)
}

// DeleteTodayAttendance removes today's record for a user.
func (c *Client) DeleteTodayAttendance(ctx context.Context, username string) (*DeleteResult, error) {
	return doDeleteJSON[DeleteResult](ctx, c, "attendance/today/"+NormalizeUsername(username))
}

// DeleteAllAttendance removes every attendance record for a user.
func (c *Client) DeleteAllAttendance(ctx context.Context, username string) (*DeleteResult, error) {
	return doDeleteJSON[DeleteResult](ctx, c, "attendance/all/"+NormalizeUsername(username))
}
