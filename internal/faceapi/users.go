package faceapi

import "context"

type usersList struct {
	Users []RegisteredUser `json:"users"`
	Total int              `json:"total"`
}

// Users fetches the aggregated summaries of all registered users.
func (c *Client) Users(ctx context.Context) ([]RegisteredUser, error) {
	result, err := doGetJSON[usersList](ctx, c, "users/detailed")
	if err != nil {
		return nil, err
	}
	return result.Users, nil
}

// User fetches one user's detail including recent attendance records.
func (c *Client) User(ctx context.Context, username string) (*UserDetail, error) {
	return doGetJSON[UserDetail](ctx, c, "user/"+NormalizeUsername(username))
}

// DeleteUser removes a user together with their attendance history and face
// data; the service retrains the model afterwards.
func (c *Client) DeleteUser(ctx context.Context, username string) (*DeleteUserResult, error) {
	return doDeleteJSON[DeleteUserResult](ctx, c, "user/"+NormalizeUsername(username))
}
