package session

// Mirror keys. Fixed by the storage contract shared with the web client;
// changing them orphans previously persisted sessions.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
)

// User is the identity record carried by an authenticated session. It is
// replaced wholesale on login and merged field-wise by [Store.UpdateUser].
//
// JSON tags match the persisted mirror layout.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	Role   string `json:"role,omitempty"`
}

// UserPatch is a partial user update for [Store.UpdateUser]. Nil fields are
// left untouched; non-nil fields overwrite, including to the empty string.
type UserPatch struct {
	Name   *string
	Email  *string
	Avatar *string
	Role   *string
}

// Snapshot is a point-in-time copy of the session state. User is a copy, not
// a pointer into the store; callers may retain it freely.
type Snapshot struct {
	User          User
	AccessToken   string
	Authenticated bool
}
