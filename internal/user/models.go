package user

// PublicUser is the credential-free projection of a users row. It is what
// list/read endpoints return and what live-update events carry.
type PublicUser struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Nickname  string  `json:"nickname"`
	Email     *string `json:"email"`
	Live      int     `json:"live"`
	Avatar    string  `json:"avatar"`
	CreatedAt int64   `json:"created_at"`
	IsOAuth   int     `json:"is_oauth"`
}

// Credentials is the login-time projection. Never serialized.
type Credentials struct {
	ID           int64
	Username     string
	PasswordHash string
}
