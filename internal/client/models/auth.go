package models

// AuthRequest is the body of /auth/login and /auth/register.
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by /auth/login.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// ProfileRequest is the body of /auth/profile. Password is sent only when
// the user asked to change it.
type ProfileRequest struct {
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
}

type ProfileResponse struct {
	Username string `json:"username"`
}
