package domain

import "time"

// Provider identifies where a user's identity originates.
type Provider string

const (
	ProviderLocal  Provider = "LOCAL"
	ProviderGoogle Provider = "GOOGLE"
	ProviderGithub Provider = "GITHUB"
	ProviderKakao  Provider = "KAKAO"
	ProviderNaver  Provider = "NAVER"
)

// Role is the coarse authorization level attached to a user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Authority returns the role as a granted-authority string, e.g. "ROLE_USER".
// This is the form embedded in access token claims.
func (r Role) Authority() string {
	return "ROLE_" + string(r)
}

// User is the persisted account record. Username and email are unique.
type User struct {
	ID            string // ULID
	Username      string
	Nickname      string
	Email         string
	PasswordHash  string // argon2id encoded; placeholder for OAuth users
	AvatarURL     string
	Provider      Provider
	Role          Role
	EmailVerified bool
	Locked        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Authorities returns the granted-authority list for token issuance.
func (u User) Authorities() []string {
	return []string{u.Role.Authority()}
}
