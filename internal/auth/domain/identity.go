package domain

// IdentityClaim is the uniform identity record produced by normalizing a
// provider-specific claim payload. It is transient and never persisted; it
// exists only to materialize or match a User during OAuth login.
type IdentityClaim struct {
	Provider    Provider
	ExternalID  string
	DisplayName string
	Email       string
	AvatarURL   string
}
