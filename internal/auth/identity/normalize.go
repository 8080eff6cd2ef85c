// Package identity maps provider-specific OAuth claim payloads to the
// uniform domain.IdentityClaim record. Each provider has its own nesting
// convention for the same four facts, so normalization is a tagged switch
// with one mapping function per provider and no shared state.
package identity

import (
	"fmt"

	"github.com/brandu/auth/internal/auth/domain"
)

// Placeholder email domains used when a provider omits the email claim.
// The synthesized address is {displayName}@{providerDomain}. This is a
// deliberate business rule carried over from the original product; note
// that two distinct users with the same display name on one provider
// collide on the placeholder.
const (
	googleDomain = "gmail.com"
	githubDomain = "github.com"
	kakaoDomain  = "kakao.com"
	naverDomain  = "naver.com"
)

// Normalize converts a raw attribute map from the named provider into an
// IdentityClaim. A missing external id means the provider changed its
// contract and fails with ErrProviderClaim; an unknown provider fails with
// ErrUnsupportedProvider.
func Normalize(provider domain.Provider, attrs map[string]any) (domain.IdentityClaim, error) {
	switch provider {
	case domain.ProviderGoogle:
		return normalizeGoogle(attrs)
	case domain.ProviderGithub:
		return normalizeGithub(attrs)
	case domain.ProviderKakao:
		return normalizeKakao(attrs)
	case domain.ProviderNaver:
		return normalizeNaver(attrs)
	default:
		return domain.IdentityClaim{}, domain.ErrUnsupportedProvider
	}
}

func normalizeGoogle(attrs map[string]any) (domain.IdentityClaim, error) {
	id := str(attrs, "sub")
	if id == "" {
		return domain.IdentityClaim{}, missingClaim(domain.ProviderGoogle, "sub")
	}
	name := str(attrs, "name")
	return domain.IdentityClaim{
		Provider:    domain.ProviderGoogle,
		ExternalID:  id,
		DisplayName: name,
		Email:       emailOrPlaceholder(str(attrs, "email"), name, googleDomain),
		AvatarURL:   str(attrs, "picture"),
	}, nil
}

func normalizeGithub(attrs map[string]any) (domain.IdentityClaim, error) {
	id := str(attrs, "id")
	if id == "" {
		return domain.IdentityClaim{}, missingClaim(domain.ProviderGithub, "id")
	}
	name := str(attrs, "name")
	return domain.IdentityClaim{
		Provider:    domain.ProviderGithub,
		ExternalID:  id,
		DisplayName: name,
		Email:       emailOrPlaceholder(str(attrs, "email"), name, githubDomain),
		AvatarURL:   str(attrs, "avatar_url"),
	}, nil
}

// Kakao nests the profile under "properties" but keeps the id and avatar at
// the top level.
func normalizeKakao(attrs map[string]any) (domain.IdentityClaim, error) {
	id := str(attrs, "id")
	if id == "" {
		return domain.IdentityClaim{}, missingClaim(domain.ProviderKakao, "id")
	}
	props := nested(attrs, "properties")
	name := str(props, "nickname")
	return domain.IdentityClaim{
		Provider:    domain.ProviderKakao,
		ExternalID:  id,
		DisplayName: name,
		Email:       emailOrPlaceholder(str(props, "email"), name, kakaoDomain),
		AvatarURL:   str(attrs, "profile_image"),
	}, nil
}

// Naver wraps the whole profile under "response".
func normalizeNaver(attrs map[string]any) (domain.IdentityClaim, error) {
	resp := nested(attrs, "response")
	id := str(resp, "id")
	if id == "" {
		return domain.IdentityClaim{}, missingClaim(domain.ProviderNaver, "response.id")
	}
	name := str(resp, "nickname")
	return domain.IdentityClaim{
		Provider:    domain.ProviderNaver,
		ExternalID:  id,
		DisplayName: name,
		Email:       emailOrPlaceholder(str(resp, "email"), name, naverDomain),
		AvatarURL:   str(resp, "profile_image"),
	}, nil
}

func missingClaim(provider domain.Provider, claim string) error {
	return domain.ErrProviderClaim.WithMessage(
		fmt.Sprintf("%s response is missing the %q claim", provider, claim),
	)
}

func emailOrPlaceholder(email, displayName, providerDomain string) string {
	if email != "" {
		return email
	}
	return displayName + "@" + providerDomain
}

// str reads a scalar attribute as a string. Providers are inconsistent about
// numeric ids (GitHub and Kakao send JSON numbers), so anything non-nil is
// rendered with fmt. Floats that are whole numbers print without a fraction.
func str(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func nested(m map[string]any, key string) map[string]any {
	if sub, ok := m[key].(map[string]any); ok {
		return sub
	}
	return nil
}
