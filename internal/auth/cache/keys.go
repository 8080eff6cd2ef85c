package cache

// Key formats are part of the external contract: other services inspect the
// same Redis instance, so the shapes below must not change.
//
//	authentication#<username>      hash {userId, accessToken, refreshToken}
//	emailConfirmCode#<email>       string 6-digit code
//	findPasswordCode#<email>       string 6-digit code

// Purpose distinguishes the two kinds of email challenge.
type Purpose string

const (
	PurposeSignUp       Purpose = "sign-up"
	PurposeFindPassword Purpose = "find-password"
)

func authenticationKey(username string) string {
	return "authentication#" + username
}

func (p Purpose) challengeKey(email string) (string, bool) {
	switch p {
	case PurposeSignUp:
		return "emailConfirmCode#" + email, true
	case PurposeFindPassword:
		return "findPasswordCode#" + email, true
	default:
		return "", false
	}
}
