package domain

import (
	"fmt"
	"net/http"
)

// Error is a typed domain failure carrying the HTTP status the boundary
// should answer with and a stable numeric code clients can branch on.
// Codes follow the original scheme: 1000s for common validation failures,
// 2000s for auth and user failures.
type Error struct {
	Status  int    `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("auth error %d: %s", e.Code, e.Message)
}

// Is matches by code so that errors.Is works across WithMessage clones.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithMessage returns a copy carrying a more specific human-readable message
// while keeping the status and code stable.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{Status: e.Status, Code: e.Code, Message: msg}
}

var (
	ErrInvalidInput = &Error{Status: http.StatusBadRequest, Code: 1000, Message: "invalid input value"}
	ErrInternal     = &Error{Status: http.StatusInternalServerError, Code: 1001, Message: "internal server error"}

	ErrInvalidToken         = &Error{Status: http.StatusUnauthorized, Code: 2000, Message: "invalid authentication token"}
	ErrAccessDenied         = &Error{Status: http.StatusForbidden, Code: 2001, Message: "access denied"}
	ErrUnsupportedProvider  = &Error{Status: http.StatusBadRequest, Code: 2002, Message: "unsupported identity provider"}
	ErrUserNotFound         = &Error{Status: http.StatusNotFound, Code: 2003, Message: "user not found"}
	ErrUserNotMatch         = &Error{Status: http.StatusUnauthorized, Code: 2004, Message: "username or password does not match"}
	ErrUserLocked           = &Error{Status: http.StatusForbidden, Code: 2005, Message: "account is locked"}
	ErrUserEmailNotVerified = &Error{Status: http.StatusForbidden, Code: 2006, Message: "email address is not verified"}
	ErrVerificationExpired  = &Error{Status: http.StatusForbidden, Code: 2007, Message: "email verification window has expired, request a new code"}
	ErrUserAlreadyExists    = &Error{Status: http.StatusConflict, Code: 2008, Message: "username is already taken"}
	ErrAlreadySignedOut     = &Error{Status: http.StatusUnauthorized, Code: 2009, Message: "token pair has already been signed out"}
	ErrEmailSendThrottled   = &Error{Status: http.StatusTooManyRequests, Code: 2010, Message: "a verification email is already outstanding for this address"}
	ErrProviderClaim        = &Error{Status: http.StatusInternalServerError, Code: 2011, Message: "identity provider response is missing a required claim"}
	ErrChallengeNotFound    = &Error{Status: http.StatusNotFound, Code: 2012, Message: "no outstanding challenge for this address"}
)
