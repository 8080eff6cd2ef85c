package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Service error codes as they appear in error response bodies.
const (
	CodeInvalidInput = 1000
	CodeInternal     = 1001

	CodeInvalidToken         = 2000
	CodeAccessDenied         = 2001
	CodeUnsupportedProvider  = 2002
	CodeUserAlreadyExists    = 2003
	CodeUserNotMatch         = 2004
	CodeUserLocked           = 2005
	CodeUserEmailNotVerified = 2006
	CodeVerificationExpired  = 2007
	CodeChallengeNotFound    = 2008
	CodeAlreadySignedOut     = 2009
	CodeEmailSendThrottled   = 2010
	CodeUserNotFound         = 2011
	CodeProviderClaim        = 2012
)

// APIError is an error response from the service, carrying the HTTP status
// and the service error code alongside the message.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       int    `json:"code"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("auth service error %d: %s", e.Code, e.Message)
}

// IsCode reports whether err is an APIError with the given service code.
func IsCode(err error, code int) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Code == code
}

// parseErrorResponse turns a non-success HTTP response body into an APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != 0 {
		apiErr.StatusCode = resp.StatusCode
		return &apiErr
	}

	// Fallback: create a generic error from the status code
	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       CodeInternal,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
