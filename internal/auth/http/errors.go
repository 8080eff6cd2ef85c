package http

import (
	"errors"
	"net/http"

	"github.com/brandu/auth/internal/auth/domain"
	"github.com/brandu/auth/pkg/httpx"
	"github.com/brandu/auth/pkg/slogx"
)

// ErrorResponse is the JSON body for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError serializes a failure. Typed domain errors answer with their own
// status and stable code; anything else is an opaque 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		httpx.WriteJSON(w, de.Status, ErrorResponse{Code: de.Code, Message: de.Message})
		return
	}

	slogx.FromContext(r.Context()).Error("request failed", "err", err)
	de = domain.ErrInternal
	httpx.WriteJSON(w, de.Status, ErrorResponse{Code: de.Code, Message: de.Message})
}

// denyAuth is the httpx.DenyHandler used on protected routes. It maps the
// recorded authentication failure onto the domain error taxonomy.
func denyAuth(w http.ResponseWriter, r *http.Request, status int, reason error) {
	switch {
	case status == http.StatusForbidden:
		writeError(w, r, domain.ErrAccessDenied)
	case errors.Is(reason, httpx.ErrTokenRevoked):
		writeError(w, r, domain.ErrAlreadySignedOut)
	default:
		writeError(w, r, domain.ErrInvalidToken)
	}
}

// writeValidationError wraps ozzo-validation output in the invalid-input code.
func writeValidationError(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, domain.ErrInvalidInput.WithMessage(err.Error()))
}
