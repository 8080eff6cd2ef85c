package http

import (
	"encoding/json"
	"net/http"

	"github.com/brandu/auth/internal/auth/domain"
)

// decodeJSON reads a request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.ErrInvalidInput.WithMessage("malformed JSON body")
	}
	return nil
}
