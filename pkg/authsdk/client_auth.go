package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// SignUp registers a new account. The service mails a 6-digit confirmation
// code to the given address; the account stays unverified until ConfirmSignUp
// succeeds.
func (c *SDKClient) SignUp(ctx context.Context, req SignUpRequest) (*UserResponse, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/sign-up", body, jsonHeaders)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}

	return &user, nil
}

// ConfirmSignUp redeems an emailed sign-up confirmation code. It returns
// false without an error when the code simply does not match, so callers can
// let the user retry against the same challenge.
func (c *SDKClient) ConfirmSignUp(ctx context.Context, email, code string) (bool, error) {
	return c.confirm(ctx, "sign-up", email, code)
}

// ConfirmFindPassword checks an emailed password recovery code without
// consuming it. The code is redeemed by ResetPassword.
func (c *SDKClient) ConfirmFindPassword(ctx context.Context, email, code string) (bool, error) {
	return c.confirm(ctx, "find-password", email, code)
}

func (c *SDKClient) confirm(ctx context.Context, purpose, email, code string) (bool, error) {
	q := url.Values{}
	q.Set("type", purpose)
	q.Set("email", email)
	q.Set("code", code)

	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/auth/confirm?"+q.Encode(), nil, nil)
	if err != nil {
		return false, err
	}

	var result struct {
		Verified bool `json:"verified"`
	}
	if err := decodeJSON(resp, &result, http.StatusOK); err != nil {
		return false, err
	}

	return result.Verified, nil
}

// ResendEmail requests a fresh sign-up confirmation code. The service
// throttles to one outstanding code per address.
func (c *SDKClient) ResendEmail(ctx context.Context, email string) error {
	body, err := jsonBody(ResendEmailRequest{Email: email})
	if err != nil {
		return err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/resend-email", body, jsonHeaders)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// FindPassword starts password recovery by mailing a 6-digit code to the
// given address. Unknown addresses are not distinguishable from known ones.
func (c *SDKClient) FindPassword(ctx context.Context, email string) error {
	body, err := jsonBody(FindPasswordRequest{Email: email})
	if err != nil {
		return err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/find-password", body, jsonHeaders)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// ResetPassword redeems a password recovery code and replaces the account
// password.
func (c *SDKClient) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	body, err := jsonBody(ResetPasswordRequest{Email: email, Code: code, NewPassword: newPassword})
	if err != nil {
		return err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/reset-password", body, jsonHeaders)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}
