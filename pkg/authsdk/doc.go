// Package authsdk is a Go client for the authentication service HTTP API.
//
// The SDKClient covers the unauthenticated surface (sign-up, email
// confirmation, sign-in, password recovery, OAuth login, health probes).
// A successful sign-in returns a Session, which carries the token pair and
// covers the authenticated surface (current user, refresh, sign-out).
//
// The service delivers refresh tokens to browsers in an HttpOnly cookie and
// also echoes them in the response body. The SDK stores the body copy and
// presents it as a cookie where the service expects one, so non-browser
// callers get the same behaviour without a cookie jar.
package authsdk
