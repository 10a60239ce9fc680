// Package api is the client's single gateway to the storepulse backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering every
//     backend call the app makes: Register/Login/Logout, Dashboard,
//     InventoryInsights, the Shopify and Google connect flows, and Ping.
//  2. A concrete HTTP implementation (see HTTPClient) that composes explicit
//     pre-request and post-response hooks around every call: the request
//     hooks read the bearer token from the session store immediately before
//     each send, the response hooks turn any 401 into a forced logout plus a
//     redirect to the sign-in screen. The 401 side effect runs in addition
//     to, never instead of, the error returned to the caller.
//  3. Error mapping to values callers can branch on with errors.Is/errors.As:
//     ErrUnauthorized, ErrUnavailable, and *Error carrying the status code
//     and the backend's field-validation messages unaltered.
//
// The pipeline performs no retries and no token refresh: a single 401 is
// terminal for the session.
package api
