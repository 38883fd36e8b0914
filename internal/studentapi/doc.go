// Package studentapi provides an HTTP client for the student service REST API.
//
// The client talks to the API gateway that fronts the student service. Every
// request carries the gateway identity headers (X-User-ID and X-User-Role)
// and, when configured, a bearer token. UseToken takes the identity from
// the token's user_id and role claims.
//
// # Endpoints
//
//   - POST /api/students/profile: create the caller's profile
//   - PUT  /api/students/profile: update the caller's profile
//   - GET  /api/students/profile: fetch the caller's profile
//   - GET  /health: gateway health check
//
// # Usage Example
//
//	client, err := studentapi.NewClient("http://localhost:8080", userID)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctrl := profile.NewController()
//	// ... SetField calls ...
//	outcome := ctrl.Submit(ctx, client)
//
// # Error Handling
//
// Failures are returned as *APIError. When the service answered with an
// {"error": "..."} body, Error() is exactly that message so it can be shown
// to the user unchanged. Use GetShortErrorMessage and GetTroubleshootingHint
// for the CLI's own wording.
//
// Profile writes are sent once and never retried. Reads retry retryable
// failures with exponential backoff.
package studentapi
