package studentapi

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the gateway refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
	// ErrTypeAuth indicates a missing or rejected identity (401)
	ErrTypeAuth
	// ErrTypeForbidden indicates the caller's role may not do this (403)
	ErrTypeForbidden
	// ErrTypeConflict indicates the profile or IIN already exists (409)
	ErrTypeConflict
	// ErrTypeNotFound indicates there is no profile yet (404)
	ErrTypeNotFound
	// ErrTypeHTTP indicates any other non-2xx status
	ErrTypeHTTP
	// ErrTypeParse indicates a malformed response body
	ErrTypeParse
	// ErrTypeConfig indicates the client itself is misconfigured
	ErrTypeConfig
)

// NetworkErrorSubtype provides more specific network error classification
type NetworkErrorSubtype int

const (
	NetworkErrorGeneral NetworkErrorSubtype = iota
	NetworkErrorTimeout
	NetworkErrorConnectionRefused
	NetworkErrorDNS
	NetworkErrorHostUnreachable
	NetworkErrorNetworkUnreachable
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeAuth:
		return "Authentication Error"
	case ErrTypeForbidden:
		return "Forbidden"
	case ErrTypeConflict:
		return "Conflict"
	case ErrTypeNotFound:
		return "Not Found"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeConfig:
		return "Configuration Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// APIError represents an error that occurred while talking to the student
// service.
type APIError struct {
	Type           ErrorType           // Category of error
	Message        string              // Server message for status errors, description otherwise
	StatusCode     int                 // HTTP status code (if applicable)
	Err            error               // Underlying error (if any)
	NetworkSubtype NetworkErrorSubtype // More specific network error type
	Endpoint       string              // Request URL (for context)
	Retryable      bool                // Whether the error is retryable
}

// Error implements the error interface. Status errors return the server's
// message as-is, which may be empty.
func (e *APIError) Error() string {
	if e.isStatusError() {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) isStatusError() bool {
	switch e.Type {
	case ErrTypeAuth, ErrTypeForbidden, ErrTypeConflict, ErrTypeNotFound, ErrTypeHTTP:
		return true
	}
	return false
}

// ClassifyNetworkError analyzes a transport error and returns a more specific
// error type.
func ClassifyNetworkError(err error, endpoint string) *APIError {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) {
		return &APIError{
			Type:           ErrTypeTimeout,
			Message:        "Request timed out",
			Err:            err,
			NetworkSubtype: NetworkErrorTimeout,
			Endpoint:       endpoint,
			Retryable:      true,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &APIError{
			Type:           ErrTypeDNS,
			Message:        fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:            err,
			NetworkSubtype: NetworkErrorDNS,
			Endpoint:       endpoint,
			Retryable:      false,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		switch {
		case errors.Is(opErr.Err, syscall.ECONNREFUSED):
			return &APIError{
				Type:           ErrTypeConnectionRefused,
				Message:        "Gateway refused connection",
				Err:            err,
				NetworkSubtype: NetworkErrorConnectionRefused,
				Endpoint:       endpoint,
				Retryable:      true,
			}
		case errors.Is(opErr.Err, syscall.EHOSTUNREACH):
			return &APIError{
				Type:           ErrTypeNetwork,
				Message:        "Host unreachable",
				Err:            err,
				NetworkSubtype: NetworkErrorHostUnreachable,
				Endpoint:       endpoint,
				Retryable:      true,
			}
		case errors.Is(opErr.Err, syscall.ENETUNREACH):
			return &APIError{
				Type:           ErrTypeNetwork,
				Message:        "Network unreachable",
				Err:            err,
				NetworkSubtype: NetworkErrorNetworkUnreachable,
				Endpoint:       endpoint,
				Retryable:      true,
			}
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return ClassifyNetworkError(urlErr.Err, endpoint)
	}

	return &APIError{
		Type:           ErrTypeNetwork,
		Message:        "Network error occurred",
		Err:            err,
		NetworkSubtype: NetworkErrorGeneral,
		Endpoint:       endpoint,
		Retryable:      true,
	}
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(message, endpoint string, err error) *APIError {
	classified := ClassifyNetworkError(err, endpoint)
	if classified != nil {
		classified.Message = message
		return classified
	}
	return &APIError{
		Type:      ErrTypeNetwork,
		Message:   message,
		Endpoint:  endpoint,
		Retryable: true,
	}
}

// NewStatusError maps a non-2xx response to an error. message is the
// service's own error text and is kept verbatim, empty included.
func NewStatusError(statusCode int, message, endpoint string) *APIError {
	e := &APIError{
		Message:    message,
		StatusCode: statusCode,
		Endpoint:   endpoint,
	}
	switch statusCode {
	case http.StatusUnauthorized:
		e.Type = ErrTypeAuth
	case http.StatusForbidden:
		e.Type = ErrTypeForbidden
	case http.StatusConflict:
		e.Type = ErrTypeConflict
	case http.StatusNotFound:
		e.Type = ErrTypeNotFound
	default:
		e.Type = ErrTypeHTTP
		e.Retryable = statusCode >= 500 || statusCode == http.StatusTooManyRequests
	}
	return e
}

// NewParseError creates a parsing error
func NewParseError(message, endpoint string, err error) *APIError {
	return &APIError{
		Type:     ErrTypeParse,
		Message:  message,
		Err:      err,
		Endpoint: endpoint,
	}
}

// NewConfigError creates a client configuration error
func NewConfigError(message string, err error) *APIError {
	return &APIError{
		Type:    ErrTypeConfig,
		Message: message,
		Err:     err,
	}
}

func asAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func hasType(err error, types ...ErrorType) bool {
	apiErr, ok := asAPIError(err)
	if !ok {
		return false
	}
	for _, t := range types {
		if apiErr.Type == t {
			return true
		}
	}
	return false
}

// IsNetworkError checks if an error is a network error (including timeout, connection refused, DNS)
func IsNetworkError(err error) bool {
	return hasType(err, ErrTypeNetwork, ErrTypeTimeout, ErrTypeConnectionRefused, ErrTypeDNS)
}

// IsAuthError checks if an error is an authentication error
func IsAuthError(err error) bool {
	return hasType(err, ErrTypeAuth)
}

// IsForbiddenError checks if an error is a role rejection
func IsForbiddenError(err error) bool {
	return hasType(err, ErrTypeForbidden)
}

// IsConflictError checks if the profile or IIN already exists
func IsConflictError(err error) bool {
	return hasType(err, ErrTypeConflict)
}

// IsNotFoundError checks if the profile does not exist
func IsNotFoundError(err error) bool {
	return hasType(err, ErrTypeNotFound)
}

// IsHTTPError checks if an error is any non-2xx response
func IsHTTPError(err error) bool {
	return hasType(err, ErrTypeAuth, ErrTypeForbidden, ErrTypeConflict, ErrTypeNotFound, ErrTypeHTTP)
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	return hasType(err, ErrTypeParse)
}

// IsConfigError checks if an error is a configuration error
func IsConfigError(err error) bool {
	return hasType(err, ErrTypeConfig)
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	if apiErr, ok := asAPIError(err); ok {
		return apiErr.Retryable
	}
	// Unknown errors are not retryable by default
	return false
}

// GetTroubleshootingHint returns user-friendly troubleshooting advice for an error
func GetTroubleshootingHint(err error) string {
	apiErr, ok := asAPIError(err)
	if !ok {
		return "An unexpected error occurred. Please try again."
	}

	switch apiErr.Type {
	case ErrTypeTimeout:
		return strings.Join([]string{
			"The gateway did not respond in time.",
			"Troubleshooting:",
			"  • Check that the API gateway is running",
			"  • Try increasing api.timeout_seconds in the config file",
		}, "\n")

	case ErrTypeConnectionRefused:
		return strings.Join([]string{
			"The gateway refused the connection.",
			"Troubleshooting:",
			"  • Verify the --api URL and port",
			"  • Run 'profile-cli health' to check the gateway",
			"  • Run 'profile-cli discover' to find gateways on the LAN",
		}, "\n")

	case ErrTypeDNS:
		return strings.Join([]string{
			"Could not resolve the gateway hostname.",
			"Troubleshooting:",
			"  • Use the IP address instead of hostname",
			"  • Check your network DNS settings",
		}, "\n")

	case ErrTypeAuth:
		return strings.Join([]string{
			"The gateway did not accept your identity.",
			"Troubleshooting:",
			"  • Set a user id with --user-id or api.user_id",
			"  • Check that api.token is still valid",
		}, "\n")

	case ErrTypeForbidden:
		return "Only student accounts can create a student profile. Check api.role."

	case ErrTypeConflict:
		return strings.Join([]string{
			"A profile already exists for this account or IIN.",
			"Troubleshooting:",
			"  • Use --update to edit the existing profile",
			"  • Check the IIN for typos",
		}, "\n")

	case ErrTypeNotFound:
		return "No profile exists yet. Submit without --update to create one."

	case ErrTypeNetwork:
		hint := []string{"Network communication failed."}
		switch apiErr.NetworkSubtype {
		case NetworkErrorHostUnreachable:
			hint = append(hint, "The gateway is not reachable on the network.",
				"Troubleshooting:",
				"  • Verify the gateway address is correct",
				"  • Check that you're on the same network as the gateway")
		case NetworkErrorNetworkUnreachable:
			hint = append(hint, "Your computer cannot reach the gateway's network.",
				"Troubleshooting:",
				"  • Check your network adapter settings",
				"  • Verify your VPN or WiFi connection")
		default:
			hint = append(hint, "Troubleshooting:",
				"  • Check your network connection",
				"  • Verify the gateway is running")
		}
		return strings.Join(hint, "\n")

	case ErrTypeHTTP:
		if apiErr.StatusCode >= 500 {
			return fmt.Sprintf("The student service failed (HTTP %d). Try again later.", apiErr.StatusCode)
		}
		return fmt.Sprintf("The student service returned HTTP error %d. Check the submitted values.", apiErr.StatusCode)

	case ErrTypeParse:
		return "Failed to parse the service response. The gateway may be a different version."

	case ErrTypeConfig:
		return "Check the config file with 'profile-cli config show'."

	default:
		return "An error occurred. Please check the error message for details."
	}
}

// GetShortErrorMessage returns a concise, user-friendly error message
func GetShortErrorMessage(err error) string {
	apiErr, ok := asAPIError(err)
	if !ok {
		return err.Error()
	}

	if apiErr.isStatusError() && apiErr.Message != "" {
		return apiErr.Message
	}

	switch apiErr.Type {
	case ErrTypeTimeout:
		return "Gateway not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Gateway refused connection - is it running?"
	case ErrTypeDNS:
		return "Cannot resolve gateway hostname"
	case ErrTypeAuth:
		return "Authentication failed - check user id"
	case ErrTypeForbidden:
		return "Not allowed for this role"
	case ErrTypeConflict:
		return "Profile already exists"
	case ErrTypeNotFound:
		return "Profile not found"
	case ErrTypeNetwork:
		switch apiErr.NetworkSubtype {
		case NetworkErrorHostUnreachable:
			return "Gateway unreachable - check network connection"
		case NetworkErrorNetworkUnreachable:
			return "Network unreachable - check connection"
		default:
			return "Network error - check connection"
		}
	case ErrTypeHTTP:
		return fmt.Sprintf("Service error (HTTP %d)", apiErr.StatusCode)
	case ErrTypeParse:
		return "Failed to parse service response"
	default:
		return apiErr.Message
	}
}
