package config

import (
	"time"

	"github.com/google/uuid"
)

const (
	// CurrentVersion is the settings file format version
	CurrentVersion = 1

	// DefaultBaseURL is the API gateway address of a local development stack
	DefaultBaseURL = "http://localhost:8080"

	// DefaultRole is sent as X-User-Role
	DefaultRole = "student"

	// DefaultTimeoutSeconds is the HTTP timeout used when none is configured
	DefaultTimeoutSeconds = 10

	// DefaultDiscoverTimeout is the mDNS browse duration in seconds
	DefaultDiscoverTimeout = 5
)

// Settings represents the entire configuration file.
type Settings struct {
	Version     int                 `yaml:"version"`
	API         *APISettings        `yaml:"api,omitempty"`
	Preferences *Preferences        `yaml:"preferences,omitempty"`
	Gateways    map[string]*Gateway `yaml:"gateways,omitempty"` // Keyed by mDNS instance name
}

// APISettings describes how to reach the student service.
type APISettings struct {
	BaseURL        string `yaml:"base_url"`
	UserID         string `yaml:"user_id"`         // UUID sent as X-User-ID
	Role           string `yaml:"role"`            // Sent as X-User-Role
	Token          string `yaml:"token,omitempty"` // Optional bearer token
	TimeoutSeconds int    `yaml:"timeout_seconds"` // 0 disables the HTTP timeout
	UpdateExisting bool   `yaml:"update_existing"` // PUT instead of POST on submit
}

// Timeout returns the HTTP timeout as a duration. Zero means none.
func (a *APISettings) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	AutoDiscover    bool `yaml:"auto_discover"`    // Browse for a gateway when base_url is empty
	DiscoverTimeout int  `yaml:"discover_timeout"` // mDNS discovery timeout in seconds
}

// Gateway is a gateway seen by mDNS discovery.
type Gateway struct {
	URL      string    `yaml:"url"`
	Version  string    `yaml:"version,omitempty"`
	LastSeen time.Time `yaml:"last_seen,omitempty"`
}

// NewSettings creates settings with default values and a fresh user id.
func NewSettings() *Settings {
	return &Settings{
		Version:     CurrentVersion,
		API:         defaultAPISettings(),
		Preferences: defaultPreferences(),
		Gateways:    make(map[string]*Gateway),
	}
}

func defaultAPISettings() *APISettings {
	return &APISettings{
		BaseURL:        DefaultBaseURL,
		UserID:         uuid.NewString(),
		Role:           DefaultRole,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

func defaultPreferences() *Preferences {
	return &Preferences{
		AutoDiscover:    false,
		DiscoverTimeout: DefaultDiscoverTimeout,
	}
}

// GetGateway retrieves a remembered gateway by instance name.
// Returns nil if the gateway is unknown.
func (s *Settings) GetGateway(name string) *Gateway {
	return s.Gateways[name]
}

// RememberGateway records a discovered gateway and stamps it as seen now.
func (s *Settings) RememberGateway(name, url, version string) *Gateway {
	if s.Gateways == nil {
		s.Gateways = make(map[string]*Gateway)
	}
	gw, ok := s.Gateways[name]
	if !ok {
		gw = &Gateway{}
		s.Gateways[name] = gw
	}
	gw.URL = url
	gw.Version = version
	gw.LastSeen = time.Now()
	return gw
}

// MostRecentGateway returns the gateway seen last, or nil if none.
func (s *Settings) MostRecentGateway() *Gateway {
	var latest *Gateway
	for _, gw := range s.Gateways {
		if latest == nil || gw.LastSeen.After(latest.LastSeen) {
			latest = gw
		}
	}
	return latest
}

// Validate checks the API section for values the client cannot work with.
func (s *Settings) Validate() error {
	if s.API == nil {
		return nil
	}
	if s.API.UserID != "" {
		if _, err := uuid.Parse(s.API.UserID); err != nil {
			return &InvalidSettingError{Key: "api.user_id", Value: s.API.UserID, Err: err}
		}
	}
	if s.API.TimeoutSeconds < 0 {
		return &InvalidSettingError{Key: "api.timeout_seconds", Value: s.API.TimeoutSeconds}
	}
	return nil
}
