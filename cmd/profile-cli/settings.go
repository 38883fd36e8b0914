package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/studentportal/profilecli/internal/config"
	"github.com/studentportal/profilecli/internal/discovery"
	"github.com/studentportal/profilecli/internal/logging"
	"github.com/studentportal/profilecli/internal/studentapi"
)

// flagOverrides holds the persistent flags that take precedence over the
// config file
type flagOverrides struct {
	APIURL string
	UserID string
	Update bool
}

// apply copies every set flag into settings
func (o flagOverrides) apply(s *config.Settings) {
	if s.API == nil {
		s.API = config.NewSettings().API
	}
	if o.APIURL != "" {
		s.API.BaseURL = o.APIURL
	}
	if o.UserID != "" {
		s.API.UserID = o.UserID
	}
	if o.Update {
		s.API.UpdateExisting = true
	}
}

// loadSettings reads the config file, creating it on first use so the
// generated user id stays the same between runs, and applies flag overrides.
func loadSettings() (*config.Settings, error) {
	path, created, err := config.CreateDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create config: %w", err)
	}

	var settings *config.Settings
	if created {
		logging.Info("Created default config", zap.String("path", path))
		settings, err = config.Reload()
	} else {
		settings, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides().apply(settings)
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func overrides() flagOverrides {
	return flagOverrides{
		APIURL: apiURL,
		UserID: userID,
		Update: updateExisting,
	}
}

// resolveBaseURL returns the gateway to talk to. An empty base_url falls
// back to mDNS discovery when enabled, then to the gateway seen last.
func resolveBaseURL(ctx context.Context, s *config.Settings) (string, error) {
	if s.API.BaseURL != "" {
		return s.API.BaseURL, nil
	}

	if s.Preferences != nil && s.Preferences.AutoDiscover {
		scanner := discovery.NewScanner()
		if s.Preferences.DiscoverTimeout > 0 {
			scanner.Timeout = time.Duration(s.Preferences.DiscoverTimeout) * time.Second
		}

		gw, err := scanner.First(ctx)
		if err == nil {
			if err := rememberGateways([]*discovery.Gateway{gw}); err != nil {
				logging.Warn("Failed to remember gateway", zap.Error(err))
			}
			return gw.BaseURL(), nil
		}
		logging.Warn("Gateway discovery failed", zap.Error(err))
	}

	if gw := s.MostRecentGateway(); gw != nil {
		return gw.URL, nil
	}

	return "", studentapi.NewConfigError("no API base URL configured; use --api or run 'profile-cli discover'", nil)
}

// newClient builds the student service client described by settings
func newClient(ctx context.Context, s *config.Settings) (*studentapi.Client, error) {
	baseURL, err := resolveBaseURL(ctx, s)
	if err != nil {
		return nil, err
	}

	client, err := studentapi.NewClient(baseURL, s.API.UserID)
	if err != nil {
		return nil, err
	}
	if s.API.Role != "" {
		client.Role = s.API.Role
	}
	if s.API.Token != "" {
		if err := client.UseToken(s.API.Token); err != nil {
			return nil, err
		}
		// An explicit --user-id still wins over the token's claim
		if userID != "" {
			if err := client.SetUserID(userID); err != nil {
				return nil, err
			}
		}
	}
	client.UpdateExisting = s.API.UpdateExisting
	client.SetTimeout(s.API.Timeout())

	return client, nil
}

// rememberGateways records discovered gateways in the config file. The file
// is read fresh so flag overrides are never written back.
func rememberGateways(gateways []*discovery.Gateway) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	onDisk, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	for _, gw := range gateways {
		onDisk.RememberGateway(gw.Instance, gw.BaseURL(), gw.Version())
	}
	return onDisk.SaveFile(path)
}
