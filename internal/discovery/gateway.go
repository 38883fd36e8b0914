package discovery

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Gateway represents a discovered student API gateway
type Gateway struct {
	// Instance is the advertised service instance name (e.g., "campus-gw")
	Instance string

	// Hostname is the mDNS hostname (e.g., "gw1.local.")
	Hostname string

	// IP is the address to connect to, IPv4 preferred
	IP string

	// Port is the HTTP port
	Port int

	// Metadata contains the TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the gateway was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the gateway
func (g *Gateway) String() string {
	return fmt.Sprintf("Gateway %s (%s) at %s", g.Instance, g.Hostname, net.JoinHostPort(g.IP, strconv.Itoa(g.Port)))
}

// BaseURL returns the HTTP base URL for the gateway, including the
// advertised path prefix if any.
func (g *Gateway) BaseURL() string {
	scheme := g.GetMetadata("scheme")
	if scheme == "" {
		scheme = "http"
	}
	path := strings.TrimRight(g.GetMetadata("path"), "/")
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(g.IP, strconv.Itoa(g.Port)), path)
}

// Version returns the advertised gateway version, or "" if unknown
func (g *Gateway) Version() string {
	return g.GetMetadata("version")
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (g *Gateway) GetMetadata(key string) string {
	if g.Metadata == nil {
		return ""
	}
	return g.Metadata[key]
}
