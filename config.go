package sanitymcp

import (
	"fmt"
	"strings"
)

const (
	// DefaultDataset is used when no dataset is configured.
	DefaultDataset = "production"
	// DefaultAPIVersion is the calendar API version requested when none is configured.
	DefaultAPIVersion = "2024-05-01"
	// DefaultAPIHost is the Content Lake host suffix; the project id and
	// subdomain are prepended per request.
	DefaultAPIHost = "sanity.io"
	// SubdomainAPI is the direct (uncached) endpoint subdomain. All writes go here.
	SubdomainAPI = "api"
	// SubdomainCDN is the accelerated read subdomain for anonymous,
	// eventually-consistent reads.
	SubdomainCDN = "apicdn"
)

// Config is the immutable connection configuration for a Content Lake
// project/dataset pair. Construct it once and pass it to client.New; the
// client never mutates it.
type Config struct {
	// ProjectID identifies the Content Lake project. Required.
	ProjectID string
	// Dataset names the dataset within the project. Empty means DefaultDataset.
	Dataset string
	// APIVersion is the calendar version string placed in the URL prefix
	// (without the leading "v"). Empty means DefaultAPIVersion.
	APIVersion string
	// Token is the optional bearer credential. Its presence permits write
	// operations and flips the default read path from CDN to direct API.
	Token string
	// UseCDN overrides the derived CDN decision when non-nil. When nil the
	// client reads through the CDN exactly when no token is configured.
	UseCDN *bool
	// APIHost overrides DefaultAPIHost for private or staging deployments.
	APIHost string
}

// WithDefaults returns a copy of cfg with empty optional fields filled in.
func (c Config) WithDefaults() Config {
	if strings.TrimSpace(c.Dataset) == "" {
		c.Dataset = DefaultDataset
	}
	if strings.TrimSpace(c.APIVersion) == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if strings.TrimSpace(c.APIHost) == "" {
		c.APIHost = DefaultAPIHost
	}
	return c
}

// Validate reports whether the configuration can identify a remote dataset.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ProjectID) == "" {
		return fmt.Errorf("sanitymcp: project id required")
	}
	return nil
}

// HasToken reports whether a bearer credential is configured.
func (c Config) HasToken() bool {
	return strings.TrimSpace(c.Token) != ""
}

// CDNEnabled resolves the effective CDN decision: the explicit override when
// set, otherwise the derived default of "no token, use CDN".
func (c Config) CDNEnabled() bool {
	if c.UseCDN != nil {
		return *c.UseCDN
	}
	return !c.HasToken()
}
