package middleware

import (
	"strings"

	"myfinbank-admin/internal/config"
)

// PathPolicy decides which request paths need an authenticated admin
type PathPolicy struct {
	protected []string
	public    []string
	apiPrefix string
}

// NewPathPolicy builds the policy from the auth configuration.
// A public entry ending in "/" matches as a prefix; any other entry
// matches exactly.
func NewPathPolicy(cfg config.AuthConfig) *PathPolicy {
	return &PathPolicy{
		protected: cfg.ProtectedPrefixes,
		public:    cfg.PublicPaths,
		apiPrefix: cfg.APIPrefix,
	}
}

// IsPublic reports whether path is reachable without credentials
func (p *PathPolicy) IsPublic(path string) bool {
	for _, entry := range p.public {
		if path == entry {
			return true
		}
		if entry != "/" && strings.HasSuffix(entry, "/") && strings.HasPrefix(path, entry) {
			return true
		}
	}
	return false
}

// IsProtected reports whether path falls under a protected prefix and is
// not explicitly public
func (p *PathPolicy) IsProtected(path string) bool {
	if p.IsPublic(path) {
		return false
	}
	for _, prefix := range p.protected {
		if strings.HasPrefix(path, prefix) {
			return true
		}
		// "/admin/" also covers the bare "/admin"
		if strings.TrimSuffix(prefix, "/") == path {
			return true
		}
	}
	return false
}

// IsAPI reports whether path addresses a JSON endpoint: it starts with the
// API prefix or contains it as a segment (e.g. /admin/loans/api/pending).
func (p *PathPolicy) IsAPI(path string) bool {
	if p.apiPrefix == "" {
		return false
	}
	return strings.Contains(path, p.apiPrefix)
}
