// Package assets maps stored media references onto URLs a caller can
// dereference from its own deployment context.
package assets

import "strings"

const (
	// ModeDevelopment serves assets from the caller's own origin, directly
	// or through a local proxy.
	ModeDevelopment = "development"
	// ModeProduction rewrites relative asset paths onto the public origin.
	ModeProduction = "production"
)

// PathPrefix is the root-relative prefix under which this system stores its
// own assets.
const PathPrefix = "/assets/"

// Context describes the deployment the resolved URL is for. It is passed by
// value so resolution stays a pure function.
type Context struct {
	Mode    string
	BaseURL string
}

// Resolve maps a stored media reference to a caller-appropriate URL.
// Absolute URLs are caller-independent and pass through unchanged. Paths
// under PathPrefix stay relative in development and gain the configured base
// origin in production. Anything else is treated as already correct.
func Resolve(ctx Context, stored string) string {
	if stored == "" {
		return stored
	}
	if strings.HasPrefix(stored, "http://") || strings.HasPrefix(stored, "https://") {
		return stored
	}
	if !strings.HasPrefix(stored, PathPrefix) {
		return stored
	}
	if ctx.Mode != ModeProduction || ctx.BaseURL == "" {
		return stored
	}
	return strings.TrimRight(ctx.BaseURL, "/") + stored
}
