// Package auth holds the route authorization policy as plain data and a pure
// decision function. The policy is constructed once at startup and handed to
// the request pipeline; nothing in here reads globals or does I/O.
package auth

import "strings"

// Decision is the outcome of evaluating a request path against the policy.
type Decision int

const (
	// Allow lets the request through to its handler.
	Allow Decision = iota
	// RedirectLogin denies an unauthenticated request to a protected path.
	RedirectLogin
	// RedirectDashboard bounces an authenticated user off public-only pages
	// such as the login form.
	RedirectDashboard
)

// Policy is the authorization configuration for the whole app.
type Policy struct {
	// ProtectedPrefixes require a session.
	ProtectedPrefixes []string
	// BypassPrefixes skip the gate entirely (API routes, static assets).
	BypassPrefixes []string
	// BypassPaths are exact-match gate exclusions.
	BypassPaths []string

	LoginPath     string
	DashboardPath string
}

// DefaultPolicy mirrors the shipped route layout: everything except API
// routes, static assets, image assets and the favicon passes through the gate.
func DefaultPolicy() Policy {
	return Policy{
		ProtectedPrefixes: []string{"/dashboard", "/customers", "/invoices"},
		BypassPrefixes:    []string{"/api", "/static", "/images"},
		BypassPaths:       []string{"/favicon.ico"},
		LoginPath:         "/login",
		DashboardPath:     "/dashboard",
	}
}

// Bypasses reports whether the gate should not run at all for this path.
func (p Policy) Bypasses(path string) bool {
	for _, pre := range p.BypassPrefixes {
		if strings.HasPrefix(path, pre) {
			return true
		}
	}
	for _, exact := range p.BypassPaths {
		if path == exact {
			return true
		}
	}
	return false
}

// Decide evaluates session presence against the request path.
//
//	protected + no session  -> RedirectLogin
//	protected + session     -> Allow
//	public    + session     -> RedirectDashboard
//	public    + no session  -> Allow
func (p Policy) Decide(hasSession bool, path string) Decision {
	if p.isProtected(path) {
		if hasSession {
			return Allow
		}
		return RedirectLogin
	}
	if hasSession {
		return RedirectDashboard
	}
	return Allow
}

func (p Policy) isProtected(path string) bool {
	for _, pre := range p.ProtectedPrefixes {
		if strings.HasPrefix(path, pre) {
			return true
		}
	}
	return false
}
