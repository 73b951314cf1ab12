package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicyBypasses(t *testing.T) {
	p := DefaultPolicy()

	assert.True(t, p.Bypasses("/api/invoices/search"))
	assert.True(t, p.Bypasses("/static/app.css"))
	assert.True(t, p.Bypasses("/images/hero.png"))
	assert.True(t, p.Bypasses("/favicon.ico"))

	assert.False(t, p.Bypasses("/"))
	assert.False(t, p.Bypasses("/login"))
	assert.False(t, p.Bypasses("/dashboard"))
	assert.False(t, p.Bypasses("/favicon.ico.bak"))
}

func TestPolicyDecide(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name       string
		hasSession bool
		path       string
		want       Decision
	}{
		{"protected without session", false, "/dashboard", RedirectLogin},
		{"protected subpath without session", false, "/dashboard/invoices/create", RedirectLogin},
		{"customers without session", false, "/customers", RedirectLogin},
		{"invoices prefix without session", false, "/invoices", RedirectLogin},
		{"protected with session", true, "/dashboard", Allow},
		{"protected subpath with session", true, "/dashboard/invoices", Allow},
		{"login without session", false, "/login", Allow},
		{"root without session", false, "/", Allow},
		{"login with session", true, "/login", RedirectDashboard},
		{"root with session", true, "/", RedirectDashboard},
		{"signup with session", true, "/signup", RedirectDashboard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Decide(tt.hasSession, tt.path))
		})
	}
}
