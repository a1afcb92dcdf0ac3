package auth

import (
	"github.com/nfrund/cyberwatch/internal/dashboard"
	"github.com/nfrund/cyberwatch/internal/loginform"
)

// LoginData is a View Model (DTO) used specifically for the login template.
type LoginData struct {
	// Form carries the submitted email and the state of both error labels.
	Form *loginform.Form
	// Error is shown above the form, e.g. after rejected credentials.
	Error string
	// ClientValidator selects which browser-side validator the page loads.
	ClientValidator string
}

// DashboardData is what the dashboard shows about the signed-in user.
type DashboardData struct {
	FullName string
	Email    string
	Role     string
	// Overview is nil when the incidents could not be loaded.
	Overview *dashboard.Overview
	// Error replaces the incident panels when Overview is nil.
	Error string
}
