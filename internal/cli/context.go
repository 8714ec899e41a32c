// Package cli provides the command-line interface for the prospect application.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/lead-miners/prospect/internal/app"
)

// SetApp stores the Application for commands to access
func SetApp(cmd *cobra.Command, a *app.Application) {
	globalApp = a
}

// GetApp retrieves the stored Application
func GetApp() *app.Application {
	return globalApp
}

var globalApp *app.Application
