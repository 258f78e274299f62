// Package cli provides the command-line interface for the activities scraper.
package cli

import (
	"context"

	"github.com/law-makers/activities/internal/app"
	"github.com/spf13/cobra"
)

// ctxKey is used for storing the application holder in the command context
type ctxKey string

const appKey ctxKey = "app"

// appHolder lets PersistentPreRunE publish the Application to the caller of
// Execute, which closes it whatever the command returned
type appHolder struct {
	app *app.Application
}

func withAppHolder(ctx context.Context) (context.Context, *appHolder) {
	h := &appHolder{}
	return context.WithValue(ctx, appKey, h), h
}

func holderFrom(cmd *cobra.Command) *appHolder {
	if cmd == nil || cmd.Context() == nil {
		return nil
	}
	h, _ := cmd.Context().Value(appKey).(*appHolder)
	return h
}

// SetApp stores the Application for the running command
func SetApp(cmd *cobra.Command, a *app.Application) {
	if h := holderFrom(cmd); h != nil {
		h.app = a
	}
}

// GetApp retrieves the Application for the running command
func GetApp(cmd *cobra.Command) *app.Application {
	if h := holderFrom(cmd); h != nil {
		return h.app
	}
	return nil
}
