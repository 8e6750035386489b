package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/noticepilot/internal/auth"
	"github.com/spf13/cobra"
)

var errPasswordRequired = errors.New("password required: pass --password or set " + passwordEnv)

// unlock passes the shared-secret gate. A password given by flag or
// environment is checked once; otherwise an interactive terminal is
// prompted until the secret matches.
func unlock(cmd *cobra.Command, app *App) error {
	if app.Gate == nil {
		return fmt.Errorf("%w: set auth.password or NOTICEPILOT_AUTH_PASSWORD", auth.ErrNoSecret)
	}
	if attempt := passwordAttempt(cmd); attempt != "" {
		return app.Gate.Check(attempt)
	}
	if !app.interactive() {
		return errPasswordRequired
	}
	return app.Gate.Unlock(cmd.Context(), app.prompter().Password)
}
