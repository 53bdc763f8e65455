// Package cliutil holds helpers shared by the wsync subcommands.
package cliutil

import (
	stderrors "errors"

	"github.com/spf13/cobra"

	"whisper-sync/internal/app"
	"whisper-sync/internal/app/errors"
	"whisper-sync/internal/config"
)

// Bootstrap wires the application using the root command's persistent flags.
func Bootstrap(cmd *cobra.Command, configure func(cfg *config.Config)) (*app.App, func(), error) {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	return app.Bootstrap(cmd.Context(), app.Options{
		ConfigPath: configPath,
		Verbose:    verbose,
		Configure:  configure,
	})
}

// FileMedia plays sources straight from disk.
func FileMedia(cfg *config.Config) {
	cfg.Media.Backend = "file"
}

// UserError replaces classified failures with their user-facing message.
// The detailed cause is still in the debug log.
func UserError(err error) error {
	if err == nil {
		return nil
	}
	if kind := errors.KindOf(err); kind != errors.KindNone {
		return stderrors.New(kind.UserMessage())
	}
	return err
}
