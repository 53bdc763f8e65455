package key

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"whisper-sync/cmd/wsync/cmd/cliutil"
	"whisper-sync/internal/api/v1/dto"
)

// Cmd represents the key command
var Cmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the stored OpenAI API key",
}

var setCmd = &cobra.Command{
	Use:   "set <api-key>",
	Short: "Store the API key for later runs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cleanup, err := cliutil.Bootstrap(cmd, nil)
		if err != nil {
			return err
		}
		defer cleanup()

		key := strings.TrimSpace(args[0])
		if err := a.Session.SetCredential(cmd.Context(), key); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "API key stored: %s\n", dto.MaskKey(key))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored API key, masked",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cleanup, err := cliutil.Bootstrap(cmd, nil)
		if err != nil {
			return err
		}
		defer cleanup()

		key, err := a.Session.Credential(cmd.Context())
		if err != nil {
			return err
		}
		if key == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No API key stored")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), dto.MaskKey(key))
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the stored API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cleanup, err := cliutil.Bootstrap(cmd, nil)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := a.Session.ClearCredential(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "API key cleared")
		return nil
	},
}

func init() {
	Cmd.AddCommand(setCmd, showCmd, clearCmd)
}
