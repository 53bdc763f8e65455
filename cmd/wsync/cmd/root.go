package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"whisper-sync/cmd/wsync/cmd/key"
	"whisper-sync/cmd/wsync/cmd/play"
	"whisper-sync/cmd/wsync/cmd/serve"
	"whisper-sync/cmd/wsync/cmd/transcribe"
	"whisper-sync/cmd/wsync/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wsync",
	Short: "Transcribe audio with Whisper and follow the transcript during playback",
	Long: `Transcribe audio with Whisper and follow the transcript during playback.
- Store your OpenAI API key once with "wsync key set"
- Transcribe a file from the command line, or
- Run "wsync serve" and drive uploads, transcription and playback over HTTP.`,
	SilenceUsage:     true,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(key.Cmd)
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(play.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $WSYNC_CONFIG or ./wsync.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "V", false, "verbose output")
}
