package transcribe

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"whisper-sync/cmd/wsync/cmd/cliutil"
	"whisper-sync/internal/app/audio"
	"whisper-sync/internal/app/transcript"
)

var (
	output     string
	excelPath  string
	timestamps bool
)

func init() {
	Cmd.Flags().StringVarP(&output, "out", "o", "",
		"write the transcript to this file, or to transcription.txt inside this directory")
	Cmd.Flags().StringVar(&excelPath, "xlsx", "", "also export the segments to an Excel workbook")
	Cmd.Flags().BoolVarP(&timestamps, "timestamps", "t", false, "prefix each printed segment with its start time")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe <audio-file>",
	Short: "Transcribe an audio file with the stored API key",
	Long: `Transcribe an audio file with the stored API key.

- Files above the upload limit are refused before anything is sent
- The transcript is printed unless --out is given`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cleanup, err := cliutil.Bootstrap(cmd, cliutil.FileMedia)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := cmd.Context()
		src, err := audio.NewSourceFromFile(args[0])
		if err != nil {
			return err
		}
		if !src.IsAudio() {
			a.Logger.Warn("file does not look like audio", zap.String("mime_type", src.MIMEType))
		}
		if _, err := a.Session.SelectAudio(ctx, src); err != nil {
			return cliutil.UserError(err)
		}

		result, err := a.Session.Transcribe(ctx)
		if err != nil {
			a.Logger.Debug("transcription failed", zap.Error(err))
			return cliutil.UserError(err)
		}

		text := transcript.PlainText(result)
		if timestamps {
			text = transcript.WithTimestamps(result)
		}

		if output == "" {
			fmt.Fprintln(cmd.OutOrStdout(), text)
		} else {
			path, err := transcript.SaveText(output, result)
			if err != nil {
				return err
			}
			a.Logger.Info("transcript saved", zap.String("path", path))
		}

		if excelPath != "" {
			if err := transcript.ToExcel(result, excelPath); err != nil {
				return err
			}
			a.Logger.Info("segments exported", zap.String("path", excelPath))
		}
		return nil
	},
}
