package play

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"whisper-sync/cmd/wsync/cmd/cliutil"
	"whisper-sync/internal/app/audio"
	"whisper-sync/internal/app/player"
	"whisper-sync/internal/app/progress"
)

var (
	skipTranscription bool
	forceProgress     bool
)

func init() {
	Cmd.Flags().BoolVar(&skipTranscription, "no-transcribe", false, "play without fetching a transcript")
	Cmd.Flags().BoolVar(&forceProgress, "progress", false, "draw the progress bar even when not attached to a terminal")
}

// Cmd represents the play command
var Cmd = &cobra.Command{
	Use:   "play <audio-file>",
	Short: "Follow the transcript of an audio file in real time",
	Long: `Follow the transcript of an audio file in real time.

- The file is transcribed first (unless --no-transcribe)
- Playback runs on a wall clock; nothing is decoded or sent to a sound card
- Each segment is printed as playback reaches it. Ctrl-C stops.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, cleanup, err := cliutil.Bootstrap(cmd, cliutil.FileMedia)
		if err != nil {
			return err
		}
		defer cleanup()

		src, err := audio.NewSourceFromFile(args[0])
		if err != nil {
			return err
		}
		if _, err := a.Session.SelectAudio(ctx, src); err != nil {
			return cliutil.UserError(err)
		}

		if !skipTranscription {
			if _, err := a.Session.Transcribe(ctx); err != nil {
				a.Logger.Debug("transcription failed", zap.Error(err))
				return cliutil.UserError(err)
			}
		}

		synchronizer := a.Session.Player()
		manager := progress.NewManager(progress.Config{
			Enabled: progress.ShouldShowProgress(forceProgress),
			Writer:  cmd.ErrOrStderr(),
		})
		bar := manager.PlaybackBar(src.Name)

		done := make(chan struct{})
		var (
			mu         sync.Mutex
			started    bool
			lastActive = -1
			closed     bool
		)
		segments := synchronizer.Segments()
		unsubscribe := synchronizer.OnChange(func(st player.State) {
			caption := ""
			if st.ActiveIndex >= 0 && st.ActiveIndex < len(segments) {
				caption = segments[st.ActiveIndex].Text
			}
			bar.Update(st, caption)

			mu.Lock()
			defer mu.Unlock()
			if st.ActiveIndex != lastActive && st.ActiveIndex >= 0 && caption != "" {
				lastActive = st.ActiveIndex
				if !progress.ShouldShowProgress(forceProgress) {
					fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", player.FormatTime(st.CurrentTime), caption)
				}
			}
			if st.Playing {
				started = true
			} else if started && !closed {
				closed = true
				close(done)
			}
		})
		defer unsubscribe()

		if err := synchronizer.TogglePlay(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			if synchronizer.State().Playing {
				_ = synchronizer.TogglePlay()
			}
		case <-done:
		}
		bar.Complete()
		manager.Wait()
		return nil
	},
}
