package main

import "whisper-sync/cmd/wsync/cmd"

// @title whisper-sync API
// @version 1.0
// @description Transcribe an audio file and follow the transcript while it plays.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	cmd.Execute()
}
