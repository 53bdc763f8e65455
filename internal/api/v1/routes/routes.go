package routes

import (
	"github.com/gin-gonic/gin"

	"whisper-sync/internal/api/v1/handlers"
	"whisper-sync/internal/app/audio"
	"whisper-sync/internal/app/session"
)

// Dependencies holds everything the v1 handlers need
type Dependencies struct {
	Session *session.Session
	// Media serves in-memory uploads. Nil when another store hands out URLs.
	Media       *audio.MemoryStore
	MaxBytes    int64
	SkipSeconds float64
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, deps *Dependencies) {
	settingsHandler := handlers.NewSettingsHandler(deps.Session)
	settings := router.Group("/settings")
	{
		settings.GET("/credential", settingsHandler.GetCredential)
		settings.PUT("/credential", settingsHandler.SetCredential)
		settings.DELETE("/credential", settingsHandler.ClearCredential)
	}

	audioHandler := handlers.NewAudioHandler(deps.Session, deps.Media, deps.MaxBytes)
	router.POST("/audio", audioHandler.Select)
	router.GET("/audio", audioHandler.Current)
	router.GET("/media/:id", audioHandler.Media)

	transcriptionHandler := handlers.NewTranscriptionHandler(deps.Session)
	transcriptions := router.Group("/transcriptions")
	{
		transcriptions.POST("", transcriptionHandler.Create)
		transcriptions.GET("/state", transcriptionHandler.State)
		transcriptions.DELETE("", transcriptionHandler.Cancel)
	}
	transcript := router.Group("/transcript")
	{
		transcript.GET("", transcriptionHandler.Transcript)
		transcript.GET("/text", transcriptionHandler.Text)
		transcript.GET("/download", transcriptionHandler.Download)
		transcript.GET("/export", transcriptionHandler.Export)
	}

	playerHandler := handlers.NewPlayerHandler(deps.Session, deps.SkipSeconds)
	player := router.Group("/player")
	{
		player.GET("", playerHandler.State)
		player.POST("/toggle", playerHandler.Toggle)
		player.POST("/seek", playerHandler.Seek)
		player.POST("/skip", playerHandler.Skip)
		player.POST("/volume", playerHandler.Volume)
		player.POST("/mute", playerHandler.Mute)
		player.POST("/time", playerHandler.TimeUpdate)
		player.POST("/metadata", playerHandler.Metadata)
		player.POST("/segments/:index/select", playerHandler.SelectSegment)
	}
}
