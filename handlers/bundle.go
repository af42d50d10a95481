package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Chat endpoints
	AskHandler          gin.HandlerFunc
	ClearSessionHandler gin.HandlerFunc

	// Room endpoints
	ListRoomsHandler gin.HandlerFunc

	// History endpoints
	SessionHistoryHandler gin.HandlerFunc
	FirstMessagesHandler  gin.HandlerFunc
	AllContentHandler     gin.HandlerFunc

	// Optional; routes fall back to a static health reply and no /metrics.
	HealthHandler  gin.HandlerFunc
	MetricsHandler gin.HandlerFunc
}
