package routes

import (
	"net/http"
	"time"

	"laohotel/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes registers the conversation endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/ask/", hb.AskHandler)
	r.POST("/clear_session/", hb.ClearSessionHandler)
}

// RegisterRoomRoutes registers room inventory endpoints.
func RegisterRoomRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/rooms/", hb.ListRoomsHandler)
}

// RegisterHistoryRoutes registers chat history endpoints. The static paths win over the
// session id parameter.
func RegisterHistoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	history := r.Group("/history")
	{
		history.GET("/all", hb.FirstMessagesHandler)
		history.GET("/allContent", hb.AllContentHandler)
		history.GET("/:session_id", hb.SessionHistoryHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	if hb.HealthHandler != nil {
		r.GET("/health", hb.HealthHandler)
		return
	}
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "ສະບາຍດີ, Vang Vieng hotel assistant"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterChatRoutes(r, hb)
	RegisterRoomRoutes(r, hb)
	RegisterHistoryRoutes(r, hb)
	RegisterHealthRoute(r, hb)
	if hb.MetricsHandler != nil {
		r.GET("/metrics", hb.MetricsHandler)
	}
}
