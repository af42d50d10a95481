package handlers

import (
	"net/http"

	chatRepo "laohotel/database/repository/chat"
	"laohotel/models"
	"laohotel/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HistoryHandler struct {
	history chatRepo.ChatRepository
}

func NewHistoryHandler(history chatRepo.ChatRepository) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// SessionHistoryHandler returns one session's messages, oldest first.
func (h *HistoryHandler) SessionHistoryHandler(c *gin.Context) {
	sessionID := c.Param("session_id")
	messages, err := h.history.History(c.Request.Context(), sessionID)
	if err != nil {
		utils.LoggerFrom(c).Error("Failed to read history", zap.String("session_id", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to read history", "")
		return
	}
	if len(messages) == 0 {
		utils.JSONError(c, http.StatusNotFound, "Session ID not found or history is empty.", "")
		return
	}

	entries := make([]models.HistoryEntry, 0, len(messages))
	for _, m := range messages {
		entries = append(entries, m.Entry())
	}
	c.JSON(http.StatusOK, entries)
}

// FirstMessagesHandler lists the opening user message of every session, newest first.
func (h *HistoryHandler) FirstMessagesHandler(c *gin.Context) {
	entries, err := h.history.FirstUserMessages(c.Request.Context())
	if err != nil {
		utils.LoggerFrom(c).Error("Failed to read first messages", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to read history", "")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// AllContentHandler returns every session's full history keyed by session id.
func (h *HistoryHandler) AllContentHandler(c *gin.Context) {
	sessions, err := h.history.AllHistory(c.Request.Context())
	if err != nil {
		utils.LoggerFrom(c).Error("Failed to read all history", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to read history", "")
		return
	}
	c.JSON(http.StatusOK, sessions)
}
