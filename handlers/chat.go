package handlers

import (
	"context"
	"net/http"
	"strings"

	"laohotel/models"
	"laohotel/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatService is what the chat endpoints need from the orchestrator.
type ChatService interface {
	Ask(ctx context.Context, text, sessionID string) models.Answer
	ClearSession(sessionID string) bool
}

type ChatHandler struct {
	svc ChatService
}

func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// AskHandler runs one conversation turn.
func (h *ChatHandler) AskHandler(c *gin.Context) {
	var req models.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		utils.JSONError(c, http.StatusBadRequest, "Query text cannot be empty.", "")
		return
	}

	ans := h.svc.Ask(c.Request.Context(), req.Text, req.SessionID)
	utils.LoggerFrom(c).Info("Answered turn",
		zap.String("session_id", ans.SessionID),
		zap.String("source", ans.Source),
	)
	c.JSON(http.StatusOK, ans)
}

// ClearSessionHandler forgets any booking in progress for a session.
func (h *ChatHandler) ClearSessionHandler(c *gin.Context) {
	var req models.ClearSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if req.SessionID == "" {
		utils.JSONError(c, http.StatusBadRequest, "session_id is required.", "")
		return
	}
	if !h.svc.ClearSession(req.SessionID) {
		utils.JSONError(c, http.StatusNotFound, "Session ID not found in short-term memory.", "")
		return
	}
	c.JSON(http.StatusOK, models.StandardResponse{
		Message:   "Short-term memory and state cleared.",
		SessionID: req.SessionID,
	})
}
