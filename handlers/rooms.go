package handlers

import (
	"net/http"

	roomRepo "laohotel/database/repository/room"
	"laohotel/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RoomHandler struct {
	rooms roomRepo.RoomRepository
}

func NewRoomHandler(rooms roomRepo.RoomRepository) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

// ListRoomsHandler returns every room ordered by number.
func (h *RoomHandler) ListRoomsHandler(c *gin.Context) {
	rooms, err := h.rooms.ListAll(c.Request.Context())
	if err != nil {
		utils.LoggerFrom(c).Error("Failed to list rooms", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list rooms", "")
		return
	}
	c.JSON(http.StatusOK, rooms)
}
