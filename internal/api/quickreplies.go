package api

import (
	"io"
	"net/http"

	"quickreach/internal/models"
	"quickreach/internal/store"
	"quickreach/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type QuickReplyHandler struct {
	Store store.QuickReplyStore
	Hub   *ws.Hub
	Log   *zap.SugaredLogger
}

func NewQuickReplyHandler(s store.QuickReplyStore, hub *ws.Hub, log *zap.SugaredLogger) *QuickReplyHandler {
	return &QuickReplyHandler{Store: s, Hub: hub, Log: log}
}

// GetQuickReplies returns all quick replies
func (h *QuickReplyHandler) GetQuickReplies(c *gin.Context) {
	replies, err := h.Store.List()
	if err != nil {
		writeError(c, h.Log, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, replies)
}

// CreateQuickReply creates a new quick reply
func (h *QuickReplyHandler) CreateQuickReply(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
		Text string `json:"text" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.Log, http.StatusBadRequest, "Missing data")
		return
	}

	qr, err := h.Store.Create(req.Name, req.Text)
	if err != nil {
		h.writeStoreError(c, err)
		return
	}

	h.Hub.NotifyQuickReply(ws.EventQuickReplyCreated, qr)
	c.JSON(http.StatusOK, qr)
}

// UpdateQuickReply changes only the fields present in the body
func (h *QuickReplyHandler) UpdateQuickReply(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		writeError(c, h.Log, http.StatusBadRequest, "Invalid quick reply id")
		return
	}

	var patch models.QuickReplyPatch
	if err := c.ShouldBindJSON(&patch); err != nil && !errors.Is(err, io.EOF) {
		writeError(c, h.Log, http.StatusBadRequest, err.Error())
		return
	}

	qr, err := h.Store.Update(id, patch)
	if err != nil {
		h.writeStoreError(c, err)
		return
	}

	h.Hub.NotifyQuickReply(ws.EventQuickReplyUpdated, qr)
	c.JSON(http.StatusOK, qr)
}

// DeleteQuickReply removes a quick reply; deleting an unknown id still succeeds
func (h *QuickReplyHandler) DeleteQuickReply(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		writeError(c, h.Log, http.StatusBadRequest, "Invalid quick reply id")
		return
	}

	if err := h.Store.Delete(id); err != nil {
		writeError(c, h.Log, http.StatusInternalServerError, err.Error())
		return
	}

	h.Hub.NotifyQuickReply(ws.EventQuickReplyDeleted, models.QuickReply{ID: id})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *QuickReplyHandler) writeStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(c, h.Log, http.StatusNotFound, "Quick Reply not found")
	case errors.Is(err, store.ErrValidation):
		writeError(c, h.Log, http.StatusBadRequest, err.Error())
	default:
		writeError(c, h.Log, http.StatusInternalServerError, err.Error())
	}
}
