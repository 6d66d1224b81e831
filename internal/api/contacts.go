package api

import (
	"fmt"
	"net/http"

	"quickreach/internal/numbers"
	"quickreach/internal/store"
	"quickreach/internal/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ContactHandler struct {
	State *store.State
	Hub   *ws.Hub
	Log   *zap.SugaredLogger
}

func NewContactHandler(state *store.State, hub *ws.Hub, log *zap.SugaredLogger) *ContactHandler {
	return &ContactHandler{State: state, Hub: hub, Log: log}
}

// GetContacts returns every contact together with the quick replies the dashboard offers for them
func (h *ContactHandler) GetContacts(c *gin.Context) {
	contacts, err := h.State.Contacts.List()
	if err != nil {
		writeError(c, h.Log, http.StatusInternalServerError, err.Error())
		return
	}
	replies, err := h.State.QuickReplies.List()
	if err != nil {
		writeError(c, h.Log, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"contacts": contacts, "quickreplies": replies})
}

type ImportContactsRequest struct {
	Numbers string `json:"numbers" binding:"required"`
}

// ImportContacts adds the numbers pasted by the operator. Rejected numbers are only reflected in the count.
func (h *ContactHandler) ImportContacts(c *gin.Context) {
	var req ImportContactsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.Log, http.StatusBadRequest, "No numbers provided, please use proper format.")
		return
	}

	candidates := numbers.Parse(req.Numbers)
	added, err := h.State.Contacts.BulkAdd(candidates)
	if err != nil {
		writeError(c, h.Log, http.StatusInternalServerError, err.Error())
		return
	}

	h.Log.Infow("contacts imported", "candidates", len(candidates), "added", added)
	if added > 0 {
		h.Hub.NotifyImported(added)
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Added %d new contact(s).", added)})
}
