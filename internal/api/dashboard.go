package api

import (
	"net/http"
	"net/url"

	"quickreach/internal/store"
	"quickreach/internal/whatsapp"
	"quickreach/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const notFoundNotice = "Contact or Quick Reply not found!"

type DashboardHandler struct {
	Linker *whatsapp.Linker
	Hub    *ws.Hub
	Log    *zap.SugaredLogger
}

func NewDashboardHandler(linker *whatsapp.Linker, hub *ws.Hub, log *zap.SugaredLogger) *DashboardHandler {
	return &DashboardHandler{Linker: linker, Hub: hub, Log: log}
}

func (h *DashboardHandler) Dashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard.html", gin.H{"Notice": c.Query("notice")})
}

func (h *DashboardHandler) QuickRepliesPage(c *gin.Context) {
	c.HTML(http.StatusOK, "quickreplies.html", gin.H{"Title": "Manage Quick Replies"})
}

// SendMessage marks the contact as messaged and redirects the browser to the WhatsApp deep link.
// Unknown ids send the operator back to the dashboard with a notice.
func (h *DashboardHandler) SendMessage(c *gin.Context) {
	contactID, okContact := paramID(c, "contactId")
	quickReplyID, okReply := paramID(c, "templateId")
	if !okContact || !okReply {
		h.redirectWithNotice(c, notFoundNotice)
		return
	}

	link, contact, err := h.Linker.BuildSendLink(contactID, quickReplyID)
	if errors.Is(err, store.ErrNotFound) {
		h.Log.Infow("send link target missing", "contact_id", contactID, "quick_reply_id", quickReplyID)
		h.redirectWithNotice(c, notFoundNotice)
		return
	}
	if err != nil {
		writeError(c, h.Log, http.StatusInternalServerError, err.Error())
		return
	}

	h.Log.Infow("send link built", "contact_id", contact.ID, "quick_reply_id", quickReplyID)
	h.Hub.NotifyContact(contact)
	c.Redirect(http.StatusFound, link)
}

func (h *DashboardHandler) redirectWithNotice(c *gin.Context, notice string) {
	c.Redirect(http.StatusFound, "/?"+url.Values{"notice": {notice}}.Encode())
}
