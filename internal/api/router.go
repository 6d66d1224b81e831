package api

import (
	"net/http"
	"time"

	"quickreach/internal/store"
	"quickreach/internal/web"
	"quickreach/internal/whatsapp"
	"quickreach/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

type Deps struct {
	State  *store.State
	Linker *whatsapp.Linker
	Hub    *ws.Hub
	Log    *zap.SugaredLogger
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(d.Log), cors())
	r.SetHTMLTemplate(web.Templates())
	r.StaticFS("/static", http.FS(web.Static()))

	dashboardHandler := NewDashboardHandler(d.Linker, d.Hub, d.Log)
	contactHandler := NewContactHandler(d.State, d.Hub, d.Log)
	quickReplyHandler := NewQuickReplyHandler(d.State.QuickReplies, d.Hub, d.Log)

	// Pages
	r.GET("/", dashboardHandler.Dashboard)
	r.GET("/quickreplies", dashboardHandler.QuickRepliesPage)
	r.GET("/send/:contactId/:templateId", dashboardHandler.SendMessage)
	r.GET("/ws", func(c *gin.Context) {
		d.Hub.ServeWs(c.Writer, c.Request)
	})

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/contacts", contactHandler.GetContacts)
		apiGroup.POST("/contacts", contactHandler.ImportContacts)

		apiGroup.GET("/quickreplies", quickReplyHandler.GetQuickReplies)
		apiGroup.POST("/quickreplies", quickReplyHandler.CreateQuickReply)
		apiGroup.PUT("/quickreplies/:id", quickReplyHandler.UpdateQuickReply)
		apiGroup.DELETE("/quickreplies/:id", quickReplyHandler.DeleteQuickReply)
	}

	return r
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func requestLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		c.Next()

		log.Infow("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", requestID,
		)
	}
}
