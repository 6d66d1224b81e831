package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"quickreach/internal/logger"
	"quickreach/internal/models"
	"quickreach/internal/store"
	"quickreach/internal/whatsapp"
	"quickreach/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	state  *store.State
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := logger.NewNop()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := ws.NewHub(log)
	go hub.Run(ctx)

	state := store.NewMemoryState()
	_, err := state.Contacts.BulkAdd([]string{"9024343890"})
	require.NoError(t, err)
	_, err = state.QuickReplies.Create("Hello", "Namaste 🙏\nHow are you?")
	require.NoError(t, err)

	builder := &whatsapp.Builder{Scheme: "whatsapp", CountryCode: "91"}
	router := NewRouter(Deps{
		State:  state,
		Linker: whatsapp.NewLinker(builder, state),
		Hub:    hub,
		Log:    log,
	})
	return &testServer{router: router, state: state}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestGetContacts(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/contacts", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Contacts     []models.Contact    `json:"contacts"`
		QuickReplies []models.QuickReply `json:"quickreplies"`
	}
	decode(t, w, &body)
	assert.Equal(t, []models.Contact{{ID: 1, Number: "9024343890", Status: models.StatusNew}}, body.Contacts)
	require.Len(t, body.QuickReplies, 1)
	assert.Equal(t, "Hello", body.QuickReplies[0].Name)
}

func TestImportContacts(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/contacts", `{"numbers": "9876543210,1234"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Added 1 new contact(s)."}`, w.Body.String())

	w = s.do(http.MethodPost, "/api/contacts", `{"numbers": "9876543210\n9024343890\n1112223334"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Added 1 new contact(s)."}`, w.Body.String())

	contacts, err := s.state.Contacts.List()
	require.NoError(t, err)
	assert.Len(t, contacts, 3)
}

func TestImportBareNumberAddsNothing(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/contacts", `{"numbers": "9876543210"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Added 0 new contact(s)."}`, w.Body.String())
}

func TestImportContactsRequiresNumbers(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{`{}`, `{"numbers": ""}`, `{"numbers": 42}`, `not json`} {
		w := s.do(http.MethodPost, "/api/contacts", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, w.Body.String(), "No numbers provided")
	}
}

func TestSendRedirectsToDeepLink(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/send/1/1", "")
	require.Equal(t, http.StatusFound, w.Code)

	u, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "whatsapp", u.Scheme)
	assert.Equal(t, "919024343890", u.Query().Get("phone"))
	assert.Equal(t, "Namaste 🙏\nHow are you?", u.Query().Get("text"))

	contact, err := s.state.Contacts.Get(1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusMessageSent, contact.Status)
}

func TestSendUnknownContactRedirectsToDashboard(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/send/999/1", "/send/1/999", "/send/abc/1"} {
		w := s.do(http.MethodGet, path, "")
		require.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/?notice=Contact+or+Quick+Reply+not+found%21", w.Header().Get("Location"))
	}

	contacts, err := s.state.Contacts.List()
	require.NoError(t, err)
	assert.Equal(t, []models.Contact{{ID: 1, Number: "9024343890", Status: models.StatusNew}}, contacts)
}

func TestDashboardRendersNotice(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/?notice=Contact+or+Quick+Reply+not+found%21", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Contact or Quick Reply not found!")

	w = s.do(http.MethodGet, "/quickreplies", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Manage Quick Replies")

	w = s.do(http.MethodGet, "/static/app.js", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateQuickReply(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/quickreplies", `{"name":"Hi","text":"Hello"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var qr models.QuickReply
	decode(t, w, &qr)
	assert.Equal(t, models.QuickReply{ID: 2, Name: "Hi", Text: "Hello"}, qr)

	w = s.do(http.MethodGet, "/api/quickreplies", "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.QuickReply
	decode(t, w, &all)
	assert.Len(t, all, 2)
}

func TestCreateQuickReplyMissingFields(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{`{"name":"Hi"}`, `{"text":"Hello"}`, `{"name":"","text":"Hello"}`, ``} {
		w := s.do(http.MethodPost, "/api/quickreplies", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestUpdateQuickReply(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPut, "/api/quickreplies/1", `{"name":"Greeting"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var qr models.QuickReply
	decode(t, w, &qr)
	assert.Equal(t, "Greeting", qr.Name)
	assert.Equal(t, "Namaste 🙏\nHow are you?", qr.Text)

	w = s.do(http.MethodPut, "/api/quickreplies/1", `{"text":"Hi there"}`)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &qr)
	assert.Equal(t, models.QuickReply{ID: 1, Name: "Greeting", Text: "Hi there"}, qr)
}

func TestUpdateQuickReplyErrors(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPut, "/api/quickreplies/99", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Quick Reply not found"}`, w.Body.String())

	w = s.do(http.MethodPut, "/api/quickreplies/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	for _, body := range []string{"", `{}`, `null`, `{"unknown":"x"}`} {
		w = s.do(http.MethodPut, "/api/quickreplies/1", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}

	w = s.do(http.MethodPut, "/api/quickreplies/1", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/quickreplies/abc", `{"name":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteQuickReplyIsIdempotent(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/quickreplies/1", "/api/quickreplies/1", "/api/quickreplies/999"} {
		w := s.do(http.MethodDelete, path, "")
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, `{"success":true}`, w.Body.String())
	}

	w := s.do(http.MethodGet, "/send/1/1", "")
	require.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/?notice="))
}

func TestRequestIDAndCORS(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/quickreplies", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = s.do(http.MethodGet, "/api/quickreplies", "")
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	w = s.do(http.MethodOptions, "/api/quickreplies", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}
