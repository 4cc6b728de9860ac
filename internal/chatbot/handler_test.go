package chatbot

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestChatEndpoint_AlwaysOK(t *testing.T) {
	g := gin.New()
	fc := &fakeCompleter{
		failWith: map[string]error{
			"m1": &APIError{StatusCode: 404, Message: "unknown model"},
		},
	}
	NewHandler(newChatService(fc, []string{"m1"}, true)).Register(g)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chatbot", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)

	// the chain is exhausted but the UI still gets a 200 with a marker
	require.Equal(t, http.StatusOK, w.Code)
	var r Reply
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
	require.NotEmpty(t, r.Err)
	require.NotEmpty(t, r.Response)
	require.NotEmpty(t, r.QuickReplies)
}

func TestChatEndpoint_RequiresMessage(t *testing.T) {
	g := gin.New()
	NewHandler(newChatService(&fakeCompleter{reply: "ok"}, []string{"m1"}, true)).Register(g)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chatbot", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatEndpoint_Success(t *testing.T) {
	g := gin.New()
	NewHandler(newChatService(&fakeCompleter{reply: "I mostly work with Go."}, []string{"m1"}, true)).Register(g)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chatbot", strings.NewReader(`{"message":"what languages do you use?","conversationHistory":[{"role":"user","content":"hi"},{"role":"bot","content":"hello"}]}`))
	req.Header.Set("Content-Type", "application/json")
	g.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var r Reply
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
	require.Empty(t, r.Err)
	require.Equal(t, "m1", r.Model)
	require.Equal(t, "I mostly work with Go.", r.Response)
	require.NotEmpty(t, r.ConversationID)
	require.NotEmpty(t, r.Timestamp)
}
