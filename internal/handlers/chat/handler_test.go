package chat_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawstay/config"
	"pawstay/infras/otel/mocks"
	"pawstay/internal/domains/chat/model"
	"pawstay/internal/domains/chat/service"
	"pawstay/internal/handlers/chat"
	"pawstay/shared/observer"
	"pawstay/shared/scheduler"
	"pawstay/shared/store"
	"pawstay/transport/http/response"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.Store.Prefix = "pawstay"
	cfg.App.Chat.ReplyDelayMillis = 1500
	cfg.App.Chat.ReplyJitterMillis = 1000
	cfg.App.Chat.GreetingDelayMillis = 500

	st := store.New(cfg, store.NewMemoryDriver(), mocks.NewOtel())
	svc := service.New(cfg, st, scheduler.NewManual(), observer.New(), mocks.NewOtel())

	require.NoError(t, svc.Load(context.Background()))
	t.Cleanup(svc.Close)

	handler := chat.New(svc, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return router
}

func do(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_SendMessage(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "question", body: `{"content":"What does a stay cost?"}`, wantStatus: http.StatusCreated},
		{name: "missing content", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "blank content", body: `{"content":"   "}`, wantStatus: http.StatusBadRequest},
		{name: "malformed body", body: `{"content":`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newRouter(t), http.MethodPost, "/chat/messages", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_ReceiveMessageRejectsUnknownSender(t *testing.T) {
	rec := do(t, newRouter(t), http.MethodPost, "/chat/messages/incoming", `{"content":"hi","sender":"user"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_GetConversations(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, http.MethodPost, "/chat/messages", `{"content":"hello"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, router, http.MethodGet, "/chat/conversations", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res response.Data[[]model.Conversation]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotNil(t, res.Data)
	require.Len(t, *res.Data, 1)

	conversation := (*res.Data)[0]
	assert.Equal(t, model.SupportConversationID, conversation.ID)
	require.Len(t, conversation.Messages, 2)
	assert.Equal(t, "hello", conversation.Messages[1].Content)
}
