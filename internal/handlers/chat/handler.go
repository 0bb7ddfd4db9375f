package chat

import (
	"net/http"
	"pawstay/infras/otel"
	"pawstay/internal/domains/chat/model"
	"pawstay/internal/domains/chat/model/dto"
	"pawstay/internal/domains/chat/service"
	"pawstay/shared/constant"
	"pawstay/shared/validator"
	"pawstay/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Chat
	otel    otel.Otel
}

func New(service service.Chat, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/chat", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetConversation)
		routerGroup.Get("/conversations", handler.GetConversations)
		routerGroup.Delete("/", handler.ClearChat)
		routerGroup.Post("/messages", handler.SendMessage)
		routerGroup.Post("/messages/incoming", handler.ReceiveMessage)
		routerGroup.Post("/read", handler.MarkAsRead)
	})
}

// GetConversation returns the support conversation.
// @Summary Get current conversation
// @Tags Chat
// @Produce json
// @Success 200 {object} response.Data[dto.ConversationResponse] "Conversation with unread totals"
// @Router /v1/chat [get]
func (handler *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetConversation")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.service.Current(ctx))
}

// GetConversations lists every stored conversation with its messages.
// @Summary List conversations
// @Tags Chat
// @Produce json
// @Success 200 {object} response.Data[[]model.Conversation] "Conversations"
// @Router /v1/chat/conversations [get]
func (handler *Handler) GetConversations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetConversations")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.service.Conversations(ctx))
}

// SendMessage posts a user message. Support answers a moment later.
// @Summary Send chat message
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body dto.SendMessageRequest true "Message"
// @Success 201 {object} response.Data[model.ChatMessage] "Sent message"
// @Failure 400 {object} response.Error
// @Router /v1/chat/messages [post]
func (handler *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SendMessage")
	defer scope.End()

	req := dto.SendMessageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	message, err := handler.service.SendMessage(ctx, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, message)
}

// ReceiveMessage pushes an admin or system message into the conversation.
// @Summary Push support message
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body dto.ReceiveMessageRequest true "Message"
// @Success 201 {object} response.Data[model.ChatMessage] "Stored message"
// @Failure 400 {object} response.Error
// @Router /v1/chat/messages/incoming [post]
func (handler *Handler) ReceiveMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReceiveMessage")
	defer scope.End()

	req := dto.ReceiveMessageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, handler.service.ReceiveMessage(ctx, req))
}

// MarkAsRead
// @Summary Mark conversation read
// @Tags Chat
// @Produce json
// @Success 200 {object} response.Message "Conversation marked as read"
// @Router /v1/chat/read [post]
func (handler *Handler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkChatAsRead")
	defer scope.End()

	if err := handler.service.MarkAsRead(ctx, model.SupportConversationID); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Conversation marked as read")
}

// ClearChat empties the conversation. A fresh greeting follows shortly.
// @Summary Clear chat
// @Tags Chat
// @Produce json
// @Success 200 {object} response.Message "Chat cleared"
// @Router /v1/chat [delete]
func (handler *Handler) ClearChat(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ClearChat")
	defer scope.End()

	handler.service.ClearChat(ctx)

	response.WithMessage(w, http.StatusOK, "Chat cleared")
}
