package service

import (
	"context"
	"math/rand/v2"
	"pawstay/config"
	"pawstay/infras/otel"
	"pawstay/internal/domains/chat/model"
	"pawstay/internal/domains/chat/model/dto"
	"pawstay/shared"
	"pawstay/shared/constant"
	"pawstay/shared/failure"
	"pawstay/shared/logger"
	"pawstay/shared/observer"
	"pawstay/shared/scheduler"
	"pawstay/shared/store"
	"pawstay/shared/timezone"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const managerName = "chat"

type Chat interface {
	Load(ctx context.Context) error
	Save(ctx context.Context) error
	Current(ctx context.Context) dto.ConversationResponse
	Conversations(ctx context.Context) []model.Conversation
	SendMessage(ctx context.Context, req dto.SendMessageRequest) (model.ChatMessage, error)
	ReceiveMessage(ctx context.Context, req dto.ReceiveMessageRequest) model.ChatMessage
	MarkAsRead(ctx context.Context, conversationID string) error
	TotalUnread(ctx context.Context) int
	ClearChat(ctx context.Context)
	Close()
}

type serviceImpl struct {
	mu            sync.Mutex
	conversations []model.Conversation
	// generation changes on every clear; deferred callbacks from an older generation are dropped.
	generation    int
	pending       map[int]func()
	nextPending   int
	replyDelay    time.Duration
	replyJitter   time.Duration
	greetingDelay time.Duration
	deferrer      scheduler.Deferrer
	store         store.Store
	hub           observer.Hub
	otel          otel.Otel
}

func New(cfg *config.Config, st store.Store, deferrer scheduler.Deferrer, hub observer.Hub, otel otel.Otel) Chat {
	return &serviceImpl{
		conversations: []model.Conversation{newSupportConversation()},
		pending:       make(map[int]func()),
		replyDelay:    time.Duration(cfg.App.Chat.ReplyDelayMillis) * time.Millisecond,
		replyJitter:   time.Duration(cfg.App.Chat.ReplyJitterMillis) * time.Millisecond,
		greetingDelay: time.Duration(cfg.App.Chat.GreetingDelayMillis) * time.Millisecond,
		deferrer:      deferrer,
		store:         st,
		hub:           hub,
		otel:          otel,
	}
}

func newSupportConversation() model.Conversation {
	now := timezone.Now()

	return model.Conversation{
		ID:    model.SupportConversationID,
		Title: model.SupportConversationTitle,
		Messages: []model.ChatMessage{
			{
				ID:        uuid.NewString(),
				Content:   model.Greeting,
				Sender:    model.SenderAdmin,
				Timestamp: now,
				IsRead:    true,
				Type:      model.MessageTypeText,
			},
		},
		LastActivity: now,
	}
}

func (s *serviceImpl) Load(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Chat.Load")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	conversations, ok, err := store.Load[[]model.Conversation](ctx, s.store, model.StoreKeyConversations)
	if ok && len(conversations) > 0 {
		for i := range conversations {
			conversations[i].Recount()
		}

		s.conversations = conversations
	}

	log.Info().Int("conversations", len(s.conversations)).Msg("conversations loaded")

	return err
}

func (s *serviceImpl) Save(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Chat.Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persist(ctx)
}

func (s *serviceImpl) Current(ctx context.Context) dto.ConversationResponse {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Chat.Current")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	current := *s.current()
	current.Messages = shared.Clone(current.Messages)

	return dto.ConversationResponse{
		Conversation:  current,
		AwaitingReply: len(s.pending) > 0,
		TotalUnread:   s.totalUnread(),
	}
}

func (s *serviceImpl) Conversations(ctx context.Context) []model.Conversation {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Chat.Conversations")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]model.Conversation, len(s.conversations))
	for i, c := range s.conversations {
		res[i] = c
		res[i].Messages = shared.Clone(c.Messages)
	}

	return res
}

// SendMessage appends a read user message and schedules the support reply.
func (s *serviceImpl) SendMessage(ctx context.Context, req dto.SendMessageRequest) (res model.ChatMessage, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Chat.SendMessage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return res, failure.BadRequestFromString("message content is empty") //nolint:wrapcheck
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res = newMessage(content, model.SenderUser, model.MessageTypeText, true)
	s.current().Append(res)
	s.commit(ctx, res.ID)

	s.schedule(s.replyDelay+s.jitter(), func() {
		s.deliver(newMessage(reply(content), model.SenderAdmin, model.MessageTypeText, false))
	})

	return res, nil
}

// ReceiveMessage appends an unread admin or system message right away.
func (s *serviceImpl) ReceiveMessage(ctx context.Context, req dto.ReceiveMessageRequest) model.ChatMessage {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Chat.ReceiveMessage")
	defer scope.End()

	messageType := model.MessageType(req.Type)
	if messageType == "" {
		messageType = model.MessageTypeText
	}

	message := newMessage(req.Content, model.Sender(req.Sender), messageType, false)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current().Append(message)
	s.commit(ctx, message.ID)

	return message
}

// MarkAsRead is idempotent.
func (s *serviceImpl) MarkAsRead(ctx context.Context, conversationID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Chat.MarkAsRead")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := shared.IndexOf(s.conversations, func(c model.Conversation) bool { return c.ID == conversationID })
	if idx < 0 {
		return failure.NotFound(model.EntityName) //nolint:wrapcheck
	}

	s.conversations[idx].MarkAllRead()
	s.commit(ctx, conversationID)

	return nil
}

func (s *serviceImpl) TotalUnread(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.totalUnread()
}

// ClearChat empties the current conversation, drops pending replies and greets again after a short delay.
func (s *serviceImpl) ClearChat(ctx context.Context) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Chat.ClearChat")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.cancelPending()

	current := s.current()
	current.Messages = []model.ChatMessage{}
	current.LastActivity = timezone.Now()
	current.Recount()

	logger.Persistence(managerName, model.StoreKeyConversations, s.persist(ctx))
	s.hub.Publish(observer.Change{Collection: observer.CollectionChat, Action: observer.ActionCleared, ID: current.ID})

	s.schedule(s.greetingDelay, func() {
		s.deliver(newMessage(model.Greeting, model.SenderAdmin, model.MessageTypeText, true))
	})
}

// Close drops every pending callback. Called when the session ends.
func (s *serviceImpl) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.cancelPending()
}

// schedule registers fn under the current generation. Callers hold s.mu.
func (s *serviceImpl) schedule(delay time.Duration, fn func()) {
	generation := s.generation
	id := s.nextPending
	s.nextPending++

	s.pending[id] = s.deferrer.After(delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if _, ok := s.pending[id]; !ok || generation != s.generation {
			log.Debug().Int("generation", generation).Msg("dropping stale chat callback")

			return
		}

		delete(s.pending, id)
		fn()
	})
}

func (s *serviceImpl) cancelPending() {
	for id, cancel := range s.pending {
		cancel()
		delete(s.pending, id)
	}
}

// deliver appends a message from a deferred callback. Callers hold s.mu.
func (s *serviceImpl) deliver(message model.ChatMessage) {
	ctx := context.Background()

	s.current().Append(message)
	s.commit(ctx, message.ID)
}

func (s *serviceImpl) commit(ctx context.Context, id string) {
	logger.Persistence(managerName, model.StoreKeyConversations, s.persist(ctx))

	s.hub.Publish(observer.Change{Collection: observer.CollectionChat, Action: observer.ActionUpdated, ID: id})
}

func (s *serviceImpl) current() *model.Conversation {
	if len(s.conversations) == 0 {
		s.conversations = []model.Conversation{newSupportConversation()}
	}

	return &s.conversations[0]
}

func (s *serviceImpl) totalUnread() int {
	total := 0

	for _, c := range s.conversations {
		total += c.UnreadCount
	}

	return total
}

func (s *serviceImpl) jitter() time.Duration {
	if s.replyJitter <= 0 {
		return 0
	}

	return rand.N(s.replyJitter)
}

func (s *serviceImpl) persist(ctx context.Context) error {
	return store.Persist(ctx, s.store, model.StoreKeyConversations, s.conversations)
}

func reply(content string) string {
	if text, ok := model.MatchReply(content); ok {
		return text
	}

	return model.FallbackReplies[rand.IntN(len(model.FallbackReplies))]
}

func newMessage(content string, sender model.Sender, messageType model.MessageType, read bool) model.ChatMessage {
	return model.ChatMessage{
		ID:        uuid.NewString(),
		Content:   content,
		Sender:    sender,
		Timestamp: timezone.Now(),
		IsRead:    read,
		Type:      messageType,
	}
}
