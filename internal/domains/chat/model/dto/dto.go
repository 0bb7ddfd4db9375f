package dto

import "pawstay/internal/domains/chat/model"

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

type ReceiveMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
	Sender  string `json:"sender"  validate:"required,oneof=admin system"`
	Type    string `json:"type"    validate:"omitempty,oneof=text image bookingUpdate systemNotice"`
}

type ConversationResponse struct {
	model.Conversation
	AwaitingReply bool `json:"awaitingReply"`
	TotalUnread   int  `json:"totalUnread"`
}
