package dto

import (
	"pawstay/internal/domains/notification/model"
	"pawstay/shared/timezone"

	"github.com/google/uuid"
)

type CreateNotificationRequest struct {
	Title string `json:"title" validate:"required,max=100"`
	Body  string `json:"body"  validate:"required,max=500"`
	Type  string `json:"type"  validate:"required,oneof=booking reminder update promotion achievement community"`
}

func (c *CreateNotificationRequest) ToModel() model.AppNotification {
	return model.AppNotification{
		ID:        uuid.NewString(),
		Title:     c.Title,
		Body:      c.Body,
		Type:      model.Type(c.Type),
		Timestamp: timezone.Now(),
	}
}

type GetNotificationsResponse struct {
	Notifications []model.AppNotification `json:"notifications"`
	UnreadCount   int                     `json:"unreadCount"`
}
