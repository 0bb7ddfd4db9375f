package model

import "time"

const (
	EntityName = "notification"

	StoreKeyNotifications = "app_notifications"
)

type Type string

const (
	TypeBooking     Type = "booking"
	TypeReminder    Type = "reminder"
	TypeUpdate      Type = "update"
	TypePromotion   Type = "promotion"
	TypeAchievement Type = "achievement"
	TypeCommunity   Type = "community"
)

type AppNotification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	IsRead    bool      `json:"isRead"`
}
