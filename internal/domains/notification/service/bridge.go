package service

import (
	"context"
	"pawstay/internal/domains/notification/model"
	"pawstay/internal/domains/notification/model/dto"
	"pawstay/shared/observer"
)

// Bridge turns changes published by other managers into user notifications.
// Managers never call this one directly.
func Bridge(hub observer.Hub, svc Notification) (unsubscribe func()) {
	return hub.Subscribe(func(change observer.Change) {
		req, ok := notificationFor(change)
		if !ok {
			return
		}

		svc.Add(context.Background(), req)
	})
}

func notificationFor(change observer.Change) (dto.CreateNotificationRequest, bool) {
	switch {
	case change.Collection == observer.CollectionBookings && change.Action == observer.ActionCreated:
		return dto.CreateNotificationRequest{
			Title: "Booking received",
			Body:  "We received your booking for " + change.Detail + ". We'll confirm it shortly.",
			Type:  string(model.TypeBooking),
		}, true
	case change.Collection == observer.CollectionBookings && change.Action == observer.ActionUpdated && change.Detail != "":
		return dto.CreateNotificationRequest{
			Title: "Booking updated",
			Body:  "Your booking is now " + change.Detail + ".",
			Type:  string(model.TypeBooking),
		}, true
	case change.Collection == observer.CollectionMatchRequests && change.Action == observer.ActionCreated:
		return dto.CreateNotificationRequest{
			Title: "New playdate request",
			Body:  change.Detail + " would like to meet your pet.",
			Type:  string(model.TypeCommunity),
		}, true
	case change.Collection == observer.CollectionPlaydates && change.Action == observer.ActionCreated:
		return dto.CreateNotificationRequest{
			Title: "Playdate scheduled",
			Body:  "Playdate set: " + change.Detail + ".",
			Type:  string(model.TypeCommunity),
		}, true
	case change.Collection == observer.CollectionSession && change.Action == observer.ActionUpdated && change.Detail != "":
		return dto.CreateNotificationRequest{
			Title: "Points earned",
			Body:  change.Detail,
			Type:  string(model.TypeAchievement),
		}, true
	}

	return dto.CreateNotificationRequest{}, false
}
