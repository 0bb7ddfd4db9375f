package service

import "pawstay/shared/observer"

// CloseOnLogout drops pending replies when the session ends.
func CloseOnLogout(hub observer.Hub, svc Chat) (unsubscribe func()) {
	return hub.Subscribe(func(change observer.Change) {
		if change.Collection == observer.CollectionSession && change.Action == observer.ActionDeleted {
			svc.Close()
		}
	})
}
