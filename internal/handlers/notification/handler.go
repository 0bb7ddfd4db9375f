package notification

import (
	"net/http"
	"pawstay/infras/otel"
	"pawstay/internal/domains/notification/model"
	"pawstay/internal/domains/notification/model/dto"
	"pawstay/internal/domains/notification/service"
	"pawstay/shared/constant"
	"pawstay/shared/validator"
	"pawstay/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Notification
	otel    otel.Otel
}

func New(service service.Notification, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/notifications", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetNotifications)
		routerGroup.Post("/", handler.AddNotification)
		routerGroup.Delete("/", handler.ClearNotifications)
		routerGroup.Post("/read", handler.MarkAllAsRead)
		routerGroup.Post("/{id}/read", handler.MarkAsRead)
		routerGroup.Delete("/{id}", handler.DeleteNotification)
	})
}

// GetNotifications lists notifications, newest first.
// @Summary Get notifications
// @Tags Notification
// @Produce json
// @Param type query string false "Filter by type"
// @Success 200 {object} response.Data[dto.GetNotificationsResponse] "Notifications and unread count"
// @Router /v1/notifications [get]
func (handler *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetNotifications")
	defer scope.End()

	var notifications []model.AppNotification

	if notificationType := r.URL.Query().Get("type"); notificationType != "" {
		notifications = handler.service.ByType(ctx, model.Type(notificationType))
	} else {
		notifications = handler.service.GetAll(ctx)
	}

	response.WithJSON(w, http.StatusOK, dto.GetNotificationsResponse{
		Notifications: notifications,
		UnreadCount:   handler.service.UnreadCount(ctx),
	})
}

// AddNotification posts a local notification such as a reminder.
// @Summary Add notification
// @Tags Notification
// @Accept json
// @Produce json
// @Param request body dto.CreateNotificationRequest true "Notification"
// @Success 201 {object} response.Data[model.AppNotification] "Created notification"
// @Failure 400 {object} response.Error
// @Router /v1/notifications [post]
func (handler *Handler) AddNotification(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddNotification")
	defer scope.End()

	req := dto.CreateNotificationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, handler.service.Add(ctx, req))
}

// MarkAsRead marks one notification read.
// @Summary Mark notification read
// @Tags Notification
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Message "Notification marked as read"
// @Failure 404 {object} response.Error
// @Router /v1/notifications/{id}/read [post]
func (handler *Handler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkAsRead")
	defer scope.End()

	if err := handler.service.MarkAsRead(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Notification marked as read")
}

// MarkAllAsRead
// @Summary Mark all notifications read
// @Tags Notification
// @Produce json
// @Success 200 {object} response.Message "All notifications marked as read"
// @Router /v1/notifications/read [post]
func (handler *Handler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkAllAsRead")
	defer scope.End()

	handler.service.MarkAllAsRead(ctx)

	response.WithMessage(w, http.StatusOK, "All notifications marked as read")
}

// DeleteNotification
// @Summary Delete notification
// @Tags Notification
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Message "Notification deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/notifications/{id} [delete]
func (handler *Handler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteNotification")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Notification deleted successfully")
}

// ClearNotifications
// @Summary Clear all notifications
// @Tags Notification
// @Produce json
// @Success 200 {object} response.Message "Notifications cleared"
// @Router /v1/notifications [delete]
func (handler *Handler) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ClearNotifications")
	defer scope.End()

	handler.service.ClearAll(ctx)

	response.WithMessage(w, http.StatusOK, "Notifications cleared")
}
