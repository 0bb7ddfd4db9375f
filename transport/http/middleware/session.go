package middleware

import (
	"context"
	"net/http"
	"pawstay/infras/otel"
	userService "pawstay/internal/domains/user/service"
	"pawstay/shared/constant"
	"pawstay/shared/failure"
	"pawstay/transport/http/response"
)

// Session puts the signed-in local user into the request context.
type Session interface {
	Attach(next http.Handler) http.Handler
	Require(next http.Handler) http.Handler
}

type sessionImpl struct {
	user userService.User
	otel otel.Otel
}

func NewSessionMiddleware(user userService.User, otel otel.Otel) Session {
	return &sessionImpl{
		user: user,
		otel: otel,
	}
}

// Attach never rejects; requests without a session simply carry no user id.
func (m *sessionImpl) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()

		current, err := m.user.CurrentUser(ctx)
		if err == nil {
			ctx = context.WithValue(ctx, constant.ContextKeyUserID, current.ID)
			ctx = context.WithValue(ctx, constant.ContextKeyUserName, current.Name)
		}

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func (m *sessionImpl) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "session.middleware")

		if id, _ := request.Context().Value(constant.ContextKeyUserID).(string); id == "" {
			scope.TraceError(failure.NotAuthenticated)
			scope.End()

			response.WithError(writer, failure.NotAuthenticated)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}
