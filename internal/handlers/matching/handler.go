package matching

import (
	"net/http"
	"pawstay/infras/otel"
	"pawstay/internal/domains/matching/model/dto"
	"pawstay/internal/domains/matching/service"
	"pawstay/shared/constant"
	"pawstay/shared/validator"
	"pawstay/transport/http/middleware"
	"pawstay/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Matching
	session middleware.Session
	otel    otel.Otel
}

func New(service service.Matching, session middleware.Session, otel otel.Otel) Handler {
	return Handler{
		service: service,
		session: session,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/matches", func(routerGroup chi.Router) {
		routerGroup.Use(handler.session.Require)

		routerGroup.Post("/", handler.SendRequest)
		routerGroup.Get("/pending", handler.GetPendingRequests)
		routerGroup.Get("/{id}", handler.GetRequestByID)
		routerGroup.Post("/{id}/respond", handler.RespondToRequest)
		routerGroup.Post("/{id}/playdates", handler.SchedulePlaydate)
	})

	router.Route("/playdates", func(routerGroup chi.Router) {
		routerGroup.Use(handler.session.Require)

		routerGroup.Get("/upcoming", handler.GetUpcomingPlaydates)
		routerGroup.Post("/{id}/complete", handler.CompletePlaydate)
	})
}

// SendRequest asks another owner for a playdate between two pets.
// @Summary Send match request
// @Tags Matching
// @Accept json
// @Produce json
// @Param request body dto.SendRequestRequest true "Match request"
// @Success 201 {object} response.Data[model.PetMatchRequest] "Created request"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/matches [post]
func (handler *Handler) SendRequest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SendRequest")
	defer scope.End()

	req := dto.SendRequestRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	req.RequesterOwnerID, _ = ctx.Value(constant.ContextKeyUserID).(string)
	req.RequesterOwnerName, _ = ctx.Value(constant.ContextKeyUserName).(string)

	response.WithJSON(w, http.StatusCreated, handler.service.SendRequest(ctx, req))
}

// GetPendingRequests lists requests waiting on the signed-in owner.
// @Summary Get pending match requests
// @Tags Matching
// @Produce json
// @Success 200 {object} response.Data[dto.GetRequestsResponse] "Pending requests"
// @Failure 401 {object} response.Error
// @Router /v1/matches/pending [get]
func (handler *Handler) GetPendingRequests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPendingRequests")
	defer scope.End()

	owner, _ := ctx.Value(constant.ContextKeyUserID).(string)

	response.WithJSON(w, http.StatusOK, dto.GetRequestsResponse{Requests: handler.service.PendingRequestsForUser(ctx, owner)})
}

// GetRequestByID
// @Summary Get match request
// @Tags Matching
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Data[model.PetMatchRequest] "Request"
// @Failure 404 {object} response.Error
// @Router /v1/matches/{id} [get]
func (handler *Handler) GetRequestByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRequestByID")
	defer scope.End()

	request, err := handler.service.GetRequest(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, request)
}

// RespondToRequest accepts or declines a pending request. Resolved requests are left as they are.
// @Summary Respond to match request
// @Tags Matching
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param request body dto.RespondRequest true "Decision"
// @Success 200 {object} response.Data[model.PetMatchRequest] "Request"
// @Failure 404 {object} response.Error
// @Router /v1/matches/{id}/respond [post]
func (handler *Handler) RespondToRequest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RespondToRequest")
	defer scope.End()

	req := dto.RespondRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	request, err := handler.service.RespondToRequest(ctx, chi.URLParam(r, constant.RequestParamID), req.Accept)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, request)
}

// SchedulePlaydate books a playdate for an accepted request.
// @Summary Schedule playdate
// @Tags Matching
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param request body dto.SchedulePlaydateRequest true "Playdate (date in RFC3339)"
// @Success 201 {object} response.Data[model.PetPlaydate] "Scheduled playdate"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/matches/{id}/playdates [post]
func (handler *Handler) SchedulePlaydate(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SchedulePlaydate")
	defer scope.End()

	req := dto.SchedulePlaydateRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	playdate, err := handler.service.SchedulePlaydate(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to schedule playdate")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, playdate)
}

// GetUpcomingPlaydates
// @Summary Get upcoming playdates
// @Tags Matching
// @Produce json
// @Success 200 {object} response.Data[dto.GetPlaydatesResponse] "Upcoming playdates, soonest first"
// @Failure 401 {object} response.Error
// @Router /v1/playdates/upcoming [get]
func (handler *Handler) GetUpcomingPlaydates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUpcomingPlaydates")
	defer scope.End()

	owner, _ := ctx.Value(constant.ContextKeyUserID).(string)

	response.WithJSON(w, http.StatusOK, dto.GetPlaydatesResponse{Playdates: handler.service.UpcomingPlaydates(ctx, owner)})
}

// CompletePlaydate
// @Summary Complete playdate
// @Tags Matching
// @Produce json
// @Param id path string true "Playdate ID"
// @Success 200 {object} response.Data[model.PetPlaydate] "Completed playdate"
// @Failure 404 {object} response.Error
// @Router /v1/playdates/{id}/complete [post]
func (handler *Handler) CompletePlaydate(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CompletePlaydate")
	defer scope.End()

	playdate, err := handler.service.CompletePlaydate(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, playdate)
}
