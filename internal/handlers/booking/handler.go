package booking

import (
	"net/http"
	"pawstay/infras/otel"
	"pawstay/internal/domains/booking/model"
	"pawstay/internal/domains/booking/model/dto"
	"pawstay/internal/domains/booking/service"
	"pawstay/shared"
	"pawstay/shared/constant"
	gDto "pawstay/shared/dto"
	"pawstay/shared/failure"
	"pawstay/shared/timezone"
	"pawstay/shared/validator"
	"pawstay/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

const (
	defaultRangeDays = 14
	maxRangeDays     = 62
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Post("/quote", handler.QuoteBooking)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}/status", handler.UpdateBookingStatus)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
	})

	router.Get("/availability", handler.GetAvailability)
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Price and store a boarding stay. Rejected when a day of the stay is full.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[model.Booking] "Booking created"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, booking)
}

// QuoteBooking prices a stay without booking it.
// @Summary Quote a stay
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.QuoteRequest true "Stay"
// @Success 200 {object} response.Data[model.Price] "Price breakdown"
// @Failure 400 {object} response.Error
// @Router /v1/bookings/quote [post]
func (handler *Handler) QuoteBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".QuoteBooking")
	defer scope.End()

	req := dto.QuoteRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	price, err := handler.service.Quote(ctx, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, price)
}

// GetBookings lists bookings.
// @Summary Get bookings
// @Description Upcoming bookings are sorted soonest first, past bookings most recent first.
// @Tags Booking
// @Produce json
// @Param view query string false "upcoming or past"
// @Param status query string false "Filter by status (pending, confirmed, inProgress, completed, cancelled)"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page, all when omitted"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Router /v1/bookings [get]
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	filter := dto.BookingFilter{
		View:   r.URL.Query().Get("view"),
		Status: r.URL.Query().Get("status"),
	}

	if err := validator.ValidateStruct(&filter); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	q := gDto.QueryParams{}
	q.FromRequest(r, false)

	res := dto.GetBookingsResponse{}
	res.FromModels(handler.service.GetAll(ctx, filter), q)

	response.WithJSON(w, http.StatusOK, res)
}

// GetBookingByID retrieves a single booking by its ID.
// @Summary Get booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[model.Booking] "Booking"
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id} [get]
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// UpdateBookingStatus moves a booking to another status.
// @Summary Update booking status
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} response.Data[model.Booking] "Updated booking"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/status [patch]
func (handler *Handler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBookingStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.UpdateStatusRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.UpdateStatus(ctx, id, model.Status(req.Status))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update booking status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// DeleteBooking deletes a booking by its ID.
// @Summary Delete booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id} [delete]
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking deleted successfully")
}

// GetAvailability reports free boarding spots for one day, or for a range when from is given.
// @Summary Get availability
// @Tags Booking
// @Produce json
// @Param date query string false "Day (YYYY-MM-DD), defaults to today"
// @Param from query string false "First day of a range (YYYY-MM-DD)"
// @Param days query int false "Range length, defaults to 14"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Single day"
// @Success 200 {object} response.Data[dto.AvailabilityRangeResponse] "Range"
// @Failure 400 {object} response.Error
// @Router /v1/availability [get]
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	query := r.URL.Query()

	if from := query.Get("from"); from != "" {
		start, err := timezone.Parse(constant.DayFormat, from)
		if err != nil {
			scope.TraceError(err)

			response.WithError(w, failure.InvalidDateParam)

			return
		}

		days := min(max(shared.ConvertStringToInt(query.Get("days"), defaultRangeDays), 1), maxRangeDays)

		res := dto.AvailabilityRangeResponse{}
		res.FromModels(handler.service.AvailabilityRange(ctx, start, days))

		response.WithJSON(w, http.StatusOK, res)

		return
	}

	day := timezone.Today()

	if date := query.Get("date"); date != "" {
		parsed, err := timezone.Parse(constant.DayFormat, date)
		if err != nil {
			scope.TraceError(err)

			response.WithError(w, failure.InvalidDateParam)

			return
		}

		day = parsed
	}

	res := dto.AvailabilityResponse{}
	res.FromModel(handler.service.Availability(ctx, day))

	response.WithJSON(w, http.StatusOK, res)
}
