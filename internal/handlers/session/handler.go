package session

import (
	"net/http"
	"pawstay/infras/otel"
	"pawstay/internal/domains/user/model/dto"
	"pawstay/internal/domains/user/service"
	"pawstay/shared/constant"
	"pawstay/shared/failure"
	"pawstay/shared/validator"
	"pawstay/transport/http/middleware"
	"pawstay/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.User
	session middleware.Session
	otel    otel.Otel
}

func New(service service.User, session middleware.Session, otel otel.Otel) Handler {
	return Handler{
		service: service,
		session: session,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/session", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetSession)
		routerGroup.Post("/signup", handler.SignUp)
		routerGroup.Post("/login", handler.Login)
		routerGroup.Post("/logout", handler.Logout)
		routerGroup.Post("/onboarding", handler.CompleteOnboarding)

		routerGroup.Group(func(me chi.Router) {
			me.Use(handler.session.Require)

			me.Get("/me", handler.GetCurrentUser)
			me.Patch("/me", handler.UpdateProfile)
			me.Put("/me/image", handler.SetProfileImage)
			me.Get("/me/image", handler.GetProfileImage)
			me.Post("/me/points", handler.AddPoints)
		})
	})
}

// GetSession reports whether someone is signed in and whether onboarding was seen.
// @Summary Get session
// @Tags Session
// @Produce json
// @Success 200 {object} response.Data[model.Session] "Session state"
// @Router /v1/session [get]
func (handler *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSession")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.service.Session(ctx))
}

// SignUp creates a local account and signs it in.
// @Summary Sign up
// @Tags Session
// @Accept json
// @Produce json
// @Param request body dto.SignUpRequest true "Account"
// @Success 201 {object} response.Data[model.User] "Signed in user"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/session/signup [post]
func (handler *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SignUp")
	defer scope.End()

	req := dto.SignUpRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	user, err := handler.service.SignUp(ctx, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, user)
}

// Login signs in a registered account by email.
// @Summary Log in
// @Tags Session
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Email"
// @Success 200 {object} response.Data[model.User] "Signed in user"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/session/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	user, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("login rejected")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}

// Logout
// @Summary Log out
// @Tags Session
// @Produce json
// @Success 200 {object} response.Message "Signed out"
// @Router /v1/session/logout [post]
func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	handler.service.Logout(ctx)

	response.WithMessage(w, http.StatusOK, "Signed out")
}

// CompleteOnboarding
// @Summary Complete onboarding
// @Tags Session
// @Produce json
// @Success 200 {object} response.Message "Onboarding completed"
// @Router /v1/session/onboarding [post]
func (handler *Handler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CompleteOnboarding")
	defer scope.End()

	handler.service.CompleteOnboarding(ctx)

	response.WithMessage(w, http.StatusOK, "Onboarding completed")
}

// GetCurrentUser
// @Summary Get current user
// @Tags Session
// @Produce json
// @Success 200 {object} response.Data[model.User] "Current user"
// @Failure 401 {object} response.Error
// @Router /v1/session/me [get]
func (handler *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCurrentUser")
	defer scope.End()

	user, err := handler.service.CurrentUser(ctx)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}

// UpdateProfile
// @Summary Update profile
// @Tags Session
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} response.Data[model.User] "Updated user"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/session/me [patch]
func (handler *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateProfile")
	defer scope.End()

	req := dto.UpdateProfileRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	user, err := handler.service.UpdateProfile(ctx, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}

// SetProfileImage stores the avatar sent as a base64 data url.
// @Summary Set profile image
// @Tags Session
// @Accept json
// @Produce json
// @Param request body dto.ProfileImageRequest true "Image data url"
// @Success 200 {object} response.Message "Profile image saved"
// @Failure 400 {object} response.Error
// @Router /v1/session/me/image [put]
func (handler *Handler) SetProfileImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetProfileImage")
	defer scope.End()

	req := dto.ProfileImageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	image, err := req.Bytes()
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, failure.BadRequest(err))

		return
	}

	if err = handler.service.SetProfileImage(ctx, image); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Profile image saved")
}

// GetProfileImage streams the stored avatar.
// @Summary Get profile image
// @Tags Session
// @Produce octet-stream
// @Success 200 {file} binary "Image bytes"
// @Failure 404 {object} response.Error
// @Router /v1/session/me/image [get]
func (handler *Handler) GetProfileImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProfileImage")
	defer scope.End()

	image, err := handler.service.ProfileImage(ctx)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithBytes(w, http.StatusOK, image)
}

// AddPoints credits loyalty points to the current user.
// @Summary Add loyalty points
// @Tags Session
// @Accept json
// @Produce json
// @Param request body dto.AddPointsRequest true "Points"
// @Success 200 {object} response.Data[model.User] "Updated user"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/session/me/points [post]
func (handler *Handler) AddPoints(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddPoints")
	defer scope.End()

	req := dto.AddPointsRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	user, err := handler.service.AddPoints(ctx, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}
