package pet

import (
	"net/http"
	"pawstay/infras/otel"
	"pawstay/internal/domains/pet/model/dto"
	"pawstay/internal/domains/pet/service"
	"pawstay/shared"
	"pawstay/shared/constant"
	gDto "pawstay/shared/dto"
	"pawstay/shared/validator"
	"pawstay/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Pet
	otel    otel.Otel
}

func New(service service.Pet, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/pets", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPets)
		routerGroup.Post("/", handler.AddPet)
		routerGroup.Get("/favorites", handler.GetFavorites)
		routerGroup.Get("/{id}", handler.GetPetByID)
		routerGroup.Patch("/{id}", handler.UpdatePet)
		routerGroup.Delete("/{id}", handler.DeletePet)
		routerGroup.Post("/{id}/favorite", handler.ToggleFavorite)
		routerGroup.Post("/{id}/media", handler.SaveMedia)
	})
}

// GetPets lists seeded and user pets.
// @Summary Get all pets
// @Description Retrieve resident, boarding and user pets with optional filters.
// @Tags Pet
// @Produce json
// @Param species query string false "Filter by species (cat, dog)"
// @Param status query string false "Filter by status (resident, boarding, myPet)"
// @Param favorite query boolean false "Only favorites"
// @Param search query string false "Search name, breed and personality"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page, all when omitted"
// @Success 200 {object} response.Data[dto.GetPetsResponse] "List of pets"
// @Failure 400 {object} response.Error
// @Router /v1/pets [get]
func (handler *Handler) GetPets(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPets")
	defer scope.End()

	query := r.URL.Query()
	filter := dto.PetFilter{
		Species:  query.Get("species"),
		Status:   query.Get("status"),
		Favorite: shared.ConvertStringToBool(query.Get("favorite")),
		Search:   query.Get("search"),
	}

	q := gDto.QueryParams{}
	q.FromRequest(r, false)

	res := dto.GetPetsResponse{}
	res.FromModels(handler.service.AllPets(ctx, filter), q)

	response.WithJSON(w, http.StatusOK, res)
}

// GetFavorites lists favorited pets.
// @Summary Get favorite pets
// @Tags Pet
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page, all when omitted"
// @Success 200 {object} response.Data[dto.GetPetsResponse] "Favorite pets"
// @Router /v1/pets/favorites [get]
func (handler *Handler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFavorites")
	defer scope.End()

	q := gDto.QueryParams{}
	q.FromRequest(r, false)

	res := dto.GetPetsResponse{}
	res.FromModels(handler.service.Favorites(ctx), q)

	response.WithJSON(w, http.StatusOK, res)
}

// AddPet registers a pet owned by the signed-in user.
// @Summary Add a pet
// @Tags Pet
// @Accept json
// @Produce json
// @Param request body dto.CreatePetRequest true "Create Pet Request"
// @Success 201 {object} response.Data[model.Pet] "Pet created"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/pets [post]
func (handler *Handler) AddPet(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddPet")
	defer scope.End()

	req := dto.CreatePetRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	pet, err := handler.service.AddPet(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add pet")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, pet)
}

// GetPetByID returns one pet.
// @Summary Get pet by ID
// @Tags Pet
// @Produce json
// @Param id path string true "Pet ID"
// @Success 200 {object} response.Data[model.Pet] "Pet"
// @Failure 404 {object} response.Error
// @Router /v1/pets/{id} [get]
func (handler *Handler) GetPetByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPetByID")
	defer scope.End()

	pet, err := handler.service.GetPet(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, pet)
}

// UpdatePet edits a user pet. Seeded pets cannot be edited.
// @Summary Update pet
// @Tags Pet
// @Accept json
// @Produce json
// @Param id path string true "Pet ID"
// @Param request body dto.UpdatePetRequest true "Update Pet Request"
// @Success 200 {object} response.Data[model.Pet] "Updated pet"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/pets/{id} [patch]
func (handler *Handler) UpdatePet(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePet")
	defer scope.End()

	req := dto.UpdatePetRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	pet, err := handler.service.UpdatePet(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update pet")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, pet)
}

// DeletePet removes a user pet and its media.
// @Summary Delete pet
// @Tags Pet
// @Produce json
// @Param id path string true "Pet ID"
// @Success 200 {object} response.Message "Pet deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/pets/{id} [delete]
func (handler *Handler) DeletePet(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePet")
	defer scope.End()

	if err := handler.service.DeletePet(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete pet")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Pet deleted successfully")
}

// ToggleFavorite flips the favorite flag of a pet.
// @Summary Toggle favorite
// @Tags Pet
// @Produce json
// @Param id path string true "Pet ID"
// @Success 200 {object} response.Data[dto.FavoriteResponse] "Favorite state"
// @Failure 404 {object} response.Error
// @Router /v1/pets/{id}/favorite [post]
func (handler *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ToggleFavorite")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	favorite, err := handler.service.ToggleFavorite(ctx, id)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dto.FavoriteResponse{ID: id, IsFavorite: favorite})
}

// SaveMedia stores a photo or video for a user pet.
// @Summary Upload pet media
// @Tags Pet
// @Accept json
// @Produce json
// @Param id path string true "Pet ID"
// @Param request body dto.SaveMediaRequest true "Base64 data url"
// @Success 201 {object} response.Data[model.Pet] "Pet with new media"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/pets/{id}/media [post]
func (handler *Handler) SaveMedia(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SaveMedia")
	defer scope.End()

	req := dto.SaveMediaRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	pet, err := handler.service.SaveMedia(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save pet media")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, pet)
}
