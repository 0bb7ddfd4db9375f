package service

import (
	"context"
	"errors"
	"fmt"
	"pawstay/infras/otel"
	"pawstay/internal/domains/pet/model"
	"pawstay/internal/domains/pet/model/dto"
	"pawstay/shared"
	"pawstay/shared/base64"
	"pawstay/shared/constant"
	"pawstay/shared/failure"
	"pawstay/shared/logger"
	"pawstay/shared/media"
	"pawstay/shared/observer"
	"pawstay/shared/store"
	"pawstay/shared/validator"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
)

const managerName = "pets"

type Pet interface {
	Load(ctx context.Context) error
	Save(ctx context.Context) error
	AllPets(ctx context.Context, filter dto.PetFilter) []model.Pet
	UserPets(ctx context.Context) []model.Pet
	Favorites(ctx context.Context) []model.Pet
	GetPet(ctx context.Context, id string) (model.Pet, error)
	AddPet(ctx context.Context, req dto.CreatePetRequest) (model.Pet, error)
	UpdatePet(ctx context.Context, id string, req dto.UpdatePetRequest) (model.Pet, error)
	DeletePet(ctx context.Context, id string) error
	ToggleFavorite(ctx context.Context, id string) (bool, error)
	IsFavorite(ctx context.Context, id string) bool
	SaveMedia(ctx context.Context, id string, req dto.SaveMediaRequest) (model.Pet, error)
}

type serviceImpl struct {
	mu        sync.Mutex
	residents []model.Pet
	userPets  []model.Pet
	favorites []string
	store     store.Store
	media     media.Media
	hub       observer.Hub
	otel      otel.Otel
}

func New(st store.Store, md media.Media, hub observer.Hub, otel otel.Otel) Pet {
	return &serviceImpl{
		residents: model.Residents(),
		userPets:  []model.Pet{},
		favorites: []string{},
		store:     st,
		media:     md,
		hub:       hub,
		otel:      otel,
	}
}

// Load replaces the in-memory collections with the stored slots. Unreadable slots leave the defaults in place.
func (s *serviceImpl) Load(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Pet.Load")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	pets, ok, petsErr := store.Load[[]model.Pet](ctx, s.store, model.StoreKeyUserPets)
	if ok && pets != nil {
		s.userPets = pets
	}

	favorites, ok, favErr := store.Load[[]string](ctx, s.store, model.StoreKeyFavoriteIDs)
	if ok && favorites != nil {
		s.favorites = favorites
	}

	log.Info().Int("userPets", len(s.userPets)).Int("favorites", len(s.favorites)).Msg("pets loaded")

	return errors.Join(petsErr, favErr)
}

func (s *serviceImpl) Save(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Pet.Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	return errors.Join(s.persistPets(ctx), s.persistFavorites(ctx))
}

func (s *serviceImpl) AllPets(ctx context.Context, filter dto.PetFilter) []model.Pet {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Pet.AllPets")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return shared.Filter(s.decorate(s.all()), filter.Matches)
}

func (s *serviceImpl) UserPets(ctx context.Context) []model.Pet {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Pet.UserPets")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.decorate(s.userPets)
}

func (s *serviceImpl) Favorites(ctx context.Context) []model.Pet {
	favorite := true

	return s.AllPets(ctx, dto.PetFilter{Favorite: &favorite})
}

func (s *serviceImpl) GetPet(ctx context.Context, id string) (res model.Pet, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Pet.GetPet")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	pet, ok := s.find(id)
	if !ok {
		return res, failure.NotFound(model.EntityName) //nolint:wrapcheck
	}

	return s.decorateOne(pet), nil
}

func (s *serviceImpl) AddPet(ctx context.Context, req dto.CreatePetRequest) (res model.Pet, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Pet.AddPet")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	// Ids end up in media file names, so they are checked here as well as at the handler.
	if err = validator.ValidateVar(req.ID, "omitempty,entityid"); err != nil {
		return res, err //nolint:wrapcheck
	}

	owner, _ := ctx.Value(constant.ContextKeyUserID).(string)

	s.mu.Lock()
	defer s.mu.Unlock()

	pet := req.ToModel(owner)

	if _, exists := s.find(pet.ID); exists {
		return res, failure.Conflict("a pet with this id already exists") //nolint:wrapcheck
	}

	s.userPets = shared.Prepend(s.userPets, pet)
	logger.Persistence(managerName, model.StoreKeyUserPets, s.persistPets(ctx))

	s.publish(observer.ActionCreated, pet.ID)

	return s.decorateOne(pet), nil
}

// UpdatePet only touches user pets; seeded residents report not found.
func (s *serviceImpl) UpdatePet(ctx context.Context, id string, req dto.UpdatePetRequest) (res model.Pet, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Pet.UpdatePet")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.userIndex(id)
	if idx < 0 {
		return res, failure.NotFound(model.EntityName) //nolint:wrapcheck
	}

	req.Apply(&s.userPets[idx])
	logger.Persistence(managerName, model.StoreKeyUserPets, s.persistPets(ctx))

	s.publish(observer.ActionUpdated, id)

	return s.decorateOne(s.userPets[idx]), nil
}

// DeletePet removes a user pet, its favorite mark and every stored media file.
func (s *serviceImpl) DeletePet(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Pet.DeletePet")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.userIndex(id)
	if idx < 0 {
		return failure.NotFound(model.EntityName) //nolint:wrapcheck
	}

	s.userPets = slices.Delete(s.userPets, idx, idx+1)
	logger.Persistence(managerName, model.StoreKeyUserPets, s.persistPets(ctx))

	if fav := slices.Index(s.favorites, id); fav >= 0 {
		s.favorites = slices.Delete(s.favorites, fav, fav+1)
		logger.Persistence(managerName, model.StoreKeyFavoriteIDs, s.persistFavorites(ctx))
	}

	removed, mediaErr := s.media.DeleteAll(ctx, id)
	if mediaErr != nil {
		log.Warn().Err(mediaErr).Str("petID", id).Msg("failed to remove pet media")
	} else {
		log.Info().Str("petID", id).Int("files", removed).Msg("pet media removed")
	}

	s.publish(observer.ActionDeleted, id)

	return nil
}

func (s *serviceImpl) ToggleFavorite(ctx context.Context, id string) (res bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Pet.ToggleFavorite")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.find(id); !ok {
		return false, failure.NotFound(model.EntityName) //nolint:wrapcheck
	}

	if idx := slices.Index(s.favorites, id); idx >= 0 {
		s.favorites = slices.Delete(s.favorites, idx, idx+1)
	} else {
		s.favorites = append(s.favorites, id)
		res = true
	}

	logger.Persistence(managerName, model.StoreKeyFavoriteIDs, s.persistFavorites(ctx))

	s.hub.Publish(observer.Change{Collection: observer.CollectionFavorites, Action: observer.ActionUpdated, ID: id})

	return res, nil
}

func (s *serviceImpl) IsFavorite(_ context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Contains(s.favorites, id)
}

// SaveMedia stores a photo or video for a user pet and records its reference on the pet.
func (s *serviceImpl) SaveMedia(ctx context.Context, id string, req dto.SaveMediaRequest) (res model.Pet, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Pet.SaveMedia")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	contentType, data, err := base64.Decode(req.File)
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.userIndex(id)
	if idx < 0 {
		return res, failure.NotFound(model.EntityName) //nolint:wrapcheck
	}

	pet := &s.userPets[idx]

	file := media.File{
		PetID:       id,
		Purpose:     req.Purpose,
		Index:       len(pet.ImageNames),
		Extension:   base64.Extension(contentType),
		ContentType: contentType,
		Data:        data,
	}

	if req.Purpose == model.MediaPurposeVideo {
		file.Index = 0
	}

	ref, err := s.media.Save(ctx, file)
	if errors.Is(err, media.ErrInvalidName) {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("petID", id).Msg("failed to save pet media")

		return res, fmt.Errorf("failed to save pet media: %w", err)
	}

	if req.Purpose == model.MediaPurposeVideo {
		pet.VideoName = &ref
	} else {
		pet.ImageNames = append(pet.ImageNames, ref)
	}

	logger.Persistence(managerName, model.StoreKeyUserPets, s.persistPets(ctx))

	s.publish(observer.ActionUpdated, id)

	return s.decorateOne(*pet), nil
}

func (s *serviceImpl) all() []model.Pet {
	pets := make([]model.Pet, 0, len(s.userPets)+len(s.residents))
	pets = append(pets, s.userPets...)

	return append(pets, s.residents...)
}

func (s *serviceImpl) find(id string) (model.Pet, bool) {
	for _, pet := range s.all() {
		if pet.ID == id {
			return pet, true
		}
	}

	return model.Pet{}, false
}

func (s *serviceImpl) userIndex(id string) int {
	return shared.IndexOf(s.userPets, func(p model.Pet) bool { return p.ID == id })
}

func (s *serviceImpl) decorate(pets []model.Pet) []model.Pet {
	res := make([]model.Pet, len(pets))

	for i, pet := range pets {
		res[i] = s.decorateOne(pet)
	}

	return res
}

// decorateOne derives the favorite flag from the favorites slot.
func (s *serviceImpl) decorateOne(pet model.Pet) model.Pet {
	pet.IsFavorite = slices.Contains(s.favorites, pet.ID)

	return pet
}

func (s *serviceImpl) persistPets(ctx context.Context) error {
	return store.Persist(ctx, s.store, model.StoreKeyUserPets, s.userPets)
}

func (s *serviceImpl) persistFavorites(ctx context.Context) error {
	return store.Persist(ctx, s.store, model.StoreKeyFavoriteIDs, s.favorites)
}

func (s *serviceImpl) publish(action observer.Action, id string) {
	s.hub.Publish(observer.Change{Collection: observer.CollectionPets, Action: action, ID: id})
}
