package dto

import (
	"pawstay/internal/domains/pet/model"
	"pawstay/shared/constant"
	gDto "pawstay/shared/dto"
	"pawstay/shared/timezone"
	"strings"

	"github.com/google/uuid"
)

type CreatePetRequest struct {
	ID                 string   `json:"id"                 validate:"omitempty,entityid"`
	Name               string   `json:"name"               validate:"required,max=50"`
	Species            string   `json:"species"            validate:"required,oneof=cat dog"`
	Breed              string   `json:"breed"              validate:"omitempty,max=50"`
	Age                *int     `json:"age"                validate:"omitempty,gte=0,lte=40"`
	Personality        []string `json:"personality"        validate:"omitempty,max=10,dive,max=30"`
	FavoriteActivities []string `json:"favoriteActivities" validate:"omitempty,max=10,dive,max=50"`
}

// ToModel builds a user pet, keeping a caller supplied id.
func (c *CreatePetRequest) ToModel(ownerID string) model.Pet {
	id := c.ID
	if id == "" {
		id = uuid.NewString()
	}

	return model.Pet{
		ID:                 id,
		Name:               c.Name,
		Species:            model.Species(c.Species),
		Breed:              c.Breed,
		Age:                c.Age,
		Status:             model.StatusMyPet,
		Personality:        c.Personality,
		FavoriteActivities: c.FavoriteActivities,
		ImageNames:         []string{},
		JoinDate:           timezone.Today().Format(constant.DayFormat),
		IsUserPet:          true,
		OwnerID:            ownerID,
	}
}

type UpdatePetRequest struct {
	Name               *string  `json:"name"               validate:"omitempty,max=50"`
	Species            *string  `json:"species"            validate:"omitempty,oneof=cat dog"`
	Breed              *string  `json:"breed"              validate:"omitempty,max=50"`
	Age                *int     `json:"age"                validate:"omitempty,gte=0,lte=40"`
	Personality        []string `json:"personality"        validate:"omitempty,max=10,dive,max=30"`
	FavoriteActivities []string `json:"favoriteActivities" validate:"omitempty,max=10,dive,max=50"`
}

// Apply mutates pet with every field set on the request.
func (u *UpdatePetRequest) Apply(pet *model.Pet) {
	if u.Name != nil {
		pet.Name = *u.Name
	}

	if u.Species != nil {
		pet.Species = model.Species(*u.Species)
	}

	if u.Breed != nil {
		pet.Breed = *u.Breed
	}

	if u.Age != nil {
		pet.Age = u.Age
	}

	if u.Personality != nil {
		pet.Personality = u.Personality
	}

	if u.FavoriteActivities != nil {
		pet.FavoriteActivities = u.FavoriteActivities
	}
}

type SaveMediaRequest struct {
	Purpose string `json:"purpose" validate:"required,oneof=photo video"`
	File    string `json:"file"    validate:"required,mimetypes=image/png image/jpeg image/heic image/gif video/mp4 video/quicktime,maxfilesize=25"`
}

// PetFilter narrows AllPets. Zero values match everything.
type PetFilter struct {
	Species  string
	Status   string
	Favorite *bool
	Search   string
}

// Matches reports whether pet passes every set criterion.
func (f PetFilter) Matches(pet model.Pet) bool {
	if f.Species != "" && string(pet.Species) != f.Species {
		return false
	}

	if f.Status != "" && string(pet.Status) != f.Status {
		return false
	}

	if f.Favorite != nil && pet.IsFavorite != *f.Favorite {
		return false
	}

	if f.Search != "" && !matchesSearch(pet, strings.ToLower(f.Search)) {
		return false
	}

	return true
}

func matchesSearch(pet model.Pet, term string) bool {
	if strings.Contains(strings.ToLower(pet.Name), term) || strings.Contains(strings.ToLower(pet.Breed), term) {
		return true
	}

	for _, trait := range pet.Personality {
		if strings.Contains(strings.ToLower(trait), term) {
			return true
		}
	}

	return false
}

type GetPetsResponse struct {
	Pets      []model.Pet `json:"pets"`
	Total     int         `json:"total"`
	TotalPage int         `json:"totalPage"`
}

// FromModels keeps the page of pets selected by q. Total counts every match.
func (r *GetPetsResponse) FromModels(pets []model.Pet, q gDto.QueryParams) {
	r.Total = len(pets)
	r.TotalPage = gDto.CalculateTotalPage(r.Total, q.Limit)
	r.Pets = gDto.Paginate(pets, q)
}

type FavoriteResponse struct {
	ID         string `json:"id"`
	IsFavorite bool   `json:"isFavorite"`
}
