package dto

import (
	"pawstay/internal/domains/matching/model"
	"pawstay/shared/constant"
	"pawstay/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type SendRequestRequest struct {
	RequesterPetID   string  `json:"requesterPetId"   validate:"required"`
	RequesterPetName string  `json:"requesterPetName" validate:"required,max=50"`
	TargetPetID      string  `json:"targetPetId"      validate:"required"`
	TargetPetName    string  `json:"targetPetName"    validate:"required,max=50"`
	TargetOwnerID    string  `json:"targetOwnerId"    validate:"required"`
	Message          *string `json:"message"          validate:"omitempty,max=500"`

	// filled from the session, never from the body
	RequesterOwnerID   string `json:"-"`
	RequesterOwnerName string `json:"-"`
}

func (s *SendRequestRequest) ToModel() model.PetMatchRequest {
	return model.PetMatchRequest{
		ID:                 uuid.NewString(),
		RequesterPetID:     s.RequesterPetID,
		RequesterPetName:   s.RequesterPetName,
		RequesterOwnerID:   s.RequesterOwnerID,
		RequesterOwnerName: s.RequesterOwnerName,
		TargetPetID:        s.TargetPetID,
		TargetPetName:      s.TargetPetName,
		TargetOwnerID:      s.TargetOwnerID,
		Message:            s.Message,
		Status:             model.RequestStatusPending,
		CreatedAt:          timezone.Now(),
	}
}

type RespondRequest struct {
	Accept bool `json:"accept"`
}

type SchedulePlaydateRequest struct {
	Date     string  `json:"date"     validate:"required"`
	Location *string `json:"location" validate:"omitempty,max=200"`
	Notes    *string `json:"notes"    validate:"omitempty,max=500"`
}

func (s *SchedulePlaydateRequest) ParseDate() (time.Time, error) {
	return timezone.Parse(constant.DateFormat, s.Date)
}

func (s *SchedulePlaydateRequest) ToModel(request model.PetMatchRequest, date time.Time) model.PetPlaydate {
	return model.PetPlaydate{
		ID:               uuid.NewString(),
		RequestID:        request.ID,
		RequesterPetName: request.RequesterPetName,
		TargetPetName:    request.TargetPetName,
		RequesterOwnerID: request.RequesterOwnerID,
		TargetOwnerID:    request.TargetOwnerID,
		Date:             date,
		Location:         s.Location,
		Notes:            s.Notes,
		Status:           model.PlaydateStatusScheduled,
	}
}

type GetRequestsResponse struct {
	Requests []model.PetMatchRequest `json:"requests"`
}

type GetPlaydatesResponse struct {
	Playdates []model.PetPlaydate `json:"playdates"`
}
