package dto

import (
	"pawstay/internal/domains/user/model"
	"pawstay/shared/base64"
	"pawstay/shared/timezone"
	"strings"

	"github.com/google/uuid"
)

type SignUpRequest struct {
	Name  string `json:"name"  validate:"required,max=100"`
	Email string `json:"email" validate:"required,email,max=100"`
	Phone string `json:"phone" validate:"omitempty,max=20"`
}

func (r *SignUpRequest) ToModel() model.User {
	return model.User{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(r.Name),
		Email:    strings.TrimSpace(r.Email),
		Phone:    strings.TrimSpace(r.Phone),
		JoinedAt: timezone.Now(),
	}
}

type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name"  validate:"omitempty,max=100"`
	Phone *string `json:"phone" validate:"omitempty,max=20"`
}

func (r *UpdateProfileRequest) Apply(user *model.User) {
	if r.Name != nil {
		user.Name = strings.TrimSpace(*r.Name)
	}

	if r.Phone != nil {
		user.Phone = strings.TrimSpace(*r.Phone)
	}
}

type ProfileImageRequest struct {
	Image string `json:"image" validate:"required,mimetypes=image/png image/jpeg image/heic,maxfilesize=5"`
}

// Bytes decodes the data url payload.
func (r *ProfileImageRequest) Bytes() ([]byte, error) {
	_, data, err := base64.Decode(r.Image)

	return data, err
}

type AddPointsRequest struct {
	Points int    `json:"points" validate:"required,gte=1,lte=1000"`
	Reason string `json:"reason" validate:"required,max=100"`
}
