package model

import "time"

const (
	RequestEntityName  = "match request"
	PlaydateEntityName = "playdate"

	StoreKeyMatchRequests = "pet_match_requests"
	StoreKeyPlaydates     = "pet_playdates"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusDeclined RequestStatus = "declined"
)

type PlaydateStatus string

const (
	PlaydateStatusScheduled PlaydateStatus = "scheduled"
	PlaydateStatusCompleted PlaydateStatus = "completed"
)

type PetMatchRequest struct {
	ID                 string        `json:"id"`
	RequesterPetID     string        `json:"requesterPetId"`
	RequesterPetName   string        `json:"requesterPetName"`
	RequesterOwnerID   string        `json:"requesterOwnerId"`
	RequesterOwnerName string        `json:"requesterOwnerName"`
	TargetPetID        string        `json:"targetPetId"`
	TargetPetName      string        `json:"targetPetName"`
	TargetOwnerID      string        `json:"targetOwnerId"`
	Message            *string       `json:"message,omitempty"`
	Status             RequestStatus `json:"status"`
	CreatedAt          time.Time     `json:"createdAt"`
}

func (r *PetMatchRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}

// PetPlaydate copies both owner ids from its request so it can be filtered without a lookup.
type PetPlaydate struct {
	ID               string         `json:"id"`
	RequestID        string         `json:"requestId"`
	RequesterPetName string         `json:"requesterPetName"`
	TargetPetName    string         `json:"targetPetName"`
	RequesterOwnerID string         `json:"requesterOwnerId"`
	TargetOwnerID    string         `json:"targetOwnerId"`
	Date             time.Time      `json:"date"`
	Location         *string        `json:"location,omitempty"`
	Notes            *string        `json:"notes,omitempty"`
	Status           PlaydateStatus `json:"status"`
}

func (p *PetPlaydate) Involves(ownerID string) bool {
	return p.RequesterOwnerID == ownerID || p.TargetOwnerID == ownerID
}

func (p *PetPlaydate) IsUpcoming(now time.Time) bool {
	return p.Status == PlaydateStatusScheduled && p.Date.After(now)
}
