package model

const (
	EntityName = "pet"

	StoreKeyUserPets    = "user_pets"
	StoreKeyFavoriteIDs = "favorite_pet_ids"

	MediaPurposePhoto = "photo"
	MediaPurposeVideo = "video"
)

type Species string

const (
	SpeciesCat Species = "cat"
	SpeciesDog Species = "dog"
)

type Status string

const (
	StatusResident Status = "resident"
	StatusBoarding Status = "boarding"
	StatusMyPet    Status = "myPet"
)

type Pet struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Species            Species  `json:"species"`
	Breed              string   `json:"breed"`
	Age                *int     `json:"age,omitempty"`
	Status             Status   `json:"status"`
	Personality        []string `json:"personality"`
	FavoriteActivities []string `json:"favoriteActivities"`
	ImageNames         []string `json:"imageNames"`
	VideoName          *string  `json:"videoName,omitempty"`
	JoinDate           string   `json:"joinDate"`
	IsFavorite         bool     `json:"isFavorite"`
	IsUserPet          bool     `json:"isUserPet"`
	OwnerID            string   `json:"ownerId,omitempty"`
}
