package model

func intPtr(i int) *int {
	return &i
}

// Residents returns the bundled sample pets. Each call returns a fresh copy.
func Residents() []Pet {
	return []Pet{
		{
			ID:                 "resident-luna",
			Name:               "Luna",
			Species:            SpeciesCat,
			Breed:              "Ragdoll",
			Age:                intPtr(3),
			Status:             StatusResident,
			Personality:        []string{"Gentle", "Cuddly", "Curious"},
			FavoriteActivities: []string{"Window watching", "Feather wands"},
			ImageNames:         []string{"luna_1", "luna_2"},
			JoinDate:           "2022-03-14",
		},
		{
			ID:                 "resident-max",
			Name:               "Max",
			Species:            SpeciesDog,
			Breed:              "Golden Retriever",
			Age:                intPtr(5),
			Status:             StatusResident,
			Personality:        []string{"Friendly", "Energetic", "Loyal"},
			FavoriteActivities: []string{"Fetch", "Swimming", "Belly rubs"},
			ImageNames:         []string{"max_1", "max_2", "max_3"},
			JoinDate:           "2021-07-02",
		},
		{
			ID:                 "resident-oliver",
			Name:               "Oliver",
			Species:            SpeciesCat,
			Breed:              "Maine Coon",
			Age:                intPtr(6),
			Status:             StatusResident,
			Personality:        []string{"Calm", "Majestic", "Independent"},
			FavoriteActivities: []string{"Napping in sunbeams", "Bird watching"},
			ImageNames:         []string{"oliver_1"},
			JoinDate:           "2020-11-21",
		},
		{
			ID:                 "resident-bella",
			Name:               "Bella",
			Species:            SpeciesDog,
			Breed:              "Beagle",
			Age:                intPtr(2),
			Status:             StatusResident,
			Personality:        []string{"Playful", "Vocal", "Food-motivated"},
			FavoriteActivities: []string{"Sniff walks", "Puzzle toys"},
			ImageNames:         []string{"bella_1", "bella_2"},
			VideoName:          strPtr("bella_zoomies"),
			JoinDate:           "2023-01-09",
		},
		{
			ID:                 "boarding-milo",
			Name:               "Milo",
			Species:            SpeciesCat,
			Breed:              "Tabby",
			Age:                intPtr(4),
			Status:             StatusBoarding,
			Personality:        []string{"Shy", "Sweet"},
			FavoriteActivities: []string{"Hiding in boxes", "Laser pointer"},
			ImageNames:         []string{"milo_1"},
			JoinDate:           "2024-05-30",
		},
		{
			ID:                 "boarding-cooper",
			Name:               "Cooper",
			Species:            SpeciesDog,
			Breed:              "Border Collie",
			Age:                intPtr(3),
			Status:             StatusBoarding,
			Personality:        []string{"Smart", "Driven", "Affectionate"},
			FavoriteActivities: []string{"Agility", "Frisbee"},
			ImageNames:         []string{"cooper_1", "cooper_2"},
			JoinDate:           "2024-06-12",
		},
	}
}

func strPtr(s string) *string {
	return &s
}
