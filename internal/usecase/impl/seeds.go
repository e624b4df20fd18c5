package impl

import (
	"trekmate/internal/domain/entity"
)

// featuredDestinations are always listed after the live destinations.
func featuredDestinations() []entity.Destination {
	return []entity.Destination{
		{
			ID:          "seed-tilicho-lake",
			Name:        "TILICHO LAKE",
			Location:    "Manang district",
			Image:       "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=1200&q=80",
			Description: "Tilicho Lake is one of the highest lakes in the world, situated at an altitude of 4,919 meters in the Annapurna range of the Himalayas. This stunning glacial lake offers breathtaking views and is a popular side trip for trekkers on the Annapurna Circuit.",
			Distance:    "60 km",
			Duration:    "3-4 days",
			Elevation:   "4,919 m",
			IsPublic:    true,
		},
		{
			ID:          "seed-annapurna-circuit",
			Name:        "ANNAPURNA CIRCUIT",
			Location:    "Manang district",
			Image:       "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=1200&q=80",
			Description: "The Annapurna Circuit is one of the most popular long-distance treks in Nepal. This epic journey takes you around the Annapurna massif, crossing the Thorong La pass at 5,416m and experiencing diverse landscapes from subtropical forests to high-altitude deserts.",
			Distance:    "160-230 km",
			Duration:    "12-18 days",
			Elevation:   "5,416 m",
			IsPublic:    true,
		},
		{
			ID:          "seed-everest-base-camp",
			Name:        "EVEREST BASE CAMP",
			Location:    "Solukhumbu district",
			Image:       "https://images.unsplash.com/photo-1544735716-392fe2489ffa?w=1200&q=80",
			Description: "The Everest Base Camp (EBC) Trek is a classic high-altitude trek in Nepal that takes you into the heart of the Himalayas to the base of the world's highest peak, Mount Everest (8,848 m). Experience Sherpa culture, stunning mountain views, and the thrill of standing at the foot of Everest.",
			Distance:    "130 km",
			Duration:    "12-14 days",
			Elevation:   "5,364 m",
			IsPublic:    true,
		},
	}
}

// upcomingTreks are always listed after the caller's planned trips.
func upcomingTreks() []entity.Destination {
	return []entity.Destination{
		{
			ID:        "seed-langtang",
			Name:      "Langtang",
			Location:  "Rasuwa District",
			Image:     "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=800&q=80",
			IsPlanned: true,
		},
		{
			ID:        "seed-annapurna-base-camp",
			Name:      "Annapurna Base camp",
			Location:  "Pokhara District",
			Image:     "https://images.unsplash.com/photo-1518548419970-58e3b4079ab2?w=800&q=80",
			IsPlanned: true,
		},
		{
			ID:        "seed-manaslu-circuit",
			Name:      "Manaslu Circuit",
			Location:  "Gorkha District",
			Image:     "https://images.unsplash.com/photo-1486870591958-9b9d0d1dda99?w=800&q=80",
			IsPlanned: true,
		},
		{
			ID:        "seed-upper-mustang",
			Name:      "Upper Mustang",
			Location:  "Mustang District",
			Image:     "https://images.unsplash.com/photo-1486870591958-9b9d0d1dda99?w=800&q=80",
			IsPlanned: true,
		},
	}
}

// findSeed returns the featured or upcoming entry with the given ID.
func findSeed(id string) (entity.Destination, bool) {
	for _, list := range [][]entity.Destination{featuredDestinations(), upcomingTreks()} {
		for _, d := range list {
			if d.ID == id {
				return d, true
			}
		}
	}

	return entity.Destination{}, false
}
