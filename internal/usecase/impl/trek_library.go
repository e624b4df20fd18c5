package impl

import (
	"fmt"
	"strings"

	"trekmate/internal/domain/entity"
)

const (
	// DefaultTrekImage is the hero image used when neither the request nor the library has one.
	DefaultTrekImage = "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=1200&q=80"

	// DefaultTrekLocation labels treks planned without a location.
	DefaultTrekLocation = "Custom Trek"
)

type trekEntry struct {
	key  string // upper-cased trek name
	meta entity.TrekMetadata
}

// TrekLibrary looks up descriptive metadata for well-known treks. Entries
// are consulted in table order.
type TrekLibrary struct {
	entries []trekEntry
}

// NewTrekLibrary returns the built-in library of Nepalese treks.
func NewTrekLibrary() *TrekLibrary {
	return &TrekLibrary{entries: knownTreks()}
}

// Lookup matches name case-insensitively: an exact match wins, otherwise the
// first key contained in name or containing it. Unknown names get
// placeholder metadata mentioning the name. ok reports whether a key matched.
func (l *TrekLibrary) Lookup(name string) (meta entity.TrekMetadata, ok bool) {
	needle := strings.ToUpper(strings.TrimSpace(name))
	if needle == "" {
		return placeholderMetadata(name), false
	}

	for _, e := range l.entries {
		if e.key == needle {
			return e.meta, true
		}
	}

	for _, e := range l.entries {
		if strings.Contains(needle, e.key) || strings.Contains(e.key, needle) {
			return e.meta, true
		}
	}

	return placeholderMetadata(name), false
}

func placeholderMetadata(name string) entity.TrekMetadata {
	return entity.TrekMetadata{
		Distance:    "Varies",
		Duration:    "Flexible",
		Elevation:   "Unknown",
		Description: fmt.Sprintf("Your custom adventure to %s. An exciting trek adventure awaits!", strings.TrimSpace(name)),
		Image:       DefaultTrekImage,
	}
}

func knownTreks() []trekEntry {
	return []trekEntry{
		{key: "EVEREST BASE CAMP", meta: entity.TrekMetadata{
			Distance:    "130 km",
			Duration:    "12-14 days",
			Elevation:   "5,364 m",
			Description: "A classic high-altitude trek into the heart of the Khumbu to the foot of Mount Everest (8,848 m), through Sherpa villages, monasteries and glacial moraines.",
			Image:       "https://images.unsplash.com/photo-1544735716-392fe2489ffa?w=1200&q=80",
		}},
		{key: "ANNAPURNA BASE CAMP", meta: entity.TrekMetadata{
			Distance:    "115 km",
			Duration:    "7-11 days",
			Elevation:   "4,130 m",
			Description: "A trek through rhododendron forests and Gurung villages into the Annapurna Sanctuary, a glacial amphitheatre ringed by Annapurna I and Machapuchare.",
			Image:       "https://images.unsplash.com/photo-1518548419970-58e3b4079ab2?w=1200&q=80",
		}},
		{key: "ANNAPURNA CIRCUIT", meta: entity.TrekMetadata{
			Distance:    "160-230 km",
			Duration:    "12-18 days",
			Elevation:   "5,416 m",
			Description: "An epic circuit around the Annapurna massif crossing the Thorong La pass, from subtropical forests to high-altitude desert.",
			Image:       "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=1200&q=80",
		}},
		{key: "TILICHO LAKE", meta: entity.TrekMetadata{
			Distance:    "60 km",
			Duration:    "3-4 days",
			Elevation:   "4,919 m",
			Description: "One of the highest lakes in the world, reached as a side trip from Manang on the Annapurna Circuit.",
			Image:       "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=1200&q=80",
		}},
		{key: "LANGTANG", meta: entity.TrekMetadata{
			Distance:    "65 km",
			Duration:    "7-8 days",
			Elevation:   "4,984 m",
			Description: "A valley trek close to Kathmandu through Tamang villages and yak pastures up to Kyanjin Gompa and Tserko Ri.",
			Image:       "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=1200&q=80",
		}},
		{key: "MANASLU CIRCUIT", meta: entity.TrekMetadata{
			Distance:    "177 km",
			Duration:    "14-16 days",
			Elevation:   "5,106 m",
			Description: "A remote restricted-area circuit around the world's eighth highest peak, crossing the Larkya La.",
			Image:       "https://images.unsplash.com/photo-1486870591958-9b9d0d1dda99?w=1200&q=80",
		}},
		{key: "GOKYO LAKES", meta: entity.TrekMetadata{
			Distance:    "92 km",
			Duration:    "10-12 days",
			Elevation:   "5,357 m",
			Description: "Turquoise glacial lakes beside the Ngozumpa glacier with views of four 8,000 m peaks from Gokyo Ri.",
			Image:       "https://images.unsplash.com/photo-1544735716-392fe2489ffa?w=1200&q=80",
		}},
		{key: "MARDI HIMAL", meta: entity.TrekMetadata{
			Distance:    "41 km",
			Duration:    "4-6 days",
			Elevation:   "4,500 m",
			Description: "A short ridge trek from Pokhara with close views of Machapuchare and the Annapurna South face.",
			Image:       "https://images.unsplash.com/photo-1571769267292-c07c8eadb1c3?w=1200&q=80",
		}},
		{key: "UPPER MUSTANG", meta: entity.TrekMetadata{
			Distance:    "120 km",
			Duration:    "10-14 days",
			Elevation:   "4,230 m",
			Description: "A walk through the arid former kingdom of Lo, with cave dwellings, red cliffs and the walled city of Lo Manthang.",
			Image:       "https://images.unsplash.com/photo-1486870591958-9b9d0d1dda99?w=1200&q=80",
		}},
	}
}
