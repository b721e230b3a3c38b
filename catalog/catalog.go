package catalog

import (
	"log"
	"photomind/models"
	"sort"
	"time"
)

// Store is the authoritative collection of photos
type Store interface {
	// List returns every photo, newest date first
	List() ([]models.Photo, error)
	// Insert assigns a new ID, normalizes the URL to /images/<name> and stores the photo in front
	Insert(photo models.Photo) (models.Photo, error)
}

// InsertHook is called after a photo has been stored. It cannot undo or fail the insert.
type InsertHook func(photo models.Photo)

type hookedStore struct {
	Store
	hooks []InsertHook
}

// WithHooks wraps a store so that every successful Insert is followed by the given hooks
func WithHooks(store Store, hooks ...InsertHook) Store {
	return &hookedStore{Store: store, hooks: hooks}
}

func (s *hookedStore) Insert(photo models.Photo) (models.Photo, error) {
	stored, err := s.Store.Insert(photo)
	if err != nil {
		return stored, err
	}
	for _, hook := range s.hooks {
		runHook(hook, stored)
	}
	return stored, nil
}

func runHook(hook InsertHook, photo models.Photo) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Insert hook for photo %d panicked: %v", photo.ID, r)
		}
	}()
	hook(photo)
}

// DemoPhotos are the records a fresh gallery starts with
func DemoPhotos() []models.Photo {
	return []models.Photo{
		{
			ID:          1,
			URL:         "/images/beach-sunset.jpg",
			Date:        "2024-03-15",
			Description: "A beautiful beach sunset with waves crashing on the shore",
		},
		{
			ID:          2,
			URL:         "/images/family-dinner.jpg",
			Date:        "2024-03-14",
			Description: "Family gathered around a dinner table sharing a meal",
		},
	}
}

// SortByDate orders photos by date, newest first. Equal dates keep their order and
// photos with a date that cannot be parsed go last.
func SortByDate(photos []models.Photo) {
	type entry struct {
		photo models.Photo
		t     time.Time
		valid bool
	}
	entries := make([]entry, len(photos))
	for i := range photos {
		t, ok := photos[i].Time()
		entries[i] = entry{photos[i], t, ok}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.valid != b.valid {
			return a.valid
		}
		return a.valid && a.t.After(b.t)
	})
	for i := range entries {
		photos[i] = entries[i].photo
	}
}
