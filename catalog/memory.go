package catalog

import (
	"photomind/models"
	"sync"
)

// MemoryStore keeps the photos for the lifetime of the process only
type MemoryStore struct {
	mutex  sync.RWMutex
	photos []models.Photo
	ids    *Sequence
}

// NewMemoryStore creates a store holding initial (in the given order, IDs kept as they are)
func NewMemoryStore(ids *Sequence, initial ...models.Photo) *MemoryStore {
	s := &MemoryStore{
		photos: make([]models.Photo, 0, len(initial)),
		ids:    ids,
	}
	for _, p := range initial {
		ids.Observe(p.ID)
		s.photos = append(s.photos, p)
	}
	return s
}

func (s *MemoryStore) List() ([]models.Photo, error) {
	s.mutex.RLock()
	result := make([]models.Photo, len(s.photos))
	copy(result, s.photos)
	s.mutex.RUnlock()

	SortByDate(result)
	return result, nil
}

func (s *MemoryStore) Insert(photo models.Photo) (models.Photo, error) {
	photo.ID = s.ids.Next()
	photo.URL = models.ImageURL(photo.URL)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.photos = append([]models.Photo{photo}, s.photos...)
	return photo, nil
}

func (s *MemoryStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.photos)
}
