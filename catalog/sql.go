package catalog

import (
	"fmt"
	"photomind/models"

	"gorm.io/gorm"
)

// SQLStore keeps photos in the "photos" table (MySQL or SQLite)
type SQLStore struct {
	db  *gorm.DB
	ids *Sequence
}

func NewSQLStore(db *gorm.DB, ids *Sequence) (*SQLStore, error) {
	if err := db.AutoMigrate(&models.Photo{}); err != nil {
		return nil, fmt.Errorf("photos auto-migrate: %w", err)
	}
	s := &SQLStore{db: db, ids: ids}
	if err := s.observeMaxID(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) observeMaxID() error {
	var maxID int64
	err := s.db.Model(&models.Photo{}).Select("coalesce(max(id), 0)").Scan(&maxID).Error
	if err != nil {
		return fmt.Errorf("photos max id: %w", err)
	}
	s.ids.Observe(maxID)
	return nil
}

// SeedIfEmpty stores the given photos (IDs kept) if there are no photos yet
func (s *SQLStore) SeedIfEmpty(photos ...models.Photo) error {
	var count int64
	if err := s.db.Model(&models.Photo{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 || len(photos) == 0 {
		return nil
	}
	if err := s.db.Create(&photos).Error; err != nil {
		return err
	}
	return s.observeMaxID()
}

func (s *SQLStore) List() ([]models.Photo, error) {
	photos := []models.Photo{}
	// IDs grow with every insert, so "id desc" is the newest-first insertion order
	if err := s.db.Order("id DESC").Find(&photos).Error; err != nil {
		return nil, fmt.Errorf("photos list: %w", err)
	}
	SortByDate(photos)
	return photos, nil
}

func (s *SQLStore) Insert(photo models.Photo) (models.Photo, error) {
	photo.ID = s.ids.Next()
	photo.URL = models.ImageURL(photo.URL)
	if err := s.db.Create(&photo).Error; err != nil {
		return models.Photo{}, fmt.Errorf("photos insert: %w", err)
	}
	return photo, nil
}
