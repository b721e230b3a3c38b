package intake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"photomind/captions"
	"photomind/catalog"
	"photomind/models"
	"photomind/storage"
	"photomind/utils"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoFile      = errors.New("no file uploaded")
	ErrDescription = errors.New("failed to generate image description")
)

type Upload struct {
	Name   string // file name on the client, only the extension is kept
	Reader io.Reader
	// DesiredPath is what the client would like the URL to be. Stored files always get
	// generated names, so it is only logged.
	DesiredPath string
}

// Intake stores uploaded files and adds them to the catalog with a description
type Intake struct {
	catalog   catalog.Store
	storage   storage.StorageAPI
	captioner captions.Captioner
	now       func() time.Time
}

func New(catalog catalog.Store, storage storage.StorageAPI, captioner captions.Captioner) *Intake {
	return &Intake{
		catalog:   catalog,
		storage:   storage,
		captioner: captioner,
		now:       time.Now,
	}
}

// StoredFileName generates a unique name for an uploaded file, keeping its extension
func StoredFileName(original string) string {
	return uuid.NewString() + utils.SafeExt(original)
}

func (i *Intake) Add(ctx context.Context, upload Upload) (models.Photo, error) {
	if upload.Reader == nil {
		return models.Photo{}, ErrNoFile
	}
	name := StoredFileName(upload.Name)
	if upload.DesiredPath != "" {
		log.Printf("Upload %q asked for %q, storing as %s", upload.Name, upload.DesiredPath, name)
	}
	size, err := i.storage.Save(name, upload.Reader)
	if err != nil {
		i.discard(name)
		return models.Photo{}, fmt.Errorf("cannot store %s: %w", name, err)
	}
	description, err := i.describe(ctx, name)
	if err != nil {
		i.discard(name)
		return models.Photo{}, fmt.Errorf("%w: %v", ErrDescription, err)
	}
	photo, err := i.catalog.Insert(models.Photo{
		URL:         models.ImageURL(name),
		Date:        models.PhotoDate(i.now()),
		Description: description,
	})
	if err != nil {
		i.discard(name)
		return models.Photo{}, err
	}
	log.Printf("Photo %d stored as %s (%d bytes)", photo.ID, name, size)
	return photo, nil
}

func (i *Intake) describe(ctx context.Context, name string) (string, error) {
	if static, ok := i.captioner.(captions.Static); ok {
		return string(static), nil
	}
	if err := i.storage.EnsureLocalFile(name); err != nil {
		return "", err
	}
	defer i.storage.ReleaseLocalFile(name)
	return i.captioner.Describe(ctx, i.storage.GetFullPath(name))
}

func (i *Intake) discard(name string) {
	if err := i.storage.Delete(name); err != nil {
		log.Printf("Cannot remove %s: %v", name, err)
	}
}
