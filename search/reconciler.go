package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"photomind/models"
	"strings"
)

// Matcher returns free text whose first line names the best matching file
type Matcher interface {
	BestMatch(ctx context.Context, query string) (string, error)
}

type PhotoLister interface {
	List() ([]models.Photo, error)
}

// Reconciler turns a free-text query into photos from the catalog. The similarity
// service picks one photo by file name; whenever that doesn't work out the photos whose
// description contains the query are returned instead.
type Reconciler struct {
	catalog PhotoLister
	matcher Matcher // nil disables the similarity service
}

func NewReconciler(catalog PhotoLister, matcher Matcher) *Reconciler {
	return &Reconciler{catalog: catalog, matcher: matcher}
}

// Search only fails if the catalog itself cannot be read
func (r *Reconciler) Search(ctx context.Context, query string) ([]models.Photo, error) {
	photos, err := r.catalog.List()
	if err != nil {
		return nil, err
	}
	if r.matcher != nil {
		name, err := r.matchFileName(ctx, query)
		if err != nil {
			log.Printf("Similarity search for %q failed, using text search: %v", query, err)
		} else if photo, ok := findByFileName(photos, name); ok {
			return []models.Photo{photo}, nil
		} else {
			log.Printf("Similarity search for %q picked unknown file %q, using text search", query, name)
		}
	}
	return filterByDescription(photos, query), nil
}

func (r *Reconciler) matchFileName(ctx context.Context, query string) (string, error) {
	result, err := r.matcher.BestMatch(ctx, query)
	if err != nil {
		return "", err
	}
	return ParseFileName(result)
}

var ErrNoFileName = errors.New("no file name in similarity result")

// ParseFileName extracts <name> from a result whose first line is "Filename: <name>"
func ParseFileName(result string) (string, error) {
	firstLine, _, _ := strings.Cut(result, "\n")
	parts := strings.Split(firstLine, ": ")
	if len(parts) < 2 {
		return "", fmt.Errorf("%w: %.80q", ErrNoFileName, firstLine)
	}
	name := strings.TrimSpace(parts[1])
	if name == "" {
		return "", fmt.Errorf("%w: %.80q", ErrNoFileName, firstLine)
	}
	return name, nil
}

func findByFileName(photos []models.Photo, name string) (models.Photo, bool) {
	for _, p := range photos {
		if strings.Contains(p.URL, name) {
			return p, true
		}
	}
	return models.Photo{}, false
}

func filterByDescription(photos []models.Photo, query string) []models.Photo {
	query = strings.ToLower(query)
	result := []models.Photo{}
	for _, p := range photos {
		if strings.Contains(strings.ToLower(p.Description), query) {
			result = append(result, p)
		}
	}
	return result
}
