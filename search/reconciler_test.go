package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"photomind/catalog"
	"photomind/models"
	"reflect"
	"testing"
	"time"
)

// similarityServer answers every search with result, or fails with status if set
func similarityServer(t *testing.T, status int, result string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/search_photos" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req similarityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
			t.Errorf("bad request body: %v %+v", err, req)
		}
		if status != 0 {
			w.WriteHeader(status)
			return
		}
		_ = json.NewEncoder(w).Encode(SimilarityResponse{Result: result, TimeTaken: "0.42 seconds"})
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestCatalog() catalog.Store {
	return catalog.NewMemoryStore(catalog.NewSequence(),
		models.Photo{ID: 1, URL: "/images/a.jpg", Date: "2024-03-15", Description: "beach sunset"},
		models.Photo{ID: 2, URL: "/images/b.jpg", Date: "2024-03-14", Description: "Family dinner at SUNSET"},
		models.Photo{ID: 3, URL: "/images/c.jpg", Date: "2024-03-13", Description: "mountain hike"},
	)
}

func ids(photos []models.Photo) []int64 {
	result := []int64{}
	for _, p := range photos {
		result = append(result, p.ID)
	}
	return result
}

func TestReconciler_Search(t *testing.T) {
	tests := []struct {
		name   string
		status int
		result string
		query  string
		want   []int64
	}{
		{"file name match ignores description", 0, "Filename: c.jpg\nPrimary Match Factors: ...", "sunset", []int64{3}},
		{"file name with spaces", 0, "Filename:   a.jpg  \nDetailed Reasoning: x", "anything", []int64{1}},
		{"unknown file falls back", 0, "Filename: zzz.jpg", "sunset", []int64{1, 2}},
		{"unparseable result falls back", 0, "I could not decide", "sunset", []int64{1, 2}},
		{"empty file name falls back", 0, "Filename: \nmore", "hike", []int64{3}},
		{"empty result falls back", 0, "", "dinner", []int64{2}},
		{"service error falls back", http.StatusInternalServerError, "", "SunSet", []int64{1, 2}},
		{"no match at all", http.StatusBadGateway, "", "snow", []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := similarityServer(t, tt.status, tt.result)
			r := NewReconciler(newTestCatalog(), NewSimilarityClient(server.URL, time.Second))
			got, err := r.Search(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("Search error: %v", err)
			}
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("Search(%q) = %v, want %v", tt.query, ids(got), tt.want)
			}
		})
	}
}

func TestReconciler_ServiceUnreachable(t *testing.T) {
	server := similarityServer(t, 0, "")
	url := server.URL
	server.Close()

	store := catalog.NewMemoryStore(catalog.NewSequence(),
		models.Photo{ID: 1, URL: "/images/a.jpg", Date: "2024-03-15", Description: "beach sunset"})
	r := NewReconciler(store, NewSimilarityClient(url, time.Second))
	got, err := r.Search(context.Background(), "sunset")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(got) != 1 || got[0].URL != "/images/a.jpg" {
		t.Errorf("expected the substring match, got %+v", got)
	}
}

func TestReconciler_Timeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	r := NewReconciler(newTestCatalog(), NewSimilarityClient(server.URL, 50*time.Millisecond))
	got, err := r.Search(context.Background(), "hike")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []int64{3}) {
		t.Errorf("got %v", ids(got))
	}
}

func TestReconciler_WithoutMatcher(t *testing.T) {
	r := NewReconciler(newTestCatalog(), nil)
	got, _ := r.Search(context.Background(), "family")
	if !reflect.DeepEqual(ids(got), []int64{2}) {
		t.Errorf("got %v", ids(got))
	}
}

type brokenCatalog struct{}

func (brokenCatalog) List() ([]models.Photo, error) { return nil, errors.New("db down") }

func TestReconciler_CatalogError(t *testing.T) {
	r := NewReconciler(brokenCatalog{}, nil)
	if _, err := r.Search(context.Background(), "x"); err == nil {
		t.Fatal("expected catalog error")
	}
}

func TestParseFileName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"Filename: a.jpg", "a.jpg", false},
		{"Filename: a.jpg\nPrimary Match Factors: colors", "a.jpg", false},
		{"Filename: a.jpg: extra", "a.jpg", false},
		{"Filename:a.jpg", "", true},
		{"Filename: ", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFileName(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFileName(%q) = %q, %v", tt.in, got, err)
		}
		if err != nil && !errors.Is(err, ErrNoFileName) {
			t.Errorf("error should wrap ErrNoFileName: %v", err)
		}
	}
}
