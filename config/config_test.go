package config

import (
	"reflect"
	"testing"
)

func TestReadOverrides(t *testing.T) {
	t.Setenv("BIND_ADDRESS", "127.0.0.1:9000")
	t.Setenv("SEED_PHOTOS", "off")
	t.Setenv("CAPTION_MAX_TOKENS", "42")
	t.Setenv("GRAPH_UPDATES", "yes")
	Read()

	if BIND_ADDRESS != "127.0.0.1:9000" {
		t.Errorf("BIND_ADDRESS = %q", BIND_ADDRESS)
	}
	if SEED_PHOTOS {
		t.Errorf("SEED_PHOTOS should be false")
	}
	if CAPTION_MAX_TOKENS != 42 {
		t.Errorf("CAPTION_MAX_TOKENS = %d", CAPTION_MAX_TOKENS)
	}
	if !GRAPH_UPDATES {
		t.Errorf("GRAPH_UPDATES should be true")
	}
}

func TestReadKeepsValueOnBadInput(t *testing.T) {
	SIMILARITY_TIMEOUT = 30
	t.Setenv("SIMILARITY_TIMEOUT", "soon")
	Read()
	if SIMILARITY_TIMEOUT != 30 {
		t.Errorf("SIMILARITY_TIMEOUT = %d, want 30", SIMILARITY_TIMEOUT)
	}
}

func TestSimilarityURLPrecedence(t *testing.T) {
	t.Setenv("FLASK_API_URL", "http://flask:7500")
	t.Setenv("SIMILARITY_API_URL", "http://rag:7500")
	Read()
	if SIMILARITY_API_URL != "http://rag:7500" {
		t.Errorf("SIMILARITY_API_URL = %q", SIMILARITY_API_URL)
	}
}

func TestCorsOrigins(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"wildcard", "*", []string{"*"}},
		{"list", "http://a.com, http://b.com", []string{"http://a.com", "http://b.com"}},
		{"empty entries", ",http://a.com,,", []string{"http://a.com"}},
		{"nothing", " , ", []string{"*"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			CORS_ORIGINS = tt.in
			if got := CorsOrigins(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CorsOrigins() = %v, want %v", got, tt.want)
			}
		})
	}
}
