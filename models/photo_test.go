package models

import (
	"testing"
	"time"
)

func TestImageURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare name", "a.jpg", "/images/a.jpg"},
		{"already public", "/images/a.jpg", "/images/a.jpg"},
		{"full path", "/var/www/react/public/images/1710-42.png", "/images/1710-42.png"},
		{"url", "http://localhost:3001/images/x.jpeg", "/images/x.jpeg"},
		{"trailing slash", "/images/", "/images/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ImageURL(tt.in); got != tt.want {
				t.Errorf("ImageURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPhoto_Time(t *testing.T) {
	tests := []struct {
		date string
		want time.Time
		ok   bool
	}{
		{"2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"2024-03-15T10:20:30.123Z", time.Date(2024, 3, 15, 10, 20, 30, 123000000, time.UTC), true},
		{"2024-03-15T10:20:30", time.Date(2024, 3, 15, 10, 20, 30, 0, time.UTC), true},
		{"yesterday", time.Time{}, false},
		{"", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			p := Photo{Date: tt.date}
			got, ok := p.Time()
			if ok != tt.ok || !got.Equal(tt.want) {
				t.Errorf("Time() = %v, %v, want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPhotoDate(t *testing.T) {
	loc := time.FixedZone("X", 3600)
	got := PhotoDate(time.Date(2024, 3, 15, 11, 0, 0, 5_000_000, loc))
	if got != "2024-03-15T10:00:00.005Z" {
		t.Errorf("PhotoDate() = %q", got)
	}
}

func TestPhoto_FileName(t *testing.T) {
	p := Photo{URL: "/images/beach-sunset.jpg"}
	if p.FileName() != "beach-sunset.jpg" {
		t.Errorf("FileName() = %q", p.FileName())
	}
}
