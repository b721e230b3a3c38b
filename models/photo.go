package models

import (
	"strings"
	"time"
)

const (
	ImagesURLPrefix = "/images/"
	// Same layout the browser produces with Date.toISOString()
	PhotoDateLayout = "2006-01-02T15:04:05.000Z07:00"
)

type Photo struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement:false"`
	URL         string `json:"url" gorm:"type:varchar(500);not null"`
	Date        string `json:"date" gorm:"type:varchar(50);index"`
	Description string `json:"description" gorm:"type:text"`
}

// ImageURL returns the public URL for a stored file, dropping any directories, e.g.
//   - /some/dir/a.jpg -> /images/a.jpg
//   - a.jpg           -> /images/a.jpg
func ImageURL(path string) string {
	return ImagesURLPrefix + path[strings.LastIndex(path, "/")+1:]
}

// FileName is the stored file name part of the photo URL
func (p *Photo) FileName() string {
	return p.URL[strings.LastIndex(p.URL, "/")+1:]
}

// Time parses the photo date. Both full timestamps and plain dates are accepted;
// ok is false for anything else.
func (p *Photo) Time() (t time.Time, ok bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", time.DateOnly} {
		if parsed, err := time.Parse(layout, p.Date); err == nil {
			return parsed, true
		}
	}
	return
}

func PhotoDate(t time.Time) string {
	return t.UTC().Format(PhotoDateLayout)
}
