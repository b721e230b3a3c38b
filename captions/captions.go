package captions

import (
	"context"
	"photomind/config"
	"time"
)

// PlaceholderDescription is used for every upload when no captioning service is configured
const PlaceholderDescription = "this is a photo description"

// Captioner describes the image stored in a local file
type Captioner interface {
	Describe(ctx context.Context, imagePath string) (string, error)
}

// Static always returns the same description
type Static string

func (s Static) Describe(ctx context.Context, imagePath string) (string, error) {
	return string(s), nil
}

func FromConfig() Captioner {
	if config.CAPTION_API_KEY == "" {
		return Static(PlaceholderDescription)
	}
	return NewClient(
		config.CAPTION_API_URL,
		config.CAPTION_API_KEY,
		config.CAPTION_MODEL,
		config.CAPTION_MAX_TOKENS,
		config.CAPTION_MAX_SIDE,
		time.Duration(config.CAPTION_TIMEOUT)*time.Second,
	)
}
