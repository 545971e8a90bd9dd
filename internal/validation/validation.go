// Package validation checks client input before it reaches the catalog store.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/youtube-seguro/video-catalog-go/internal/db"
	"github.com/youtube-seguro/video-catalog-go/internal/db/models"
)

const (
	maxTitleLength       = 500
	maxDescriptionLength = 5000
	maxCategoryLength    = 100
)

var youtubeIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

type Validator struct {
	strictYouTubeID bool
}

// New returns a validator. With strictYouTubeID the youtube_id must look like
// a real 11-character YouTube id.
func New(strictYouTubeID bool) *Validator {
	return &Validator{strictYouTubeID: strictYouTubeID}
}

// ValidateVideoInput normalizes in and rejects missing or malformed fields
// with db.ErrInvalidArgument.
func (v *Validator) ValidateVideoInput(in *models.VideoInput) error {
	if in == nil {
		return fmt.Errorf("video is required: %w", db.ErrInvalidArgument)
	}

	in.Normalize()

	if in.YouTubeID == "" {
		return fmt.Errorf("youtube_id is required: %w", db.ErrInvalidArgument)
	}
	if v.strictYouTubeID && !youtubeIDRegex.MatchString(in.YouTubeID) {
		return fmt.Errorf("invalid youtube_id format: %s: %w", in.YouTubeID, db.ErrInvalidArgument)
	}

	if in.Title == "" {
		return fmt.Errorf("titulo is required: %w", db.ErrInvalidArgument)
	}
	if utf8.RuneCountInString(in.Title) > maxTitleLength {
		return fmt.Errorf("titulo exceeds %d characters: %w", maxTitleLength, db.ErrInvalidArgument)
	}

	if in.Category == "" {
		return fmt.Errorf("categoria is required: %w", db.ErrInvalidArgument)
	}
	if utf8.RuneCountInString(in.Category) > maxCategoryLength {
		return fmt.Errorf("categoria exceeds %d characters: %w", maxCategoryLength, db.ErrInvalidArgument)
	}

	if utf8.RuneCountInString(in.Description) > maxDescriptionLength {
		return fmt.Errorf("descripcion exceeds %d characters: %w", maxDescriptionLength, db.ErrInvalidArgument)
	}

	return nil
}

// IsValidYouTubeID reports whether id has the shape of a YouTube video id.
func (v *Validator) IsValidYouTubeID(id string) bool {
	return youtubeIDRegex.MatchString(id)
}

// NormalizeQuery trims a search query and rejects it when nothing is left.
func NormalizeQuery(q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", fmt.Errorf("search query is required: %w", db.ErrInvalidArgument)
	}
	return q, nil
}

// NormalizeCategory trims a category name and rejects it when nothing is left.
func NormalizeCategory(c string) (string, error) {
	c = strings.TrimSpace(c)
	if c == "" {
		return "", fmt.Errorf("categoria is required: %w", db.ErrInvalidArgument)
	}
	return c, nil
}
