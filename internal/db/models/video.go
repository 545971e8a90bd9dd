// Package models contains the catalog entities and the DTOs built from them.
package models

import (
	"strings"
	"time"
)

// Video is one curated catalog entry sourced from YouTube.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Video struct {
	ID          int64     `json:"id"`
	YouTubeID   string    `json:"youtube_id"`
	Title       string    `json:"titulo"`
	Channel     string    `json:"canal"`
	Thumbnail   string    `json:"thumbnail"`
	Duration    string    `json:"duracion"`
	Description string    `json:"descripcion"`
	Category    string    `json:"categoria"`
	AddedAt     time.Time `json:"fecha_agregado"`
	Views       int64     `json:"vistas"`
	Order       int       `json:"orden"`
}

// VideoInput carries the fields accepted when a video is added to the catalog.
// YouTubeID, Title and Category are required; the rest default to empty.
type VideoInput struct {
	YouTubeID   string `json:"youtube_id"`
	Title       string `json:"titulo"`
	Channel     string `json:"canal"`
	Thumbnail   string `json:"thumbnail"`
	Duration    string `json:"duracion"`
	Description string `json:"descripcion"`
	Category    string `json:"categoria"`
	Order       int    `json:"orden"`
}

// Normalize trims surrounding whitespace from every text field.
func (in *VideoInput) Normalize() {
	in.YouTubeID = strings.TrimSpace(in.YouTubeID)
	in.Title = strings.TrimSpace(in.Title)
	in.Channel = strings.TrimSpace(in.Channel)
	in.Thumbnail = strings.TrimSpace(in.Thumbnail)
	in.Duration = strings.TrimSpace(in.Duration)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
}

// ListOrder selects how the full catalog listing is ordered.
type ListOrder string

const (
	// OrderDefault sorts by orden DESC, then newest first.
	OrderDefault ListOrder = "default"
	// OrderRandom returns a random permutation.
	OrderRandom ListOrder = "random"
)

// ParseListOrder maps a query or config value onto a ListOrder.
func ParseListOrder(s string) (ListOrder, bool) {
	switch ListOrder(strings.ToLower(strings.TrimSpace(s))) {
	case OrderDefault:
		return OrderDefault, true
	case OrderRandom:
		return OrderRandom, true
	default:
		return "", false
	}
}
