package models

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a catalog change published to subscribers.
type EventType string

// EventType constants double as RabbitMQ routing keys.
const (
	EventVideoCreated   EventType = "video.created"
	EventVideoDeleted   EventType = "video.deleted"
	EventViewRegistered EventType = "view.registered"
)

// CatalogEvent is the message body published after a successful write.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type CatalogEvent struct {
	ID         uuid.UUID `json:"id"`
	Type       EventType `json:"type"`
	VideoID    int64     `json:"video_id"`
	YouTubeID  string    `json:"youtube_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewCatalogEvent stamps a new event with a random id.
func NewCatalogEvent(eventType EventType, videoID int64, youtubeID string, at time.Time) *CatalogEvent {
	return &CatalogEvent{
		ID:         uuid.New(),
		Type:       eventType,
		VideoID:    videoID,
		YouTubeID:  youtubeID,
		OccurredAt: at,
	}
}
