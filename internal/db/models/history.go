package models

import "time"

// HistoryEntry records a single view event. Entries are append-only and
// disappear with their video.
type HistoryEntry struct {
	ID       int64     `json:"id"`
	VideoID  int64     `json:"video_id"`
	ViewedAt time.Time `json:"fecha"`
}
