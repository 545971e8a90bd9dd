package models

// Category groups videos under a display icon and color. Seeded by migration.
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"nombre"`
	Icon  string `json:"icono"`
	Color string `json:"color"`
}
