package memstore

import "github.com/youtube-seguro/video-catalog-go/internal/db/models"

// DefaultCategories mirrors the rows seeded by migration 000002.
func DefaultCategories() []models.Category {
	return []models.Category{
		{ID: 1, Name: "Religion", Icon: "⛪", Color: "#9C27B0"},
		{ID: 2, Name: "Recetas", Icon: "🍳", Color: "#FF5722"},
		{ID: 3, Name: "Plantas", Icon: "🌿", Color: "#4CAF50"},
		{ID: 4, Name: "Musica", Icon: "🎵", Color: "#2196F3"},
	}
}

// DefaultBlockedTerms mirrors the blocked terms seeded by migration 000002.
func DefaultBlockedTerms() []string {
	return []string{
		"brujeria", "brujería", "brujo", "bruja",
		"hechizo", "hechicería", "hechiceria",
		"amarre", "amarres", "magia negra",
		"tarot", "lectura de cartas", "carta astral",
		"mal de ojo", "ojo turco", "limpia", "limpias",
		"energía negativa", "energias negativas", "chakras",
		"horoscopo", "horóscopo", "prediccion", "predicción",
		"ritual", "rituales", "hechizar",
		"santeria", "santería", "vudú", "vudu",
		"espiritismo", "médium", "medium", "ouija",
		"curandero", "curandera", "embrujar",
	}
}

// NewSeeded creates a store preloaded with the default categories and
// blocked terms.
func NewSeeded(opts ...Option) *Store {
	seeded := []Option{
		WithCategories(DefaultCategories()...),
		WithBlockedTerms(DefaultBlockedTerms()...),
	}
	return New(append(seeded, opts...)...)
}
