package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/youtube-seguro/video-catalog-go/internal/db"
	"github.com/youtube-seguro/video-catalog-go/internal/db/models"
	"github.com/youtube-seguro/video-catalog-go/internal/db/repository"
	"github.com/youtube-seguro/video-catalog-go/internal/metrics"
	"github.com/youtube-seguro/video-catalog-go/pkg/logger"
)

// TermSource supplies the current blocked term list.
type TermSource interface {
	BlockedTerms(ctx context.Context) ([]string, error)
}

// StoreTermSource reads blocked terms straight from the catalog store.
type StoreTermSource struct {
	store repository.CatalogStore
}

func NewStoreTermSource(store repository.CatalogStore) *StoreTermSource {
	return &StoreTermSource{store: store}
}

func (s *StoreTermSource) BlockedTerms(ctx context.Context) ([]string, error) {
	rows, err := s.store.ListBlockedTerms(ctx)
	if err != nil {
		return nil, err
	}
	terms := make([]string, 0, len(rows))
	for _, row := range rows {
		terms = append(terms, row.Term)
	}
	return terms, nil
}

// Moderator rejects videos whose title or description contains a blocked term.
type Moderator struct {
	source  TermSource
	enabled bool
}

func NewModerator(source TermSource, enabled bool) *Moderator {
	return &Moderator{source: source, enabled: enabled}
}

// Check returns db.ErrBlockedContent when in mentions a blocked term.
func (m *Moderator) Check(ctx context.Context, in *models.VideoInput) error {
	if m == nil || !m.enabled {
		return nil
	}

	terms, err := m.source.BlockedTerms(ctx)
	if err != nil {
		return fmt.Errorf("load blocked terms: %w", err)
	}

	for _, field := range []string{in.Title, in.Description} {
		if term, ok := MatchBlockedTerm(field, terms); ok {
			metrics.ModerationRejections.Inc()
			logger.Log.Info("Video rejected by moderation",
				zap.String("youtubeId", in.YouTubeID),
				zap.String("term", term),
			)
			return fmt.Errorf("contains blocked term %q: %w", term, db.ErrBlockedContent)
		}
	}

	return nil
}

// MatchBlockedTerm reports the first term found in text as a whole word or
// phrase, ignoring case. Accents are significant.
func MatchBlockedTerm(text string, terms []string) (string, bool) {
	if text == "" {
		return "", false
	}
	lower := strings.ToLower(text)
	for _, term := range terms {
		t := strings.ToLower(strings.TrimSpace(term))
		if t == "" {
			continue
		}
		if containsWord(lower, t) {
			return term, true
		}
	}
	return "", false
}

// containsWord reports whether word occurs in text with no letter or digit
// directly on either side.
func containsWord(text, word string) bool {
	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], word)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(word)

		before, _ := utf8.DecodeLastRuneInString(text[:start])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if (start == 0 || !isWordRune(before)) && (end == len(text) || !isWordRune(after)) {
			return true
		}

		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
