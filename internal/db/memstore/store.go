// Package memstore is an in-process CatalogStore used by tests and local
// development. It applies the same uniqueness, cascade and ordering rules as
// the PostgreSQL repository.
package memstore

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/youtube-seguro/video-catalog-go/internal/db"
	"github.com/youtube-seguro/video-catalog-go/internal/db/models"
	"github.com/youtube-seguro/video-catalog-go/internal/db/repository"
)

var _ repository.CatalogStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for fecha_agregado.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithCategories seeds the category table.
func WithCategories(categories ...models.Category) Option {
	return func(s *Store) {
		for _, c := range categories {
			c := c
			s.categories = append(s.categories, &c)
		}
	}
}

// WithBlockedTerms seeds the blocked term list.
func WithBlockedTerms(terms ...string) Option {
	return func(s *Store) {
		for _, term := range terms {
			s.lastTermID++
			s.terms = append(s.terms, &models.BlockedTerm{ID: s.lastTermID, Term: term})
		}
	}
}

// Store keeps the whole catalog behind one lock.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Store struct {
	mu         sync.RWMutex
	videos     map[int64]*models.Video
	byYouTube  map[string]int64
	history    []*models.HistoryEntry
	categories []*models.Category
	terms      []*models.BlockedTerm

	lastVideoID   int64
	lastHistoryID int64
	lastTermID    int64

	now func() time.Time
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		videos:    make(map[int64]*models.Video),
		byYouTube: make(map[string]int64),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) CreateVideo(ctx context.Context, in *models.VideoInput) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("create video: %w", db.ErrStoreUnavailable)
	}
	if in == nil || in.YouTubeID == "" || in.Title == "" {
		return 0, fmt.Errorf("create video: youtube_id and titulo are required: %w", db.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byYouTube[in.YouTubeID]; exists {
		return 0, fmt.Errorf("create video %s: %w", in.YouTubeID, db.ErrDuplicateKey)
	}

	s.lastVideoID++
	v := &models.Video{
		ID:          s.lastVideoID,
		YouTubeID:   in.YouTubeID,
		Title:       in.Title,
		Channel:     in.Channel,
		Thumbnail:   in.Thumbnail,
		Duration:    in.Duration,
		Description: in.Description,
		Category:    in.Category,
		AddedAt:     s.now().UTC(),
		Order:       in.Order,
	}
	s.videos[v.ID] = v
	s.byYouTube[v.YouTubeID] = v.ID

	return v.ID, nil
}

func (s *Store) DeleteVideo(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("delete video: %w", db.ErrStoreUnavailable)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.videos[id]
	if !ok {
		return false, nil
	}
	delete(s.videos, id)
	delete(s.byYouTube, v.YouTubeID)

	kept := s.history[:0]
	for _, h := range s.history {
		if h.VideoID != id {
			kept = append(kept, h)
		}
	}
	s.history = kept

	return true, nil
}

func (s *Store) GetVideo(ctx context.Context, id int64) (*models.Video, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("get video: %w", db.ErrStoreUnavailable)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.videos[id]
	if !ok {
		return nil, fmt.Errorf("get video %d: %w", id, db.ErrNotFound)
	}
	out := *v
	return &out, nil
}

func (s *Store) ListVideos(ctx context.Context, order models.ListOrder) ([]*models.Video, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list videos: %w", db.ErrStoreUnavailable)
	}

	videos := s.snapshot(func(*models.Video) bool { return true })

	if order == models.OrderRandom {
		rand.Shuffle(len(videos), func(i, j int) {
			videos[i], videos[j] = videos[j], videos[i]
		})
		return videos, nil
	}

	sort.Slice(videos, func(i, j int) bool {
		a, b := videos[i], videos[j]
		if a.Order != b.Order {
			return a.Order > b.Order
		}
		if !a.AddedAt.Equal(b.AddedAt) {
			return a.AddedAt.After(b.AddedAt)
		}
		return a.ID > b.ID
	})
	return videos, nil
}

func (s *Store) ListVideosByCategory(ctx context.Context, category string) ([]*models.Video, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list videos by category: %w", db.ErrStoreUnavailable)
	}

	videos := s.snapshot(func(v *models.Video) bool {
		return strings.EqualFold(v.Category, category)
	})

	sort.Slice(videos, func(i, j int) bool {
		a, b := videos[i], videos[j]
		if a.Views != b.Views {
			return a.Views > b.Views
		}
		if !a.AddedAt.Equal(b.AddedAt) {
			return a.AddedAt.After(b.AddedAt)
		}
		return a.ID > b.ID
	})
	return videos, nil
}

func (s *Store) SearchVideos(ctx context.Context, query string) ([]*models.Video, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("search videos: %w", db.ErrStoreUnavailable)
	}

	needle := strings.ToLower(query)
	videos := s.snapshot(func(v *models.Video) bool {
		return strings.Contains(strings.ToLower(v.Title), needle) ||
			strings.Contains(strings.ToLower(v.Description), needle) ||
			strings.Contains(strings.ToLower(v.Channel), needle)
	})

	sort.Slice(videos, func(i, j int) bool {
		if videos[i].Views != videos[j].Views {
			return videos[i].Views > videos[j].Views
		}
		return videos[i].ID < videos[j].ID
	})
	return videos, nil
}

func (s *Store) RegisterView(ctx context.Context, videoID int64, at time.Time) (*models.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("register view: %w", db.ErrStoreUnavailable)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.videos[videoID]
	if !ok {
		return nil, fmt.Errorf("register view %d: %w", videoID, db.ErrNotFound)
	}

	v.Views++
	s.lastHistoryID++
	entry := &models.HistoryEntry{ID: s.lastHistoryID, VideoID: videoID, ViewedAt: at}
	s.history = append(s.history, entry)

	out := *entry
	return &out, nil
}

func (s *Store) ListHistory(ctx context.Context, videoID int64) ([]*models.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list history: %w", db.ErrStoreUnavailable)
	}

	s.mu.RLock()
	entries := make([]*models.HistoryEntry, 0)
	for _, h := range s.history {
		if h.VideoID == videoID {
			out := *h
			entries = append(entries, &out)
		}
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].ViewedAt.Equal(entries[j].ViewedAt) {
			return entries[i].ViewedAt.After(entries[j].ViewedAt)
		}
		return entries[i].ID > entries[j].ID
	})
	return entries, nil
}

func (s *Store) GetStats(ctx context.Context, dayStart, dayEnd time.Time) (*models.Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("get stats: %w", db.ErrStoreUnavailable)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &models.Stats{ByCategory: make([]models.CategoryStats, 0)}

	rollup := make(map[string]*models.CategoryStats)
	var most *models.Video
	for _, v := range s.videos {
		c, ok := rollup[v.Category]
		if !ok {
			c = &models.CategoryStats{Category: v.Category}
			rollup[v.Category] = c
		}
		c.Videos++
		c.Views += v.Views

		if most == nil || v.Views > most.Views || (v.Views == most.Views && v.ID < most.ID) {
			most = v
		}
	}

	for _, c := range rollup {
		stats.ByCategory = append(stats.ByCategory, *c)
	}
	sort.Slice(stats.ByCategory, func(i, j int) bool {
		return stats.ByCategory[i].Category < stats.ByCategory[j].Category
	})
	stats.FillTotals()

	if most != nil {
		stats.MostViewed = &models.MostViewed{Title: most.Title, Views: most.Views, Channel: most.Channel}
	}

	for _, h := range s.history {
		if !h.ViewedAt.Before(dayStart) && h.ViewedAt.Before(dayEnd) {
			stats.ViewsToday++
		}
	}

	return stats, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]*models.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", db.ErrStoreUnavailable)
	}

	s.mu.RLock()
	categories := make([]*models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out := *c
		categories = append(categories, &out)
	}
	s.mu.RUnlock()

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func (s *Store) ListBlockedTerms(ctx context.Context) ([]*models.BlockedTerm, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list blocked terms: %w", db.ErrStoreUnavailable)
	}

	s.mu.RLock()
	terms := make([]*models.BlockedTerm, 0, len(s.terms))
	for _, t := range s.terms {
		out := *t
		terms = append(terms, &out)
	}
	s.mu.RUnlock()

	sort.Slice(terms, func(i, j int) bool {
		return terms[i].Term < terms[j].Term
	})
	return terms, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("ping: %w", db.ErrStoreUnavailable)
	}
	return nil
}

func (s *Store) snapshot(keep func(*models.Video) bool) []*models.Video {
	s.mu.RLock()
	defer s.mu.RUnlock()

	videos := make([]*models.Video, 0, len(s.videos))
	for _, v := range s.videos {
		if keep(v) {
			out := *v
			videos = append(videos, &out)
		}
	}
	return videos
}
