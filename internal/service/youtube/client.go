// Package youtube fetches video metadata from the YouTube Data API v3 for
// catalog seeding.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/youtube-seguro/video-catalog-go/internal/db/models"
)

const (
	// MaxBatchSize is the id limit of one videos.list call.
	MaxBatchSize = 50

	maxDescriptionRunes = 500
)

// ErrVideoUnavailable is returned when the API has no item for an id.
var ErrVideoUnavailable = errors.New("video not available on YouTube")

var videoParts = []string{"snippet", "contentDetails"}

// Client wraps the YouTube Data API v3 client
type Client struct {
	service *youtube.Service
}

// NewClient creates a new YouTube API client. Extra options are appended
// after the API key.
func NewClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{service: service}, nil
}

// FetchVideo returns the catalog input for one video, without category.
func (c *Client) FetchVideo(ctx context.Context, videoID string) (*models.VideoInput, error) {
	videos, err := c.FetchVideos(ctx, []string{videoID})
	if err != nil {
		return nil, err
	}
	in, ok := videos[videoID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", videoID, ErrVideoUnavailable)
	}
	return in, nil
}

// FetchVideos retrieves up to 50 videos in a single call, keyed by id. Ids
// the API does not return are absent from the map.
func (c *Client) FetchVideos(ctx context.Context, videoIDs []string) (map[string]*models.VideoInput, error) {
	if len(videoIDs) == 0 {
		return nil, fmt.Errorf("no video IDs provided")
	}
	if len(videoIDs) > MaxBatchSize {
		return nil, fmt.Errorf("too many video IDs (max %d, got %d)", MaxBatchSize, len(videoIDs))
	}

	response, err := c.service.Videos.List(videoParts).Id(videoIDs...).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch videos from YouTube API: %w", err)
	}

	videos := make(map[string]*models.VideoInput, len(response.Items))
	for _, item := range response.Items {
		videos[item.Id] = mapVideo(item)
	}
	return videos, nil
}

func mapVideo(video *youtube.Video) *models.VideoInput {
	in := &models.VideoInput{YouTubeID: video.Id}

	if video.Snippet != nil {
		in.Title = video.Snippet.Title
		in.Channel = video.Snippet.ChannelTitle
		in.Description = truncateRunes(video.Snippet.Description, maxDescriptionRunes)

		if t := video.Snippet.Thumbnails; t != nil && t.High != nil {
			in.Thumbnail = t.High.Url
		}
	}

	if video.ContentDetails != nil {
		in.Duration = video.ContentDetails.Duration
	}

	return in
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// BatchVideoIDs splits video IDs into batches of the specified size
func BatchVideoIDs(videoIDs []string, batchSize int) [][]string {
	if batchSize <= 0 || batchSize > MaxBatchSize {
		batchSize = MaxBatchSize
	}

	var batches [][]string
	for i := 0; i < len(videoIDs); i += batchSize {
		end := i + batchSize
		if end > len(videoIDs) {
			end = len(videoIDs)
		}
		batches = append(batches, videoIDs[i:end])
	}

	return batches
}
