package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/Kvng-HackSOC/mediadev/internal/logger"
	"github.com/Kvng-HackSOC/mediadev/internal/models"
)

var (
	// ErrInvalidMediaType is returned for media types the search API
	// does not accept.
	ErrInvalidMediaType = errors.New("media type must be image, audio or all")

	// ErrEmptyQuery is returned when no query text was provided.
	ErrEmptyQuery = errors.New("query must not be empty")
)

// SearchClient runs searches against the upstream media API.
type SearchClient interface {
	SearchImages(ctx context.Context, params url.Values) (*models.SearchResult, error)
	SearchAudio(ctx context.Context, params url.Values) (*models.SearchResult, error)
}

// HistoryWriter persists search-history rows.
type HistoryWriter interface {
	Save(ctx context.Context, h *models.SearchHistoryDB) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// SearchParams is the caller's search input before upstream renaming.
type SearchParams struct {
	Query     string
	Page      int
	PageSize  int
	MediaType string            // image | audio | all
	Filters   map[string]string // open filter set, camelCase keys
}

// SearchEvent is the analytics event published after a recorded search.
type SearchEvent struct {
	EventID     string `json:"event_id"`
	UserID      string `json:"user_id"`
	Query       string `json:"query"`
	MediaType   string `json:"media_type"`
	ResultCount int    `json:"result_count"`
	Timestamp   int64  `json:"timestamp"`
}

// SearchService proxies searches upstream and records history for
// authenticated callers.
type SearchService struct {
	client      SearchClient
	history     HistoryWriter
	kafkaWriter KafkaWriter
}

// NewSearchService creates a new SearchService.
func NewSearchService(client SearchClient, history HistoryWriter, kafkaWriter KafkaWriter) *SearchService {
	return &SearchService{
		client:      client,
		history:     history,
		kafkaWriter: kafkaWriter,
	}
}

// upstreamParams builds the upstream query, renaming filter parameters
// per the fixed mapping table. The returned Filters map is what gets
// persisted with the history row.
func upstreamParams(p SearchParams) (url.Values, models.Filters) {
	params := url.Values{}
	params.Set("q", p.Query)
	if p.Page > 0 {
		params.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(p.PageSize))
	}

	effective := models.Filters{}
	for name, value := range p.Filters {
		if value == "" {
			continue
		}
		mapped := models.UpstreamFilterName(name)
		params.Set(mapped, value)
		effective[mapped] = value
	}
	return params, effective
}

// Search runs the requested search. Media type "all" issues image and
// audio searches concurrently and merges them: result_count is the sum,
// page_count the max, and results are image results followed by audio
// results. A non-nil userID gets a history row; anonymous searches are
// never recorded.
func (s *SearchService) Search(ctx context.Context, userID *uuid.UUID, p SearchParams) (*models.SearchResult, error) {
	if p.Query == "" {
		return nil, ErrEmptyQuery
	}
	if p.MediaType == "" {
		p.MediaType = models.MediaTypeImage
	}

	params, effective := upstreamParams(p)

	var (
		result *models.SearchResult
		err    error
	)
	switch p.MediaType {
	case models.MediaTypeImage:
		result, err = s.client.SearchImages(ctx, params)
	case models.MediaTypeAudio:
		result, err = s.client.SearchAudio(ctx, params)
	case models.MediaTypeAll:
		result, err = s.searchAll(ctx, params)
	default:
		return nil, ErrInvalidMediaType
	}
	if err != nil {
		return nil, err
	}

	if userID != nil {
		s.recordSearch(ctx, *userID, p, effective, result.ResultCount)
	}

	return result, nil
}

// searchAll runs the image and audio searches concurrently and merges
// the two result sets by concatenation, images first.
func (s *SearchService) searchAll(ctx context.Context, params url.Values) (*models.SearchResult, error) {
	type outcome struct {
		res *models.SearchResult
		err error
	}

	imageCh := make(chan outcome, 1)
	audioCh := make(chan outcome, 1)

	go func() {
		res, err := s.client.SearchImages(ctx, cloneValues(params))
		imageCh <- outcome{res, err}
	}()
	go func() {
		res, err := s.client.SearchAudio(ctx, cloneValues(params))
		audioCh <- outcome{res, err}
	}()

	images := <-imageCh
	audio := <-audioCh
	if images.err != nil {
		return nil, images.err
	}
	if audio.err != nil {
		return nil, audio.err
	}

	merged := &models.SearchResult{
		ResultCount: images.res.ResultCount + audio.res.ResultCount,
		PageCount:   images.res.PageCount,
		PageSize:    images.res.PageSize,
		Results:     append(append([]json.RawMessage{}, images.res.Results...), audio.res.Results...),
	}
	if audio.res.PageCount > merged.PageCount {
		merged.PageCount = audio.res.PageCount
	}
	return merged, nil
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

// recordSearch persists the history row and publishes the analytics
// event. Neither failure fails the search itself.
func (s *SearchService) recordSearch(ctx context.Context, userID uuid.UUID, p SearchParams, effective models.Filters, resultCount int) {
	h := &models.SearchHistoryDB{
		ID:          uuid.New(),
		UserID:      userID,
		Query:       p.Query,
		Filters:     effective,
		MediaType:   p.MediaType,
		ResultCount: resultCount,
	}

	if err := s.history.Save(ctx, h); err != nil {
		logger.Log.Errorw("failed to save search history", "user_id", userID, "err", err)
		return
	}

	s.publishSearchEvent(ctx, SearchEvent{
		EventID:     h.ID.String(),
		UserID:      userID.String(),
		Query:       p.Query,
		MediaType:   p.MediaType,
		ResultCount: resultCount,
		Timestamp:   time.Now().Unix(),
	})
}

// publishSearchEvent publishes a search event to Kafka.
func (s *SearchService) publishSearchEvent(ctx context.Context, event SearchEvent) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event_id", event.EventID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal search event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish search event to Kafka", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("Search event published to Kafka", "event_id", event.EventID, "query", event.Query)
	}
}
