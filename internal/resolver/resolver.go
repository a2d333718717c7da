package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"mediumcheck/internal/kodi"
	"mediumcheck/internal/logging"
	"mediumcheck/internal/textutil"
)

// DefaultMaxItems caps the merged hit list.
const DefaultMaxItems = 6

// MessageTypeCheckMedium is the only inbound message type answered.
const MessageTypeCheckMedium = "CHECK_MEDIUM"

// Library is the subset of the Kodi client used for lookups.
type Library interface {
	SearchSongs(ctx context.Context, title string) (kodi.SongPage, error)
	SearchMovies(ctx context.Context, title string) (kodi.MoviePage, error)
}

var _ Library = (*kodi.Client)(nil)

// Message is an inbound lookup request.
type Message struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Resolver turns free text into a MediumStatus.
type Resolver struct {
	library  Library
	maxItems int
	logger   *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxItems overrides the merged hit cap.
func WithMaxItems(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxItems = n
		}
	}
}

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a resolver backed by library.
func New(library Library, opts ...Option) *Resolver {
	r := &Resolver{library: library, maxItems: DefaultMaxItems, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "resolver")
	return r
}

// Check implements the lookup contract used by the inspection controller.
func (r *Resolver) Check(ctx context.Context, text string) MediumStatus {
	return r.CheckMedium(ctx, text)
}

// HandleMessage answers CHECK_MEDIUM messages. Other types are ignored and
// reported with false.
func (r *Resolver) HandleMessage(ctx context.Context, msg Message) (MediumStatus, bool) {
	if msg.Type != MessageTypeCheckMedium {
		return MediumStatus{}, false
	}
	return r.CheckMedium(ctx, msg.Text), true
}

type partitionResult struct {
	Total int
	Items []string
	Used  string
}

// CheckMedium looks rawText up in both library partitions.
func (r *Resolver) CheckMedium(ctx context.Context, rawText string) (status MediumStatus) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := logging.CorrelationIDFromContext(ctx); !ok {
		ctx = logging.WithCorrelationID(ctx, uuid.NewString())
	}
	logger := logging.WithContext(ctx, r.logger)
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("medium check panicked", logging.Any("panic", rec))
			status = Failure(fmt.Errorf("internal error: %v", rec))
		}
	}()

	parsed := textutil.SplitTitleArtist(rawText)
	audioCandidates := textutil.UniqNonEmpty(parsed.Title, parsed.Raw)
	videoCandidates := textutil.UniqNonEmpty(parsed.Raw, parsed.Title)

	audio, err := r.lookup(ctx, "audio", audioCandidates, func(ctx context.Context, candidate string) (int, []string, error) {
		page, err := r.library.SearchSongs(ctx, candidate)
		if err != nil {
			return 0, nil, err
		}
		items := make([]string, 0, len(page.Songs))
		for _, song := range page.Songs {
			items = append(items, FormatSong(song))
		}
		return page.Total, items, nil
	})
	if err != nil {
		return r.fail(logger, parsed.Raw, "audio", err)
	}

	video, err := r.lookup(ctx, "video", videoCandidates, func(ctx context.Context, candidate string) (int, []string, error) {
		page, err := r.library.SearchMovies(ctx, candidate)
		if err != nil {
			return 0, nil, err
		}
		items := make([]string, 0, len(page.Movies))
		for _, movie := range page.Movies {
			items = append(items, FormatMovie(movie))
		}
		return page.Total, items, nil
	})
	if err != nil {
		return r.fail(logger, parsed.Raw, "video", err)
	}

	items := make([]string, 0, min(len(audio.Items)+len(video.Items), r.maxItems))
	items = append(items, audio.Items...)
	items = append(items, video.Items...)
	if len(items) > r.maxItems {
		items = items[:r.maxItems]
	}

	total := audio.Total + video.Total
	status = MediumStatus{
		OK:      true,
		Query:   parsed.Raw,
		Found:   total > 0,
		Total:   total,
		Used:    Used{Audio: audio.Used, Video: video.Used},
		Details: Details{AudioTotal: audio.Total, VideoTotal: video.Total},
		Items:   items,
	}
	logger.Info("medium check finished",
		logging.String(logging.FieldQuery, parsed.Raw),
		logging.Bool("found", status.Found),
		logging.Int("audio_total", audio.Total),
		logging.Int("video_total", video.Total),
		logging.Duration("duration", time.Since(start)),
	)
	return status
}

// lookup queries candidates in order and stops at the first with hits. With
// no hits the last candidate's result is reported.
func (r *Resolver) lookup(
	ctx context.Context,
	partition string,
	candidates []string,
	search func(context.Context, string) (int, []string, error),
) (partitionResult, error) {
	var result partitionResult
	for _, candidate := range candidates {
		total, items, err := search(ctx, candidate)
		if err != nil {
			return partitionResult{}, err
		}
		result = partitionResult{Total: total, Items: items, Used: candidate}
		r.logger.Debug("partition lookup",
			logging.String(logging.FieldPartition, partition),
			logging.String("candidate", candidate),
			logging.Int("total", total),
		)
		if total > 0 {
			break
		}
	}
	return result, nil
}

func (r *Resolver) fail(logger *slog.Logger, query, partition string, err error) MediumStatus {
	logging.WarnWithContext(logger, "medium check failed", "kodi_request_failed",
		logging.String(logging.FieldQuery, query),
		logging.String(logging.FieldPartition, partition),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "verify kodi.url, credentials and that the Kodi web server is enabled"),
	)
	return Failure(err)
}
