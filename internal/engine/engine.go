// Package engine implements the prompt submission flow: generate suggestions,
// classify, record and persist.
package engine

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/thebtf/promptdeck/internal/classify"
	"github.com/thebtf/promptdeck/internal/history"
	"github.com/thebtf/promptdeck/internal/suggest"
	"github.com/thebtf/promptdeck/internal/telemetry"
	"github.com/thebtf/promptdeck/pkg/models"
)

var (
	// ErrEmptyInput is returned by Submit for blank input.
	ErrEmptyInput = errors.New("prompt text is empty")
	// ErrInvalidText is returned by Submit for text that is not valid UTF-8,
	// which could not be stored and read back unchanged.
	ErrInvalidText = errors.New("prompt text is not valid UTF-8")
)

// Preview is the result of generating without persisting.
type Preview struct {
	Text        string          `json:"text"`
	Family      suggest.Family  `json:"family"`
	Category    models.Category `json:"category"`
	Suggestions []string        `json:"suggestions"`
}

// Engine wires the generator, classifier and history store together.
type Engine struct {
	store     *history.Store
	ids       *history.IDGenerator
	metrics   *telemetry.Metrics
	now       func() time.Time
	generator suggest.Generator
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for createdAt and ids.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithGenerator replaces the default suggestion generator.
func WithGenerator(g suggest.Generator) Option {
	return func(e *Engine) { e.generator = g }
}

// WithMetrics sets the metric instruments.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// New creates an Engine over store.
func New(store *history.Store, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.ids = history.NewIDGenerator(e.now)
	return e
}

// Load reads persisted history and advances the id generator past it.
func (e *Engine) Load(ctx context.Context) (models.HistoryList, error) {
	list, err := e.store.Load(ctx)
	if err != nil {
		return list, err
	}
	e.ids.Observe(list)
	return list, nil
}

// Preview generates suggestions and a category for text without recording anything.
func (e *Engine) Preview(text string) Preview {
	return Preview{
		Text:        text,
		Family:      suggest.SelectFamily(text),
		Category:    classify.Classify(text),
		Suggestions: e.generator.Generate(text),
	}
}

// Submit records a new prompt for text, prepends it to list and persists the
// result. Blank text is rejected with ErrEmptyInput, invalid UTF-8 with
// ErrInvalidText; in both cases nothing is written.
func (e *Engine) Submit(ctx context.Context, list models.HistoryList, text string) (models.HistoryList, models.PromptRecord, error) {
	if strings.TrimSpace(text) == "" {
		return list, models.PromptRecord{}, ErrEmptyInput
	}
	if !utf8.ValidString(text) {
		return list, models.PromptRecord{}, ErrInvalidText
	}

	p := e.Preview(text)
	e.ids.Observe(list)
	rec := models.NewPromptRecord(e.ids.Next(), text, p.Suggestions, p.Category, e.now())

	next, err := e.store.Add(ctx, list, rec)
	if err != nil {
		return list, models.PromptRecord{}, err
	}

	e.metrics.PromptGenerated(ctx, string(p.Category), string(p.Family))
	e.metrics.HistoryMutated(ctx, "add")
	log.Debug().
		Int64("id", rec.ID).
		Str("category", string(rec.Category)).
		Str("family", string(p.Family)).
		Msg("Prompt recorded")

	return next, rec, nil
}

// Delete removes the record with id from list and persists the result.
// A missing id still persists the unchanged list.
func (e *Engine) Delete(ctx context.Context, list models.HistoryList, id int64) (models.HistoryList, error) {
	next, err := e.store.Remove(ctx, list, id)
	if err != nil {
		return list, err
	}
	e.metrics.HistoryMutated(ctx, "remove")
	return next, nil
}

// Clear empties and persists the history. On failure list is returned unchanged.
func (e *Engine) Clear(ctx context.Context, list models.HistoryList) (models.HistoryList, error) {
	next, err := e.store.Clear(ctx)
	if err != nil {
		return list, err
	}
	e.metrics.HistoryMutated(ctx, "clear")
	return next, nil
}

// Filter applies q to list relative to the engine clock.
func (e *Engine) Filter(list models.HistoryList, q history.Query) models.HistoryList {
	return history.Filter(list, q, e.now())
}
