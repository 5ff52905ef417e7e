package worker

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/thebtf/promptdeck/internal/engine"
	"github.com/thebtf/promptdeck/internal/history"
	"github.com/thebtf/promptdeck/internal/suggest"
	"github.com/thebtf/promptdeck/pkg/models"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

type promptRequest struct {
	Text string `json:"text"`
}

type previewResponse struct {
	Text          string          `json:"text"`
	Family        suggest.Family  `json:"family"`
	Category      models.Category `json:"category"`
	CategoryLabel string          `json:"categoryLabel"`
	Suggestions   []string        `json:"suggestions"`
	Tokens        []int           `json:"tokens,omitempty"`
}

type submitResponse struct {
	Record models.PromptRecord `json:"record"`
	Tokens []int               `json:"tokens,omitempty"`
	Count  int                 `json:"count"`
}

type listResponse struct {
	Records models.HistoryList `json:"records"`
	Total   int                `json:"total"`
}

type historyEvent struct {
	Op    string `json:"op"`
	ID    int64  `json:"id,omitempty"`
	Count int    `json:"count"`
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	count := len(s.history)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"ready":   s.ready.Load(),
		"records": count,
		"uptime":  s.now().Sub(s.startTime).Round(time.Second).String(),
	})
}

func (s *Service) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Categories)
}

func (s *Service) handlePreview(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePrompt(w, r)
	if !ok {
		return
	}

	p := s.engine.Preview(req.Text)
	writeJSON(w, http.StatusOK, previewResponse{
		Text:          p.Text,
		Family:        p.Family,
		Category:      p.Category,
		CategoryLabel: p.Category.Label(),
		Suggestions:   p.Suggestions,
		Tokens:        tokenCounts(p.Suggestions),
	})
}

func (s *Service) handleSubmit(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePrompt(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	next, rec, err := s.engine.Submit(r.Context(), s.history, req.Text)
	if err == nil {
		s.history = next
	}
	count := len(s.history)
	s.mu.Unlock()

	if err != nil {
		if errors.Is(err, engine.ErrEmptyInput) || errors.Is(err, engine.ErrInvalidText) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Msg("Failed to record prompt")
		writeError(w, http.StatusInternalServerError, "failed to save history")
		return
	}

	s.publish("add", rec.ID, count)
	writeJSON(w, http.StatusCreated, submitResponse{
		Record: rec,
		Tokens: tokenCounts(rec.Suggestions),
		Count:  count,
	})
}

func (s *Service) handleHistory(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	all := s.history
	s.mu.Unlock()

	records := s.engine.Filter(all, q)
	writeJSON(w, http.StatusOK, listResponse{Records: records, Total: len(all)})
}

func (s *Service) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	s.mu.Lock()
	if _, found := history.Find(s.history, id); !found {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	next, err := s.engine.Delete(r.Context(), s.history, id)
	if err == nil {
		s.history = next
	}
	count := len(s.history)
	s.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("Failed to delete record")
		writeError(w, http.StatusInternalServerError, "failed to save history")
		return
	}

	s.publish("remove", id, count)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	next, err := s.engine.Clear(r.Context(), s.history)
	s.history = next
	s.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Msg("Failed to clear history")
		writeError(w, http.StatusInternalServerError, "failed to save history")
		return
	}

	s.publish("clear", 0, 0)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleCatalog(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category != "" && category != "all" {
		if _, ok := models.ParseCategory(category); !ok {
			writeError(w, http.StatusBadRequest, "unknown category")
			return
		}
	}

	records := s.catalog.Search(s.now(), r.URL.Query().Get("query"), category)
	writeJSON(w, http.StatusOK, listResponse{Records: records, Total: s.catalog.Len()})
}

func decodePrompt(w http.ResponseWriter, r *http.Request) (promptRequest, bool) {
	var req promptRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return req, false
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, engine.ErrEmptyInput.Error())
		return req, false
	}
	return req, true
}

func parseQuery(r *http.Request) (history.Query, error) {
	v := r.URL.Query()

	window, err := history.ParseWindow(v.Get("window"))
	if err != nil {
		return history.Query{}, err
	}

	q := history.Query{Text: v.Get("query"), Window: window}

	if c := v.Get("category"); c != "" && c != "all" {
		category, ok := models.ParseCategory(c)
		if !ok {
			return history.Query{}, errors.New("unknown category")
		}
		q.Category = category
	}

	if l := v.Get("limit"); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil || limit < 0 {
			return history.Query{}, errors.New("invalid limit")
		}
		q.Limit = limit
	}

	return q, nil
}

// tokenCounts returns nil when the tokenizer is unavailable; counts are advisory.
func tokenCounts(suggestions []string) []int {
	counts, err := suggest.TokenCounts(suggestions)
	if err != nil {
		log.Debug().Err(err).Msg("Token counting unavailable")
		return nil
	}
	return counts
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug().Err(err).Msg("Failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
