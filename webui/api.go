package webui

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"dreamforge/generation"
	"dreamforge/metrics"
	"dreamforge/scheduler"
	"dreamforge/sdruntime"
)

// generateRequest is the POST /api/generate body.
type generateRequest struct {
	Prompt  string `json:"prompt"`
	Style   string `json:"style"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Steps   int    `json:"steps"`
	Seed    *int64 `json:"seed"`
	Enhance *bool  `json:"enhance"`
}

// generateResponse is the success body. Image is base64-encoded PNG so a
// browser can drop it straight into a data URL.
type generateResponse struct {
	Image         string `json:"image"`
	Status        string `json:"status"`
	SeedUsed      int64  `json:"seedUsed"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	SavedPath     string `json:"savedPath,omitempty"`
	ThumbnailPath string `json:"thumbnailPath,omitempty"`
	DurationMS    int64  `json:"durationMs"`
	CorrelationID string `json:"correlationId"`
}

// apiError is the error body for every endpoint.
type apiError struct {
	ErrorKind string `json:"errorKind"`
	Message   string `json:"message"`
}

// Error kinds returned to clients.
const (
	kindBadRequest   = "bad_request"
	kindEmptyPrompt  = "empty_prompt"
	kindCancelled    = "cancelled"
	kindShuttingDown = "shutting_down"
	kindGeneration   = "generation_failed"
	kindInternal     = "internal"
)

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, kindBadRequest, "POST required")
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, kindBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	// Enhancement defaults on; the UI sends an explicit false to opt out.
	enhance := true
	if req.Enhance != nil {
		enhance = *req.Enhance
	}

	res, err := s.generator.Generate(r.Context(), generation.GenerationRequest{
		Prompt:  req.Prompt,
		Style:   req.Style,
		Width:   req.Width,
		Height:  req.Height,
		Steps:   req.Steps,
		Seed:    req.Seed,
		Enhance: enhance,
	})
	if err != nil {
		s.writeGenerateError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Image:         base64.StdEncoding.EncodeToString(res.Image),
		Status:        res.Status,
		SeedUsed:      res.Seed,
		Width:         res.Width,
		Height:        res.Height,
		SavedPath:     publicPath(res.StoragePath),
		ThumbnailPath: publicPath(res.ThumbnailPath),
		DurationMS:    res.Duration.Milliseconds(),
		CorrelationID: res.CorrelationID,
	})
}

// writeGenerateError maps pipeline failures onto HTTP status codes and
// stable error kinds.
func (s *Server) writeGenerateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, generation.ErrEmptyPrompt):
		writeError(w, http.StatusBadRequest, kindEmptyPrompt, "prompt must not be empty")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusRequestTimeout, kindCancelled, "request cancelled while waiting")
	case errors.Is(err, scheduler.ErrSchedulerClosed):
		writeError(w, http.StatusServiceUnavailable, kindShuttingDown, "service is shutting down")
	case errors.Is(err, sdruntime.ErrGenerationFailed):
		writeError(w, http.StatusInternalServerError, kindGeneration, err.Error())
	default:
		s.logger.Error("Unclassified generation error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, kindInternal, err.Error())
	}
}

func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, kindBadRequest, "GET required")
		return
	}

	presets := s.catalog.List()
	out := make([]StylePreset, 0, len(presets))
	for _, p := range presets {
		out = append(out, StylePreset{ID: p.ID, Name: p.Name})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"styles": out})
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, kindBadRequest, "GET required")
		return
	}
	if s.history == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"generations": []struct{}{}})
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	records, err := s.history.QueryRecent(r.Context(), limit)
	if err != nil {
		s.logger.Error("Failed to query recent generations", zap.Error(err))
		writeError(w, http.StatusInternalServerError, kindInternal, "history query failed")
		return
	}

	type recentEntry struct {
		Prompt        string `json:"prompt"`
		Seed          int64  `json:"seed"`
		Width         int    `json:"width"`
		Height        int    `json:"height"`
		ImagePath     string `json:"imagePath"`
		ThumbnailPath string `json:"thumbnailPath,omitempty"`
		CreatedAt     string `json:"createdAt"`
	}
	out := make([]recentEntry, 0, len(records))
	for _, rec := range records {
		out = append(out, recentEntry{
			Prompt:        rec.Prompt,
			Seed:          rec.Seed,
			Width:         rec.Width,
			Height:        rec.Height,
			ImagePath:     publicPath(rec.ImagePath),
			ThumbnailPath: publicPath(rec.ThumbnailPath),
			CreatedAt:     rec.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"generations": out})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, kindBadRequest, "GET required")
		return
	}

	snap := metrics.Snapshot{}
	if s.collector != nil {
		snap = s.collector.Snapshot()
	}

	var indexed int64
	if s.history != nil {
		if n, err := s.history.Count(r.Context()); err == nil {
			indexed = n
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"totalGenerations": snap.TotalGenerations,
		"succeeded":        snap.Succeeded,
		"failed":           snap.Failed,
		"averageMs":        snap.AverageDuration.Milliseconds(),
		"indexed":          indexed,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// publicPath rewrites an on-disk output path to its /outputs/ URL. Sidecar
// and image files all live flat in one directory, so the base name is
// enough.
func publicPath(diskPath string) string {
	if diskPath == "" {
		return ""
	}
	return "/outputs/" + filepath.Base(diskPath)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, apiError{ErrorKind: kind, Message: message})
}
