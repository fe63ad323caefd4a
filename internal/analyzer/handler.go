package analyzer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"
)

const (
	serviceName    = "sentiment-analyzer"
	serviceVersion = "1.0.0"
	maxTextLength  = 10000
	maxBatchSize   = 100
)

// Handler exposes the engine over HTTP.
type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type batchFailure struct {
	Error string `json:"error"`
	Text  string `json:"text"`
}

// --- GET / ---

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": serviceName,
		"version": serviceVersion,
		"health":  "/health",
		"analyze": "POST /analyze",
	})
}

// --- GET /health ---

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   serviceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// --- POST /analyze ---

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if msg := validateText(req.Text); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}
	writeJSON(w, http.StatusOK, h.engine.Analyze(req.Text))
}

// --- POST /analyze/batch ---

func (h *Handler) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var items []analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(items) > maxBatchSize {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("maximum %d texts allowed per batch request", maxBatchSize),
		})
		return
	}

	// A bad item does not fail the batch; it gets an error entry in place
	// of its result.
	results := make([]interface{}, 0, len(items))
	for _, item := range items {
		if msg := validateText(item.Text); msg != "" {
			results = append(results, batchFailure{Error: msg, Text: truncate(item.Text, 50)})
			continue
		}
		results = append(results, h.engine.Analyze(item.Text))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

func validateText(text string) string {
	if text == "" {
		return "text is required"
	}
	if utf8.RuneCountInString(text) > maxTextLength {
		return fmt.Sprintf("text must be at most %d characters", maxTextLength)
	}
	return ""
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
