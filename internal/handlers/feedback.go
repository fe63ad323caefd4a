package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"feedback-hub/internal/models"
	"feedback-hub/internal/notify"
	"feedback-hub/internal/repository"
	"feedback-hub/internal/sentiment"
	"feedback-hub/internal/validation"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

type FeedbackHandler struct {
	store      repository.FeedbackStore
	classifier sentiment.Classifier
	notifier   notify.Notifier
	logger     *zap.SugaredLogger
}

func NewFeedbackHandler(store repository.FeedbackStore, classifier sentiment.Classifier, notifier notify.Notifier, logger *zap.SugaredLogger) *FeedbackHandler {
	return &FeedbackHandler{
		store:      store,
		classifier: classifier,
		notifier:   notifier,
		logger:     logger,
	}
}

type listMeta struct {
	Total   int64 `json:"total"`
	Limit   int64 `json:"limit"`
	Offset  int64 `json:"offset"`
	HasMore bool  `json:"hasMore"`
}

type listResponse struct {
	Data []models.Feedback `json:"data"`
	Meta listMeta          `json:"meta"`
}

// --- POST /api/feedback ---

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := validation.ValidateCreate(payload); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	text, _ := validation.StringField(payload, "text")
	user, _ := validation.StringField(payload, "user")

	feedback := &models.Feedback{
		User:      user,
		Message:   text,
		Sentiment: h.classifier.Classify(r.Context(), text),
	}

	if err := h.store.Create(r.Context(), feedback); err != nil {
		h.respondStoreError(w, err)
		return
	}

	// Fire the notification in a background goroutine (non-blocking)
	go func() {
		event := notify.Event{
			ID:    feedback.ID.Hex(),
			User:  feedback.User,
			Label: feedback.Sentiment.Label,
		}
		if err := h.notifier.Publish(context.Background(), event); err != nil {
			h.logger.Warnf("failed to publish feedback notification: %v", err)
		}
	}()

	writeJSON(w, http.StatusCreated, feedback)
}

// --- GET /api/feedback ---

func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := parseListQuery(r.URL.Query())

	records, total, err := h.store.List(r.Context(), opts)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{
		Data: records,
		Meta: listMeta{
			Total:   total,
			Limit:   opts.Limit,
			Offset:  opts.Offset,
			HasMore: opts.Offset+int64(len(records)) < total,
		},
	})
}

// --- GET /api/feedback/{id} ---

func (h *FeedbackHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feedback)
}

// --- PUT /api/feedback/{id} ---

func (h *FeedbackHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := validation.ValidateUpdate(payload); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	text, hasText := validation.StringField(payload, "text")
	user, hasUser := validation.StringField(payload, "user")

	if !hasText && !hasUser {
		// Nothing to change. The id still has to resolve, so read the
		// record through and report its current state.
		feedback, err := h.store.GetByID(r.Context(), id)
		if err != nil {
			h.respondStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, feedback)
		return
	}

	var fields repository.UpdateFields
	if hasUser {
		fields.User = &user
	}
	if hasText {
		fields.Message = &text
		s := h.classifier.Classify(r.Context(), text)
		fields.Sentiment = &s
	}

	feedback, err := h.store.Update(r.Context(), id, fields)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feedback)
}

// --- DELETE /api/feedback/{id} ---

func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- GET /api/stats ---

func (h *FeedbackHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// --- GET /api/users/{username}/feedback ---

func (h *FeedbackHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := repository.ListOptions{
		Username: chi.URLParam(r, "username"),
		Limit:    parseLimit(q.Get("limit")),
		Offset:   parseOffset(q.Get("offset")),
	}

	records, total, err := h.store.List(r.Context(), opts)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{
		Data: records,
		Meta: listMeta{
			Total:   total,
			Limit:   opts.Limit,
			Offset:  opts.Offset,
			HasMore: opts.Offset+int64(len(records)) < total,
		},
	})
}

func (h *FeedbackHandler) respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func parseListQuery(q url.Values) repository.ListOptions {
	return repository.ListOptions{
		Sentiment: q.Get("sentiment"),
		User:      q.Get("user"),
		Search:    q.Get("search"),
		SortBy:    q.Get("sort"),
		SortOrder: q.Get("order"),
		Limit:     parseLimit(q.Get("limit")),
		Offset:    parseOffset(q.Get("offset")),
	}
}

// parseLimit clamps rather than rejects: anything that is not a positive
// integer falls back to the default, and oversized values hit the cap.
func parseLimit(raw string) int64 {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultLimit
	}
	if n > maxLimit {
		return maxLimit
	}
	return int64(n)
}

func parseOffset(raw string) int64 {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return int64(n)
}
