package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"feedback-hub/internal/models"
	"feedback-hub/internal/notify"
	"feedback-hub/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap/zaptest"
)

// mockStore implements repository.FeedbackStore with per-test functions.
type mockStore struct {
	listFn   func(ctx context.Context, opts repository.ListOptions) ([]models.Feedback, int64, error)
	getFn    func(ctx context.Context, id string) (*models.Feedback, error)
	createFn func(ctx context.Context, feedback *models.Feedback) error
	updateFn func(ctx context.Context, id string, fields repository.UpdateFields) (*models.Feedback, error)
	deleteFn func(ctx context.Context, id string) error
	statsFn  func(ctx context.Context) (*repository.Stats, error)
}

func (m *mockStore) List(ctx context.Context, opts repository.ListOptions) ([]models.Feedback, int64, error) {
	return m.listFn(ctx, opts)
}

func (m *mockStore) GetByID(ctx context.Context, id string) (*models.Feedback, error) {
	return m.getFn(ctx, id)
}

func (m *mockStore) Create(ctx context.Context, feedback *models.Feedback) error {
	return m.createFn(ctx, feedback)
}

func (m *mockStore) Update(ctx context.Context, id string, fields repository.UpdateFields) (*models.Feedback, error) {
	return m.updateFn(ctx, id, fields)
}

func (m *mockStore) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockStore) Stats(ctx context.Context) (*repository.Stats, error) {
	return m.statsFn(ctx)
}

type classifierFunc func(ctx context.Context, text string) models.Sentiment

func (f classifierFunc) Classify(ctx context.Context, text string) models.Sentiment {
	return f(ctx, text)
}

type notifierFunc func(ctx context.Context, event notify.Event) error

func (f notifierFunc) Publish(ctx context.Context, event notify.Event) error {
	return f(ctx, event)
}

func positiveClassifier(score float64) classifierFunc {
	return func(ctx context.Context, text string) models.Sentiment {
		return models.Sentiment{Label: models.LabelPositive, Score: score}
	}
}

func silentNotifier() notifierFunc {
	return func(ctx context.Context, event notify.Event) error { return nil }
}

func newDefaultHandler(t *testing.T, store repository.FeedbackStore) *FeedbackHandler {
	t.Helper()
	return NewFeedbackHandler(store, positiveClassifier(0.9), silentNotifier(), zaptest.NewLogger(t).Sugar())
}

func newTestRouter(h *FeedbackHandler) http.Handler {
	r := chi.NewRouter()
	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)
	r.Get("/api/stats", h.Stats)
	r.Get("/api/users/{username}/feedback", h.ListByUser)
	r.Route("/api/feedback", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

func serve(t *testing.T, h *FeedbackHandler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(w, req)
	return w
}

func TestCreateFeedback(t *testing.T) {
	var gotText string
	classifier := classifierFunc(func(ctx context.Context, text string) models.Sentiment {
		gotText = text
		return models.Sentiment{Label: models.LabelPositive, Score: 0.93}
	})

	store := &mockStore{
		createFn: func(ctx context.Context, feedback *models.Feedback) error {
			feedback.ID = bson.NewObjectID()
			feedback.CreatedAt = time.Now()
			feedback.UpdatedAt = feedback.CreatedAt
			return nil
		},
	}

	published := make(chan notify.Event, 1)
	notifier := notifierFunc(func(ctx context.Context, event notify.Event) error {
		published <- event
		return nil
	})

	h := NewFeedbackHandler(store, classifier, notifier, zaptest.NewLogger(t).Sugar())
	w := serve(t, h, http.MethodPost, "/api/feedback", `{"text":"  Love the new dashboard  ","user":" dana "}`)

	require.Equal(t, http.StatusCreated, w.Code)

	var got models.Feedback
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "dana", got.User)
	assert.Equal(t, "Love the new dashboard", got.Message)
	assert.Equal(t, models.LabelPositive, got.Sentiment.Label)
	assert.Equal(t, 0.93, got.Sentiment.Score)
	assert.False(t, got.ID.IsZero())

	// Classification runs on the trimmed text.
	assert.Equal(t, "Love the new dashboard", gotText)

	select {
	case event := <-published:
		assert.Equal(t, got.ID.Hex(), event.ID)
		assert.Equal(t, "dana", event.User)
		assert.Equal(t, models.LabelPositive, event.Label)
	case <-time.After(time.Second):
		t.Fatal("notification was never published")
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantBody []string
	}{
		{
			name:     "malformed json",
			body:     `{"text":`,
			wantBody: []string{"invalid request body"},
		},
		{
			name: "both fields missing",
			body: `{}`,
			wantBody: []string{
				"text is required and must be a non-empty string",
				"user is required and must be a non-empty string",
			},
		},
		{
			name:     "user missing",
			body:     `{"text":"hi there"}`,
			wantBody: []string{"user is required and must be a non-empty string"},
		},
		{
			name:     "text whitespace only",
			body:     `{"text":"   ","user":"dana"}`,
			wantBody: []string{"text is required and must be a non-empty string"},
		},
		{
			name:     "text wrong type",
			body:     `{"text":7,"user":"dana"}`,
			wantBody: []string{"text is required and must be a non-empty string"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{
				createFn: func(ctx context.Context, feedback *models.Feedback) error {
					t.Error("invalid payload must not reach the store")
					return nil
				},
			}
			h := newDefaultHandler(t, store)
			w := serve(t, h, http.MethodPost, "/api/feedback", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			for _, want := range tt.wantBody {
				assert.Contains(t, w.Body.String(), want)
			}
		})
	}
}

func TestCreateKeepsSentinelSentiment(t *testing.T) {
	classifier := classifierFunc(func(ctx context.Context, text string) models.Sentiment {
		return models.UnknownSentiment()
	})
	store := &mockStore{
		createFn: func(ctx context.Context, feedback *models.Feedback) error {
			feedback.ID = bson.NewObjectID()
			return nil
		},
	}

	h := NewFeedbackHandler(store, classifier, silentNotifier(), zaptest.NewLogger(t).Sugar())
	w := serve(t, h, http.MethodPost, "/api/feedback", `{"text":"whatever","user":"dana"}`)

	// A degraded classifier must never fail the write.
	require.Equal(t, http.StatusCreated, w.Code)

	var got models.Feedback
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.LabelUnknown, got.Sentiment.Label)
	assert.Equal(t, 0.5, got.Sentiment.Score)
}

func TestListFeedback(t *testing.T) {
	var gotOpts repository.ListOptions
	records := []models.Feedback{
		{ID: bson.NewObjectID(), User: "dana", Message: "love it"},
		{ID: bson.NewObjectID(), User: "daniel", Message: "fine I guess"},
	}
	store := &mockStore{
		listFn: func(ctx context.Context, opts repository.ListOptions) ([]models.Feedback, int64, error) {
			gotOpts = opts
			return records, 5, nil
		},
	}

	h := newDefaultHandler(t, store)
	w := serve(t, h, http.MethodGet, "/api/feedback?sentiment=positive&user=dan&search=dash&sort=score&order=asc&limit=2&offset=2", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, repository.ListOptions{
		Sentiment: "positive",
		User:      "dan",
		Search:    "dash",
		SortBy:    "score",
		SortOrder: "asc",
		Limit:     2,
		Offset:    2,
	}, gotOpts)

	var got listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got.Data, 2)
	assert.Equal(t, int64(5), got.Meta.Total)
	assert.True(t, got.Meta.HasMore)
}

func TestListClampsPagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int64
		wantOffset int64
	}{
		{"defaults", "", 50, 0},
		{"non-numeric", "?limit=abc&offset=xyz", 50, 0},
		{"negative", "?limit=-5&offset=-3", 50, 0},
		{"zero limit", "?limit=0", 50, 0},
		{"oversized limit capped", "?limit=5000&offset=30", 200, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotOpts repository.ListOptions
			store := &mockStore{
				listFn: func(ctx context.Context, opts repository.ListOptions) ([]models.Feedback, int64, error) {
					gotOpts = opts
					return []models.Feedback{}, 0, nil
				},
			}
			h := newDefaultHandler(t, store)
			w := serve(t, h, http.MethodGet, "/api/feedback"+tt.query, "")

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantLimit, gotOpts.Limit)
			assert.Equal(t, tt.wantOffset, gotOpts.Offset)
		})
	}
}

func TestListEmptyIsArray(t *testing.T) {
	store := &mockStore{
		listFn: func(ctx context.Context, opts repository.ListOptions) ([]models.Feedback, int64, error) {
			return []models.Feedback{}, 0, nil
		},
	}
	h := newDefaultHandler(t, store)
	w := serve(t, h, http.MethodGet, "/api/feedback", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)

	var got listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.False(t, got.Meta.HasMore)
}

func TestGetFeedbackByID(t *testing.T) {
	record := &models.Feedback{ID: bson.NewObjectID(), User: "dana", Message: "nice work"}
	store := &mockStore{
		getFn: func(ctx context.Context, id string) (*models.Feedback, error) {
			assert.Equal(t, record.ID.Hex(), id)
			return record, nil
		},
	}

	h := newDefaultHandler(t, store)
	w := serve(t, h, http.MethodGet, "/api/feedback/"+record.ID.Hex(), "")

	require.Equal(t, http.StatusOK, w.Code)

	var got models.Feedback
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, "nice work", got.Message)
}

func TestGetFeedbackByIDErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"invalid id", repository.ErrInvalidID, http.StatusBadRequest, "invalid feedback id"},
		{"not found", repository.ErrNotFound, http.StatusNotFound, "feedback not found"},
		{"store failure", repository.ErrInternal, http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{
				getFn: func(ctx context.Context, id string) (*models.Feedback, error) {
					return nil, tt.err
				},
			}
			h := newDefaultHandler(t, store)
			w := serve(t, h, http.MethodGet, "/api/feedback/whatever", "")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestUpdateFeedbackText(t *testing.T) {
	id := bson.NewObjectID()
	classifierCalls := 0
	classifier := classifierFunc(func(ctx context.Context, text string) models.Sentiment {
		classifierCalls++
		assert.Equal(t, "now it works", text)
		return models.Sentiment{Label: models.LabelPositive, Score: 0.8}
	})

	var gotFields repository.UpdateFields
	store := &mockStore{
		updateFn: func(ctx context.Context, gotID string, fields repository.UpdateFields) (*models.Feedback, error) {
			assert.Equal(t, id.Hex(), gotID)
			gotFields = fields
			return &models.Feedback{
				ID:        id,
				User:      "dana",
				Message:   "now it works",
				Sentiment: models.Sentiment{Label: models.LabelPositive, Score: 0.8},
			}, nil
		},
	}

	h := NewFeedbackHandler(store, classifier, silentNotifier(), zaptest.NewLogger(t).Sugar())
	w := serve(t, h, http.MethodPut, "/api/feedback/"+id.Hex(), `{"text":" now it works "}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, classifierCalls)

	require.NotNil(t, gotFields.Message)
	assert.Equal(t, "now it works", *gotFields.Message)
	require.NotNil(t, gotFields.Sentiment)
	assert.Equal(t, models.LabelPositive, gotFields.Sentiment.Label)
	assert.Nil(t, gotFields.User)
}

func TestUpdateFeedbackUserOnly(t *testing.T) {
	id := bson.NewObjectID()
	classifier := classifierFunc(func(ctx context.Context, text string) models.Sentiment {
		t.Error("a user-only update must not re-classify")
		return models.UnknownSentiment()
	})

	store := &mockStore{
		updateFn: func(ctx context.Context, gotID string, fields repository.UpdateFields) (*models.Feedback, error) {
			require.NotNil(t, fields.User)
			assert.Equal(t, "dee", *fields.User)
			assert.Nil(t, fields.Message)
			assert.Nil(t, fields.Sentiment)
			return &models.Feedback{ID: id, User: "dee", Message: "unchanged"}, nil
		},
	}

	h := NewFeedbackHandler(store, classifier, silentNotifier(), zaptest.NewLogger(t).Sugar())
	w := serve(t, h, http.MethodPut, "/api/feedback/"+id.Hex(), `{"user":"dee"}`)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateFeedbackNoFields(t *testing.T) {
	id := bson.NewObjectID()
	readThrough := false
	store := &mockStore{
		getFn: func(ctx context.Context, gotID string) (*models.Feedback, error) {
			readThrough = true
			assert.Equal(t, id.Hex(), gotID)
			return &models.Feedback{ID: id, User: "dana", Message: "unchanged"}, nil
		},
		updateFn: func(ctx context.Context, gotID string, fields repository.UpdateFields) (*models.Feedback, error) {
			t.Error("an empty update must not write")
			return nil, nil
		},
	}

	h := newDefaultHandler(t, store)
	w := serve(t, h, http.MethodPut, "/api/feedback/"+id.Hex(), `{}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, readThrough)
	assert.Contains(t, w.Body.String(), "unchanged")
}

func TestUpdateFeedbackValidation(t *testing.T) {
	store := &mockStore{
		updateFn: func(ctx context.Context, id string, fields repository.UpdateFields) (*models.Feedback, error) {
			t.Error("invalid payload must not reach the store")
			return nil, nil
		},
	}
	h := newDefaultHandler(t, store)

	t.Run("blank text", func(t *testing.T) {
		w := serve(t, h, http.MethodPut, "/api/feedback/abc", `{"text":"   "}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "text must be a non-empty string")
	})

	t.Run("malformed json", func(t *testing.T) {
		w := serve(t, h, http.MethodPut, "/api/feedback/abc", `{"text"`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid request body")
	})
}

func TestUpdateFeedbackErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid id", repository.ErrInvalidID, http.StatusBadRequest},
		{"not found", repository.ErrNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{
				updateFn: func(ctx context.Context, id string, fields repository.UpdateFields) (*models.Feedback, error) {
					return nil, tt.err
				},
			}
			h := newDefaultHandler(t, store)
			w := serve(t, h, http.MethodPut, "/api/feedback/whatever", `{"text":"x"}`)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestDeleteFeedback(t *testing.T) {
	id := bson.NewObjectID()
	store := &mockStore{
		deleteFn: func(ctx context.Context, gotID string) error {
			assert.Equal(t, id.Hex(), gotID)
			return nil
		},
	}

	h := newDefaultHandler(t, store)
	w := serve(t, h, http.MethodDelete, "/api/feedback/"+id.Hex(), "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestDeleteFeedbackErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"already deleted", repository.ErrNotFound, http.StatusNotFound},
		{"invalid id", repository.ErrInvalidID, http.StatusBadRequest},
		{"store failure", repository.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{
				deleteFn: func(ctx context.Context, id string) error { return tt.err },
			}
			h := newDefaultHandler(t, store)
			w := serve(t, h, http.MethodDelete, "/api/feedback/whatever", "")

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestStatsEndpoint(t *testing.T) {
	stats := &repository.Stats{
		Total: 7,
		ByLabel: map[string]int64{
			models.LabelPositive: 3,
			models.LabelNeutral:  2,
			models.LabelNegative: 1,
			models.LabelUnknown:  1,
		},
		AverageScore: 0.64,
	}
	store := &mockStore{
		statsFn: func(ctx context.Context) (*repository.Stats, error) { return stats, nil },
	}

	h := newDefaultHandler(t, store)
	w := serve(t, h, http.MethodGet, "/api/stats", "")

	require.Equal(t, http.StatusOK, w.Code)

	var got repository.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, *stats, got)
}

func TestListByUser(t *testing.T) {
	var gotOpts repository.ListOptions
	store := &mockStore{
		listFn: func(ctx context.Context, opts repository.ListOptions) ([]models.Feedback, int64, error) {
			gotOpts = opts
			return []models.Feedback{{ID: bson.NewObjectID(), User: "dana"}}, 1, nil
		},
	}

	h := newDefaultHandler(t, store)
	w := serve(t, h, http.MethodGet, "/api/users/dana/feedback?limit=5", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dana", gotOpts.Username)
	assert.Equal(t, int64(5), gotOpts.Limit)
	assert.Equal(t, int64(0), gotOpts.Offset)
	assert.Empty(t, gotOpts.User)
	assert.Empty(t, gotOpts.Search)
}

func TestUnmatchedRoute(t *testing.T) {
	h := newDefaultHandler(t, &mockStore{})
	w := serve(t, h, http.MethodGet, "/api/nope", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "route not found: GET /api/nope")
}

func TestMethodNotAllowed(t *testing.T) {
	h := newDefaultHandler(t, &mockStore{})
	w := serve(t, h, http.MethodPatch, "/api/feedback", "")

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), "method not allowed")
}
