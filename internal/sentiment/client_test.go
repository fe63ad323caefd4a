package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"feedback-hub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze", r.URL.Path)

		var req struct {
			Text string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "love the new dashboard", req.Text)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"label":"positive","score":0.91,"details":{"compound":0.82}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zaptest.NewLogger(t).Sugar())
	got := c.Classify(context.Background(), "love the new dashboard")

	assert.Equal(t, models.Sentiment{Label: models.LabelPositive, Score: 0.91}, got)
}

func TestClassifyDegradesToUnknown(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, "definitely not json")
			},
		},
		{
			name: "label outside contract",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"label":"ecstatic","score":0.9}`)
			},
		},
		{
			name: "unknown label is reserved for the sentinel",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"label":"unknown","score":0.5}`)
			},
		},
		{
			name: "score above range",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"label":"positive","score":1.2}`)
			},
		},
		{
			name: "score below range",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"label":"negative","score":-0.1}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewClient(srv.URL, zaptest.NewLogger(t).Sugar())
			got := c.Classify(context.Background(), "some feedback")

			assert.Equal(t, models.UnknownSentiment(), got)
		})
	}
}

func TestClassifyServiceUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, zaptest.NewLogger(t).Sugar())
	got := c.Classify(context.Background(), "anything")

	assert.Equal(t, models.UnknownSentiment(), got)
}

func TestClassifyContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"label":"positive","score":0.9}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, zaptest.NewLogger(t).Sugar())
	got := c.Classify(ctx, "anything")

	assert.Equal(t, models.UnknownSentiment(), got)
}
