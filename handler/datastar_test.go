package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/workspacebilling/handler"
)

func TestIsDataStar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(r *http.Request)
		url   string
		want  bool
	}{
		{"plain request", func(*http.Request) {}, "/", false},
		{"accept header", func(r *http.Request) { r.Header.Set("Accept", "text/event-stream") }, "/", true},
		{"query param", func(*http.Request) {}, "/?datastar={}", true},
		{"content type", func(r *http.Request) { r.Header.Set("Content-Type", "application/x-datastar") }, "/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, tt.url, nil)
			tt.setup(r)
			assert.Equal(t, tt.want, handler.IsDataStar(r))
		})
	}
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	t.Run("plain redirect", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.Redirect("/settings/subscription").Render(rec, httptest.NewRequest(http.MethodPost, "/", nil)))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/settings/subscription", rec.Header().Get("Location"))
	})

	t.Run("custom code", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.RedirectWithCode("/x", http.StatusFound).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusFound, rec.Code)
	})

	t.Run("datastar redirect", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Accept", "text/event-stream")
		rec := httptest.NewRecorder()

		require.NoError(t, handler.Redirect("/settings/subscription").Render(rec, req))
		body := rec.Body.String()
		assert.Contains(t, body, "datastar-patch-elements")
		assert.Contains(t, body, "window.location.href")
		assert.Contains(t, body, "/settings/subscription")
	})
}

func TestSSE(t *testing.T) {
	t.Parallel()

	t.Run("requires datastar", func(t *testing.T) {
		t.Parallel()
		err := handler.SSE(func(*handler.Stream) error { return nil }).
			Render(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/events", nil))

		var httpErr handler.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("sends signals", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/events", nil)
		req.Header.Set("Accept", "text/event-stream")
		rec := httptest.NewRecorder()

		err := handler.SSE(func(stream *handler.Stream) error {
			if err := stream.SendSignals(map[string]any{"shouldShowSubscription": true}); err != nil {
				return err
			}
			return stream.SendSignal("subscriptionPlan", "team")
		}).Render(rec, req)
		require.NoError(t, err)

		body := rec.Body.String()
		assert.Contains(t, body, "datastar-patch-signals")
		assert.Contains(t, body, `"shouldShowSubscription":true`)
		assert.Contains(t, body, `"subscriptionPlan":"team"`)
	})

	t.Run("stops on client disconnect", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
		req.Header.Set("Accept", "text/event-stream")

		done := make(chan error, 1)
		go func() {
			done <- handler.SSE(func(stream *handler.Stream) error {
				<-stream.Done()
				return nil
			}).Render(httptest.NewRecorder(), req)
		}()

		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("stream did not stop")
		}
	})

	t.Run("handler error is returned", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/events", nil)
		req.Header.Set("Accept", "text/event-stream")

		err := handler.SSE(func(*handler.Stream) error { return assert.AnError }).Render(httptest.NewRecorder(), req)
		assert.Equal(t, assert.AnError, err)
	})
}
