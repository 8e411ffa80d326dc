package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// Stream sends DataStar events over an open SSE connection.
type Stream struct {
	ctx context.Context
	sse *datastar.ServerSentEventGenerator
}

// Context is cancelled when the client goes away.
func (s *Stream) Context() context.Context {
	return s.ctx
}

// Done is closed when the client disconnects.
func (s *Stream) Done() <-chan struct{} {
	return s.ctx.Done()
}

// SendSignals patches frontend signals with the JSON encoding of v.
func (s *Stream) SendSignals(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.sse.PatchSignals(data)
}

func (s *Stream) SendSignal(name string, value any) error {
	return s.SendSignals(map[string]any{name: value})
}

// SSEHandler runs for the lifetime of the stream.
type SSEHandler func(stream *Stream) error

type sseResponse struct {
	handler SSEHandler
}

func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return NewHTTPError(http.StatusBadRequest, ErrNotDataStar.Error())
	}
	return s.handler(&Stream{ctx: r.Context(), sse: NewSSE(w, r)})
}

// SSE opens a DataStar stream and runs h until it returns.
//
//	return handler.SSE(func(stream *handler.Stream) error {
//		for v := range updates {
//			if err := stream.SendSignals(v); err != nil {
//				return err
//			}
//		}
//		return nil
//	})
func SSE(h SSEHandler) Response {
	return sseResponse{handler: h}
}
