package billing

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/workspacebilling/binder"
	"github.com/dmitrymomot/workspacebilling/handler"
	"github.com/dmitrymomot/workspacebilling/pkg/i18n"
	"github.com/dmitrymomot/workspacebilling/pkg/logger"
	"github.com/dmitrymomot/workspacebilling/pkg/store"
	"github.com/dmitrymomot/workspacebilling/svc/session"
)

// maxBodySize caps JSON request bodies.
const maxBodySize = 64 << 10

// Module serves the subscription view and the guarded deletion flow.
type Module struct {
	session    *session.Session
	translator *i18n.Translator
	logger     *slog.Logger
}

type Option func(*Module)

func WithLogger(l *slog.Logger) Option {
	return func(m *Module) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithTranslator enables Accept-Language negotiation for prompt texts.
func WithTranslator(t *i18n.Translator) Option {
	return func(m *Module) {
		m.translator = t
	}
}

func New(sess *session.Session, opts ...Option) *Module {
	m := &Module{session: sess, logger: logger.Discard()}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(logger.Component("billing"))
	return m
}

// Handle returns the module router.
//
//	r.Mount("/", billing.New(sess).Handle())
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()
	if m.translator != nil {
		r.Use(i18n.Middleware(m.translator))
	}

	wrap := func(h handler.HandlerFunc) http.HandlerFunc {
		return handler.Wrap(h, handler.WithErrorHandler(handler.LoggingErrorHandler(m.logger)))
	}

	r.Get("/subscription", wrap(m.getSubscription))
	r.Get("/subscription/stream", wrap(m.streamSubscription))

	r.Patch("/account", wrap(m.patchAccount))

	r.Route("/workspaces/{id}", func(r chi.Router) {
		r.Put("/", wrap(m.putWorkspace))
		r.Delete("/", wrap(m.deleteWorkspace))
	})

	r.Route("/deletion-prompt", func(r chi.Router) {
		r.Get("/", wrap(m.getPrompt))
		r.Post("/confirm", wrap(m.confirmPrompt))
		r.Post("/cancel", wrap(m.cancelPrompt))
	})

	return r
}

func (m *Module) getSubscription(r *http.Request) handler.Response {
	return handler.JSON(m.session.View())
}

// streamSubscription pushes the view as DataStar signals on every committed
// snapshot until the client disconnects.
func (m *Module) streamSubscription(r *http.Request) handler.Response {
	return handler.SSE(func(stream *handler.Stream) error {
		for snap := range m.session.Store().Watch(stream.Context()) {
			if err := stream.SendSignals(signalsFromView(session.ViewFromSnapshot(snap))); err != nil {
				return err
			}
		}
		return nil
	})
}

func (m *Module) patchAccount(r *http.Request) handler.Response {
	var req accountRequest
	if err := decode(r, &req); err != nil {
		return handler.JSONError(err)
	}
	if req.OutstandingBalance != nil && *req.OutstandingBalance < 0 {
		return handler.JSONError(ErrNegativeBalance)
	}
	if err := committed(m.session.Store().MergeAccount(r.Context(), req.patch())); err != nil {
		return handler.JSONError(httpError(err))
	}
	return handler.JSON(m.session.View())
}

func (m *Module) putWorkspace(r *http.Request) handler.Response {
	id, err := workspaceID(r)
	if err != nil {
		return handler.JSONError(err)
	}

	var req workspaceRequest
	if err := decode(r, &req); err != nil {
		return handler.JSONError(err)
	}
	if req.Type != nil && !req.Type.Valid() {
		return handler.JSONError(ErrInvalidType)
	}

	if err := committed(m.session.Store().MergePolicy(r.Context(), id, req.patch())); err != nil {
		return handler.JSONError(httpError(err))
	}

	p, _ := m.session.Store().Snapshot().Policy(id)
	return handler.JSON(p)
}

// deleteWorkspace answers 409 with the prompt when the guard blocks.
func (m *Module) deleteWorkspace(r *http.Request) handler.Response {
	id, err := workspaceID(r)
	if err != nil {
		return handler.JSONError(err)
	}

	blocked, err := m.session.DeleteWorkspace(r.Context(), id)
	if err := committed(err); err != nil {
		return handler.JSONError(httpError(err))
	}
	if blocked {
		prompt := m.session.Guard().Prompt(r.Context())
		if handler.IsDataStar(r) {
			return handler.SSE(func(stream *handler.Stream) error {
				return stream.SendSignals(promptSignals{DeletionPrompt: prompt})
			})
		}
		return handler.JSON(prompt,
			handler.WithJSONStatus(http.StatusConflict),
			handler.WithJSONMeta(map[string]any{"blocked": true}),
		)
	}
	return handler.Empty()
}

func (m *Module) getPrompt(r *http.Request) handler.Response {
	return handler.JSON(m.session.Guard().Prompt(r.Context()))
}

func (m *Module) confirmPrompt(r *http.Request) handler.Response {
	guard := m.session.Guard()

	ctx, nav := withNavigation(r.Context())
	if !guard.Confirm(ctx) {
		return handler.JSONError(ErrNoPromptOpen)
	}

	route := nav.Route()
	if route == "" {
		route = guard.SettlementRoute()
	}
	return handler.Redirect(route)
}

func (m *Module) cancelPrompt(r *http.Request) handler.Response {
	if !m.session.Guard().Cancel(r.Context()) {
		return handler.JSONError(ErrNoPromptOpen)
	}
	return handler.Empty()
}

func workspaceID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidWorkspaceID
	}
	return id, nil
}

// committed treats a persistence failure as success: the store keeps the
// change in memory and logs the failure itself.
func committed(err error) error {
	if errors.Is(err, store.ErrPersistFailed) {
		return nil
	}
	return err
}

func decode(r *http.Request, v any) error {
	if err := binder.JSON(nil, r, v, maxBodySize); err != nil {
		return errors.Join(ErrInvalidBody, err)
	}
	return nil
}
