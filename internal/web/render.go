// Package web serves the server-rendered feedback form, confirmation page
// and admin dashboard.
package web

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/AnshRaj112/feedbackhub-backend/internal/logging"
)

// htmlWriter keeps the first write error so components can emit markup
// without checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

// raw writes trusted markup.
func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// rawf formats trusted markup. Untrusted values must go through esc.
func (h *htmlWriter) rawf(format string, args ...any) {
	if h.err != nil {
		return
	}
	_, h.err = fmt.Fprintf(h.w, format, args...)
}

func (h *htmlWriter) text(s string) { h.raw(esc(s)) }

func (h *htmlWriter) child(ctx context.Context, c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

func esc(s string) string { return templ.EscapeString(s) }

func component(fn func(ctx context.Context, h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		fn(ctx, h)
		return h.err
	})
}

func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	templ.Handler(c,
		templ.WithStatus(status),
		templ.WithErrorHandler(func(r *http.Request, err error) http.Handler {
			logging.Ctx(r.Context()).Error().Err(err).Msg("failed to render page")
			return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			})
		}),
	).ServeHTTP(w, r)
}
