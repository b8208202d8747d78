// Package templates renders the document manager's pages as templ components.
package templates

import (
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"
	"golang.org/x/text/message"

	"github.com/john129er/cms-project/internal/services/docs/i18n"
)

// PageContext carries the per-request state every page shows.
type PageContext struct {
	Title    string
	Username string
	Message  string
	Loc      *message.Printer
}

// T formats a catalog message for the page.
func (p PageContext) T(key string, args ...any) string {
	if p.Loc == nil {
		return i18n.Sprintf(key, args...)
	}
	return p.Loc.Sprintf(key, args...)
}

// SignedIn reports whether the page is rendered for a signed-in user.
func (p PageContext) SignedIn() bool {
	return p.Username != ""
}

// htmlWriter keeps the first write error so components can write straight
// through and report once.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) component(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// Layout wraps its children in the page chrome: title, one-shot message and
// the signed-in status with sign-in or sign-out controls.
func Layout(page PageContext) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		h.text(page.Title)
		h.raw(`</title></head><body>`)
		if page.Message != "" {
			h.raw(`<p class="message">`)
			h.text(page.Message)
			h.raw(`</p>`)
		}
		h.raw(`<main>`)
		h.component(ctx, templ.GetChildren(ctx))
		h.raw(`</main><footer>`)
		if page.SignedIn() {
			h.raw(`<p class="user-status">`)
			h.text(page.T(i18n.KeySignedInAs, page.Username))
			h.raw(`</p><form method="post" action="/users/signout"><button type="submit">`)
			h.text(page.T(i18n.KeySignOut))
			h.raw(`</button></form>`)
		} else {
			h.raw(`<p class="user-status"><a href="/users/signin">`)
			h.text(page.T(i18n.KeySignIn))
			h.raw(`</a> <a href="/signup">`)
			h.text(page.T(i18n.KeySignUp))
			h.raw(`</a></p>`)
		}
		h.raw(`</footer></body></html>`)
		return h.err
	})
}

// withLayout renders body inside Layout.
func withLayout(page PageContext, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return Layout(page).Render(templ.WithChildren(ctx, body), w)
	})
}

// documentPath returns the escaped URL path of name plus an optional suffix.
func documentPath(name, suffix string) string {
	return "/" + url.PathEscape(name) + suffix
}
