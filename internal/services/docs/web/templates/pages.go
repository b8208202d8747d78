package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/john129er/cms-project/internal/services/docs/i18n"
)

// IndexView lists the documents.
type IndexView struct {
	Names      []string
	Descending bool
}

// IndexPage lists documents with their actions for signed-in users.
func IndexPage(page PageContext, view IndexView) templ.Component {
	return withLayout(page, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<nav class="sort">`)
		if view.Descending {
			h.raw(`<a href="/?sort=ascending">`)
			h.text(page.T(i18n.KeySortAscending))
		} else {
			h.raw(`<a href="/?sort=descending">`)
			h.text(page.T(i18n.KeySortDesc))
		}
		h.raw(`</a></nav>`)
		if len(view.Names) == 0 {
			h.raw(`<p class="empty">`)
			h.text(page.T(i18n.KeyNoDocuments))
			h.raw(`</p>`)
		} else {
			h.raw(`<ul class="documents">`)
			for _, name := range view.Names {
				h.raw(`<li><a href="`)
				h.text(documentPath(name, ""))
				h.raw(`">`)
				h.text(name)
				h.raw(`</a>`)
				if page.SignedIn() {
					h.raw(` <a href="`)
					h.text(documentPath(name, "/edit"))
					h.raw(`">`)
					h.text(page.T(i18n.KeyEdit))
					h.raw(`</a>`)
					actionButton(h, documentPath(name, "/duplicate"), page.T(i18n.KeyDuplicate))
					actionButton(h, documentPath(name, "/destroy"), page.T(i18n.KeyDelete))
				}
				h.raw(`</li>`)
			}
			h.raw(`</ul>`)
		}
		if page.SignedIn() {
			h.raw(`<p><a href="/new">`)
			h.text(page.T(i18n.KeyNewDocument))
			h.raw(`</a></p>`)
		}
		return h.err
	}))
}

func actionButton(h *htmlWriter, action, label string) {
	h.raw(` <form class="inline" method="post" action="`)
	h.text(action)
	h.raw(`"><button type="submit">`)
	h.text(label)
	h.raw(`</button></form>`)
}

// DocumentPage shows a rendered markdown document inside the layout. body is
// trusted HTML produced by the renderer.
func DocumentPage(page PageContext, body []byte) templ.Component {
	return withLayout(page, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<article class="document">`)
		h.component(ctx, templ.Raw(string(body)))
		h.raw(`</article>`)
		return h.err
	}))
}

// NewDocumentView pre-fills the new-document form.
type NewDocumentView struct {
	Filename   string
	Content    string
	Extensions []string
}

// NewDocumentPage is the new-document form.
func NewDocumentPage(page PageContext, view NewDocumentView) templ.Component {
	return withLayout(page, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<form method="post" action="/create"><label for="filename">`)
		h.text(page.T(i18n.KeyFieldFilename))
		h.raw(`</label> <input name="filename" id="filename" type="text" value="`)
		h.text(view.Filename)
		h.raw(`"><label for="content">`)
		h.text(page.T(i18n.KeyFieldContent))
		h.raw(`</label><textarea name="content" id="content" rows="20" cols="80">`)
		h.text(view.Content)
		h.raw(`</textarea><button type="submit">`)
		h.text(page.T(i18n.KeyCreate))
		h.raw(`</button></form>`)
		if len(view.Extensions) > 0 {
			h.raw(`<p class="hint">`)
			for i, ext := range view.Extensions {
				if i > 0 {
					h.raw(`, `)
				}
				h.text(ext)
			}
			h.raw(`</p>`)
		}
		return h.err
	}))
}

// EditView is the edit form of one document.
type EditView struct {
	Name    string
	Content string
}

// EditPage is the edit form.
func EditPage(page PageContext, view EditView) templ.Component {
	return withLayout(page, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<form method="post" action="`)
		h.text(documentPath(view.Name, ""))
		h.raw(`"><label for="content">`)
		h.text(page.T(i18n.KeyEditing, view.Name))
		h.raw(`</label><textarea name="content" id="content" rows="20" cols="80">`)
		h.text(view.Content)
		h.raw(`</textarea><button type="submit">`)
		h.text(page.T(i18n.KeySaveChanges))
		h.raw(`</button></form>`)
		return h.err
	}))
}

// CredentialsView pre-fills the sign-in and sign-up forms.
type CredentialsView struct {
	Username string
}

// SignInPage is the sign-in form.
func SignInPage(page PageContext, view CredentialsView) templ.Component {
	return withLayout(page, credentialsForm(page, view, "/users/signin", page.T(i18n.KeySignIn), ""))
}

// SignUpPage is the sign-up form.
func SignUpPage(page PageContext, view CredentialsView) templ.Component {
	return withLayout(page, credentialsForm(page, view, "/signup", page.T(i18n.KeySignUp), page.T(i18n.KeyPasswordHint)))
}

func credentialsForm(page PageContext, view CredentialsView, action, submit, hint string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<form method="post" action="`)
		h.text(action)
		h.raw(`"><label for="username">`)
		h.text(page.T(i18n.KeyFieldUsername))
		h.raw(`</label> <input name="username" id="username" type="text" value="`)
		h.text(view.Username)
		h.raw(`"> <label for="password">`)
		h.text(page.T(i18n.KeyFieldPassword))
		h.raw(`</label> <input name="password" id="password" type="password">`)
		if hint != "" {
			h.raw(`<p class="hint">`)
			h.text(hint)
			h.raw(`</p>`)
		}
		h.raw(`<button type="submit">`)
		h.text(submit)
		h.raw(`</button></form>`)
		return h.err
	})
}
