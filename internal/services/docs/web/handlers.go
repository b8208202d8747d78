package web

import (
	"log"
	"net/http"
	"strings"

	apperrors "github.com/john129er/cms-project/internal/platform/errors"
	"github.com/john129er/cms-project/internal/services/docs/document"
	"github.com/john129er/cms-project/internal/services/docs/i18n"
	"github.com/john129er/cms-project/internal/services/docs/render"
	"github.com/john129er/cms-project/internal/services/docs/session"
	"github.com/john129er/cms-project/internal/services/docs/web/httpx"
	"github.com/john129er/cms-project/internal/services/docs/web/templates"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request, sess session.Session) {
	order := document.ParseSortOrder(r.URL.Query().Get("sort"))
	names, err := s.svc.ListDocuments(httpx.RequestContext(r), order)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	view := templates.IndexView{Names: names, Descending: order == document.Descending}
	writePage(w, r, http.StatusOK, templates.IndexPage(s.page(sess, i18n.Sprintf(i18n.KeyTitleIndex)), view))
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request, sess session.Session) {
	name := r.PathValue("filename")
	rendered, err := s.svc.ViewDocument(httpx.RequestContext(r), sess, name)
	if err != nil {
		s.redirectHome(w, r, err)
		return
	}
	if rendered.ContentType == render.ContentTypeText {
		w.Header().Set("Content-Type", rendered.ContentType)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(rendered.Body); err != nil {
			log.Printf("write document failed name=%q err=%v", name, err)
		}
		return
	}
	writePage(w, r, http.StatusOK, templates.DocumentPage(s.page(sess, name), rendered.Body))
}

func (s *Server) handleNewForm(w http.ResponseWriter, r *http.Request, sess session.Session) {
	if err := s.svc.NewDocumentForm(sess); err != nil {
		s.redirectHome(w, r, err)
		return
	}
	s.renderNewForm(w, r, sess, http.StatusOK, templates.NewDocumentView{})
}

func (s *Server) renderNewForm(w http.ResponseWriter, r *http.Request, sess session.Session, status int, view templates.NewDocumentView) {
	view.Extensions = s.svc.Extensions()
	writePage(w, r, status, templates.NewDocumentPage(s.page(sess, i18n.Sprintf(i18n.KeyTitleNew)), view))
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request, sess session.Session) {
	view := templates.NewDocumentView{
		Filename: strings.TrimSpace(r.PostFormValue("filename")),
		Content:  r.PostFormValue("content"),
	}
	_, err := s.svc.CreateDocument(httpx.RequestContext(r), sess, view.Filename, []byte(view.Content))
	switch apperrors.CodeOf(err) {
	case apperrors.CodeEmptyName, apperrors.CodeInvalidName, apperrors.CodeUnsupportedExtension:
		s.renderNewForm(w, r, sess, apperrors.HTTPStatus(err), view)
		return
	}
	if err != nil {
		s.redirectHome(w, r, err)
		return
	}
	httpx.WriteRedirect(w, r, "/")
}

func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request, sess session.Session) {
	name := r.PathValue("filename")
	content, err := s.svc.EditDocument(httpx.RequestContext(r), sess, name)
	if err != nil {
		s.redirectHome(w, r, err)
		return
	}
	view := templates.EditView{Name: name, Content: string(content)}
	writePage(w, r, http.StatusOK, templates.EditPage(s.page(sess, i18n.Sprintf(i18n.KeyTitleEdit, name)), view))
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request, sess session.Session) {
	name := r.PathValue("filename")
	_, err := s.svc.UpdateDocument(httpx.RequestContext(r), sess, name, []byte(r.PostFormValue("content")))
	s.redirectHome(w, r, err)
}

func (s *Server) handleDestroy(w http.ResponseWriter, r *http.Request, sess session.Session) {
	_, err := s.svc.DeleteDocument(httpx.RequestContext(r), sess, r.PathValue("filename"))
	s.redirectHome(w, r, err)
}

func (s *Server) handleDuplicate(w http.ResponseWriter, r *http.Request, sess session.Session) {
	_, err := s.svc.DuplicateDocument(httpx.RequestContext(r), sess, r.PathValue("filename"))
	s.redirectHome(w, r, err)
}

func (s *Server) handleSignInForm(w http.ResponseWriter, r *http.Request, sess session.Session) {
	s.renderSignIn(w, r, sess, http.StatusOK, "")
}

func (s *Server) renderSignIn(w http.ResponseWriter, r *http.Request, sess session.Session, status int, username string) {
	view := templates.CredentialsView{Username: username}
	writePage(w, r, status, templates.SignInPage(s.page(sess, i18n.Sprintf(i18n.KeyTitleSignIn)), view))
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request, sess session.Session) {
	username := r.PostFormValue("username")
	err := s.svc.SignIn(httpx.RequestContext(r), sess, username, r.PostFormValue("password"))
	if err != nil {
		s.renderSignIn(w, r, sess, apperrors.HTTPStatus(err), username)
		return
	}
	httpx.WriteRedirect(w, r, "/")
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request, sess session.Session) {
	s.svc.SignOut(httpx.RequestContext(r), sess)
	httpx.WriteRedirect(w, r, "/")
}

func (s *Server) handleSignUpForm(w http.ResponseWriter, r *http.Request, sess session.Session) {
	s.renderSignUp(w, r, sess, http.StatusOK, "")
}

func (s *Server) renderSignUp(w http.ResponseWriter, r *http.Request, sess session.Session, status int, username string) {
	view := templates.CredentialsView{Username: username}
	writePage(w, r, status, templates.SignUpPage(s.page(sess, i18n.Sprintf(i18n.KeyTitleSignUp)), view))
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request, sess session.Session) {
	username := strings.TrimSpace(r.PostFormValue("username"))
	err := s.svc.SignUp(httpx.RequestContext(r), sess, username, r.PostFormValue("password"))
	if err != nil && apperrors.CodeOf(err) == apperrors.CodeUnknown {
		s.serverError(w, r, err)
		return
	}
	if err != nil {
		s.renderSignUp(w, r, sess, apperrors.HTTPStatus(err), username)
		return
	}
	httpx.WriteRedirect(w, r, "/users/signin")
}

// redirectHome sends the caller to the index. Domain failures already staged
// their message; anything else is a server error.
func (s *Server) redirectHome(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil && apperrors.CodeOf(err) == apperrors.CodeUnknown {
		s.serverError(w, r, err)
		return
	}
	httpx.WriteRedirect(w, r, "/")
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("request failed method=%s path=%s request_id=%s err=%v",
		r.Method, r.URL.Path, r.Header.Get("X-Request-ID"), err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
