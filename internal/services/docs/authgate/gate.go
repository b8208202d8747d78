// Package authgate decides whether a caller may mutate documents.
package authgate

import (
	apperrors "github.com/john129er/cms-project/internal/platform/errors"
	"github.com/john129er/cms-project/internal/services/docs/i18n"
	"github.com/john129er/cms-project/internal/services/docs/session"
)

// IsSignedIn reports whether sess carries a username.
func IsSignedIn(sess session.Session) bool {
	_, ok := session.Username(sess)
	return ok
}

// RequireSignedIn returns an Unauthorized error unless sess is signed in.
func RequireSignedIn(sess session.Session) error {
	if IsSignedIn(sess) {
		return nil
	}
	return apperrors.New(apperrors.CodeUnauthorized, i18n.Sprintf(i18n.KeySignInRequired))
}
