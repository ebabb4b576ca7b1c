// Package identity works out who is calling: a reader with a magic-link
// session, the admin with the signed cookie, both, or nobody.
package identity

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/layers-blog/domain"
)

type Resolver struct {
	sessions domain.SessionRepository
	cookie   *AdminCookie
}

func NewResolver(sessions domain.SessionRepository, cookie *AdminCookie) *Resolver {
	return &Resolver{
		sessions: sessions,
		cookie:   cookie,
	}
}

// Resolve never fails: a missing, expired or malformed credential is absent.
func (r *Resolver) Resolve(ctx context.Context, sessionToken, adminCookie string) domain.Credentials {
	var creds domain.Credentials
	if sessionToken != "" {
		email, err := r.sessions.GetSessionEmail(ctx, sessionToken)
		switch {
		case err == nil:
			creds.ReaderEmail = domain.NormalizeEmail(email)
		case !errors.Is(err, domain.ErrNotFound):
			logrus.Warnf("failed to look up session: %v", err)
		}
	}
	creds.Admin = r.cookie.Valid(adminCookie)
	return creds
}
