package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/prashantgrg01/funcards-backend/internal/domain"
	"github.com/prashantgrg01/funcards-backend/internal/repository"
	"github.com/prashantgrg01/funcards-backend/internal/service/auth"
)

type authContextKey string

const contextKeyUser authContextKey = "funcards-current-user"

type contextSetter interface {
	SetContext(context.Context)
}

// requireAuth ensures the request carries a valid, unrevoked bearer
// token before invoking the handler. On success the resolved user
// record is bound to the request context; on failure the request is
// terminated with the matching status and the handler never runs.
func (r *Router) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx, _, ok := r.ensureAuth(w, req)
		if !ok {
			return
		}
		if setter, ok := w.(contextSetter); ok {
			setter.SetContext(ctx)
		}
		next(w, req.WithContext(ctx))
	}
}

// ensureAuth validates the Authorization header and enriches the context.
func (r *Router) ensureAuth(w http.ResponseWriter, req *http.Request) (context.Context, *domain.User, bool) {
	token, err := bearerToken(req.Header.Get("Authorization"))
	if err != nil {
		r.logger.Warn("authorization header invalid", "error", err, "path", req.URL.Path)
		writeError(w, http.StatusUnauthorized, "authentication required")
		return req.Context(), nil, false
	}
	user, err := r.auth.Authorize(req.Context(), token)
	if err != nil {
		r.rejectAuthorization(w, req, err)
		return req.Context(), nil, false
	}
	ctx := context.WithValue(req.Context(), contextKeyUser, user)
	return ctx, user, true
}

// rejectAuthorization maps authorization failures onto the 403/404/500
// split. Signature failures and revoked sessions are reported the same
// way; callers cannot distinguish a forged token from a logged-out one.
func (r *Router) rejectAuthorization(w http.ResponseWriter, req *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrSessionRevoked):
		r.logger.Warn("token rejected", "error", err, "path", req.URL.Path)
		writeError(w, http.StatusForbidden, "invalid or revoked token")
	case errors.Is(err, repository.ErrNotFound):
		r.logger.Warn("token subject unknown", "path", req.URL.Path)
		writeError(w, http.StatusNotFound, "user not found")
	default:
		r.logger.Error("authorization failed", "error", err, "path", req.URL.Path)
		writeError(w, http.StatusInternalServerError, "authorization failed")
	}
}

// currentUserFromContext extracts the authenticated user from context.
func currentUserFromContext(ctx context.Context) (*domain.User, bool) {
	value := ctx.Value(contextKeyUser)
	if value == nil {
		return nil, false
	}
	user, ok := value.(*domain.User)
	return user, ok
}

func bearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header format")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("empty bearer token")
	}
	return token, nil
}
