package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	domain "github.com/donaldgifford/devlog/pkg/types"
)

const userKey = "user"

// SessionReader resolves the signed-in user ID from a request.
type SessionReader interface {
	UserID(r *http.Request) (string, bool)
}

// UserLoader fetches a user by ID.
type UserLoader interface {
	User(ctx context.Context, id string) (*domain.User, error)
}

// LoadUser returns Echo middleware that resolves the session cookie into a
// user available through CurrentUser. A stale or unknown session is treated
// as signed out.
func LoadUser(sessions SessionReader, users UserLoader, log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := sessions.UserID(c.Request())
			if !ok {
				return next(c)
			}

			u, err := users.User(c.Request().Context(), id)
			if err != nil {
				log.Debug("session user not loaded", "user_id", id, "error", err)
				return next(c)
			}

			c.Set(userKey, u)
			return next(c)
		}
	}
}

// CurrentUser returns the signed-in user, or nil.
func CurrentUser(c echo.Context) *domain.User {
	u, _ := c.Get(userKey).(*domain.User)
	return u
}

// RequireUser returns Echo middleware that redirects anonymous visitors to
// the login page, remembering where they were going.
func RequireUser(loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentUser(c) != nil {
				return next(c)
			}
			q := url.Values{}
			q.Set("error", "Please log in to continue.")
			q.Set("next", c.Request().URL.Path)
			return c.Redirect(http.StatusSeeOther, loginPath+"?"+q.Encode())
		}
	}
}
