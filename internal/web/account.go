package web

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/devlog/internal/api/middleware"
	"github.com/donaldgifford/devlog/internal/auth"
	"github.com/donaldgifford/devlog/internal/metrics"
)

type loginView struct {
	Next  string
	Email string
}

type signupView struct {
	MinPassword int
}

// LoginForm shows the login page. Signed-in users go to the listing.
func (h *Handler) LoginForm(c echo.Context) error {
	if middleware.CurrentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	v := loginView{
		Next:  c.QueryParam("next"),
		Email: c.QueryParam("email"),
	}
	return h.pages.render(c, http.StatusOK, pageLogin, "Log in", v)
}

// Login verifies credentials and starts a session.
func (h *Handler) Login(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	next := c.FormValue("next")

	user, err := h.auth.Login(c.Request().Context(), email, c.FormValue("password"))
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			return err
		}
		metrics.LoginsTotal.WithLabelValues("failure").Inc()

		q := url.Values{}
		q.Set("error", "Invalid email or password.")
		q.Set("email", email)
		if next != "" {
			q.Set("next", next)
		}
		return c.Redirect(http.StatusSeeOther, "/login?"+q.Encode())
	}

	if err := h.sessions.SetUser(c.Response(), c.Request(), user.ID); err != nil {
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.log.Info("user logged in", "user_id", user.ID)

	return c.Redirect(http.StatusSeeOther, safeNext(next))
}

// SignupForm shows the registration page.
func (h *Handler) SignupForm(c echo.Context) error {
	if middleware.CurrentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	v := signupView{MinPassword: h.auth.MinPasswordLength()}
	return h.pages.render(c, http.StatusOK, pageSignup, "Sign up", v)
}

// Signup registers an account and sends the user to log in.
func (h *Handler) Signup(c echo.Context) error {
	user, err := h.auth.SignUp(c.Request().Context(), c.FormValue("email"), c.FormValue("password"))
	if err != nil {
		msg := h.signupError(err)
		if msg == "" {
			return err
		}
		return c.Redirect(http.StatusSeeOther, flashURL("/signup", "error", msg))
	}

	h.log.Info("user signed up", "user_id", user.ID)
	return c.Redirect(http.StatusSeeOther, flashURL("/login", "message", "Account created. Please log in."))
}

func (h *Handler) signupError(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidEmail):
		return "Please enter a valid email address."
	case errors.Is(err, auth.ErrWeakPassword):
		return "Password must be at least " + plural(h.auth.MinPasswordLength(), "character") + "."
	case errors.Is(err, auth.ErrEmailTaken):
		return "That email is already registered."
	default:
		return ""
	}
}

// Logout ends the session.
func (h *Handler) Logout(c echo.Context) error {
	if err := h.sessions.Clear(c.Response(), c.Request()); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, flashURL("/login", "message", "You have been logged out."))
}

// tooManyAttempts answers throttled login and signup posts.
func (h *Handler) tooManyAttempts(c echo.Context) error {
	path := c.Request().URL.Path
	if path == "/login" {
		metrics.LoginsTotal.WithLabelValues("rate_limited").Inc()
	}
	h.log.Warn("auth attempt throttled", "path", path, "client", c.RealIP())
	return c.Redirect(http.StatusSeeOther, flashURL(path, "error", "Too many attempts. Please wait a minute and try again."))
}
