package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/toqaosama/portfolio-backend/config"
	"github.com/toqaosama/portfolio-backend/errs"
	"github.com/toqaosama/portfolio-backend/services"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	auth      *services.AuthService
	settings  config.AuthSettings
}

func newAuthHandler(auth *services.AuthService, settings config.AuthSettings) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		auth:      auth,
		settings:  settings,
	}
}

func (h authHandler) sessionCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.settings.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h authHandler) signIn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds services.Credentials
		if err := decodeJSON(w, r, &creds); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		session, err := h.auth.SignInWithPassword(r.Context(), creds)
		if err != nil {
			h.logger.Warn().Err(err).Msg("Sign in failed")
			h.responder.WriteError(w, err)
			return
		}

		http.SetCookie(w, h.sessionCookie(session.Token, session.ExpiresAt))
		h.responder.WriteJSON(w, session)
	}
}

func (h authHandler) signUp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds services.Credentials
		if err := decodeJSON(w, r, &creds); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.auth.SignUp(r.Context(), creds)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().Str("email", user.Email).Msg("Created dashboard account")
		h.responder.WriteJSONStatus(w, http.StatusCreated, user)
	}
}

func (h authHandler) signOut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie := h.sessionCookie("", time.Unix(0, 0))
		cookie.MaxAge = -1
		http.SetCookie(w, cookie)
		h.responder.WriteJSON(w, map[string]string{"status": "signed_out"})
	}
}

// getUser returns the user for the request's session, or 401.
func (h authHandler) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := ctxGetUser(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewUnauthorizedError("not signed in"))
			return
		}
		h.responder.WriteJSON(w, user)
	}
}
