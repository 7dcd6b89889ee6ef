package api

import (
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/toqaosama/portfolio-backend/errs"
	"github.com/toqaosama/portfolio-backend/models"
	"github.com/toqaosama/portfolio-backend/services"
	"github.com/toqaosama/portfolio-backend/site"
)

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	contact   *services.ContactService
	site      *site.Site
}

func newContactHandler(contact *services.ContactService, s *site.Site) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		contact:   contact,
		site:      s,
	}
}

// outcomeStatus maps a submission outcome to an HTTP status. A saved message
// is a success even when the notification failed.
func outcomeStatus(outcome services.ContactOutcome) int {
	switch {
	case outcome.Saved():
		return http.StatusCreated
	case outcome.Err != nil:
		return errs.StatusCode(outcome.Err)
	}
	return http.StatusInternalServerError
}

// submitContact handles the JSON contact endpoint.
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sub models.ContactSubmission
		if err := decodeJSON(w, r, &sub); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		outcome := h.contact.Submit(r.Context(), sub)
		h.responder.WriteJSONStatus(w, outcomeStatus(outcome), outcome)
	}
}

// submitContactForm handles the page form and answers with the result
// fragment. It always answers 200 so htmx swaps the fragment in.
func (h contactHandler) submitContactForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("form", err))
			return
		}
		sub := models.ContactSubmission{
			Name:    r.PostForm.Get("name"),
			Email:   r.PostForm.Get("email"),
			Subject: r.PostForm.Get("subject"),
			Message: r.PostForm.Get("message"),
		}

		outcome := h.contact.Submit(r.Context(), sub)
		h.responder.WriteHTML(w, http.StatusOK, func(w io.Writer) error {
			return h.site.RenderContactOutcome(w, outcome)
		})
	}
}
