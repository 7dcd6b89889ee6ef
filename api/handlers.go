package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/toqaosama/portfolio-backend/config"
	"github.com/toqaosama/portfolio-backend/database"
	"github.com/toqaosama/portfolio-backend/errs"
	"github.com/toqaosama/portfolio-backend/services"
	"github.com/toqaosama/portfolio-backend/site"
	"github.com/toqaosama/portfolio-backend/storage"
)

const maxJSONBody = 1 << 20

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Database database.Database
	Site     *site.Site
	Contact  *services.ContactService
	Auth     *services.AuthService
	Uploader *storage.Uploader
	Broker   services.Subscriber
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, settings config.Settings) *routeHandlers {
	return &routeHandlers{
		siteHandler:       newSiteHandler(deps.Site, deps.Database, settings.Auth),
		contactHandler:    newContactHandler(deps.Contact, deps.Site),
		authHandler:       newAuthHandler(deps.Auth, settings.Auth),
		projectHandler:    newProjectHandler(deps.Database.ProjectRepo(), deps.Uploader),
		skillHandler:      newSkillHandler(deps.Database.SkillRepo()),
		experienceHandler: newExperienceHandler(deps.Database.ExperienceRepo()),
		messageHandler:    newMessageHandler(deps.Database.ContactMessageRepo(), deps.Broker),
	}
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewMaxBodySizeExceededError(maxErr.Limit)
		}
		if errors.Is(err, io.EOF) {
			return errs.NewBadRequestError("request body is empty")
		}
		return errs.NewInvalidJSONError(err)
	}
	return nil
}

// urlID parses the uuid path parameter name.
func urlID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, errs.NewBadRequestError("missing " + name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid " + name)
	}
	return id, nil
}
