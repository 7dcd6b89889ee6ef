package api

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/toqaosama/portfolio-backend/database"
	"github.com/toqaosama/portfolio-backend/errs"
	"github.com/toqaosama/portfolio-backend/models"
	"github.com/toqaosama/portfolio-backend/storage"
)

const maxUploadMemory = 32 << 20

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	uploader    *storage.Uploader
}

func newProjectHandler(projectRepo *database.ProjectRepo, uploader *storage.Uploader) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		uploader:    uploader,
	}
}

// getAllProjects lists every project, newest first.
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, projects)
	}
}

func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := urlID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.Get(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, project)
	}
}

func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form models.ProjectForm
		if err := decodeJSON(w, r, &form); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, err)
			return
		}
		if err := form.Validate(); err != nil {
			h.responder.WriteError(w, errs.NewValidationError(err))
			return
		}

		project, err := h.projectRepo.Insert(r.Context(), form.Project())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, project)
	}
}

func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := urlID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var form models.ProjectForm
		if err := decodeJSON(w, r, &form); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, err)
			return
		}
		if err := form.Validate(); err != nil {
			h.responder.WriteError(w, errs.NewValidationError(err))
			return
		}

		project, err := h.projectRepo.Update(r.Context(), projectID, form.Project())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, project)
	}
}

func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := urlID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, DeleteResponse{Status: "success", Message: "project deleted successfully"})
	}
}

// uploadProjectImages uploads the "files" parts one by one and appends the
// stored URLs to the project in upload order. Skipped and failed files are
// reported alongside; they never abort the batch.
func (h projectHandler) uploadProjectImages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := ctxGetUser(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}
		projectID, err := urlID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if _, err := h.projectRepo.Get(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		files, closeAll, err := multipartFiles(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		defer closeAll()

		report := h.uploader.UploadImages(r.Context(), user.ID.String(), files)
		project, err := h.projectRepo.AppendImages(r.Context(), projectID, report.URLs)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().
			Str("projectID", projectID.String()).
			Int("uploaded", len(report.URLs)).
			Int("failed", len(report.Failures)).
			Msg("Processed project image batch")
		h.responder.WriteJSON(w, ImageUploadResponse{Project: project, URLs: report.URLs, Failures: report.Failures})
	}
}

// uploadImages stores images under the signed in user without attaching them
// to a project. The client puts the returned URLs into a project form.
func (h projectHandler) uploadImages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := ctxGetUser(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		files, closeAll, err := multipartFiles(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		defer closeAll()

		h.responder.WriteJSON(w, h.uploader.UploadImages(r.Context(), user.ID.String(), files))
	}
}

// multipartFiles opens every "files" (or "file") part in form order.
func multipartFiles(r *http.Request) ([]storage.File, func(), error) {
	if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "multipart/form-data") {
		return nil, func() {}, errs.NewUnsupportedMediaTypeError(ct, []string{"multipart/form-data"})
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, func() {}, errs.NewMalformedPayloadError("multipart", err)
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		headers = r.MultipartForm.File["file"]
	}

	var opened []io.Closer
	closeAll := func() {
		for _, c := range opened {
			c.Close()
		}
		r.MultipartForm.RemoveAll()
	}

	files := make([]storage.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, errs.NewMalformedPayloadError("multipart", err)
		}
		opened = append(opened, f)
		files = append(files, fileFromHeader(fh, f))
	}
	return files, closeAll, nil
}

func fileFromHeader(fh *multipart.FileHeader, body io.Reader) storage.File {
	return storage.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        body,
	}
}
