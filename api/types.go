package api

import (
	"github.com/toqaosama/portfolio-backend/models"
	"github.com/toqaosama/portfolio-backend/storage"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	siteHandler       siteHandler
	contactHandler    contactHandler
	authHandler       authHandler
	projectHandler    projectHandler
	skillHandler      skillHandler
	experienceHandler experienceHandler
	messageHandler    messageHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
	Cause   string `json:"cause,omitempty"`
}

// ImageUploadResponse reports an image batch attached to a project.
type ImageUploadResponse struct {
	Project  models.Project    `json:"project"`
	URLs     []string          `json:"urls"`
	Failures []storage.Failure `json:"failures"`
}

type DeleteResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
