package api

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupPublicRoutes sets up the page, its fragments and the public JSON API
func setupPublicRoutes(r chi.Router, handlers *routeHandlers, contactLimiter *ipRateLimiter, assets fs.FS) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/", handlers.siteHandler.getPage())
		r.Get("/sections/{section}", handlers.siteHandler.getSection())
		r.Get("/login", handlers.siteHandler.getLogin())
		r.Get("/admin", handlers.siteHandler.getDashboard())

		r.Get("/api/projects", handlers.projectHandler.getAllProjects())
		r.Get("/api/skills", handlers.skillHandler.getAllSkills())
		r.Get("/api/experiences", handlers.experienceHandler.getAllExperiences())

		r.Group(func(r chi.Router) {
			r.Use(rateLimit(contactLimiter, "contact"))
			r.Post("/api/contact", handlers.contactHandler.submitContact())
			r.Post("/contact", handlers.contactHandler.submitContactForm())
		})

		r.Post("/api/auth/signin", handlers.authHandler.signIn())
		r.Post("/api/auth/signup", handlers.authHandler.signUp())
		r.Post("/api/auth/signout", handlers.authHandler.signOut())
		r.Get("/api/auth/user", handlers.authHandler.getUser())
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Handle("/site.css", http.FileServerFS(assets))
	r.Handle("/placeholder.svg", http.FileServerFS(assets))
}

// setupAdminRoutes sets up all routes with authentication
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		// Project Handler endpoints
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Post("/projects", handlers.projectHandler.createProject())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())
		r.Put("/project/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())
		r.Post("/project/{projectID}/images", handlers.projectHandler.uploadProjectImages())
		r.Post("/uploads", handlers.projectHandler.uploadImages())

		// Skill Handler endpoints
		r.Get("/skills", handlers.skillHandler.getAllSkills())
		r.Post("/skills", handlers.skillHandler.createSkill())
		r.Get("/skill/{skillID}", handlers.skillHandler.getSkill())
		r.Put("/skill/{skillID}", handlers.skillHandler.updateSkill())
		r.Delete("/skill/{skillID}", handlers.skillHandler.deleteSkill())

		// Experience Handler endpoints
		r.Get("/experiences", handlers.experienceHandler.getAllExperiences())
		r.Post("/experiences", handlers.experienceHandler.createExperience())
		r.Get("/experience/{experienceID}", handlers.experienceHandler.getExperience())
		r.Put("/experience/{experienceID}", handlers.experienceHandler.updateExperience())
		r.Delete("/experience/{experienceID}", handlers.experienceHandler.deleteExperience())

		// Contact messages are read-only
		r.Get("/contacts", handlers.messageHandler.getAllMessages())
		r.Get("/contacts/stream", handlers.messageHandler.streamMessages())
	})
}
