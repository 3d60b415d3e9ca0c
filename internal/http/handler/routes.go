package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rpvscraper/internal/service"
)

// RegisterRoutes attaches the read-only HTTP API to app.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.PublicationService, gatherer prometheus.Gatherer) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	pub := app.Group("/publicacoes")
	pub.Get("/", ListPublications(svc))
	// Registered before /:id so "status" is not parsed as an id.
	pub.Get("/status", PublicationBoard(svc))
	pub.Get("/:id", GetPublication(svc))
	pub.Get("/:id/source", PublicationSourceURL(svc))
	pub.Get("/:id/pdf", PublicationPDF(svc))
}
