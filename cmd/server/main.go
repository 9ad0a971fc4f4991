// main.go
//
// A construction materials catalog service: stores, brands, items, inventory and material attributes
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of materials-catalog.
// materials-catalog is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// materials-catalog is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with materials-catalog.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/materials-catalog/internal/cache"
	"github.com/localnerve/materials-catalog/internal/config"
	"github.com/localnerve/materials-catalog/internal/database"
	"github.com/localnerve/materials-catalog/internal/events"
	"github.com/localnerve/materials-catalog/internal/handlers"
	"github.com/localnerve/materials-catalog/internal/middleware"
	"github.com/localnerve/materials-catalog/internal/services"

	_ "github.com/localnerve/materials-catalog/docs/api" // Swagger docs
)

// @title Materials Catalog API
// @version 1.0.0
// @description Construction materials catalog: stores, categories, brands, items, inventory and per-material attributes
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/materials-catalog
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	entityCache := cache.New(cfg)
	defer entityCache.Close()

	publisher := events.New(cfg)
	defer publisher.Close()

	catalog := handlers.NewCatalogHandler(db, services.PolicyFromConfig(cfg), entityCache, publisher)
	log.Printf("Attribute category matching: %s", catalog.Policy.Mode)

	// Admin routes are open without an authorizer
	var validator services.SessionValidator
	if cfg.AuthzURL != "" {
		validator = services.NewAuthorizerValidator(cfg)
		log.Printf("Authorizer will be initialized on first authenticated request")
	} else {
		log.Printf("AUTHZ_URL not set, admin routes are unauthenticated")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("materials_catalog")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", catalog.Health(cfg))

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	catalog.Register(api.Group("/catalog"), middleware.AuthAdmin(validator))

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	log.Printf("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}
