package main

import (
	"archive-keeper/config"
	"archive-keeper/database"
	"archive-keeper/handlers"
	"archive-keeper/registry"
	"archive-keeper/storage"
	"archive-keeper/view"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded (%v); using process environment.", err)
	}

	configPath := config.GetConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration from %s: %v", configPath, err)
	}

	// Both documents must load before anything is served.
	rules, err := storage.LoadRules(cfg.RulesPath)
	if err != nil {
		log.Fatalf("Failed to load rules: %v", err)
	}
	pages, err := storage.LoadPages(cfg.PagesPath)
	if err != nil {
		log.Fatalf("Failed to load pages: %v", err)
	}
	log.Printf("Loaded %d rules from %s and %d pages from %s.", len(rules.Rules), cfg.RulesPath, len(pages.Pages), cfg.PagesPath)

	var mirror *database.Mirror
	if cfg.DBPath != "" {
		db, err := database.Open(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		mirror = database.NewMirror(db)
		defer mirror.Close()
		reportMirror(mirror)
	}

	reg := registry.New(rules, pages)

	app := fiber.New(fiber.Config{
		AppName:      "archive-keeper",
		Immutable:    true, // parsed form values are stored in the registry
		Views:        view.New(nil),
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${method} ${path}\n",
	}))

	handlers.SetupRoutes(app, reg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout()); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting server on %s...", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	flush(cfg, reg, mirror)
}

// flush writes the in-memory collections back out when configured to.
func flush(cfg *config.Config, reg *registry.Registry, mirror *database.Mirror) {
	rules, pages := reg.RuleDocument(), reg.PageDocument()

	if cfg.FlushOnShutdown {
		if err := storage.SaveRules(cfg.RulesPath, rules); err != nil {
			log.Printf("Failed to flush rules: %v", err)
		} else {
			log.Printf("Flushed %d rules to %s.", len(rules.Rules), cfg.RulesPath)
		}
		if err := storage.SavePages(cfg.PagesPath, pages); err != nil {
			log.Printf("Failed to flush pages: %v", err)
		} else {
			log.Printf("Flushed %d pages to %s.", len(pages.Pages), cfg.PagesPath)
		}
	}

	if mirror != nil {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		if err := mirror.Sync(ctx, rules, pages); err != nil {
			log.Printf("Failed to mirror collections: %v", err)
		}
	}
}

// reportMirror logs what the previous shutdown left in the mirror.
func reportMirror(mirror *database.Mirror) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rules, err := mirror.Rules(ctx)
	if err != nil {
		log.Printf("Failed to read mirrored rules: %v", err)
		return
	}
	pages, err := mirror.Pages(ctx)
	if err != nil {
		log.Printf("Failed to read mirrored pages: %v", err)
		return
	}
	log.Printf("Mirror holds %d rules and %d pages from the last shutdown.", len(rules), len(pages))
}
