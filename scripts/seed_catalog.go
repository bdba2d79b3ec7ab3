// Seeds a small demo catalog so a fresh install has something to browse.
//
// Usage: go run scripts/seed_catalog.go
//
// Safe to re-run: seeding is skipped when any topic already exists.

package main

import (
	"learntrack_backend/internal/config"
	"learntrack_backend/internal/model"
	"learntrack_backend/internal/repository"
	"learntrack_backend/internal/service"
	"learntrack_backend/pkg/database"
	"learntrack_backend/pkg/logger"
	"log"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	topicRepo := repository.NewTopicRepository(db)
	contentRepo := repository.NewContentRepository(db)
	catalog := service.NewCatalogService(topicRepo, contentRepo)

	count, err := topicRepo.Count()
	if err != nil {
		log.Fatalf("failed to inspect catalog: %v", err)
	}
	if count > 0 {
		log.Println("catalog is not empty, nothing to seed")
		return
	}

	goBasics, err := catalog.CreateTopic("Go Basics", "Syntax, tooling and the standard library", 1, nil)
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	concurrency, err := catalog.CreateTopic("Concurrency", "Goroutines, channels and synchronization", 1, &goBasics.ID)
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	web, err := catalog.CreateTopic("Web Services", "HTTP servers, middleware and persistence", 2, nil)
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	seedContents := []struct {
		topicID     uint
		title       string
		contentType model.ContentType
		url         string
		order       int
	}{
		{goBasics.ID, "Getting started", model.Video, "https://example.com/go/intro", 1},
		{goBasics.ID, "Types and functions", model.Notes, "https://example.com/go/types", 2},
		{goBasics.ID, "Practice: FizzBuzz", model.Exercise, "https://example.com/go/fizzbuzz", 3},
		{concurrency.ID, "Goroutines", model.Video, "https://example.com/go/goroutines", 1},
		{concurrency.ID, "Channels in depth", model.Notes, "https://example.com/go/channels", 2},
		{web.ID, "Your first HTTP server", model.Video, "https://example.com/go/http", 1},
		{web.ID, "Practice: REST endpoints", model.Exercise, "https://example.com/go/rest", 2},
	}

	for _, item := range seedContents {
		if _, err := catalog.CreateContent(item.topicID, item.title, item.contentType, item.url, "", item.order); err != nil {
			log.Fatalf("seed failed on %q: %v", item.title, err)
		}
	}

	log.Printf("seeded %d topics and %d content items", 3, len(seedContents))
}
