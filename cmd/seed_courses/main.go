package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"coursequiz/internal/config"
	"coursequiz/internal/database"
	"coursequiz/internal/domain"
	"coursequiz/internal/logger"
	"coursequiz/internal/repository"

	"go.uber.org/zap"
)

// courseFixture matches the per-course JSON files: the file name (minus
// .json) is the course identifier.
type courseFixture struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Questions     []string `json:"questions"`
	KnowledgeText string   `json:"knowledgetext"`
}

func main() {
	coursesDir := flag.String("dir", "courses", "directory of per-course JSON files")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting course seeding", zap.String("dir", *coursesDir))
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.GetMigrateDSN()); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	repo := repository.NewCourseDatabaseAdapter(db)

	entries, err := os.ReadDir(*coursesDir)
	if err != nil {
		log.Fatal("Failed to read courses directory", zap.String("dir", *coursesDir), zap.Error(err))
	}

	seeded := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		path := filepath.Join(*coursesDir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			log.Error("Failed to read course file", zap.String("path", path), zap.Error(err))
			continue
		}
		var fixture courseFixture
		if err := json.Unmarshal(data, &fixture); err != nil {
			log.Error("Failed to parse course file", zap.String("path", path), zap.Error(err))
			continue
		}

		course := domain.NewCourse(id, fixture.Title, fixture.Description, fixture.Questions, fixture.KnowledgeText)
		if err := course.Validate(); err != nil {
			log.Error("Invalid course fixture", zap.String("path", path), zap.Error(err))
			continue
		}

		if err := repo.Create(ctx, course); err != nil {
			var domainErr *domain.DomainError
			if errors.As(err, &domainErr) && domainErr.Code == domain.ErrCourseExists {
				if err := repo.Update(ctx, course); err != nil {
					log.Error("Failed to update existing course", zap.String("course_id", course.ID), zap.Error(err))
					continue
				}
				log.Info("Updated course", zap.String("course_id", course.ID))
				seeded++
				continue
			}
			log.Error("Failed to create course", zap.String("course_id", course.ID), zap.Error(err))
			continue
		}
		log.Info("Created course", zap.String("course_id", course.ID),
			zap.Int("questions", len(course.Questions)))
		seeded++
	}
	log.Info("Course seeding finished", zap.Int("seeded", seeded))
}
