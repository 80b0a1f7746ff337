package main

import (
	"context"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskboard/internal/config"
	"taskboard/internal/db"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// demoTasks are the sample records created for the admin account.
var demoTasks = []model.Task{
	{Title: "Review open pull requests", Description: "Go through the review queue before standup", Status: model.TaskStatusInProgress},
	{Title: "Write onboarding notes", Description: "Document the local setup for new teammates", Status: model.TaskStatusTodo},
	{Title: "Rotate staging credentials", Description: "", Status: model.TaskStatusDone},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.UserProfile{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	adminEmail := getEnv("ADMIN_EMAIL", "admin@taskboard.local")
	adminPassword := getEnv("ADMIN_PASSWORD", "admin-password")
	adminName := getEnv("ADMIN_NAME", "Administrator")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	admin, created, err := ensureAdmin(ctx, userRepo, profileRepo, adminEmail, adminPassword, adminName)
	if err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	if created {
		log.Printf("Created admin user %s", adminEmail)
	} else {
		log.Printf("Admin user %s already exists", adminEmail)
	}

	seeded, skipped, err := seedTasks(ctx, taskRepo, admin, demoTasks)
	if err != nil {
		log.Fatalf("Failed to seed tasks: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Tasks created: %d", seeded)
	log.Printf("  - Tasks skipped (already present): %d", skipped)
}

// ensureAdmin creates the admin user if missing and promotes its profile.
func ensureAdmin(ctx context.Context, users repository.UserRepository, profiles repository.ProfileRepository, email, password, name string) (*model.User, bool, error) {
	existing, err := users.FindByEmail(ctx, email)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	created := false
	admin := existing
	if admin == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, false, err
		}
		admin = &model.User{
			Name:         name,
			Email:        email,
			PasswordHash: string(hash),
		}
		if err := users.Create(ctx, admin); err != nil {
			return nil, false, err
		}
		created = true
	}

	// Profile upsert plus promotion: the default role is user.
	if _, err := profiles.GetOrCreate(ctx, admin.ID); err != nil {
		return nil, false, err
	}
	if err := profiles.SetRole(ctx, admin.ID, model.RoleAdmin); err != nil {
		return nil, false, err
	}

	return admin, created, nil
}

// seedTasks creates the demo tasks, skipping titles the admin already has.
func seedTasks(ctx context.Context, tasks repository.TaskRepository, owner *model.User, fixtures []model.Task) (seeded int, skipped int, err error) {
	existing, err := tasks.ListByOwner(ctx, owner.ID)
	if err != nil {
		return 0, 0, err
	}
	have := make(map[string]bool, len(existing))
	for _, t := range existing {
		have[t.Title] = true
	}

	for _, fixture := range fixtures {
		if have[fixture.Title] {
			skipped++
			continue
		}
		task := fixture
		task.OwnerID = owner.ID
		if err := tasks.Create(ctx, &task); err != nil {
			return seeded, skipped, err
		}
		seeded++
	}
	return seeded, skipped, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
