package service

import (
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"daily-quest/internal/repository"
)

type testEnv struct {
	db         *gorm.DB
	users      *UserService
	catalog    *CatalogService
	selections *SelectionService
	missions   *MissionService
	progress   *ProgressService
	projects   *ProjectService
	quotes     *QuoteService
	reminders  *ReminderService
}

type plainHasher struct{}

func (plainHasher) HashPassword(password string) (string, error) { return "hash:" + password, nil }

func (plainHasher) ComparePassword(hash, password string) error {
	if hash != "hash:"+password {
		return ErrBadCredentials
	}
	return nil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	missionRepo := repository.NewMissionRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	env := &testEnv{
		db:         db,
		users:      NewUserService(repository.NewUserRepository(db), plainHasher{}),
		catalog:    NewCatalogService(repository.NewTemplateRepository(db)),
		selections: NewSelectionService(repository.NewSelectionRepository(db), time.UTC),
		missions:   NewMissionService(missionRepo, projectRepo),
		progress:   NewProgressService(repository.NewProgressRepository(db), missionRepo, time.UTC),
		projects:   NewProjectService(projectRepo, repository.NewProjectTaskRepository(db)),
		quotes:     NewQuoteService(repository.NewQuoteRepository(db)),
	}
	env.reminders = NewReminderService(env.selections, env.progress, env.quotes)
	return env
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func intPtr(v int) *int { return &v }
var fixedTime = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
