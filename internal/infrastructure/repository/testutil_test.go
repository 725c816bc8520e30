package repository

import (
	"errors"
	"os"
	"sync"
	"testing"

	"courseplatform/internal/domain"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var errMissingDSN = errors.New("missing TEST_POSTGRES_DSN")

var (
	dbOnce sync.Once
	testDB *gorm.DB
	dbErr  error
)

// testDatabase поднимает общий коннект один раз на пакет. Без
// TEST_POSTGRES_DSN интеграционные тесты скипаются.
func testDatabase(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		dsn := os.Getenv("TEST_POSTGRES_DSN")
		if dsn == "" {
			dbErr = errMissingDSN
			return
		}

		var err error
		testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			TranslateError: true,
			Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err != nil {
			dbErr = err
			return
		}

		dbErr = testDB.AutoMigrate(
			&domain.User{},
			&domain.Course{},
			&domain.Video{},
			&domain.CourseAccess{},
			&domain.VideoProgress{},
		)
	})

	if errors.Is(dbErr, errMissingDSN) {
		tb.Skip("set TEST_POSTGRES_DSN to run repo integration tests")
	}
	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return testDB
}

func seedUser(tb testing.TB, db *gorm.DB, role string) *domain.User {
	tb.Helper()
	u := &domain.User{
		ID:       uuid.New(),
		Name:     "Test User",
		Email:    uuid.NewString() + "@example.com",
		Password: "hash",
		Role:     role,
	}
	if err := db.Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func seedCourse(tb testing.TB, db *gorm.DB, title string) *domain.Course {
	tb.Helper()
	c := &domain.Course{
		ID:          uuid.New(),
		Title:       title,
		Description: "desc",
		Price:       100,
	}
	if err := db.Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func seedVideo(tb testing.TB, db *gorm.DB, courseID uuid.UUID, title string, order int) *domain.Video {
	tb.Helper()
	v := &domain.Video{
		ID:       uuid.New(),
		CourseID: courseID,
		Title:    title,
		URL:      "https://youtu.be/dQw4w9WgXcQ",
		Order:    order,
	}
	if err := db.Create(v).Error; err != nil {
		tb.Fatalf("seed video: %v", err)
	}
	return v
}
