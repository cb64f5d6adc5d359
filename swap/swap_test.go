package swap

import (
	"fmt"
	"testing"
	"time"

	"github.com/slotswap/slotswap_backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database. A single connection keeps
// every goroutine in a test on the same sqlite instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Event{}, &models.SwapRequest{}))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "password123",
		Timezone: "UTC",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

var testDay = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func at(hour int) time.Time {
	return testDay.Add(time.Duration(hour) * time.Hour)
}

func createSlot(t *testing.T, db *gorm.DB, owner uint, title string, startHour, endHour int, status string) *models.Event {
	t.Helper()

	event, err := NewRegistry(db).Create(owner, title, at(startHour), at(endHour), status)
	require.NoError(t, err)
	return event
}

func getSlot(t *testing.T, db *gorm.DB, id uint) *models.Event {
	t.Helper()

	event, err := NewRegistry(db).Get(id)
	require.NoError(t, err)
	return event
}

func getRequest(t *testing.T, db *gorm.DB, id uint) *models.SwapRequest {
	t.Helper()

	request, err := NewLedger(db).Get(id)
	require.NoError(t, err)
	return request
}
