package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"everyday-planner/internal/model"
	"everyday-planner/internal/repository"
)

var testDBSeq atomic.Int64

// newTestDB opens an isolated in-memory database. The named shared-cache
// DSN keeps the schema alive across pooled connections.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := repository.NewDB(dsn)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

type testEnv struct {
	db *gorm.DB

	users     *repository.UserRepository
	holidays  *HolidayService
	templates *TemplateService
	instances *InstanceService
	plans     *PlanService
	checkins  *CheckinService
	stats     *StatsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	userRepo := repository.NewUserRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	instanceRepo := repository.NewInstanceRepository(db)
	checkinRepo := repository.NewCheckinRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)

	holidaySvc := NewHolidayService(holidayRepo)
	return &testEnv{
		db:        db,
		users:     userRepo,
		holidays:  holidaySvc,
		templates: NewTemplateService(templateRepo),
		instances: NewInstanceService(instanceRepo),
		plans:     NewPlanService(db, templateRepo, instanceRepo, userRepo, holidaySvc),
		checkins:  NewCheckinService(db, checkinRepo, instanceRepo),
		stats:     NewStatsService(instanceRepo, checkinRepo),
	}
}

func (e *testEnv) user(t *testing.T, externalID string) *model.User {
	t.Helper()
	user, err := e.users.Ensure(context.Background(), externalID)
	require.NoError(t, err)
	return user
}
