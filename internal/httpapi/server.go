package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"everyday-planner/internal/apperr"
	"everyday-planner/internal/repository"
	"everyday-planner/internal/service"
)

// Server is the HTTP front of the planning engine.
type Server struct {
	router *gin.Engine
	loc    *time.Location

	users     *repository.UserRepository
	plans     *service.PlanService
	instances *service.InstanceService
	templates *service.TemplateService
	checkins  *service.CheckinService
	holidays  *service.HolidayService
	stats     *service.StatsService
}

// Deps bundles everything the server needs.
type Deps struct {
	Location  *time.Location
	Users     *repository.UserRepository
	Plans     *service.PlanService
	Instances *service.InstanceService
	Templates *service.TemplateService
	Checkins  *service.CheckinService
	Holidays  *service.HolidayService
	Stats     *service.StatsService
}

// NewServer builds the router and wires all routes.
func NewServer(deps Deps) *Server {
	loc := deps.Location
	if loc == nil {
		loc = time.Local
	}

	s := &Server{
		router:    gin.Default(),
		loc:       loc,
		users:     deps.Users,
		plans:     deps.Plans,
		instances: deps.Instances,
		templates: deps.Templates,
		checkins:  deps.Checkins,
		holidays:  deps.Holidays,
		stats:     deps.Stats,
	}

	s.router.Use(requestID())

	api := s.router.Group("/api", identity(s.users))
	{
		api.POST("/plans/generate", s.handleGeneratePlan)

		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks/manual", s.handleCreateManualTask)
		api.PUT("/tasks/:id", s.handleUpdateTask)
		api.PATCH("/tasks/:id/status", s.handleSetTaskStatus)
		api.DELETE("/tasks/:id", s.handleDeleteTask)

		api.GET("/templates", s.handleListTemplates)
		api.POST("/templates", s.handleCreateTemplate)
		api.PUT("/templates/:id", s.handleUpdateTemplate)
		api.PATCH("/templates/:id/enabled", s.handleSetTemplateEnabled)
		api.DELETE("/templates/:id", s.handleDeleteTemplate)

		api.GET("/checkins/hourly/pending", s.handlePendingCheckin)
		api.GET("/checkins/hourly/window-tasks", s.handleWindowTasks)
		api.GET("/checkins/hourly", s.handleListCheckins)
		api.POST("/checkins/hourly", s.handleSubmitCheckin)
		api.PUT("/checkins/hourly/:id", s.handleUpdateCheckin)
		api.DELETE("/checkins/hourly/:id", s.handleDeleteCheckin)

		api.GET("/holidays", s.handleListHolidays)
		api.POST("/holidays", s.handleUpsertHoliday)
		api.DELETE("/holidays", s.handleRemoveHoliday)

		api.GET("/stats/completion", s.handleCompletionSummary)
		api.GET("/stats/reviews", s.handleReviews)
	}

	return s
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

// parseDate reads a required YYYY-MM-DD query value.
func (s *Server) parseDate(value, name string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperr.Validationf("%s must be a date (YYYY-MM-DD)", name)
	}
	return t, nil
}

// parseDateTime reads an ISO local datetime in the configured timezone;
// an explicit offset is honored when present.
func (s *Server) parseDateTime(value, name string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateTimeLayout, value, s.loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, apperr.Validationf("%s must be an ISO datetime", name)
}
