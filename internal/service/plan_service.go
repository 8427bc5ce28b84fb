package service

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"everyday-planner/internal/apperr"
	"everyday-planner/internal/model"
	"everyday-planner/internal/repository"
)

// PlanService turns due templates into persisted task instances.
type PlanService struct {
	db           *gorm.DB
	templateRepo *repository.TemplateRepository
	instanceRepo *repository.InstanceRepository
	userRepo     *repository.UserRepository
	holidaySvc   *HolidayService
}

func NewPlanService(
	db *gorm.DB,
	templateRepo *repository.TemplateRepository,
	instanceRepo *repository.InstanceRepository,
	userRepo *repository.UserRepository,
	holidaySvc *HolidayService,
) *PlanService {
	return &PlanService{
		db:           db,
		templateRepo: templateRepo,
		instanceRepo: instanceRepo,
		userRepo:     userRepo,
		holidaySvc:   holidaySvc,
	}
}

// GenerateForDate creates instances for every enabled template due on the
// date that has none yet, in one transaction, and returns the number
// created. Repeat calls for the same date create nothing.
func (s *PlanService) GenerateForDate(ctx context.Context, userID uint, date time.Time) (int, error) {
	date = model.DateOnly(date)

	templates, err := s.templateRepo.ListEnabled(ctx, userID)
	if err != nil {
		return 0, apperr.Integrityf(err, "list templates")
	}

	day, err := s.holidaySvc.Classify(ctx, userID, date)
	if err != nil {
		return 0, err
	}

	var due []model.TaskTemplate
	for _, template := range templates {
		schedule, err := template.Schedule()
		if err != nil {
			return 0, apperr.Integrityf(err, "template %d has invalid recurrence", template.ID)
		}
		if schedule.DueOn(date, day.IsHoliday) {
			due = append(due, template)
		}
	}

	created := 0
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		instances := s.instanceRepo.WithTx(tx)
		for _, template := range due {
			exists, err := instances.ExistsForTemplate(ctx, userID, template.ID, date)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			templateID := template.ID
			instance := model.TaskInstance{
				UserID:           userID,
				TemplateID:       &templateID,
				Title:            template.Title,
				Description:      template.Description,
				PlanDate:         date,
				PlannedStartTime: template.DefaultStartTime,
				PlannedMinutes:   template.EstimatedMinutes,
				Status:           model.StatusPending,
			}
			if err := instances.Create(ctx, &instance); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		// A concurrent generation for the same date lost the unique-index
		// race; the plan already exists.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, apperr.Conflictf("plan for %s is being generated concurrently", date.Format("2006-01-02"))
		}
		return 0, apperr.Integrityf(err, "generate plan")
	}
	return created, nil
}

// GenerateForAllUsers runs GenerateForDate for every known user and returns
// the total number of instances created. Per-user failures are logged and
// skipped so one broken account does not stall the daily job.
func (s *PlanService) GenerateForAllUsers(ctx context.Context, date time.Time) (int, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return 0, apperr.Integrityf(err, "list users")
	}

	total := 0
	for _, user := range users {
		created, err := s.GenerateForDate(ctx, user.ID, date)
		if err != nil {
			log.Printf("plan generation for user %d: %v", user.ID, err)
			continue
		}
		total += created
	}
	return total, nil
}
