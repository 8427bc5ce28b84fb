package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"everyday-planner/internal/apperr"
	"everyday-planner/internal/model"
	"everyday-planner/internal/repository"
	"everyday-planner/internal/window"
)

// RecordInput is one minute entry inside a checkin submission. ID is only
// meaningful on update: records carrying the id of an existing row are
// delta-adjusted, id-less records apply as new.
type RecordInput struct {
	ID             *uint
	TaskInstanceID *uint
	Title          string
	AddedMinutes   int
	Comment        string
	ReferenceLink  string
}

// SubmitCheckinInput is the payload for a new checkin.
type SubmitCheckinInput struct {
	WindowStart    time.Time
	WindowEnd      time.Time
	OverallComment string
	Records        []RecordInput
}

// UpdateCheckinInput replaces a checkin's records and comment.
type UpdateCheckinInput struct {
	OverallComment string
	Records        []RecordInput
}

// PendingWindow describes the canonical window for a reference instant and
// the task instances a checkin for it could attribute minutes to.
type PendingWindow struct {
	WindowStart   time.Time            `json:"windowStart"`
	WindowEnd     time.Time            `json:"windowEnd"`
	WindowMinutes int                  `json:"windowMinutes"`
	Submitted     bool                 `json:"submitted"`
	PlannedTasks  []model.TaskInstance `json:"plannedTasks"`
}

// CheckinService reconciles time-windowed checkins against task instances.
// Every mutating operation runs in one transaction so minute updates and
// checkin rows are never observed half-applied.
type CheckinService struct {
	db           *gorm.DB
	checkinRepo  *repository.CheckinRepository
	instanceRepo *repository.InstanceRepository
}

func NewCheckinService(db *gorm.DB, checkinRepo *repository.CheckinRepository, instanceRepo *repository.InstanceRepository) *CheckinService {
	return &CheckinService{db: db, checkinRepo: checkinRepo, instanceRepo: instanceRepo}
}

// Pending resolves the window containing reference and reports whether it
// has been submitted, along with the day's active task instances.
func (s *CheckinService) Pending(ctx context.Context, userID uint, windowMinutes int, reference time.Time) (*PendingWindow, error) {
	win, err := window.Resolve(windowMinutes, reference)
	if err != nil {
		return nil, err
	}

	submitted, err := s.checkinRepo.ExistsForWindow(ctx, userID, win.Start, win.End)
	if err != nil {
		return nil, apperr.Integrityf(err, "check window submission")
	}
	tasks, err := s.instanceRepo.ListActiveByDate(ctx, userID, win.Date())
	if err != nil {
		return nil, apperr.Integrityf(err, "list window tasks")
	}
	if tasks == nil {
		tasks = []model.TaskInstance{}
	}
	return &PendingWindow{
		WindowStart:   win.Start,
		WindowEnd:     win.End,
		WindowMinutes: windowMinutes,
		Submitted:     submitted,
		PlannedTasks:  tasks,
	}, nil
}

// WindowTasks returns the checkin candidates for an explicit window: all of
// the window date's instances that are not CANCELLED.
func (s *CheckinService) WindowTasks(ctx context.Context, userID uint, windowStart, windowEnd time.Time) ([]model.TaskInstance, error) {
	if !windowStart.Before(windowEnd) {
		return nil, apperr.Validationf("windowStart must be before windowEnd")
	}
	tasks, err := s.instanceRepo.ListActiveByDate(ctx, userID, model.DateOnly(windowStart))
	if err != nil {
		return nil, apperr.Integrityf(err, "list window tasks")
	}
	return tasks, nil
}

// IsSubmitted reports whether a checkin exists for exactly this window.
func (s *CheckinService) IsSubmitted(ctx context.Context, userID uint, windowStart, windowEnd time.Time) (bool, error) {
	submitted, err := s.checkinRepo.ExistsForWindow(ctx, userID, windowStart, windowEnd)
	if err != nil {
		return false, apperr.Integrityf(err, "check window submission")
	}
	return submitted, nil
}

// ListByDate returns the day's checkins, newest window first.
func (s *CheckinService) ListByDate(ctx context.Context, userID uint, date time.Time) ([]model.HourlyCheckin, error) {
	dayStart := model.DateOnly(date)
	checkins, err := s.checkinRepo.ListByWindowRange(ctx, userID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, apperr.Integrityf(err, "list checkins")
	}
	return checkins, nil
}

// Submit persists a checkin for the window and applies every record to its
// task instance. One checkin per window: a duplicate is a conflict, whether
// found upfront or lost to a concurrent writer at the unique index.
func (s *CheckinService) Submit(ctx context.Context, userID uint, input SubmitCheckinInput) (*model.HourlyCheckin, error) {
	if !input.WindowStart.Before(input.WindowEnd) {
		return nil, apperr.Validationf("windowStart must be before windowEnd")
	}
	if err := validateRecords(input.Records, false); err != nil {
		return nil, err
	}

	submitted, err := s.checkinRepo.ExistsForWindow(ctx, userID, input.WindowStart, input.WindowEnd)
	if err != nil {
		return nil, apperr.Integrityf(err, "check window submission")
	}
	if submitted {
		return nil, apperr.Conflictf("this time window is already submitted")
	}

	var checkinID uint
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		checkins := s.checkinRepo.WithTx(tx)
		instances := s.instanceRepo.WithTx(tx)

		checkin := model.HourlyCheckin{
			UserID:         userID,
			WindowStart:    input.WindowStart,
			WindowEnd:      input.WindowEnd,
			OverallComment: input.OverallComment,
		}
		if err := checkins.Create(ctx, &checkin); err != nil {
			return err
		}

		rows := make([]model.CheckinRecord, 0, len(input.Records))
		for _, record := range input.Records {
			row, err := s.applyNewRecord(ctx, instances, userID, model.DateOnly(input.WindowStart), record)
			if err != nil {
				return err
			}
			rows = append(rows, *row)
		}
		if err := checkins.ReplaceRecords(ctx, checkin.ID, rows); err != nil {
			return err
		}
		checkinID = checkin.ID
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflictf("this time window is already submitted")
		}
		if apperr.KindOf(err) != 0 {
			return nil, err
		}
		return nil, apperr.Integrityf(err, "submit checkin")
	}
	return s.reload(ctx, userID, checkinID)
}

// Update replaces the checkin's records and comment, adjusting each task
// instance by the minute delta rather than re-adding full values.
func (s *CheckinService) Update(ctx context.Context, userID, checkinID uint, input UpdateCheckinInput) (*model.HourlyCheckin, error) {
	if err := validateRecords(input.Records, true); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		checkins := s.checkinRepo.WithTx(tx)
		instances := s.instanceRepo.WithTx(tx)

		// Loaded inside the transaction so the delta arithmetic below runs
		// against the current records, not a pre-transaction snapshot.
		checkin, err := s.requireOwned(ctx, checkins, userID, checkinID)
		if err != nil {
			return err
		}
		previous := make(map[uint]model.CheckinRecord, len(checkin.Records))
		for _, record := range checkin.Records {
			previous[record.ID] = record
		}

		kept := make(map[uint]bool, len(input.Records))
		rows := make([]model.CheckinRecord, 0, len(input.Records))
		for _, record := range input.Records {
			if record.ID == nil {
				row, err := s.applyNewRecord(ctx, instances, userID, model.DateOnly(checkin.WindowStart), record)
				if err != nil {
					return err
				}
				rows = append(rows, *row)
				continue
			}

			old, ok := previous[*record.ID]
			if !ok {
				return apperr.Validationf("record %d does not belong to this checkin", *record.ID)
			}
			kept[*record.ID] = true

			if delta := record.AddedMinutes - old.AddedMinutes; delta != 0 && old.TaskInstanceID != nil {
				if err := s.adjustMinutes(ctx, instances, userID, *old.TaskInstanceID, delta); err != nil {
					return err
				}
			}
			rows = append(rows, model.CheckinRecord{
				UserID:         userID,
				TaskInstanceID: old.TaskInstanceID,
				AddedMinutes:   record.AddedMinutes,
				Comment:        record.Comment,
				ReferenceLink:  NormalizeReferenceLink(record.ReferenceLink),
				CreatedAsAdHoc: old.CreatedAsAdHoc,
			})
		}

		// Back out records removed from the new set.
		for _, old := range checkin.Records {
			if kept[old.ID] || old.TaskInstanceID == nil {
				continue
			}
			if err := s.adjustMinutes(ctx, instances, userID, *old.TaskInstanceID, -old.AddedMinutes); err != nil {
				return err
			}
		}

		checkin.OverallComment = input.OverallComment
		if err := checkins.Save(ctx, checkin); err != nil {
			return err
		}
		return checkins.ReplaceRecords(ctx, checkin.ID, rows)
	})
	if err != nil {
		if apperr.KindOf(err) != 0 {
			return nil, err
		}
		return nil, apperr.Integrityf(err, "update checkin")
	}
	return s.reload(ctx, userID, checkinID)
}

// Delete backs every record's minutes out of its task instance and removes
// the checkin. Instances the checkin created as ad-hoc stay in place.
func (s *CheckinService) Delete(ctx context.Context, userID, checkinID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		instances := s.instanceRepo.WithTx(tx)

		// The second of two racing deletes finds nothing here and fails
		// cleanly instead of backing the minutes out twice.
		checkin, err := s.requireOwned(ctx, s.checkinRepo.WithTx(tx), userID, checkinID)
		if err != nil {
			return err
		}
		for _, record := range checkin.Records {
			if record.TaskInstanceID == nil {
				continue
			}
			if err := s.adjustMinutes(ctx, instances, userID, *record.TaskInstanceID, -record.AddedMinutes); err != nil {
				return err
			}
		}
		return s.checkinRepo.WithTx(tx).Delete(ctx, userID, checkinID)
	})
	if err != nil {
		if apperr.KindOf(err) != 0 {
			return err
		}
		return apperr.Integrityf(err, "delete checkin")
	}
	return nil
}

// applyNewRecord applies one incoming record inside a transaction: minutes
// are added to the referenced instance, or a COMPLETED ad-hoc instance is
// created for the window's date.
func (s *CheckinService) applyNewRecord(ctx context.Context, instances *repository.InstanceRepository, userID uint, planDate time.Time, record RecordInput) (*model.CheckinRecord, error) {
	row := model.CheckinRecord{
		UserID:        userID,
		AddedMinutes:  record.AddedMinutes,
		Comment:       record.Comment,
		ReferenceLink: NormalizeReferenceLink(record.ReferenceLink),
	}

	if record.TaskInstanceID != nil {
		if err := s.adjustMinutes(ctx, instances, userID, *record.TaskInstanceID, record.AddedMinutes); err != nil {
			return nil, err
		}
		row.TaskInstanceID = record.TaskInstanceID
		return &row, nil
	}

	adHoc := model.TaskInstance{
		UserID:           userID,
		Title:            strings.TrimSpace(record.Title),
		PlanDate:         planDate,
		PlannedMinutes:   record.AddedMinutes,
		CompletedMinutes: record.AddedMinutes,
		Status:           model.StatusCompleted,
		AdHoc:            true,
	}
	if err := instances.Create(ctx, &adHoc); err != nil {
		return nil, err
	}
	row.TaskInstanceID = &adHoc.ID
	row.CreatedAsAdHoc = true
	return &row, nil
}

// adjustMinutes shifts an owned instance's completed minutes by delta,
// flooring at zero. Status is left alone: minute accounting never flips
// lifecycle state on its own.
func (s *CheckinService) adjustMinutes(ctx context.Context, instances *repository.InstanceRepository, userID, instanceID uint, delta int) error {
	instance, err := instances.FindByID(ctx, userID, instanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("task instance not found")
		}
		return err
	}
	instance.CompletedMinutes += delta
	if instance.CompletedMinutes < 0 {
		instance.CompletedMinutes = 0
	}
	return instances.Save(ctx, instance)
}

func (s *CheckinService) requireOwned(ctx context.Context, checkins *repository.CheckinRepository, userID, checkinID uint) (*model.HourlyCheckin, error) {
	checkin, err := checkins.FindByID(ctx, userID, checkinID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("checkin not found")
		}
		return nil, apperr.Integrityf(err, "find checkin")
	}
	return checkin, nil
}

func (s *CheckinService) reload(ctx context.Context, userID, checkinID uint) (*model.HourlyCheckin, error) {
	checkin, err := s.checkinRepo.FindByID(ctx, userID, checkinID)
	if err != nil {
		return nil, apperr.Integrityf(err, "reload checkin")
	}
	return checkin, nil
}

func validateRecords(records []RecordInput, allowExistingIDs bool) error {
	if len(records) == 0 {
		return apperr.Validationf("at least one record is required")
	}
	for _, record := range records {
		if record.AddedMinutes <= 0 {
			return apperr.Validationf("completedMinutes must be greater than 0")
		}
		isNew := record.ID == nil || !allowExistingIDs
		if isNew && record.TaskInstanceID == nil && strings.TrimSpace(record.Title) == "" {
			return apperr.Validationf("title is required when taskInstanceId is missing")
		}
	}
	return nil
}

// NormalizeReferenceLink trims the link and ensures an absolute URL:
// empty stays empty, an explicit http(s) scheme is kept, anything else is
// prefixed with https://.
func NormalizeReferenceLink(raw string) string {
	link := strings.TrimSpace(raw)
	if link == "" {
		return ""
	}
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	return "https://" + link
}
