package services

import (
	"paperstore/internal/hours"
	"paperstore/internal/repo"
	"paperstore/pkg/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// HoursService reads and updates the store's working window. Reads fall
// back to the default schedule when no row is persisted or the row cannot
// be loaded, so a broken configuration never locks the storefront closed
// by accident.
type HoursService struct {
	scheduleRepo *repo.ScheduleRepository
	clock        hours.Clock
}

// NewHoursService creates a new working-hours service
func NewHoursService(scheduleRepo *repo.ScheduleRepository, clock hours.Clock) *HoursService {
	if clock == nil {
		clock = hours.SystemClock{}
	}
	return &HoursService{scheduleRepo: scheduleRepo, clock: clock}
}

// Current returns the evaluable schedule, falling back to defaults
func (s *HoursService) Current() hours.Schedule {
	wh, err := s.scheduleRepo.Latest()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load working hours, using defaults")
		return hours.DefaultSchedule()
	}
	if wh == nil {
		return hours.DefaultSchedule()
	}
	return hours.FromModel(wh)
}

// Status evaluates the schedule at the current instant
func (s *HoursService) Status() hours.Status {
	return hours.Evaluate(s.Current(), s.clock.Now())
}

// Update replaces the schedule (whole-object replace, last writer wins).
// A window with start after end is persisted as-is; the returned flag tells
// the handler to surface an advisory warning, matching how the source
// tolerates malformed ranges instead of rejecting them.
func (s *HoursService) Update(req models.UpdateWorkingHoursRequest, setBy uuid.UUID) (*models.WorkingHours, bool, error) {
	wh, err := s.scheduleRepo.Latest()
	if err != nil || wh == nil {
		wh = &models.WorkingHours{}
	}

	wh.StartHour = req.StartHour
	wh.StartMinute = req.StartMinute
	wh.EndHour = req.EndHour
	wh.EndMinute = req.EndMinute
	wh.IsActive = req.IsActive
	wh.Description = req.Description
	wh.SetBy = &setBy

	if err := s.scheduleRepo.Save(wh); err != nil {
		return nil, false, err
	}

	sched := hours.FromModel(wh)
	malformed := sched.StartMinute > sched.EndMinute
	return wh, malformed, nil
}
