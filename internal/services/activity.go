package services

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"paperstore/internal/repo"
	"paperstore/pkg/models"
)

// ActivityService appends audit entries. Recording is best-effort: a
// failed write is logged and swallowed so auditing never fails the
// operation it describes.
type ActivityService struct {
	activityRepo *repo.ActivityRepository
}

// NewActivityService creates a new activity service
func NewActivityService(activityRepo *repo.ActivityRepository) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

// Actor identifies who performed an action
type Actor struct {
	ID   *uuid.UUID
	Name string
	Role string
	IP   string
}

// Record appends one audit entry
func (s *ActivityService) Record(actor Actor, action, resource string, resourceID *uuid.UUID, detail string) {
	entry := &models.ActivityLog{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		ActorRole:  actor.Role,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Detail:     detail,
		Severity:   "info",
		IPAddress:  actor.IP,
	}
	if err := s.activityRepo.Create(entry); err != nil {
		log.Error().Err(err).Str("action", action).Str("resource", resource).Msg("failed to record activity")
	}
}
