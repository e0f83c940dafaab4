package repo

import (
	"paperstore/pkg/models"

	"gorm.io/gorm"
)

// ScheduleRepository handles working-hours data access
type ScheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Latest returns the most recently saved row regardless of active flag.
// Reads deliberately do not filter on is_active: a deactivated schedule
// means the store never opens, which a filtered query cannot distinguish
// from "nothing configured yet".
func (r *ScheduleRepository) Latest() (*models.WorkingHours, error) {
	var wh models.WorkingHours
	err := r.db.Order("updated_at DESC").First(&wh).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &wh, nil
}

// Save persists a working-hours row, replacing the whole object
func (r *ScheduleRepository) Save(wh *models.WorkingHours) error {
	return r.db.Save(wh).Error
}

// ActivityRepository handles audit log data access
type ActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create appends an activity entry
func (r *ActivityRepository) Create(entry *models.ActivityLog) error {
	return r.db.Create(entry).Error
}

// List lists activity entries with pagination, newest first
func (r *ActivityRepository) List(limit, offset int, action string) (*models.PaginationResult[models.ActivityLog], error) {
	var entries []models.ActivityLog
	var total int64

	query := r.db.Model(&models.ActivityLog{})
	if action != "" {
		query = query.Where("action = ?", action)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error
	if err != nil {
		return nil, err
	}

	page := offset/limit + 1
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &models.PaginationResult[models.ActivityLog]{
		Data:       entries,
		Total:      total,
		Page:       page,
		PerPage:    limit,
		TotalPages: totalPages,
	}, nil
}
