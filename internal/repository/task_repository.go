package repository

import (
	"github.com/tsukihara/groupboard-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindInGroup finds a task by ID scoped to a group, with optional preloading
func (r *GormTaskRepository) FindInGroup(groupID, id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db.Where("group_id = ?", groupID)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListByGroup lists a group's tasks in creation order. Column grouping is a
// client-side concern keyed by the column number.
func (r *GormTaskRepository) ListByGroup(groupID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Preload("Assignee").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete soft deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}
