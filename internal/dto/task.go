package dto

import (
	"time"

	"github.com/tsukihara/groupboard-api/internal/models"
)

// TaskDTO represents a board task in API responses
type TaskDTO struct {
	ID          uint64     `json:"id"`
	GroupID     uint64     `json:"group_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Column      int        `json:"column"`
	AssigneeID  *uint64    `json:"assignee_id"`
	Assignee    *UserDTO   `json:"assignee,omitempty"`
	Tags        []string   `json:"tags"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		GroupID:     task.GroupID,
		Name:        task.Name,
		Description: task.Description,
		Column:      task.ColumnNo,
		AssigneeID:  task.AssigneeID,
		Tags:        task.Tags,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if dto.Tags == nil {
		dto.Tags = []string{}
	}

	// Include assignee if preloaded
	if task.Assignee != nil && task.Assignee.ID != 0 {
		assignee := ToUserDTO(*task.Assignee)
		dto.Assignee = &assignee
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks preserving order
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
