package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tsukihara/groupboard-api/internal/constants"
	"github.com/tsukihara/groupboard-api/internal/models"
	"github.com/tsukihara/groupboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskNameRequired  = errors.New("task name is required")
	ErrInvalidColumn     = errors.New("column must be a positive integer")
	ErrAssigneeNotMember = errors.New("assignee is not a member of the group")
)

// TaskService handles board task business logic. Any group member may create,
// update or delete any task in the group; there is no per-task ownership.
type TaskService struct {
	taskRepo  repository.TaskRepository
	groupRepo repository.GroupRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, groupRepo repository.GroupRepository) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		groupRepo: groupRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Name        string
	Description string
	ColumnNo    int
	AssigneeID  *uint64
	Tags        []string
	DueDate     *time.Time
}

// UpdateTaskInput represents a partial task update. Nil pointers leave the
// field untouched; the Clear flags reset nullable fields.
type UpdateTaskInput struct {
	Name          *string
	Description   *string
	ColumnNo      *int
	AssigneeID    *uint64
	ClearAssignee bool
	Tags          *[]string
	DueDate       *time.Time
	ClearDueDate  bool
}

// ListTasks returns the member's group tasks in creation order.
func (s *TaskService) ListTasks(member models.GroupMember) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByGroup(member.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a single task in the member's group.
func (s *TaskService) GetTask(member models.GroupMember, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindInGroup(member.GroupID, taskID, "Assignee")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask creates a task in the member's group.
func (s *TaskService) CreateTask(member models.GroupMember, input CreateTaskInput) (*models.Task, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTaskNameRequired
	}

	if input.ColumnNo == 0 {
		input.ColumnNo = constants.MinColumnNo
	}
	if input.ColumnNo < constants.MinColumnNo {
		return nil, ErrInvalidColumn
	}

	if input.AssigneeID != nil {
		if err := s.ensureGroupMember(member.GroupID, *input.AssigneeID); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		GroupID:     member.GroupID,
		Name:        name,
		Description: input.Description,
		ColumnNo:    input.ColumnNo,
		AssigneeID:  input.AssigneeID,
		Tags:        input.Tags,
		DueDate:     input.DueDate,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindInGroup(member.GroupID, task.ID, "Assignee")
}

// UpdateTask applies a partial update to a task. Column moves are not
// validated beyond the positive-integer bound.
func (s *TaskService) UpdateTask(member models.GroupMember, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindInGroup(member.GroupID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTaskNameRequired
		}
		task.Name = name
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.ColumnNo != nil {
		if *input.ColumnNo < constants.MinColumnNo {
			return nil, ErrInvalidColumn
		}
		task.ColumnNo = *input.ColumnNo
	}
	if input.ClearAssignee {
		task.AssigneeID = nil
	} else if input.AssigneeID != nil {
		if err := s.ensureGroupMember(member.GroupID, *input.AssigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = input.AssigneeID
	}
	if input.Tags != nil {
		task.Tags = *input.Tags
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindInGroup(member.GroupID, task.ID, "Assignee")
}

// DeleteTask removes a task. Deleting an already-deleted task reports not found.
func (s *TaskService) DeleteTask(member models.GroupMember, taskID uint64) error {
	task, err := s.taskRepo.FindInGroup(member.GroupID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// ensureGroupMember verifies that a prospective assignee belongs to the group.
func (s *TaskService) ensureGroupMember(groupID, userID uint64) error {
	_, err := s.groupRepo.FindMember(groupID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeNotMember
		}
		return fmt.Errorf("failed to verify assignee membership: %w", err)
	}
	return nil
}
