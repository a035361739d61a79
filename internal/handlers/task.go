package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tsukihara/groupboard-api/internal/dto"
	apierrors "github.com/tsukihara/groupboard-api/internal/errors"
	"github.com/tsukihara/groupboard-api/internal/middleware"
	"github.com/tsukihara/groupboard-api/internal/services"
)

// TaskHandler coordinates board task HTTP handlers. All routes sit behind
// RequireGroupAccess.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the group's tasks in creation order.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	member, ok := middleware.GetGroupMember(c)
	if !ok {
		apierrors.InternalError(c, "Membership not found in context")
		return
	}

	tasks, err := h.taskService.ListTasks(member)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dto.ToTaskDTOs(tasks),
	})
}

// GetTask returns a single task.
func (h *TaskHandler) GetTask(c *gin.Context) {
	member, ok := middleware.GetGroupMember(c)
	if !ok {
		apierrors.InternalError(c, "Membership not found in context")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("taskId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(member, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dto.ToTaskDTO(*task),
	})
}

// CreateTask creates a task in the group.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	member, ok := middleware.GetGroupMember(c)
	if !ok {
		apierrors.InternalError(c, "Membership not found in context")
		return
	}

	type CreateTaskRequest struct {
		Name        string     `json:"name" binding:"required"`
		Description string     `json:"description"`
		Column      int        `json:"column"`
		AssigneeID  *uint64    `json:"assignee_id"`
		Tags        []string   `json:"tags"`
		DueDate     *time.Time `json:"due_date"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(member, services.CreateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		ColumnNo:    req.Column,
		AssigneeID:  req.AssigneeID,
		Tags:        req.Tags,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    dto.ToTaskDTO(*task),
	})
}

// UpdateTask applies a partial update. The raw JSON is inspected so "field
// absent" and "field set to null" can be told apart.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	member, ok := middleware.GetGroupMember(c)
	if !ok {
		apierrors.InternalError(c, "Membership not found in context")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("taskId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, ok := buildUpdateTaskInput(rawReq)
	if !ok {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(member, taskID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dto.ToTaskDTO(*task),
	})
}

// DeleteTask removes a task. Any group member may do this.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	member, ok := middleware.GetGroupMember(c)
	if !ok {
		apierrors.InternalError(c, "Membership not found in context")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("taskId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.DeleteTask(member, taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func buildUpdateTaskInput(raw map[string]any) (services.UpdateTaskInput, bool) {
	var input services.UpdateTaskInput

	if v, ok := raw["name"]; ok {
		name, ok := v.(string)
		if !ok {
			return input, false
		}
		input.Name = &name
	}
	if v, ok := raw["description"]; ok {
		desc, ok := v.(string)
		if !ok {
			return input, false
		}
		input.Description = &desc
	}
	if v, ok := raw["column"]; ok {
		// encoding/json decodes numbers to float64
		col, ok := v.(float64)
		if !ok {
			return input, false
		}
		columnNo := int(col)
		input.ColumnNo = &columnNo
	}
	if v, ok := raw["assignee_id"]; ok {
		if v == nil {
			input.ClearAssignee = true
		} else {
			id, ok := v.(float64)
			if !ok || id < 0 {
				return input, false
			}
			assigneeID := uint64(id)
			input.AssigneeID = &assigneeID
		}
	}
	if v, ok := raw["tags"]; ok {
		if v == nil {
			empty := []string{}
			input.Tags = &empty
		} else {
			rawTags, ok := v.([]any)
			if !ok {
				return input, false
			}
			tags := make([]string, len(rawTags))
			for i, t := range rawTags {
				tag, ok := t.(string)
				if !ok {
					return input, false
				}
				tags[i] = tag
			}
			input.Tags = &tags
		}
	}
	if v, ok := raw["due_date"]; ok {
		if v == nil {
			input.ClearDueDate = true
		} else {
			str, ok := v.(string)
			if !ok {
				return input, false
			}
			parsed, err := time.Parse(time.RFC3339, str)
			if err != nil {
				return input, false
			}
			input.DueDate = &parsed
		}
	}

	return input, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNameRequired),
		errors.Is(err, services.ErrInvalidColumn),
		errors.Is(err, services.ErrAssigneeNotMember):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
