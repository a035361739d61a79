package models

import (
	"time"

	"gorm.io/gorm"
)

// Task is a board card scoped to a single group. ColumnNo partitions tasks
// into board columns; it is a free-form positive integer with no persisted
// column list and no transition rules.
type Task struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	GroupID     uint64         `gorm:"not null;index" json:"group_id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	ColumnNo    int            `gorm:"column:column_no;not null;default:1" json:"column"`
	AssigneeID  *uint64        `gorm:"index" json:"assignee_id"`
	Tags        []string       `gorm:"serializer:json" json:"tags"`
	DueDate     *time.Time     `json:"due_date"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Group    Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Assignee *User `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}
