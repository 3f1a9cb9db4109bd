package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusBacklog    TaskStatus = "BACKLOG"
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusInReview   TaskStatus = "IN_REVIEW"
	TaskStatusQA         TaskStatus = "QA"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusCanceled   TaskStatus = "CANCELED"
	TaskStatusPostpone   TaskStatus = "POSTPONE"
)

// Normalize returns the status in upper case with whitespace trimmed, so that
// "completed" and "COMPLETED" compare equal.
func (s TaskStatus) Normalize() TaskStatus {
	return TaskStatus(strings.ToUpper(strings.TrimSpace(string(s))))
}

// IsCompleted reports whether the status is COMPLETED, ignoring case.
func (s TaskStatus) IsCompleted() bool {
	return s.Normalize() == TaskStatusCompleted
}

type Task struct {
	ID          ID         `gorm:"primarykey;type:varchar(64)" json:"id"`
	Title       string     `gorm:"type:varchar(255)" json:"title"`
	ProjectID   ID         `gorm:"type:varchar(64);not null" json:"project_id"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'BACKLOG'" json:"status"`
	AssigneeIDs []ID       `gorm:"serializer:json;type:text" json:"assignee_ids"`
	ActualCost  *float64   `json:"actual_cost"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	IsDeleted   bool       `gorm:"not null;default:false" json:"is_deleted"`
}

// Cost returns the actual cost, treating a missing value as zero.
func (t Task) Cost() float64 {
	if t.ActualCost == nil {
		return 0
	}
	return *t.ActualCost
}

// IsOverdue reports whether an unfinished task is past its due date at now.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Status.IsCompleted() || t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(now)
}

// BeforeSave stores timestamps in UTC. SQLite keeps them as text with the
// writer's offset and range filters compare that text.
func (t *Task) BeforeSave(tx *gorm.DB) error {
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	if t.DueDate != nil {
		due := t.DueDate.UTC()
		t.DueDate = &due
	}
	return nil
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID.IsZero() {
		t.ID = NewID()
	}
	return nil
}
