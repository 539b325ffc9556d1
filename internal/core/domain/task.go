package domain

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "Not Started"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

// MaxTagLength is the longest a single comma-separated tag may be.
const MaxTagLength = 10

var (
	TaskStatuses   = []TaskStatus{TaskStatusNotStarted, TaskStatusInProgress, TaskStatusCompleted}
	TaskPriorities = []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}
)

type Task struct {
	ID          string
	Title       string
	Description string
	DueDate     *time.Time
	Priority    TaskPriority
	Status      TaskStatus
	Tags        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TagList splits the raw tag string on commas and trims every segment.
func (t Task) TagList() []string {
	return SplitTags(t.Tags)
}

// TaskFields is the write model shared by create and update.
type TaskFields struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    TaskPriority
	Status      TaskStatus
	Tags        string
}

// DefaultTaskFields returns the values a blank task form starts with.
func DefaultTaskFields() TaskFields {
	return TaskFields{
		Priority: TaskPriorityLow,
		Status:   TaskStatusNotStarted,
	}
}

func SplitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tags = append(tags, strings.TrimSpace(part))
	}
	return tags
}

func IsValidStatus(value string) bool {
	for _, status := range TaskStatuses {
		if string(status) == value {
			return true
		}
	}
	return false
}

func IsValidPriority(value string) bool {
	for _, priority := range TaskPriorities {
		if string(priority) == value {
			return true
		}
	}
	return false
}
