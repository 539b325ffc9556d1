package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/query"
	"taskboard/pkg/apierrors"
)

// FieldErrors maps a form field to the message key of its error.
type FieldErrors map[string]string

func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

// BuildTaskFields validates a task form in one pass and converts it to the
// write model. All failing fields are reported together.
func BuildTaskFields(req dto.TaskFormRequest) (domain.TaskFields, FieldErrors) {
	errs := FieldErrors{}
	fields := domain.DefaultTaskFields()

	fields.Title = strings.TrimSpace(req.Title)
	if fields.Title == "" {
		errs["title"] = apierrors.MsgTitleRequired
	}

	fields.Description = req.Description

	dueDate := strings.TrimSpace(req.DueDate)
	if dueDate == "" {
		errs["dueDate"] = apierrors.MsgDueDateRequired
	} else if parsed, err := time.Parse(query.DateLayout, dueDate); err == nil {
		fields.DueDate = &parsed
	} else {
		errs["dueDate"] = apierrors.MsgDueDateInvalid
	}

	if hasLongTag(req.Tags) {
		errs["tags"] = apierrors.MsgTagTooLong
	}
	fields.Tags = req.Tags

	if req.Priority != "" {
		if domain.IsValidPriority(req.Priority) {
			fields.Priority = domain.TaskPriority(req.Priority)
		} else {
			errs["priority"] = apierrors.MsgPriorityInvalid
		}
	}
	if req.Status != "" {
		if domain.IsValidStatus(req.Status) {
			fields.Status = domain.TaskStatus(req.Status)
		} else {
			errs["status"] = apierrors.MsgStatusInvalid
		}
	}

	if !errs.Empty() {
		return domain.TaskFields{}, errs
	}
	return fields, nil
}

func hasLongTag(raw string) bool {
	for _, tag := range domain.SplitTags(raw) {
		if utf8.RuneCountInString(tag) > domain.MaxTagLength {
			return true
		}
	}
	return false
}
