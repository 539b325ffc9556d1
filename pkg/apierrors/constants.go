package apierrors

const (
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgTaskNotFound       = "taskNotFound"
	MsgFailGetTask        = "failGetTask"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgFailDeleteTasks    = "failDeleteTasks"

	MsgTitleRequired   = "titleRequired"
	MsgDueDateRequired = "dueDateRequired"
	MsgDueDateInvalid  = "dueDateInvalid"
	MsgTagTooLong      = "tagTooLong"
	MsgPriorityInvalid = "priorityInvalid"
	MsgStatusInvalid   = "statusInvalid"

	MsgViewNotFound       = "viewNotFound"
	MsgInvalidFilterField = "invalidFilterField"
	MsgFailOpenView       = "failOpenView"
	MsgFailCloseView      = "failCloseView"
)
