package dto

type TaskItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"dueDate"`
	Priority    string   `json:"priority"`
	Status      string   `json:"status"`
	Tags        string   `json:"tags"`
	TagList     []string `json:"tagList"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// TaskFormRequest is the body of create and edit submissions. Field checks
// live in the validation package so every field error is reported at once.
type TaskFormRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	Tags        string `json:"tags"`
}

type TaskDefaults struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	Tags        string `json:"tags"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}
