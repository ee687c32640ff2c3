package todoist

// Task represents a Todoist task as returned by the REST API.
type Task struct {
	ID          string   `json:"id"`
	ProjectID   string   `json:"project_id"`
	SectionID   string   `json:"section_id,omitempty"`
	ParentID    string   `json:"parent_id,omitempty"`
	Content     string   `json:"content"`
	Description string   `json:"description,omitempty"`
	Priority    int      `json:"priority"`
	Labels      []string `json:"labels,omitempty"`
	Due         *Due     `json:"due,omitempty"`
	IsCompleted bool     `json:"is_completed"`
	Order       int      `json:"order,omitempty"`
	URL         string   `json:"url,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
}

// Due represents a task due date. Date is always set; Datetime only for
// time-of-day dues.
type Due struct {
	String      string `json:"string,omitempty"`
	Date        string `json:"date"`
	Datetime    string `json:"datetime,omitempty"`
	IsRecurring bool   `json:"is_recurring"`
	Timezone    string `json:"timezone,omitempty"`
}

// Project represents a Todoist project.
type Project struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ParentID       string `json:"parent_id,omitempty"`
	Color          string `json:"color,omitempty"`
	IsFavorite     bool   `json:"is_favorite"`
	IsInboxProject bool   `json:"is_inbox_project"`
	ViewStyle      string `json:"view_style,omitempty"`
	URL            string `json:"url,omitempty"`
}

// Section represents a section within a project.
type Section struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Order     int    `json:"order"`
	Name      string `json:"name"`
}

// Comment represents a comment on a task or project.
type Comment struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	Content   string `json:"content"`
	PostedAt  string `json:"posted_at,omitempty"`
}

// Filter represents a saved filter. Filters have no REST surface and are
// read and mutated through the Sync API.
type Filter struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Query      string `json:"query"`
	Color      string `json:"color,omitempty"`
	ItemOrder  int    `json:"item_order,omitempty"`
	IsFavorite bool   `json:"is_favorite"`
	IsDeleted  bool   `json:"is_deleted,omitempty"`
}

// Reminder represents a task reminder, read and mutated through the Sync API.
type Reminder struct {
	ID           string `json:"id"`
	ItemID       string `json:"item_id"`
	Type         string `json:"type"` // "relative", "absolute" or "location"
	Due          *Due   `json:"due,omitempty"`
	MinuteOffset int    `json:"minute_offset,omitempty"`
	IsDeleted    bool   `json:"is_deleted,omitempty"`
}

// TaskFilter narrows a task listing. Zero fields are omitted from the query.
type TaskFilter struct {
	ProjectID string
	SectionID string
	Label     string
	Filter    string // Todoist filter query, e.g. "today & p1"
	IDs       []string
}

// TaskInput carries the writable fields for creating or updating a task.
// Empty fields are omitted from the request so the remote keeps its values.
type TaskInput struct {
	Content     string   `json:"content,omitempty"`
	Description string   `json:"description,omitempty"`
	ProjectID   string   `json:"project_id,omitempty"`
	SectionID   string   `json:"section_id,omitempty"`
	ParentID    string   `json:"parent_id,omitempty"`
	Priority    int      `json:"priority,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	DueString   string   `json:"due_string,omitempty"`
}

// ProjectInput carries the writable fields for creating or updating a project.
type ProjectInput struct {
	Name       string `json:"name,omitempty"`
	ParentID   string `json:"parent_id,omitempty"`
	Color      string `json:"color,omitempty"`
	IsFavorite bool   `json:"is_favorite,omitempty"`
	ViewStyle  string `json:"view_style,omitempty"`
}

// CommentInput carries the writable fields for creating a comment. Exactly
// one of TaskID or ProjectID must be set.
type CommentInput struct {
	TaskID    string `json:"task_id,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	Content   string `json:"content"`
}

// FilterInput carries the writable fields for creating or updating a filter.
type FilterInput struct {
	Name       string
	Query      string
	Color      string
	IsFavorite bool
}

// ReminderInput carries the writable fields for adding a reminder.
type ReminderInput struct {
	ItemID       string
	Type         string
	DueString    string
	MinuteOffset int
}
