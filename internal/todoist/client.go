package todoist

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-resty/resty/v2"

	"github.com/taskbridge/todoist-mcp/internal/logging"
)

const (
	// DefaultRestURL is the base URL of the Todoist REST API.
	DefaultRestURL = "https://api.todoist.com/rest/v2"

	// DefaultSyncURL is the base URL of the Todoist Sync API.
	DefaultSyncURL = "https://api.todoist.com/sync/v9"

	// tokenEnvVar is the environment variable holding the API token for the
	// default account. Additional accounts use tokenEnvVar + "_" + NAME.
	tokenEnvVar = "TODOIST_API_TOKEN"
)

// Config holds the connection settings for the Todoist API.
type Config struct {
	Token      string        `env:"TODOIST_API_TOKEN"`
	RestURL    string        `env:"TODOIST_REST_URL" envDefault:"https://api.todoist.com/rest/v2"`
	SyncURL    string        `env:"TODOIST_SYNC_URL" envDefault:"https://api.todoist.com/sync/v9"`
	Timeout    time.Duration `env:"TODOIST_HTTP_TIMEOUT" envDefault:"30s"`
	RetryCount int           `env:"TODOIST_HTTP_RETRIES" envDefault:"2"`
}

// ConfigFromEnv builds a Config from environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse Todoist config from environment: %w", err)
	}
	return cfg, nil
}

// TokenEnvVar returns the environment variable name that holds the API token
// for the given account.
func TokenEnvVar(account string) string {
	if account == "" || account == "default" {
		return tokenEnvVar
	}
	return tokenEnvVar + "_" + strings.ToUpper(account)
}

// TokenForAccount returns the API token for the given account, or "" if none
// is configured.
func TokenForAccount(account string) string {
	return os.Getenv(TokenEnvVar(account))
}

// HasTokenForAccount checks if an API token is configured for the account.
func HasTokenForAccount(account string) bool {
	return TokenForAccount(account) != ""
}

// Client wraps the Todoist REST and Sync APIs for one account.
type Client struct {
	rest    *resty.Client
	sync    *resty.Client
	account string
}

// NewClient creates a client from an explicit configuration.
func NewClient(cfg Config) (*Client, error) {
	return newClient(cfg, "default")
}

// NewClientForAccount creates a client for a specific account, resolving the
// token from the environment. The account name maps to the env var suffix,
// e.g. "work" reads TODOIST_API_TOKEN_WORK.
func NewClientForAccount(account string) (*Client, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	cfg.Token = TokenForAccount(account)
	return newClient(cfg, account)
}

func newClient(cfg Config, account string) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("no Todoist API token for account %q: set %s", account, TokenEnvVar(account))
	}
	if cfg.RestURL == "" {
		cfg.RestURL = DefaultRestURL
	}
	if cfg.SyncURL == "" {
		cfg.SyncURL = DefaultSyncURL
	}

	restyLogger := logging.NewPrintfAdapter(
		logging.WithAccount(slog.Default(), account))

	newResty := func(baseURL string) *resty.Client {
		return resty.New().
			SetBaseURL(baseURL).
			SetAuthToken(cfg.Token).
			SetTimeout(cfg.Timeout).
			SetRetryCount(cfg.RetryCount).
			SetLogger(restyLogger).
			SetHeader("Accept", "application/json")
	}

	return &Client{
		rest:    newResty(cfg.RestURL),
		sync:    newResty(cfg.SyncURL),
		account: account,
	}, nil
}

// Account returns the account name this client is associated with.
func (c *Client) Account() string {
	return c.account
}

// ListTasks lists active tasks, optionally narrowed by a TaskFilter.
func (c *Client) ListTasks(ctx context.Context, filter TaskFilter) ([]Task, error) {
	req := c.rest.R().SetContext(ctx)
	if filter.ProjectID != "" {
		req.SetQueryParam("project_id", filter.ProjectID)
	}
	if filter.SectionID != "" {
		req.SetQueryParam("section_id", filter.SectionID)
	}
	if filter.Label != "" {
		req.SetQueryParam("label", filter.Label)
	}
	if filter.Filter != "" {
		req.SetQueryParam("filter", filter.Filter)
	}
	if len(filter.IDs) > 0 {
		req.SetQueryParam("ids", strings.Join(filter.IDs, ","))
	}

	var tasks []Task
	resp, err := req.SetResult(&tasks).Get("/tasks")
	if err != nil {
		return nil, &TransportError{Op: "list tasks", Err: err}
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return tasks, nil
}

// GetTask retrieves a single task by ID.
func (c *Client) GetTask(ctx context.Context, taskID string) (*Task, error) {
	var task Task
	resp, err := c.rest.R().SetContext(ctx).SetResult(&task).Get("/tasks/" + taskID)
	if err != nil {
		return nil, &TransportError{Op: "get task", Err: err}
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return &task, nil
}

// CreateTask creates a new task.
func (c *Client) CreateTask(ctx context.Context, input TaskInput) (*Task, error) {
	if input.Content == "" {
		return nil, NewValidationError("task content is required")
	}

	var task Task
	resp, err := c.rest.R().SetContext(ctx).SetBody(input).SetResult(&task).Post("/tasks")
	if err != nil {
		return nil, &TransportError{Op: "create task", Err: err}
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return &task, nil
}

// UpdateTask updates an existing task. Only the set fields of input are sent.
func (c *Client) UpdateTask(ctx context.Context, taskID string, input TaskInput) (*Task, error) {
	var task Task
	resp, err := c.rest.R().SetContext(ctx).SetBody(input).SetResult(&task).Post("/tasks/" + taskID)
	if err != nil {
		return nil, &TransportError{Op: "update task", Err: err}
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return &task, nil
}

// CloseTask marks a task as completed.
func (c *Client) CloseTask(ctx context.Context, taskID string) error {
	resp, err := c.rest.R().SetContext(ctx).Post("/tasks/" + taskID + "/close")
	if err != nil {
		return &TransportError{Op: "close task", Err: err}
	}
	if resp.IsError() {
		return newAPIError(resp)
	}
	return nil
}

// ReopenTask reopens a completed task.
func (c *Client) ReopenTask(ctx context.Context, taskID string) error {
	resp, err := c.rest.R().SetContext(ctx).Post("/tasks/" + taskID + "/reopen")
	if err != nil {
		return &TransportError{Op: "reopen task", Err: err}
	}
	if resp.IsError() {
		return newAPIError(resp)
	}
	return nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	resp, err := c.rest.R().SetContext(ctx).Delete("/tasks/" + taskID)
	if err != nil {
		return &TransportError{Op: "delete task", Err: err}
	}
	if resp.IsError() {
		return newAPIError(resp)
	}
	return nil
}

// ListProjects lists all projects.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	resp, err := c.rest.R().SetContext(ctx).SetResult(&projects).Get("/projects")
	if err != nil {
		return nil, &TransportError{Op: "list projects", Err: err}
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return projects, nil
}

// GetProject retrieves a single project by ID.
func (c *Client) GetProject(ctx context.Context, projectID string) (*Project, error) {
	var project Project
	resp, err := c.rest.R().SetContext(ctx).SetResult(&project).Get("/projects/" + projectID)
	if err != nil {
		return nil, &TransportError{Op: "get project", Err: err}
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return &project, nil
}

// CreateProject creates a new project.
func (c *Client) CreateProject(ctx context.Context, input ProjectInput) (*Project, error) {
	if input.Name == "" {
		return nil, NewValidationError("project name is required")
	}

	var project Project
	resp, err := c.rest.R().SetContext(ctx).SetBody(input).SetResult(&project).Post("/projects")
	if err != nil {
		return nil, &TransportError{Op: "create project", Err: err}
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return &project, nil
}

// UpdateProject updates an existing project.
func (c *Client) UpdateProject(ctx context.Context, projectID string, input ProjectInput) (*Project, error) {
	var project Project
	resp, err := c.rest.R().SetContext(ctx).SetBody(input).SetResult(&project).Post("/projects/" + projectID)
	if err != nil {
		return nil, &TransportError{Op: "update project", Err: err}
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return &project, nil
}

// DeleteProject deletes a project and all of its tasks.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	resp, err := c.rest.R().SetContext(ctx).Delete("/projects/" + projectID)
	if err != nil {
		return &TransportError{Op: "delete project", Err: err}
	}
	if resp.IsError() {
		return newAPIError(resp)
	}
	return nil
}

// ListSections lists sections, optionally narrowed to one project.
func (c *Client) ListSections(ctx context.Context, projectID string) ([]Section, error) {
	req := c.rest.R().SetContext(ctx)
	if projectID != "" {
		req.SetQueryParam("project_id", projectID)
	}

	var sections []Section
	resp, err := req.SetResult(&sections).Get("/sections")
	if err != nil {
		return nil, &TransportError{Op: "list sections", Err: err}
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return sections, nil
}

// GetSection retrieves a single section by ID.
func (c *Client) GetSection(ctx context.Context, sectionID string) (*Section, error) {
	var section Section
	resp, err := c.rest.R().SetContext(ctx).SetResult(&section).Get("/sections/" + sectionID)
	if err != nil {
		return nil, &TransportError{Op: "get section", Err: err}
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return &section, nil
}

// CreateSection creates a section within a project.
func (c *Client) CreateSection(ctx context.Context, projectID, name string) (*Section, error) {
	if projectID == "" || name == "" {
		return nil, NewValidationError("section requires a project id and a name")
	}

	var section Section
	resp, err := c.rest.R().SetContext(ctx).
		SetBody(map[string]string{"project_id": projectID, "name": name}).
		SetResult(&section).
		Post("/sections")
	if err != nil {
		return nil, &TransportError{Op: "create section", Err: err}
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return &section, nil
}

// UpdateSection renames a section.
func (c *Client) UpdateSection(ctx context.Context, sectionID, name string) (*Section, error) {
	var section Section
	resp, err := c.rest.R().SetContext(ctx).
		SetBody(map[string]string{"name": name}).
		SetResult(&section).
		Post("/sections/" + sectionID)
	if err != nil {
		return nil, &TransportError{Op: "update section", Err: err}
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return &section, nil
}

// DeleteSection deletes a section and all of its tasks.
func (c *Client) DeleteSection(ctx context.Context, sectionID string) error {
	resp, err := c.rest.R().SetContext(ctx).Delete("/sections/" + sectionID)
	if err != nil {
		return &TransportError{Op: "delete section", Err: err}
	}
	if resp.IsError() {
		return newAPIError(resp)
	}
	return nil
}

// ListComments lists comments for a task or a project.
func (c *Client) ListComments(ctx context.Context, taskID, projectID string) ([]Comment, error) {
	req := c.rest.R().SetContext(ctx)
	switch {
	case taskID != "":
		req.SetQueryParam("task_id", taskID)
	case projectID != "":
		req.SetQueryParam("project_id", projectID)
	default:
		return nil, NewValidationError("either a task id or a project id is required")
	}

	var comments []Comment
	resp, err := req.SetResult(&comments).Get("/comments")
	if err != nil {
		return nil, &TransportError{Op: "list comments", Err: err}
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return comments, nil
}

// GetComment retrieves a single comment by ID.
func (c *Client) GetComment(ctx context.Context, commentID string) (*Comment, error) {
	var comment Comment
	resp, err := c.rest.R().SetContext(ctx).SetResult(&comment).Get("/comments/" + commentID)
	if err != nil {
		return nil, &TransportError{Op: "get comment", Err: err}
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return &comment, nil
}

// CreateComment creates a comment on a task or project.
func (c *Client) CreateComment(ctx context.Context, input CommentInput) (*Comment, error) {
	if input.Content == "" {
		return nil, NewValidationError("comment content is required")
	}
	if input.TaskID == "" && input.ProjectID == "" {
		return nil, NewValidationError("comment requires a task id or a project id")
	}

	var comment Comment
	resp, err := c.rest.R().SetContext(ctx).SetBody(input).SetResult(&comment).Post("/comments")
	if err != nil {
		return nil, &TransportError{Op: "create comment", Err: err}
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return &comment, nil
}

// UpdateComment updates the content of a comment.
func (c *Client) UpdateComment(ctx context.Context, commentID, content string) (*Comment, error) {
	var comment Comment
	resp, err := c.rest.R().SetContext(ctx).
		SetBody(map[string]string{"content": content}).
		SetResult(&comment).
		Post("/comments/" + commentID)
	if err != nil {
		return nil, &TransportError{Op: "update comment", Err: err}
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return &comment, nil
}

// DeleteComment deletes a comment.
func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	resp, err := c.rest.R().SetContext(ctx).Delete("/comments/" + commentID)
	if err != nil {
		return &TransportError{Op: "delete comment", Err: err}
	}
	if resp.IsError() {
		return newAPIError(resp)
	}
	return nil
}

func newAPIError(resp *resty.Response) *APIError {
	return &APIError{
		StatusCode: resp.StatusCode(),
		Body:       strings.TrimSpace(string(resp.Body())),
	}
}
