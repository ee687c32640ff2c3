package bulk

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/taskbridge/todoist-mcp/internal/logging"
	"github.com/taskbridge/todoist-mcp/internal/todoist"
)

// Engine executes bulk task operations: it normalizes the requested ids,
// builds one sync command per surviving id, submits them all in a single
// call, and reconciles the per-command statuses into a summary. Each
// Execute call builds fresh state; an Engine is safe for concurrent use.
type Engine struct {
	submitter Submitter
	logger    *slog.Logger
}

// NewEngine creates an Engine on top of a Submitter. A nil logger falls back
// to slog.Default().
func NewEngine(submitter Submitter, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		submitter: submitter,
		logger:    logging.WithOperation(logger, "bulk_tasks"),
	}
}

// Execute runs the bulk pipeline for one request.
//
// A structurally invalid request returns a ValidationError before anything
// is submitted. A transport or upstream failure of the single sync call
// returns a Response with Success false and no summary: no correlation
// information exists, so no per-task failures are fabricated. Individual
// task failures reported in the status map are folded into the summary and
// leave Success true.
func (e *Engine) Execute(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	set := Normalize(req.TaskIDs)

	// An empty bulk request is not an error.
	if len(set.IDs) == 0 {
		return &Response{
			Success:  true,
			Data:     &Summary{Results: []OperationResult{}},
			Metadata: metadata(start, set),
		}, nil
	}

	commands, err := BuildCommands(req.Action, set, req.Params)
	if err != nil {
		return nil, err
	}

	statuses, err := e.submitter.SubmitCommands(ctx, commands)
	if err != nil {
		// Only transport and batch-level upstream failures reach this
		// branch; both fail the pipeline as a whole.
		var upstream *todoist.UpstreamError
		retryable := true
		if errors.As(err, &upstream) {
			retryable = upstream.Retryable()
		}
		e.logger.Error("bulk submit failed",
			slog.String("action", string(req.Action)),
			slog.Int("commands", len(commands)),
			slog.Bool("retryable", retryable),
			logging.Err(err))

		return &Response{
			Success:  false,
			Error:    err.Error(),
			Metadata: metadata(start, set),
		}, nil
	}

	summary := Reconcile(set, commands, statuses)

	e.logger.Debug("bulk request reconciled",
		slog.String("action", string(req.Action)),
		slog.Int("total", summary.TotalTasks),
		slog.Int("successful", summary.Successful),
		slog.Int("failed", summary.Failed))

	return &Response{
		Success:  true,
		Data:     &summary,
		Metadata: metadata(start, set),
	}, nil
}

func metadata(start time.Time, set NormalizedTaskSet) *Metadata {
	return &Metadata{
		ExecutionTimeMS:      time.Since(start).Milliseconds(),
		DeduplicationApplied: set.DeduplicatedCount < set.OriginalCount,
		OriginalCount:        set.OriginalCount,
		DeduplicatedCount:    set.DeduplicatedCount,
	}
}
