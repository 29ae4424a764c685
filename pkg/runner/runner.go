package runner

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gomdfmt/internal/logging"
	"github.com/yaklabco/gomdfmt/pkg/format"
)

// Runner formats the files of a run through a shared Pipeline.
type Runner struct {
	Pipeline *format.Pipeline
}

// New creates a Runner around pipeline.
func New(pipeline *format.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers the files named by opts and formats them on at most
// opts.Jobs workers. A file that fails is recorded in its outcome and does
// not stop the others. Outcomes are returned in discovery order; on
// cancellation the outcomes gathered so far are returned with the error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	pipelineOpts := format.PipelineOptionsFromConfig(opts.Config)
	outcomes := make([]*FileOutcome, len(files))

	var group errgroup.Group
	group.SetLimit(jobs)
	for idx, path := range files {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			outcomes[idx] = r.process(ctx, path, pipelineOpts)
			return nil
		})
	}
	_ = group.Wait()

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}
	result.Duration = time.Since(start)

	logger.Debug("run finished",
		logging.FieldJobs, jobs,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldDuration, result.Duration,
	)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) process(ctx context.Context, path string, opts format.PipelineOptions) *FileOutcome {
	if ctx.Err() != nil {
		return nil
	}

	ctx = logging.WithPath(ctx, path)
	outcome := &FileOutcome{Path: path}
	res, err := r.Pipeline.ProcessFile(ctx, path, opts)
	if err != nil {
		logging.FromContext(ctx).Debug("format failed", logging.FieldError, err)
		outcome.Error = err
		return outcome
	}
	outcome.Result = res
	return outcome
}
