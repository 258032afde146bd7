// Package batch wraps a job definition in a submit-and-track handle over
// the remote batch-compute service.
package batch

import (
	"context"
	"fmt"
	"time"

	"batch-client/core/apperrors"
	"batch-client/core/logs"
	"batch-client/core/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LogGroup is the fixed log group the remote service writes job console
// output to.
const LogGroup = "/aws/batch/job"

// API is the remote batch-compute surface a Job drives.
type API interface {
	SubmitJob(ctx context.Context, req models.SubmitRequest) (*models.SubmitReply, error)
	DescribeJobs(ctx context.Context, ids []string) ([]models.JobDetail, error)
	CancelJob(ctx context.Context, id, reason string) (*models.Response, error)
	TerminateJob(ctx context.Context, id, reason string) (*models.Response, error)
}

// Job tracks one job definition through submission and remote execution.
// A Job transitions from unsubmitted to submitted exactly once; all
// post-submission state is read live from the remote service, never cached.
//
// A Job is not safe for concurrent use. Callers submitting or cancelling
// the same instance from multiple goroutines must synchronize externally.
type Job struct {
	api    API
	def    models.Definition
	tailer *logs.Tailer
	logger logrus.FieldLogger

	submitted   bool
	jobID       string
	queue       string
	overrides   *models.ContainerOverrides
	submitReply *models.SubmitReply
}

// Option configures a Job.
type Option func(*Job)

// WithLogger attaches a logger to the job handle.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(j *Job) { j.logger = logger }
}

// WithTailer overrides the tailer used for log retrieval.
func WithTailer(t *logs.Tailer) Option {
	return func(j *Job) { j.tailer = t }
}

// New validates the definition and wraps it in a job handle. A definition
// that fails validation yields no handle: the error wraps
// apperrors.ErrValidation and construction must be retried with a fixed
// definition.
//
// When api also implements logs.Fetcher and no tailer is supplied, log
// retrieval is wired up automatically.
func New(ctx context.Context, api API, def models.Definition, opts ...Option) (*Job, error) {
	if err := def.Validate(ctx); err != nil {
		return nil, apperrors.Validation(
			fmt.Sprintf("definition %s failed validation", models.DefinitionID(def)), err)
	}

	j := &Job{api: api, def: def}
	for _, opt := range opts {
		opt(j)
	}
	if j.logger == nil {
		logger := logrus.New()
		logger.SetLevel(logrus.PanicLevel)
		j.logger = logger
	}
	// Local handle id for log correlation before a remote job id exists.
	j.logger = j.logger.WithFields(logrus.Fields{
		"handle":     uuid.NewString(),
		"definition": models.DefinitionID(def),
	})
	if j.tailer == nil {
		if fetcher, ok := api.(logs.Fetcher); ok {
			j.tailer = logs.NewTailer(fetcher, logs.WithLogger(j.logger))
		}
	}
	return j, nil
}

// Definition returns the wrapped job definition.
func (j *Job) Definition() models.Definition {
	return j.def
}

// IsSubmitted returns whether the job has been submitted.
func (j *Job) IsSubmitted() bool {
	return j.submitted
}

// JobID returns the remote job id, empty until submission succeeds.
func (j *Job) JobID() string {
	return j.jobID
}

// Queue returns the queue the job was submitted to, empty until
// submission succeeds.
func (j *Job) Queue() string {
	return j.queue
}

// ContainerOverrides returns the overrides used at submission, nil until
// submission succeeds.
func (j *Job) ContainerOverrides() *models.ContainerOverrides {
	return j.overrides
}

// SubmitReply returns the raw submission reply, nil until submission
// succeeds.
func (j *Job) SubmitReply() *models.SubmitReply {
	return j.submitReply
}

// Submit submits the job to a queue. Submission is permitted exactly once
// per handle; a second call fails with apperrors.ErrSubmissionState. An
// unsuccessful remote reply fails with apperrors.ErrSubmissionFailed and
// carries the raw reply for diagnosis.
func (j *Job) Submit(ctx context.Context, queue string, overrides *models.ContainerOverrides) (*models.SubmitReply, error) {
	if j.submitted {
		return nil, apperrors.SubmissionState("batch.Submit", "cannot submit an already submitted job")
	}

	req := models.SubmitRequest{
		JobName:      models.MakeJobName(j.def, time.Time{}),
		Queue:        queue,
		DefinitionID: models.DefinitionID(j.def),
		Parameters:   models.ParameterMap(j.def),
		Overrides:    overrides,
	}

	reply, err := j.api.SubmitJob(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit job %s: %w", models.DefinitionID(j.def), err)
	}
	if !reply.IsOK() {
		return reply, apperrors.SubmissionFailed("batch.Submit", reply, nil)
	}

	j.submitted = true
	j.jobID = reply.JobID
	j.queue = queue
	j.overrides = overrides
	j.submitReply = reply

	j.logger.WithFields(logrus.Fields{
		"jobId":   reply.JobID,
		"jobName": reply.JobName,
		"queue":   queue,
	}).Info("job submitted")

	return reply, nil
}

// Status returns the live remote status of the job. An unknown job id is
// reported as the StatusNotFound sentinel rather than an error: a missing
// record is a normal polling answer, unlike the not-found errors raised
// for log streams and storage objects. Transport failures propagate.
func (j *Job) Status(ctx context.Context) (models.JobStatus, error) {
	if !j.submitted {
		return "", apperrors.SubmissionState("batch.Status", "cannot check status of a job that has not been submitted")
	}
	detail, err := j.describe(ctx)
	if err != nil {
		return "", err
	}
	if detail == nil || detail.Status == "" {
		return models.StatusNotFound, nil
	}
	return detail.Status, nil
}

// IsRunning returns whether the job's remote state is RUNNING.
func (j *Job) IsRunning(ctx context.Context) (bool, error) {
	status, err := j.Status(ctx)
	if err != nil {
		return false, err
	}
	return status == models.StatusRunning, nil
}

// IsRunnable returns whether the job's remote state is RUNNABLE.
func (j *Job) IsRunnable(ctx context.Context) (bool, error) {
	status, err := j.Status(ctx)
	if err != nil {
		return false, err
	}
	return status == models.StatusRunnable, nil
}

// Cancel cancels a job that has not progressed to execution. The raw
// reply is returned without verifying the resulting state; re-poll Status
// if confirmation is needed.
func (j *Job) Cancel(ctx context.Context, reason string) (*models.Response, error) {
	if !j.submitted {
		return nil, apperrors.SubmissionState("batch.Cancel", "cannot cancel a job that has not been submitted")
	}
	reply, err := j.api.CancelJob(ctx, j.jobID, reason)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel job %s: %w", j.jobID, err)
	}
	j.logger.WithField("reason", reason).Info("job cancel requested")
	return reply, nil
}

// Terminate terminates a job that is starting or running, forcing it to a
// failed state on the remote side; jobs not yet started are cancelled.
// The raw reply is returned without verifying the resulting state.
func (j *Job) Terminate(ctx context.Context, reason string) (*models.Response, error) {
	if !j.submitted {
		return nil, apperrors.SubmissionState("batch.Terminate", "cannot terminate a job that has not been submitted")
	}
	reply, err := j.api.TerminateJob(ctx, j.jobID, reason)
	if err != nil {
		return nil, fmt.Errorf("failed to terminate job %s: %w", j.jobID, err)
	}
	j.logger.WithField("reason", reason).Info("job terminate requested")
	return reply, nil
}

// LogStreamName resolves the remote-assigned log stream for this job.
// It fails with apperrors.ErrNotFound while the job has no container log
// info yet, e.g. while still queued.
func (j *Job) LogStreamName(ctx context.Context) (string, error) {
	if !j.submitted {
		return "", apperrors.SubmissionState("batch.LogStreamName", "cannot resolve log stream of a job that has not been submitted")
	}
	detail, err := j.describe(ctx)
	if err != nil {
		return "", err
	}
	if detail == nil {
		return "", apperrors.NotFound("job", j.jobID)
	}
	if detail.Container.LogStreamName == "" {
		return "", apperrors.NotFound("log stream", j.jobID)
	}
	return detail.Container.LogStreamName, nil
}

// LogEvents returns the job's log events to date, one bounded fetch.
func (j *Job) LogEvents(ctx context.Context) ([]models.LogEvent, error) {
	stream, err := j.LogStreamName(ctx)
	if err != nil {
		return nil, err
	}
	if j.tailer == nil {
		return nil, fmt.Errorf("no log fetcher configured for job %s", j.jobID)
	}
	page, err := j.tailer.FetchPage(ctx, LogGroup, stream, 0, 0)
	if err != nil {
		return nil, err
	}
	return page.Events, nil
}

// Tail streams the job's log events from startTime onward; see
// logs.Tailer.Tail for ordering, cancellation and timeout semantics.
func (j *Job) Tail(ctx context.Context, startTime int64, timeout time.Duration) (<-chan models.LogEvent, <-chan error, error) {
	stream, err := j.LogStreamName(ctx)
	if err != nil {
		return nil, nil, err
	}
	if j.tailer == nil {
		return nil, nil, fmt.Errorf("no log fetcher configured for job %s", j.jobID)
	}
	events, errc := j.tailer.Tail(ctx, LogGroup, stream, startTime, timeout)
	return events, errc, nil
}

// String formats the job handle with its definition identifier.
func (j *Job) String() string {
	return fmt.Sprintf("Job(%s)", models.DefinitionID(j.def))
}

// describe fetches this job's record; nil without error when the service
// knows nothing about the id.
func (j *Job) describe(ctx context.Context) (*models.JobDetail, error) {
	details, err := j.api.DescribeJobs(ctx, []string{j.jobID})
	if err != nil {
		return nil, fmt.Errorf("failed to describe job %s: %w", j.jobID, err)
	}
	if len(details) == 0 {
		return nil, nil
	}
	return &details[0], nil
}
