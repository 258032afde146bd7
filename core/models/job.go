package models

// JobStatus represents the lifecycle state reported by the remote service.
type JobStatus string

const (
	StatusSubmitted JobStatus = "SUBMITTED"
	StatusPending   JobStatus = "PENDING"
	StatusRunnable  JobStatus = "RUNNABLE"
	StatusStarting  JobStatus = "STARTING"
	StatusRunning   JobStatus = "RUNNING"
	StatusSucceeded JobStatus = "SUCCEEDED"
	StatusFailed    JobStatus = "FAILED"

	// StatusNotFound is a local sentinel: the service was reachable but
	// returned no record for the job ID.
	StatusNotFound JobStatus = "NOTFOUND"
)

// ContainerOverrides are submission-time overrides applied to the job's
// container.
type ContainerOverrides struct {
	Command     []string
	Environment map[string]string
}

// SubmitRequest carries everything a job submission needs.
type SubmitRequest struct {
	JobName      string
	Queue        string
	DefinitionID string
	Parameters   map[string]string
	Overrides    *ContainerOverrides
}

// ContainerDetail is the container section of a job record.
type ContainerDetail struct {
	LogStreamName string
	ExitCode      *int32
	Reason        string
}

// JobDetail is one job record from a describe-jobs call.
type JobDetail struct {
	JobID        string
	JobName      string
	Queue        string
	Status       JobStatus
	StatusReason string
	Container    ContainerDetail
}
