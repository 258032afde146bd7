package aws

import (
	"context"
	"fmt"
	"sort"

	"batch-client/core/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/batch"
	batchtypes "github.com/aws/aws-sdk-go-v2/service/batch/types"
)

// SubmitJob submits a job to the remote queue.
func (c *Client) SubmitJob(ctx context.Context, req models.SubmitRequest) (*models.SubmitReply, error) {
	input := &batch.SubmitJobInput{
		JobName:       aws.String(req.JobName),
		JobQueue:      aws.String(req.Queue),
		JobDefinition: aws.String(req.DefinitionID),
		Parameters:    req.Parameters,
	}
	if req.Overrides != nil {
		input.ContainerOverrides = containerOverrides(req.Overrides)
	}

	out, err := c.batch.SubmitJob(ctx, input)
	c.metrics.TickOp("SubmitJob", err)
	if err != nil {
		return nil, fmt.Errorf("failed to submit job %s: %w", req.JobName, err)
	}

	c.logger.WithField("jobId", aws.ToString(out.JobId)).Debug("job submitted")

	return &models.SubmitReply{
		Response: models.NewResponse(responseMetadata(out.ResultMetadata), out),
		JobName:  aws.ToString(out.JobName),
		JobID:    aws.ToString(out.JobId),
	}, nil
}

// DescribeJobs returns the job records for the given ids. Unknown ids are
// simply absent from the result.
func (c *Client) DescribeJobs(ctx context.Context, ids []string) ([]models.JobDetail, error) {
	out, err := c.batch.DescribeJobs(ctx, &batch.DescribeJobsInput{Jobs: ids})
	c.metrics.TickOp("DescribeJobs", err)
	if err != nil {
		return nil, fmt.Errorf("failed to describe jobs: %w", err)
	}

	details := make([]models.JobDetail, 0, len(out.Jobs))
	for _, jd := range out.Jobs {
		details = append(details, jobDetail(jd))
	}
	return details, nil
}

// DescribeJob returns one job record, or nil when the service has none
// for the id.
func (c *Client) DescribeJob(ctx context.Context, id string) (*models.JobDetail, error) {
	details, err := c.DescribeJobs(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, nil
	}
	return &details[0], nil
}

// CancelJob cancels a queued job.
func (c *Client) CancelJob(ctx context.Context, id, reason string) (*models.Response, error) {
	out, err := c.batch.CancelJob(ctx, &batch.CancelJobInput{
		JobId:  aws.String(id),
		Reason: aws.String(reason),
	})
	c.metrics.TickOp("CancelJob", err)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel job %s: %w", id, err)
	}
	reply := models.NewResponse(responseMetadata(out.ResultMetadata), out)
	return &reply, nil
}

// TerminateJob terminates a starting or running job.
func (c *Client) TerminateJob(ctx context.Context, id, reason string) (*models.Response, error) {
	out, err := c.batch.TerminateJob(ctx, &batch.TerminateJobInput{
		JobId:  aws.String(id),
		Reason: aws.String(reason),
	})
	c.metrics.TickOp("TerminateJob", err)
	if err != nil {
		return nil, fmt.Errorf("failed to terminate job %s: %w", id, err)
	}
	reply := models.NewResponse(responseMetadata(out.ResultMetadata), out)
	return &reply, nil
}

func containerOverrides(o *models.ContainerOverrides) *batchtypes.ContainerOverrides {
	co := &batchtypes.ContainerOverrides{Command: o.Command}
	keys := make([]string, 0, len(o.Environment))
	for k := range o.Environment {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		co.Environment = append(co.Environment, batchtypes.KeyValuePair{
			Name:  aws.String(k),
			Value: aws.String(o.Environment[k]),
		})
	}
	return co
}

func jobDetail(jd batchtypes.JobDetail) models.JobDetail {
	detail := models.JobDetail{
		JobID:        aws.ToString(jd.JobId),
		JobName:      aws.ToString(jd.JobName),
		Queue:        aws.ToString(jd.JobQueue),
		Status:       models.JobStatus(jd.Status),
		StatusReason: aws.ToString(jd.StatusReason),
	}
	if jd.Container != nil {
		detail.Container = models.ContainerDetail{
			LogStreamName: aws.ToString(jd.Container.LogStreamName),
			ExitCode:      jd.Container.ExitCode,
			Reason:        aws.ToString(jd.Container.Reason),
		}
	}
	return detail
}
