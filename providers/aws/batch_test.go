package aws

import (
	"testing"

	"batch-client/core/models"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	batchtypes "github.com/aws/aws-sdk-go-v2/service/batch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobDetailMapping(t *testing.T) {
	exitCode := int32(0)
	detail := jobDetail(batchtypes.JobDetail{
		JobId:        awssdk.String("job-1"),
		JobName:      awssdk.String("2018-02-23T12-13-38_foo"),
		JobQueue:     awssdk.String("queue-1"),
		Status:       batchtypes.JobStatusRunning,
		StatusReason: awssdk.String("Essential container started"),
		Container: &batchtypes.ContainerDetail{
			LogStreamName: awssdk.String("foo/default/abc123"),
			ExitCode:      &exitCode,
		},
	})

	assert.Equal(t, "job-1", detail.JobID)
	assert.Equal(t, "2018-02-23T12-13-38_foo", detail.JobName)
	assert.Equal(t, "queue-1", detail.Queue)
	assert.Equal(t, models.StatusRunning, detail.Status)
	assert.Equal(t, "foo/default/abc123", detail.Container.LogStreamName)
	require.NotNil(t, detail.Container.ExitCode)
	assert.Equal(t, int32(0), *detail.Container.ExitCode)
}

func TestJobDetailMappingWithoutContainer(t *testing.T) {
	detail := jobDetail(batchtypes.JobDetail{
		JobId:  awssdk.String("job-1"),
		Status: batchtypes.JobStatusRunnable,
	})

	assert.Equal(t, models.StatusRunnable, detail.Status)
	assert.Equal(t, "", detail.Container.LogStreamName)
}

func TestContainerOverridesEnvironmentIsSorted(t *testing.T) {
	co := containerOverrides(&models.ContainerOverrides{
		Command: []string{"run", "--fast"},
		Environment: map[string]string{
			"ZONE":  "b",
			"ALPHA": "a",
			"MID":   "m",
		},
	})

	assert.Equal(t, []string{"run", "--fast"}, co.Command)
	require.Len(t, co.Environment, 3)
	assert.Equal(t, "ALPHA", awssdk.ToString(co.Environment[0].Name))
	assert.Equal(t, "MID", awssdk.ToString(co.Environment[1].Name))
	assert.Equal(t, "ZONE", awssdk.ToString(co.Environment[2].Name))
}
