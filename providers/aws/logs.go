package aws

import (
	"context"
	"fmt"

	"batch-client/core/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	logtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
)

// GetLogEvents fetches one page of log events from a stream within a
// group, oldest first. A zero endTime means no upper bound.
func (c *Client) GetLogEvents(ctx context.Context, group, stream string, startTime, endTime int64) (*models.LogPage, error) {
	input := &cloudwatchlogs.GetLogEventsInput{
		LogGroupName:  aws.String(group),
		LogStreamName: aws.String(stream),
		StartTime:     aws.Int64(startTime),
		StartFromHead: aws.Bool(true),
	}
	if endTime > 0 {
		input.EndTime = aws.Int64(endTime)
	}

	out, err := c.logs.GetLogEvents(ctx, input)
	c.metrics.TickOp("GetLogEvents", err)
	if err != nil {
		return nil, fmt.Errorf("failed to get log events for %s/%s: %w", group, stream, err)
	}

	events := make([]models.LogEvent, 0, len(out.Events))
	for _, ev := range out.Events {
		events = append(events, logEvent(ev))
	}

	return &models.LogPage{
		Events:            events,
		NextForwardToken:  aws.ToString(out.NextForwardToken),
		NextBackwardToken: aws.ToString(out.NextBackwardToken),
	}, nil
}

func logEvent(ev logtypes.OutputLogEvent) models.LogEvent {
	return models.LogEvent{
		Timestamp:     aws.ToInt64(ev.Timestamp),
		Message:       aws.ToString(ev.Message),
		IngestionTime: aws.ToInt64(ev.IngestionTime),
	}
}
