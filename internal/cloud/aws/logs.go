// internal/cloud/aws/logs.go
package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"

	"github.com/hiptraveler/agentctl/internal/models"
)

// LogEvent is one application log line from CloudWatch.
type LogEvent struct {
	Timestamp time.Time
	Stream    string
	Message   string
}

// TailLogs returns up to limit recent events across all streams of the
// service log group, newest last.
func (p *Provider) TailLogs(ctx context.Context, logGroup string, since time.Duration, limit int32) ([]LogEvent, error) {
	if logGroup == "" {
		return nil, fmt.Errorf("no log group recorded; deploy first")
	}
	client := cloudwatchlogs.NewFromConfig(p.AWSConfig)

	input := &cloudwatchlogs.FilterLogEventsInput{
		LogGroupName: aws.String(logGroup),
		Limit:        aws.Int32(limit),
	}
	if since > 0 {
		input.StartTime = aws.Int64(time.Now().Add(-since).UnixMilli())
	}

	var events []LogEvent
	for {
		out, err := client.FilterLogEvents(ctx, input)
		if err != nil {
			return nil, &models.ProviderError{
				Provider:  "aws",
				Operation: "tail-logs",
				Resource:  logGroup,
				Cause:     err,
			}
		}
		for _, event := range out.Events {
			events = append(events, LogEvent{
				Timestamp: time.UnixMilli(aws.ToInt64(event.Timestamp)),
				Stream:    aws.ToString(event.LogStreamName),
				Message:   aws.ToString(event.Message),
			})
		}
		if out.NextToken == nil || int32(len(events)) >= limit {
			break
		}
		input.NextToken = out.NextToken
	}

	return events, nil
}
