// Package aws adapts the remote batch-compute, log and object-storage
// services to the client's typed interfaces.
package aws

import (
	"context"
	"fmt"

	"batch-client/config"
	"batch-client/core/monitoring"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/batch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

// Client is the AWS provider client. It implements the batch API, log
// fetcher and object checker interfaces consumed by the core packages.
type Client struct {
	batch   *batch.Client
	logs    *cloudwatchlogs.Client
	s3      *s3.Client
	logger  logrus.FieldLogger
	metrics *monitoring.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithLogger attaches a logger to the client.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics attaches operation metrics to the client.
func WithMetrics(m *monitoring.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a new AWS client for the configured region using the
// default credential chain.
func NewClient(ctx context.Context, cfg *config.Config, opts ...Option) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewClientFromConfig(awsCfg, opts...), nil
}

// NewClientFromConfig creates a new AWS client from an already-resolved
// SDK configuration.
func NewClientFromConfig(cfg awssdk.Config, opts ...Option) *Client {
	c := &Client{
		batch: batch.NewFromConfig(cfg),
		logs:  cloudwatchlogs.NewFromConfig(cfg),
		s3:    s3.NewFromConfig(cfg),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		logger := logrus.New()
		logger.SetLevel(logrus.PanicLevel)
		c.logger = logger
	}
	return c
}
