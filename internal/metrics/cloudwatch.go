package metrics

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	namespace                = "CODETONE/API"
	httpStatusServerError    = 500
	cloudwatchTimeoutSeconds = 5
)

// Client wraps CloudWatch client for custom metrics
type Client struct {
	client      *cloudwatch.Client
	enabled     bool
	environment string
}

// NewClient creates a new CloudWatch metrics client
func NewClient(ctx context.Context, environment string) (*Client, error) {
	// Only enable in production
	if environment != "production" {
		log.Printf("📊 CloudWatch Metrics: DISABLED (environment: %s)", environment)
		return &Client{
			enabled:     false,
			environment: environment,
		}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to load AWS config for CloudWatch: %v", err)
		return &Client{enabled: false}, nil
	}

	client := cloudwatch.NewFromConfig(cfg)
	log.Printf("📊 CloudWatch Metrics: ✅ ENABLED (namespace: %s)", namespace)

	return &Client{
		client:      client,
		enabled:     true,
		environment: environment,
	}, nil
}

// RecordAPIRequest records an API request metric
func (m *Client) RecordAPIRequest(endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	go func() {
		ctx := context.Background()
		// Determine if success or error
		metricName := "APIRequests"
		if statusCode >= httpStatusServerError {
			metricName = "APIErrors"
		}

		dimensions := []types.Dimension{
			{
				Name:  aws.String("Endpoint"),
				Value: aws.String(endpoint),
			},
			{
				Name:  aws.String("Environment"),
				Value: aws.String(m.environment),
			},
		}

		// Record count
		if err := m.putMetric(ctx, metricName, 1, types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record %s metric: %v", metricName, err)
		}

		// Record duration
		latencyMs := float64(duration.Milliseconds())
		if err := m.putMetric(ctx, "APILatency", latencyMs, types.StandardUnitMilliseconds, dimensions); err != nil {
			log.Printf("Failed to record APILatency metric: %v", err)
		}
	}()
}

// RecordSonification records the shape of one pipeline run per style.
func (m *Client) RecordSonification(style string, sourceBytes, noteCount, complexity int) {
	if !m.enabled {
		return
	}

	go func() {
		ctx := context.Background()
		dimensions := []types.Dimension{
			{
				Name:  aws.String("Style"),
				Value: aws.String(style),
			},
			{
				Name:  aws.String("Environment"),
				Value: aws.String(m.environment),
			},
		}

		if err := m.putMetric(ctx, "Sonifications", 1, types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record Sonifications metric: %v", err)
		}

		if err := m.putMetric(ctx, "SourceBytes", float64(sourceBytes), types.StandardUnitBytes, dimensions); err != nil {
			log.Printf("Failed to record SourceBytes metric: %v", err)
		}

		if err := m.putMetric(ctx, "NoteCount", float64(noteCount), types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record NoteCount metric: %v", err)
		}

		if err := m.putMetric(ctx, "Complexity", float64(complexity), types.StandardUnitNone, dimensions); err != nil {
			log.Printf("Failed to record Complexity metric: %v", err)
		}
	}()
}

// RecordMIDIEncoding records encoded file sizes
func (m *Client) RecordMIDIEncoding(byteSize int, duration time.Duration) {
	if !m.enabled {
		return
	}

	go func() {
		ctx := context.Background()
		dimensions := []types.Dimension{
			{
				Name:  aws.String("Environment"),
				Value: aws.String(m.environment),
			},
		}

		if err := m.putMetric(ctx, "MIDIBytes", float64(byteSize), types.StandardUnitBytes, dimensions); err != nil {
			log.Printf("Failed to record MIDIBytes metric: %v", err)
		}

		durationMs := float64(duration.Milliseconds())
		if err := m.putMetric(ctx, "MIDIEncodeDuration", durationMs, types.StandardUnitMilliseconds, dimensions); err != nil {
			log.Printf("Failed to record MIDIEncodeDuration metric: %v", err)
		}
	}()
}

// putMetric sends a metric to CloudWatch
func (m *Client) putMetric(
	_ context.Context,
	metricName string,
	value float64,
	unit types.StandardUnit,
	dimensions []types.Dimension,
) error {
	if !m.enabled || m.client == nil {
		return nil
	}

	// Create context with timeout for CloudWatch call
	timeout := time.Duration(cloudwatchTimeoutSeconds) * time.Second
	cwCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	_, err := m.client.PutMetricData(cwCtx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Value:      aws.Float64(value),
				Unit:       unit,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: dimensions,
			},
		},
	})

	return err
}
