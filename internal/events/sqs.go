package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

const sqsTypeAttribute = "eventType"

type sqsAPI interface {
	SendMessage(ctx context.Context, in *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSPublisher sends envelopes to an SQS queue with the event type as a message attribute.
type SQSPublisher struct {
	client   sqsAPI
	queueURL string
	now      func() time.Time
}

// NewSQSPublisher loads the default AWS credential chain for region.
func NewSQSPublisher(ctx context.Context, region, queueURL string) (*SQSPublisher, error) {
	queueURL = strings.TrimSpace(queueURL)
	if queueURL == "" {
		return nil, errors.New("sqs queue url is required")
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SQSPublisher{client: sqs.NewFromConfig(cfg), queueURL: queueURL, now: time.Now}, nil
}

// Publish sends one message per event.
func (p *SQSPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	data, err := Marshal(eventType, payload, p.now())
	if err != nil {
		return fmt.Errorf("encode sqs message: %w", err)
	}
	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(data)),
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			sqsTypeAttribute: {DataType: aws.String("String"), StringValue: aws.String(eventType)},
		},
	})
	if err != nil {
		return fmt.Errorf("sqs send message: %w", err)
	}
	return nil
}

// Close is a no-op; the SDK client holds no connection.
func (p *SQSPublisher) Close() {}

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, eventType string, payload any) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, eventType, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() {
	for _, p := range m {
		p.Close()
	}
}

var (
	_ Publisher = (*SQSPublisher)(nil)
	_ Publisher = Multi(nil)
)
