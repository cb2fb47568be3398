package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Notifier announces images uploaded into the suggestion folder
type Notifier interface {
	NotifySuggested(ctx context.Context, key string) error
}

// SNSPublisher is the SNS client method the notifier calls
type SNSPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

var _ SNSPublisher = (*sns.Client)(nil)

// SNSNotifier publishes one message per suggested image to a topic.
type SNSNotifier struct {
	client   SNSPublisher
	topicARN string
	bucket   string
	logger   *slog.Logger
}

// NewSNSNotifier creates an SNS client from cfg.
func NewSNSNotifier(cfg aws.Config, topicARN, bucket string, logger *slog.Logger) *SNSNotifier {
	return NewSNSNotifierWithClient(sns.NewFromConfig(cfg), topicARN, bucket, logger)
}

// NewSNSNotifierWithClient builds a notifier on a pre-built client.
func NewSNSNotifierWithClient(client SNSPublisher, topicARN, bucket string, logger *slog.Logger) *SNSNotifier {
	return &SNSNotifier{client: client, topicARN: topicARN, bucket: bucket, logger: logger}
}

func (n *SNSNotifier) NotifySuggested(ctx context.Context, key string) error {
	out, err := n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Message:  aws.String(SuggestionMessage(n.bucket, key)),
	})
	if err != nil {
		return newError("publish", n.topicARN, key, err)
	}
	n.logger.DebugContext(ctx, "suggestion published", "key", key, "message_id", aws.ToString(out.MessageId))
	return nil
}

// SuggestionMessage is the body sent for a suggested image.
func SuggestionMessage(bucket, key string) string {
	return fmt.Sprintf("Image has been suggested %s/%s", bucket, key)
}

// NopNotifier is used when no topic is configured.
type NopNotifier struct{}

func (NopNotifier) NotifySuggested(context.Context, string) error {
	return nil
}
