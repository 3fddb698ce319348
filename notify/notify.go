/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"github.com/suparena/supplychainlib/errors"
)

// Protocol is the delivery channel for a subscription.
type Protocol string

const (
	ProtocolEmail  Protocol = "email"
	ProtocolSMS    Protocol = "sms"
	ProtocolLambda Protocol = "lambda"
	ProtocolHTTPS  Protocol = "https"
)

// FilterPolicy restricts which published messages a subscription receives;
// it is evaluated by the provider, not locally.
type FilterPolicy map[string][]string

// Subscription describes one endpoint bound to the topic.
type Subscription struct {
	ARN      string
	Protocol Protocol
	Endpoint string
}

// SNSAPI is the narrow slice of the SNS client used by the notifier.
// *sns.Client satisfies it.
type SNSAPI interface {
	CreateTopic(ctx context.Context, params *sdk.CreateTopicInput, optFns ...func(*sdk.Options)) (*sdk.CreateTopicOutput, error)
	ListTopics(ctx context.Context, params *sdk.ListTopicsInput, optFns ...func(*sdk.Options)) (*sdk.ListTopicsOutput, error)
	Subscribe(ctx context.Context, params *sdk.SubscribeInput, optFns ...func(*sdk.Options)) (*sdk.SubscribeOutput, error)
	ListSubscriptionsByTopic(ctx context.Context, params *sdk.ListSubscriptionsByTopicInput, optFns ...func(*sdk.Options)) (*sdk.ListSubscriptionsByTopicOutput, error)
	Publish(ctx context.Context, params *sdk.PublishInput, optFns ...func(*sdk.Options)) (*sdk.PublishOutput, error)
}

var _ SNSAPI = (*sdk.Client)(nil)

// Notifier manages one notification topic: its subscriptions and the
// messages published to it.
type Notifier struct {
	client   SNSAPI
	topicARN string
}

// New constructs a Notifier. The topic ARN may be empty when the topic will
// be created through CreateTopic.
func New(client SNSAPI, topicARN string) *Notifier {
	return &Notifier{client: client, topicARN: topicARN}
}

// NewFromConfig constructs a Notifier with a real SNS client.
func NewFromConfig(cfg aws.Config, topicARN string) *Notifier {
	return New(sdk.NewFromConfig(cfg), topicARN)
}

// TopicARN returns the topic handle currently in use.
func (n *Notifier) TopicARN() string {
	return n.topicARN
}

func (n *Notifier) requireTopic(operation string) error {
	if n.topicARN == "" {
		return errors.NewPreconditionError(operation, "topic ARN not set; create or pass a topic first")
	}
	return nil
}

// CreateTopic creates the named topic (or fetches the existing one) and
// binds the notifier to it.
func (n *Notifier) CreateTopic(ctx context.Context, name string) (string, error) {
	out, err := n.client.CreateTopic(ctx, &sdk.CreateTopicInput{Name: &name})
	if err != nil {
		return "", errors.Classify("CreateTopic", err)
	}
	n.topicARN = aws.ToString(out.TopicArn)
	return n.topicARN, nil
}

// ListTopics returns every topic ARN, following the pagination token.
func (n *Notifier) ListTopics(ctx context.Context) ([]string, error) {
	input := &sdk.ListTopicsInput{}
	var arns []string
	for {
		out, err := n.client.ListTopics(ctx, input)
		if err != nil {
			return nil, errors.Classify("ListTopics", err)
		}
		for _, topic := range out.Topics {
			arns = append(arns, aws.ToString(topic.TopicArn))
		}
		if out.NextToken == nil {
			return arns, nil
		}
		input.NextToken = out.NextToken
	}
}

// Subscribe binds an endpoint to the topic, optionally restricted by a
// provider-evaluated filter policy. It returns the subscription ARN.
func (n *Notifier) Subscribe(ctx context.Context, protocol Protocol, endpoint string, filter FilterPolicy) (string, error) {
	if err := n.requireTopic("Subscribe"); err != nil {
		return "", err
	}

	input := &sdk.SubscribeInput{
		TopicArn:              &n.topicARN,
		Protocol:              aws.String(string(protocol)),
		Endpoint:              &endpoint,
		ReturnSubscriptionArn: true,
	}
	if len(filter) > 0 {
		policy, err := json.Marshal(filter)
		if err != nil {
			return "", errors.NewValidationError("filter", err.Error())
		}
		input.Attributes = map[string]string{"FilterPolicy": string(policy)}
	}

	out, err := n.client.Subscribe(ctx, input)
	if err != nil {
		return "", errors.Classify("Subscribe", err)
	}
	return aws.ToString(out.SubscriptionArn), nil
}

// ListSubscriptions returns the topic's subscriptions, following the
// pagination token.
func (n *Notifier) ListSubscriptions(ctx context.Context) ([]Subscription, error) {
	if err := n.requireTopic("ListSubscriptions"); err != nil {
		return nil, err
	}

	input := &sdk.ListSubscriptionsByTopicInput{TopicArn: &n.topicARN}
	var subs []Subscription
	for {
		out, err := n.client.ListSubscriptionsByTopic(ctx, input)
		if err != nil {
			return nil, errors.Classify("ListSubscriptionsByTopic", err)
		}
		for _, sub := range out.Subscriptions {
			subs = append(subs, Subscription{
				ARN:      aws.ToString(sub.SubscriptionArn),
				Protocol: Protocol(aws.ToString(sub.Protocol)),
				Endpoint: aws.ToString(sub.Endpoint),
			})
		}
		if out.NextToken == nil {
			return subs, nil
		}
		input.NextToken = out.NextToken
	}
}

// Publish sends a message to the topic and returns the provider message ID.
func (n *Notifier) Publish(ctx context.Context, subject, body string, attributes map[string]string) (string, error) {
	if err := n.requireTopic("Publish"); err != nil {
		return "", err
	}

	input := &sdk.PublishInput{
		TopicArn: &n.topicARN,
		Subject:  &subject,
		Message:  &body,
	}
	if len(attributes) > 0 {
		input.MessageAttributes = make(map[string]types.MessageAttributeValue, len(attributes))
		for name, value := range attributes {
			input.MessageAttributes[name] = types.MessageAttributeValue{
				DataType:    aws.String("String"),
				StringValue: aws.String(value),
			}
		}
	}

	out, err := n.client.Publish(ctx, input)
	if err != nil {
		return "", errors.Classify("Publish", err)
	}
	return aws.ToString(out.MessageId), nil
}

// SendLowStockAlert publishes the fixed reorder-level message for a product.
func (n *Notifier) SendLowStockAlert(ctx context.Context, product string, quantity int) (string, error) {
	message := fmt.Sprintf("Product '%s' is below the reorder level (%d left).", product, quantity)
	return n.Publish(ctx, "Low Stock Alert", message, nil)
}

// EnsureCustomerSubscription returns the existing subscription for the email
// endpoint, or creates a filtered one. Two concurrent callers can still race
// to create duplicates; the check is a linear scan of current subscriptions.
func (n *Notifier) EnsureCustomerSubscription(ctx context.Context, email string) (string, error) {
	if err := n.requireTopic("EnsureCustomerSubscription"); err != nil {
		return "", err
	}

	existing, err := n.ListSubscriptions(ctx)
	if err != nil {
		return "", err
	}
	for _, sub := range existing {
		if sub.Endpoint == email {
			return sub.ARN, nil
		}
	}

	return n.Subscribe(ctx, ProtocolEmail, email, FilterPolicy{
		"customer_email": {email},
	})
}
