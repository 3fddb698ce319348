/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package awsmock

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/google/uuid"
)

// PublishedMessage records one Publish request.
type PublishedMessage struct {
	TopicARN   string
	Subject    string
	Body       string
	Attributes map[string]types.MessageAttributeValue
}

// SNS is an in-memory fake of the SNS operations the notifier uses.
type SNS struct {
	mu        sync.Mutex
	topics    map[string]string // name -> ARN
	subs      map[string][]types.Subscription
	subAttrs  map[string]map[string]string // subscription ARN -> attributes
	published []PublishedMessage
	pageSize  int
	nextErr   error
}

// NewSNS creates an empty fake.
func NewSNS() *SNS {
	return &SNS{
		topics:   make(map[string]string),
		subs:     make(map[string][]types.Subscription),
		subAttrs: make(map[string]map[string]string),
	}
}

// WithPageSize forces list operations to return at most n entries per page.
func (m *SNS) WithPageSize(n int) *SNS {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pageSize = n
	return m
}

// FailWith makes the next call return err.
func (m *SNS) FailWith(err error) *SNS {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextErr = err
	return m
}

// Published returns the messages published so far.
func (m *SNS) Published() []PublishedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PublishedMessage(nil), m.published...)
}

// SubscriptionAttributes returns the attributes recorded for a subscription.
func (m *SNS) SubscriptionAttributes(arn string) map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subAttrs[arn]
}

func (m *SNS) takeErr() error {
	err := m.nextErr
	m.nextErr = nil
	return err
}

// CreateTopic creates the named topic, or returns the existing ARN.
func (m *SNS) CreateTopic(ctx context.Context, params *sdk.CreateTopicInput, optFns ...func(*sdk.Options)) (*sdk.CreateTopicOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	name := aws.ToString(params.Name)
	arn, ok := m.topics[name]
	if !ok {
		arn = fmt.Sprintf("arn:aws:sns:us-east-1:000000000000:%s", name)
		m.topics[name] = arn
	}
	return &sdk.CreateTopicOutput{TopicArn: &arn}, nil
}

// ListTopics lists topic ARNs with optional pagination.
func (m *SNS) ListTopics(ctx context.Context, params *sdk.ListTopicsInput, optFns ...func(*sdk.Options)) (*sdk.ListTopicsOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	var arns []string
	for _, arn := range m.topics {
		arns = append(arns, arn)
	}
	sort.Strings(arns)

	page, next := paginate(arns, params.NextToken, m.pageSize)
	out := &sdk.ListTopicsOutput{NextToken: next}
	for _, arn := range page {
		arn := arn
		out.Topics = append(out.Topics, types.Topic{TopicArn: &arn})
	}
	return out, nil
}

// Subscribe records a subscription and returns a fresh ARN.
func (m *SNS) Subscribe(ctx context.Context, params *sdk.SubscribeInput, optFns ...func(*sdk.Options)) (*sdk.SubscribeOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	topicARN := aws.ToString(params.TopicArn)
	subARN := fmt.Sprintf("%s:%s", topicARN, uuid.NewString())
	m.subs[topicARN] = append(m.subs[topicARN], types.Subscription{
		SubscriptionArn: &subARN,
		TopicArn:        params.TopicArn,
		Protocol:        params.Protocol,
		Endpoint:        params.Endpoint,
	})
	if len(params.Attributes) > 0 {
		attrs := make(map[string]string, len(params.Attributes))
		for k, v := range params.Attributes {
			attrs[k] = v
		}
		m.subAttrs[subARN] = attrs
	}
	return &sdk.SubscribeOutput{SubscriptionArn: &subARN}, nil
}

// ListSubscriptionsByTopic lists a topic's subscriptions with optional
// pagination.
func (m *SNS) ListSubscriptionsByTopic(ctx context.Context, params *sdk.ListSubscriptionsByTopicInput, optFns ...func(*sdk.Options)) (*sdk.ListSubscriptionsByTopicOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	subs := m.subs[aws.ToString(params.TopicArn)]
	indexes := make([]string, len(subs))
	for i := range subs {
		indexes[i] = strconv.Itoa(i)
	}

	page, next := paginate(indexes, params.NextToken, m.pageSize)
	out := &sdk.ListSubscriptionsByTopicOutput{NextToken: next}
	for _, idx := range page {
		i, _ := strconv.Atoi(idx)
		out.Subscriptions = append(out.Subscriptions, subs[i])
	}
	return out, nil
}

// Publish records the message and returns a fresh message ID.
func (m *SNS) Publish(ctx context.Context, params *sdk.PublishInput, optFns ...func(*sdk.Options)) (*sdk.PublishOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	m.published = append(m.published, PublishedMessage{
		TopicARN:   aws.ToString(params.TopicArn),
		Subject:    aws.ToString(params.Subject),
		Body:       aws.ToString(params.Message),
		Attributes: params.MessageAttributes,
	})
	id := uuid.NewString()
	return &sdk.PublishOutput{MessageId: &id}, nil
}

// paginate slices entries into pages keyed by an opaque index token.
func paginate(entries []string, token *string, pageSize int) ([]string, *string) {
	start := 0
	if token != nil {
		if n, err := strconv.Atoi(*token); err == nil {
			start = n
		}
	}
	if start >= len(entries) {
		return nil, nil
	}

	end := len(entries)
	if pageSize > 0 && start+pageSize < end {
		end = start + pageSize
	}

	var next *string
	if end < len(entries) {
		t := strconv.Itoa(end)
		next = &t
	}
	return entries[start:end], next
}
