/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package notify_test

import (
	"context"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/supplychainlib/awsmock"
	"github.com/suparena/supplychainlib/errors"
	"github.com/suparena/supplychainlib/notify"
)

func newTestNotifier(t *testing.T) (*notify.Notifier, *awsmock.SNS) {
	t.Helper()
	client := awsmock.NewSNS()
	notifier := notify.New(client, "")
	arn, err := notifier.CreateTopic(context.Background(), "stock-alerts")
	require.NoError(t, err)
	require.NotEmpty(t, arn)
	return notifier, client
}

func TestCreateTopicBindsNotifier(t *testing.T) {
	notifier, _ := newTestNotifier(t)
	assert.Contains(t, notifier.TopicARN(), "stock-alerts")
}

func TestOperationsRequireTopic(t *testing.T) {
	notifier := notify.New(awsmock.NewSNS(), "")
	ctx := context.Background()

	_, err := notifier.Publish(ctx, "s", "b", nil)
	assert.True(t, errors.IsPreconditionFailed(err))

	_, err = notifier.Subscribe(ctx, notify.ProtocolEmail, "a@b.c", nil)
	assert.True(t, errors.IsPreconditionFailed(err))

	_, err = notifier.ListSubscriptions(ctx)
	assert.True(t, errors.IsPreconditionFailed(err))

	_, err = notifier.EnsureCustomerSubscription(ctx, "a@b.c")
	assert.True(t, errors.IsPreconditionFailed(err))
}

func TestListTopicsFollowsPagination(t *testing.T) {
	client := awsmock.NewSNS().WithPageSize(2)
	notifier := notify.New(client, "")
	ctx := context.Background()

	for _, name := range []string{"t1", "t2", "t3", "t4", "t5"} {
		_, err := notifier.CreateTopic(ctx, name)
		require.NoError(t, err)
	}

	topics, err := notifier.ListTopics(ctx)
	require.NoError(t, err)
	assert.Len(t, topics, 5)
}

func TestSubscribeWithFilterPolicy(t *testing.T) {
	notifier, client := newTestNotifier(t)

	arn, err := notifier.Subscribe(context.Background(), notify.ProtocolEmail,
		"buyer@example.com", notify.FilterPolicy{"customer_email": {"buyer@example.com"}})
	require.NoError(t, err)
	require.NotEmpty(t, arn)

	attrs := client.SubscriptionAttributes(arn)
	require.NotNil(t, attrs)
	assert.JSONEq(t, `{"customer_email":["buyer@example.com"]}`, attrs["FilterPolicy"])
}

func TestListSubscriptionsFollowsPagination(t *testing.T) {
	notifier, client := newTestNotifier(t)
	client.WithPageSize(2)
	ctx := context.Background()

	endpoints := []string{"a@x.co", "b@x.co", "c@x.co", "d@x.co", "e@x.co"}
	for _, e := range endpoints {
		_, err := notifier.Subscribe(ctx, notify.ProtocolEmail, e, nil)
		require.NoError(t, err)
	}

	subs, err := notifier.ListSubscriptions(ctx)
	require.NoError(t, err)
	assert.Len(t, subs, len(endpoints))
}

func TestPublishWithAttributes(t *testing.T) {
	notifier, client := newTestNotifier(t)

	id, err := notifier.Publish(context.Background(), "Shipment Update",
		"PO-1 shipped", map[string]string{"customer_email": "buyer@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	published := client.Published()
	require.Len(t, published, 1)
	assert.Equal(t, "Shipment Update", published[0].Subject)
	assert.Equal(t, "PO-1 shipped", published[0].Body)

	attr, ok := published[0].Attributes["customer_email"]
	require.True(t, ok)
	assert.Equal(t, "String", *attr.DataType)
	assert.Equal(t, "buyer@example.com", *attr.StringValue)
}

func TestPublishClassifiesErrors(t *testing.T) {
	notifier, client := newTestNotifier(t)
	client.FailWith(&smithy.GenericAPIError{Code: "AuthorizationError", Fault: smithy.FaultClient})

	_, err := notifier.Publish(context.Background(), "s", "b", nil)
	require.Error(t, err)
	assert.True(t, errors.IsPermanent(err))
}

func TestSendLowStockAlertTemplate(t *testing.T) {
	notifier, client := newTestNotifier(t)

	_, err := notifier.SendLowStockAlert(context.Background(), "Steel Bolt M6", 3)
	require.NoError(t, err)

	published := client.Published()
	require.Len(t, published, 1)
	assert.Equal(t, "Low Stock Alert", published[0].Subject)
	assert.Equal(t, "Product 'Steel Bolt M6' is below the reorder level (3 left).", published[0].Body)
}

func TestEnsureCustomerSubscriptionIdempotent(t *testing.T) {
	notifier, client := newTestNotifier(t)
	ctx := context.Background()

	first, err := notifier.EnsureCustomerSubscription(ctx, "buyer@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := notifier.EnsureCustomerSubscription(ctx, "buyer@example.com")
	require.NoError(t, err)
	assert.Equal(t, first, second, "repeat calls must return the same subscription")

	subs, err := notifier.ListSubscriptions(ctx)
	require.NoError(t, err)
	assert.Len(t, subs, 1)

	attrs := client.SubscriptionAttributes(first)
	require.NotNil(t, attrs)
	assert.JSONEq(t, `{"customer_email":["buyer@example.com"]}`, attrs["FilterPolicy"])
}

func TestEnsureCustomerSubscriptionDistinctEmails(t *testing.T) {
	notifier, _ := newTestNotifier(t)
	ctx := context.Background()

	a, err := notifier.EnsureCustomerSubscription(ctx, "a@example.com")
	require.NoError(t, err)
	b, err := notifier.EnsureCustomerSubscription(ctx, "b@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
