/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package table_test

import (
	"context"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/supplychainlib/awsmock"
	"github.com/suparena/supplychainlib/errors"
	"github.com/suparena/supplychainlib/table"
)

func newTestAdapter(t *testing.T) (*table.Adapter, *awsmock.DynamoDB) {
	t.Helper()
	client := awsmock.NewDynamoDB().WithKeyAttributes("Suppliers", "supplier_id")
	return table.New(client, "Suppliers"), client
}

func TestPutAndGet(t *testing.T) {
	tbl, _ := newTestAdapter(t)
	ctx := context.Background()

	err := tbl.Put(ctx, table.Item{
		"supplier_id": "S1",
		"name":        "Acme Metals",
		"rating":      4.5,
	})
	require.NoError(t, err)

	got, err := tbl.Get(ctx, table.Item{"supplier_id": "S1"})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Acme Metals", got["name"])
	assert.Equal(t, 4.5, got["rating"])
}

func TestGetAbsentReturnsNilNil(t *testing.T) {
	tbl, _ := newTestAdapter(t)

	got, err := tbl.Get(context.Background(), table.Item{"supplier_id": "missing"})
	require.NoError(t, err, "absence must not surface as an error")
	assert.Nil(t, got)
}

func TestGetClassifiesServiceErrors(t *testing.T) {
	tbl, client := newTestAdapter(t)
	client.FailWith(&smithy.GenericAPIError{
		Code:  "ThrottlingException",
		Fault: smithy.FaultClient,
	})

	_, err := tbl.Get(context.Background(), table.Item{"supplier_id": "S1"})
	require.Error(t, err)
	assert.True(t, errors.IsTransient(err), "throttling should classify as transient")
}

func TestDelete(t *testing.T) {
	tbl, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, tbl.Put(ctx, table.Item{"supplier_id": "S1", "name": "Acme"}))
	require.NoError(t, tbl.Delete(ctx, table.Item{"supplier_id": "S1"}))

	got, err := tbl.Get(ctx, table.Item{"supplier_id": "S1"})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateForwardsExpression(t *testing.T) {
	tbl, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, tbl.Put(ctx, table.Item{"supplier_id": "S1", "status": "active"}))

	err := tbl.Update(ctx,
		table.Item{"supplier_id": "S1"},
		"SET #st = :s",
		table.Item{":s": "suspended"},
		map[string]string{"#st": "status"},
	)
	require.NoError(t, err)

	got, err := tbl.Get(ctx, table.Item{"supplier_id": "S1"})
	require.NoError(t, err)
	assert.Equal(t, "suspended", got["status"])
}

func TestUpdateClassifiesErrors(t *testing.T) {
	tbl, client := newTestAdapter(t)
	client.FailWith(&smithy.GenericAPIError{
		Code:  "ValidationException",
		Fault: smithy.FaultClient,
	})

	err := tbl.Update(context.Background(),
		table.Item{"supplier_id": "S1"},
		"SET x = :v",
		table.Item{":v": 1},
		nil,
	)
	require.Error(t, err)
	assert.True(t, errors.IsPermanent(err))
}

func TestPutPreservesFloatPrecision(t *testing.T) {
	tbl, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, tbl.Put(ctx, table.Item{
		"supplier_id": "S2",
		"unit_price":  19.99,
		"weight":      2.0,
	}))

	got, err := tbl.Get(ctx, table.Item{"supplier_id": "S2"})
	require.NoError(t, err)
	assert.Equal(t, 19.99, got["unit_price"])
	assert.Equal(t, int64(2), got["weight"], "integer-valued floats read back as integers")
}
