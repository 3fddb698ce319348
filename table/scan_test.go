/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package table_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/supplychainlib/awsmock"
	"github.com/suparena/supplychainlib/table"
)

func seedItems(t *testing.T, tbl *table.Adapter, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		err := tbl.Put(context.Background(), table.Item{
			"id":   fmt.Sprintf("item-%03d", i),
			"qty":  i,
			"cost": float64(i) + 0.25,
		})
		require.NoError(t, err)
	}
}

func TestScanUnionOfAllPages(t *testing.T) {
	client := awsmock.NewDynamoDB().WithPageSize(7)
	tbl := table.New(client, "RawMaterials")
	seedItems(t, tbl, 23)

	items, err := tbl.Scan(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, items, 23, "scan must return the union of every page")
	assert.GreaterOrEqual(t, client.ScanCalls(), 4, "23 items at 7 per page needs at least 4 requests")

	// No duplicates.
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		id := item["id"].(string)
		assert.False(t, seen[id], "item %s returned twice", id)
		seen[id] = true
	}
}

func TestScannerLazyPaging(t *testing.T) {
	client := awsmock.NewDynamoDB().WithPageSize(5)
	tbl := table.New(client, "RawMaterials")
	seedItems(t, tbl, 12)

	scanner, err := tbl.NewScanner(nil)
	require.NoError(t, err)

	var total int
	pages := 0
	for scanner.HasMorePages() {
		page, err := scanner.NextPage(context.Background())
		require.NoError(t, err)
		total += len(page)
		pages++
	}
	assert.Equal(t, 12, total)
	assert.Equal(t, 3, pages)
	assert.Nil(t, scanner.StartKey(), "token is cleared after the final page")
}

func TestScannerRestartFromToken(t *testing.T) {
	client := awsmock.NewDynamoDB().WithPageSize(4)
	tbl := table.New(client, "RawMaterials")
	seedItems(t, tbl, 10)

	first, err := tbl.NewScanner(nil)
	require.NoError(t, err)
	page1, err := first.NextPage(context.Background())
	require.NoError(t, err)
	require.Len(t, page1, 4)
	token := first.StartKey()
	require.NotNil(t, token)

	// A fresh scanner resumed from the token sees exactly the remainder.
	resumed, err := tbl.NewScanner(&table.ScanParams{ExclusiveStartKey: token})
	require.NoError(t, err)

	var rest int
	for resumed.HasMorePages() {
		page, err := resumed.NextPage(context.Background())
		require.NoError(t, err)
		rest += len(page)
	}
	assert.Equal(t, 6, rest)
}

func TestScanWithFilterExpression(t *testing.T) {
	client := awsmock.NewDynamoDB()
	tbl := table.New(client, "RawMaterials")
	ctx := context.Background()

	require.NoError(t, tbl.Put(ctx, table.Item{"id": "m1", "supplier_id": "S1"}))
	require.NoError(t, tbl.Put(ctx, table.Item{"id": "m2", "supplier_id": "S2"}))
	require.NoError(t, tbl.Put(ctx, table.Item{"id": "m3", "supplier_id": "S1"}))

	items, err := tbl.Scan(ctx, &table.ScanParams{
		FilterExpression:          aws.String("supplier_id = :sid"),
		ExpressionAttributeValues: table.Item{":sid": "S1"},
	})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, "S1", item["supplier_id"])
	}
}

func TestScanDecodesNumericFields(t *testing.T) {
	client := awsmock.NewDynamoDB()
	tbl := table.New(client, "RawMaterials")
	ctx := context.Background()

	require.NoError(t, tbl.Put(ctx, table.Item{"id": "m1", "qty": 5.0, "cost": 1.5}))

	items, err := tbl.Scan(ctx, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(5), items[0]["qty"])
	assert.Equal(t, 1.5, items[0]["cost"])
}

func TestScanStreamDeliversAllItems(t *testing.T) {
	client := awsmock.NewDynamoDB().WithPageSize(6)
	tbl := table.New(client, "RawMaterials")
	seedItems(t, tbl, 15)

	var count int
	for result := range tbl.ScanStream(context.Background(), nil, table.WithBufferSize(4)) {
		require.NoError(t, result.Error)
		require.NotNil(t, result.Item)
		count++
	}
	assert.Equal(t, 15, count)
}

func TestScanStreamStopsOnCancel(t *testing.T) {
	client := awsmock.NewDynamoDB().WithPageSize(2)
	tbl := table.New(client, "RawMaterials")
	seedItems(t, tbl, 20)

	ctx, cancel := context.WithCancel(context.Background())
	results := tbl.ScanStream(ctx, nil, table.WithBufferSize(1))

	// Drain a couple of items, then cancel.
	<-results
	<-results
	cancel()

	for range results {
		// Drain until the producer notices the cancellation and closes.
	}
}

func TestScanStreamClosesWhenCancelledBeforeStart(t *testing.T) {
	client := awsmock.NewDynamoDB()
	tbl := table.New(client, "RawMaterials")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Unencodable expression values fail scanner setup; with an unbuffered
	// channel and a cancelled context the producer must still shut down
	// instead of blocking on the error send.
	params := &table.ScanParams{
		FilterExpression:          aws.String("qty = :q"),
		ExpressionAttributeValues: table.Item{":q": make(chan int)},
	}
	results := tbl.ScanStream(ctx, params, table.WithBufferSize(0))

	// Give the producer time to observe the cancellation before anyone
	// receives; a blocked error send would still be pending here.
	time.Sleep(20 * time.Millisecond)

	select {
	case _, ok := <-results:
		assert.False(t, ok, "channel should close without delivering a result")
	case <-time.After(time.Second):
		t.Fatal("stream did not shut down after cancellation")
	}
}

func TestScanStreamPageSizeOption(t *testing.T) {
	client := awsmock.NewDynamoDB()
	tbl := table.New(client, "RawMaterials")
	seedItems(t, tbl, 9)

	var count int
	for result := range tbl.ScanStream(context.Background(), nil, table.WithPageSize(3)) {
		require.NoError(t, result.Error)
		count++
	}
	assert.Equal(t, 9, count)
	assert.Equal(t, 3, client.ScanCalls())
}
