/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package table

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/suparena/supplychainlib/errors"
)

// DynamoDBAPI is the narrow slice of the DynamoDB client used by the adapter.
// *dynamodb.Client satisfies it.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *sdk.UpdateItemInput, optFns ...func(*sdk.Options)) (*sdk.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
	Scan(ctx context.Context, params *sdk.ScanInput, optFns ...func(*sdk.Options)) (*sdk.ScanOutput, error)
}

var _ DynamoDBAPI = (*sdk.Client)(nil)

// Adapter performs item operations against a single DynamoDB table. One
// adapter is constructed per table identity; there are no per-table subtypes.
type Adapter struct {
	client    DynamoDBAPI
	tableName string
}

// New constructs an Adapter bound to the given table.
func New(client DynamoDBAPI, tableName string) *Adapter {
	return &Adapter{client: client, tableName: tableName}
}

// NewFromConfig constructs an Adapter with a real DynamoDB client.
func NewFromConfig(cfg aws.Config, tableName string) *Adapter {
	return New(sdk.NewFromConfig(cfg), tableName)
}

// TableName returns the table this adapter is bound to.
func (a *Adapter) TableName() string {
	return a.tableName
}

// Get fetches a single item by its key. A missing item is reported as
// (nil, nil), never as an error.
func (a *Adapter) Get(ctx context.Context, key Item) (Item, error) {
	keyAV, err := EncodeItem(key)
	if err != nil {
		return nil, err
	}

	out, err := a.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &a.tableName,
		Key:       keyAV,
	})
	if err != nil {
		return nil, errors.Classify("GetItem", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	return DecodeItem(out.Item)
}

// Put inserts or replaces an item. Every floating-point attribute, including
// those nested in lists and maps, is re-encoded as an exact decimal before
// submission.
func (a *Adapter) Put(ctx context.Context, item Item) error {
	av, err := EncodeItem(item)
	if err != nil {
		return err
	}

	_, err = a.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &a.tableName,
		Item:      av,
	})
	if err != nil {
		return errors.Classify("PutItem", err)
	}
	return nil
}

// Update applies an update expression to the item with the given key. The
// expression is forwarded verbatim; values are encoded like Put encodes
// attributes, and names optionally aliases reserved attribute names.
func (a *Adapter) Update(ctx context.Context, key Item, expr string, values Item, names map[string]string) error {
	keyAV, err := EncodeItem(key)
	if err != nil {
		return err
	}
	valueAV, err := EncodeItem(values)
	if err != nil {
		return err
	}

	input := &sdk.UpdateItemInput{
		TableName:                 &a.tableName,
		Key:                       keyAV,
		UpdateExpression:          &expr,
		ExpressionAttributeValues: valueAV,
	}
	if len(names) > 0 {
		input.ExpressionAttributeNames = names
	}

	if _, err := a.client.UpdateItem(ctx, input); err != nil {
		return errors.Classify("UpdateItem", err)
	}
	return nil
}

// Delete removes the item with the given key.
func (a *Adapter) Delete(ctx context.Context, key Item) error {
	keyAV, err := EncodeItem(key)
	if err != nil {
		return err
	}

	_, err = a.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &a.tableName,
		Key:       keyAV,
	})
	if err != nil {
		return errors.Classify("DeleteItem", err)
	}
	return nil
}
