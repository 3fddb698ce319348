/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package stores

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"

	"github.com/suparena/supplychainlib/errors"
	"github.com/suparena/supplychainlib/table"
)

// PurchaseOrder is the typed record stored in the PurchaseOrders table.
type PurchaseOrder struct {

	// Unique identifier for the purchase order.
	// Required: true
	POID *string `json:"po_id" dynamodbav:"po_id"`

	// Supplier the order was placed with.
	// Required: true
	SupplierID *string `json:"supplier_id" dynamodbav:"supplier_id"`

	// Current order status.
	Status string `json:"status,omitempty" dynamodbav:"status,omitempty"`

	// Total order amount.
	TotalAmount float64 `json:"total_amount,omitempty" dynamodbav:"total_amount,omitempty"`

	// Timestamp when the order was created.
	// Format: date-time
	CreatedAt *strfmt.DateTime `json:"created_at,omitempty" dynamodbav:"created_at,omitempty"`
}

// PurchaseOrderStore reads and writes typed purchase orders, keyed by po_id.
type PurchaseOrderStore struct {
	client    table.DynamoDBAPI
	tableName string
}

// NewPurchaseOrderStore constructs a PurchaseOrderStore.
func NewPurchaseOrderStore(client table.DynamoDBAPI) *PurchaseOrderStore {
	return &PurchaseOrderStore{client: client, tableName: TablePurchaseOrders}
}

func poKey(poID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"po_id": &types.AttributeValueMemberS{Value: poID},
	}
}

// Get retrieves a purchase order by its ID, or nil when absent.
func (s *PurchaseOrderStore) Get(ctx context.Context, poID string) (*PurchaseOrder, error) {
	out, err := s.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &s.tableName,
		Key:       poKey(poID),
	})
	if err != nil {
		return nil, errors.Classify("GetItem", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	po := new(PurchaseOrder)
	if err := attributevalue.UnmarshalMap(out.Item, po); err != nil {
		return nil, errors.NewValidationError("po", err.Error())
	}
	return po, nil
}

// Put inserts or replaces a purchase order.
func (s *PurchaseOrderStore) Put(ctx context.Context, po PurchaseOrder) error {
	if po.POID == nil || *po.POID == "" {
		return errors.NewValidationError("po_id", "must not be empty")
	}

	av, err := attributevalue.MarshalMap(po)
	if err != nil {
		return errors.NewValidationError("po", err.Error())
	}

	if _, err := s.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &s.tableName,
		Item:      av,
	}); err != nil {
		return errors.Classify("PutItem", err)
	}
	return nil
}

// Delete removes a purchase order by its ID.
func (s *PurchaseOrderStore) Delete(ctx context.Context, poID string) error {
	_, err := s.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &s.tableName,
		Key:       poKey(poID),
	})
	if err != nil {
		return errors.Classify("DeleteItem", err)
	}
	return nil
}
