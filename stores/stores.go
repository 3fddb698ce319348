/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package stores

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/suparena/supplychainlib/table"
)

// Table identities used by the supply-chain application. Each store binds
// the shared table adapter to one of them; there are no per-table subtypes.
const (
	TableSuppliers            = "Suppliers"
	TableRawMaterials         = "RawMaterials"
	TableFinishedProducts     = "FinishedProducts"
	TablePurchaseOrders       = "PurchaseOrders"
	TableDistributors         = "Distributors"
	TableDistributorOrders    = "DistributorOrders"
	TableDistributorInventory = "DistributorInventory"
	TableCustomerOrders       = "CustomerOrders"
)

// NewSupplierStore returns an adapter bound to the Suppliers table.
func NewSupplierStore(client table.DynamoDBAPI) *table.Adapter {
	return table.New(client, TableSuppliers)
}

// NewFinishedProductStore returns an adapter bound to the FinishedProducts table.
func NewFinishedProductStore(client table.DynamoDBAPI) *table.Adapter {
	return table.New(client, TableFinishedProducts)
}

// NewDistributorStore returns an adapter bound to the Distributors table.
func NewDistributorStore(client table.DynamoDBAPI) *table.Adapter {
	return table.New(client, TableDistributors)
}

// NewDistributorOrderStore returns an adapter bound to the DistributorOrders table.
func NewDistributorOrderStore(client table.DynamoDBAPI) *table.Adapter {
	return table.New(client, TableDistributorOrders)
}

// NewCustomerOrderStore returns an adapter bound to the CustomerOrders table.
func NewCustomerOrderStore(client table.DynamoDBAPI) *table.Adapter {
	return table.New(client, TableCustomerOrders)
}

// RawMaterialStore wraps the RawMaterials table with supplier-scoped reads.
type RawMaterialStore struct {
	tbl *table.Adapter
}

// NewRawMaterialStore constructs a RawMaterialStore.
func NewRawMaterialStore(client table.DynamoDBAPI) *RawMaterialStore {
	return &RawMaterialStore{tbl: table.New(client, TableRawMaterials)}
}

// Adapter exposes the underlying table adapter.
func (s *RawMaterialStore) Adapter() *table.Adapter {
	return s.tbl
}

// ListForSupplier returns the materials sourced from one supplier, filtered
// server-side during the scan.
func (s *RawMaterialStore) ListForSupplier(ctx context.Context, supplierID string) ([]table.Item, error) {
	return s.tbl.Scan(ctx, &table.ScanParams{
		FilterExpression:          aws.String("supplier_id = :sid"),
		ExpressionAttributeValues: table.Item{":sid": supplierID},
	})
}

// InventoryStore tracks per-distributor product quantities.
type InventoryStore struct {
	tbl *table.Adapter
}

// NewInventoryStore constructs an InventoryStore.
func NewInventoryStore(client table.DynamoDBAPI) *InventoryStore {
	return &InventoryStore{tbl: table.New(client, TableDistributorInventory)}
}

// inventoryKey composes the composite item key for a distributor's holding
// of one product.
func inventoryKey(distributorID, productID string) table.Item {
	return table.Item{"id": fmt.Sprintf("%s#%s", distributorID, productID)}
}

// AddStock atomically adjusts a distributor's quantity of a product,
// treating a missing attribute as zero. Concurrent calls are additive; the
// store's atomic update provides the ordering guarantee.
func (s *InventoryStore) AddStock(ctx context.Context, distributorID, productID string, delta int) error {
	return s.tbl.Update(ctx,
		inventoryKey(distributorID, productID),
		"SET quantity = if_not_exists(quantity, :z) + :q",
		table.Item{":q": delta, ":z": 0},
		nil,
	)
}

// Quantity reads a distributor's current quantity of a product. Absent
// records report zero.
func (s *InventoryStore) Quantity(ctx context.Context, distributorID, productID string) (int64, error) {
	item, err := s.tbl.Get(ctx, inventoryKey(distributorID, productID))
	if err != nil {
		return 0, err
	}
	if item == nil {
		return 0, nil
	}
	qty, ok := item["quantity"].(int64)
	if !ok {
		return 0, nil
	}
	return qty, nil
}
