/*
Package table provides a thin adapter over a single DynamoDB table.

The Adapter is parameterized by table identity; domain code binds it to the
table it needs instead of subclassing:

	tbl := table.New(client, "DistributorInventory")
	item, err := tbl.Get(ctx, table.Item{"id": "D1#P1"})

Numeric round trip:
Every floating-point attribute is written as an exact decimal string, and
decimals read back convert to int64 when they carry no fractional part,
float64 otherwise. Writing 4.0 and reading it back therefore yields int64(4),
and any finite value with an exact decimal form survives the round trip
unchanged.

Scanning:
Scan collects every page by following the continuation token. For large
tables the Scanner pages lazily and exposes its token for checkpointed
restarts, and ScanStream delivers items over a channel as pages are drained:

	results := tbl.ScanStream(ctx, nil,
	    table.WithPageSize(25),
	    table.WithBufferSize(100),
	)
	for r := range results {
	    if r.Error != nil { ... }
	}
*/
package table
