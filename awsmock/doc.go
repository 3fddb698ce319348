/*
Package awsmock provides in-memory fakes of the narrow AWS client interfaces
used by the adapters, for testing without a live account.

Each fake stores state in process memory and supports error injection:

	ddb := awsmock.NewDynamoDB().WithKeyAttributes("Suppliers", "supplier_id")
	tbl := table.New(ddb, "Suppliers")
*/
package awsmock
