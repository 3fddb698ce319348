/*
Package supplychainlib provides thin, typed adapters over the AWS services a
supply chain application depends on: DynamoDB tables, S3 object storage, SNS
notifications and Lambda invocation.

The packages are independent; each wraps one service client behind a small
interface so tests can substitute in-memory fakes (see awsmock).

  - table: a parameterized DynamoDB table adapter with exact numeric
    round-tripping and restartable scan pagination
  - stores: named table bindings and domain helpers (stock counters,
    purchase orders)
  - objectstore: an S3-backed document store that provisions its bucket
  - notify: SNS topics, filtered subscriptions and alert publishing
  - invoke: Lambda invocation in event or request/response mode
  - errors: the shared error taxonomy (not-found, validation, precondition,
    transient, permanent)
  - awsconfig, config: region resolution and deployment settings

Basic Usage:

	cfg, _ := awsconfig.Load(ctx, "")
	suppliers := stores.NewSupplierStore(dynamodb.NewFromConfig(cfg))
	item, err := suppliers.Get(ctx, "supplier-1")

Adapters of mixed kinds can be collected in a Registry, or a
TypedRegistry[T] when they share a type.

For more information, see the documentation at https://github.com/suparena/supplychainlib
*/
package supplychainlib
