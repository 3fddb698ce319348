/*
Package stores binds the table adapter to the supply-chain application's
table identities and adds the few domain operations that go beyond plain
CRUD: supplier-scoped material listings, typed purchase orders, and the
atomic distributor stock counter.
*/
package stores
