/*
Package objectstore provides a thin adapter over one S3 bucket.

Construction validates the bucket name before any remote call and then
ensures the bucket exists, creating it with a location constraint for every
region except us-east-1:

	store, err := objectstore.New(ctx, client, "supply-chain-docs", "eu-west-1")

Payloads are opaque: Upload takes any io.Reader, UploadFile a local path, and
Download writes straight to a destination file.
*/
package objectstore
