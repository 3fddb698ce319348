/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package objectstore

import (
	"context"
	stderrors "errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/suparena/supplychainlib/awsconfig"
	"github.com/suparena/supplychainlib/errors"
)

// S3API is the narrow slice of the S3 client used by the store.
// *s3.Client satisfies it.
type S3API interface {
	HeadBucket(ctx context.Context, params *sdk.HeadBucketInput, optFns ...func(*sdk.Options)) (*sdk.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *sdk.CreateBucketInput, optFns ...func(*sdk.Options)) (*sdk.CreateBucketOutput, error)
	PutObject(ctx context.Context, params *sdk.PutObjectInput, optFns ...func(*sdk.Options)) (*sdk.PutObjectOutput, error)
	GetObject(ctx context.Context, params *sdk.GetObjectInput, optFns ...func(*sdk.Options)) (*sdk.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *sdk.ListObjectsV2Input, optFns ...func(*sdk.Options)) (*sdk.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, params *sdk.DeleteObjectInput, optFns ...func(*sdk.Options)) (*sdk.DeleteObjectOutput, error)
}

var _ S3API = (*sdk.Client)(nil)

// Store uploads, downloads, lists, and deletes objects in one bucket. The
// bucket is created during construction if it does not already exist.
type Store struct {
	client S3API
	bucket string
	region string
}

// New constructs a Store for the given bucket. It fails fast on a blank
// bucket name, before any remote call, and ensures the bucket exists exactly
// once per store lifetime.
func New(ctx context.Context, client S3API, bucket, region string) (*Store, error) {
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, errors.NewValidationError("bucket", "a bucket name must be provided")
	}

	s := &Store{
		client: client,
		bucket: bucket,
		region: awsconfig.ResolveRegion(region),
	}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Bucket returns the bucket this store is bound to.
func (s *Store) Bucket() string {
	return s.bucket
}

// ensureBucket checks for the bucket and creates it when missing. Buckets
// outside us-east-1 require an explicit location constraint.
func (s *Store) ensureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &sdk.HeadBucketInput{Bucket: &s.bucket})
	if err == nil {
		return nil
	}
	if !isBucketMissing(err) {
		return errors.Classify("HeadBucket", err)
	}

	log.Printf("bucket %q not found, creating it in %s", s.bucket, s.region)
	input := &sdk.CreateBucketInput{Bucket: &s.bucket}
	if s.region != awsconfig.DefaultRegion {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.region),
		}
	}
	if _, err := s.client.CreateBucket(ctx, input); err != nil {
		return errors.Classify("CreateBucket", err)
	}
	return nil
}

func isBucketMissing(err error) bool {
	var notFound *types.NotFound
	if stderrors.As(err, &notFound) {
		return true
	}
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchBucket"
	}
	return false
}

// Upload writes the contents of r to the given object key.
func (s *Store) Upload(ctx context.Context, key string, r io.Reader) error {
	_, err := s.client.PutObject(ctx, &sdk.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
		Body:   r,
	})
	if err != nil {
		return errors.Classify("PutObject", err)
	}
	return nil
}

// UploadFile uploads a local file. An empty key defaults to the file's base
// name.
func (s *Store) UploadFile(ctx context.Context, path, key string) error {
	if key == "" {
		key = filepath.Base(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return errors.NewValidationError("path", err.Error())
	}
	defer f.Close()

	return s.Upload(ctx, key, f)
}

// Download fetches an object and writes it to destPath. A missing object is
// reported as a not found error.
func (s *Store) Download(ctx context.Context, key, destPath string) error {
	out, err := s.client.GetObject(ctx, &sdk.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		if isObjectMissing(err) {
			return errors.NewNotFoundError("object", key)
		}
		return errors.Classify("GetObject", err)
	}
	defer out.Body.Close()

	f, err := os.Create(destPath)
	if err != nil {
		return errors.NewValidationError("destPath", err.Error())
	}
	defer f.Close()

	if _, err := io.Copy(f, out.Body); err != nil {
		return errors.Classify("GetObject", err)
	}
	return nil
}

func isObjectMissing(err error) bool {
	var noSuchKey *types.NoSuchKey
	return stderrors.As(err, &noSuchKey)
}

// List returns the keys under the given prefix, following the continuation
// token until the listing is exhausted.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	input := &sdk.ListObjectsV2Input{Bucket: &s.bucket}
	if prefix != "" {
		input.Prefix = &prefix
	}

	var keys []string
	for {
		out, err := s.client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, errors.Classify("ListObjectsV2", err)
		}
		for _, obj := range out.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
		if out.NextContinuationToken == nil {
			return keys, nil
		}
		input.ContinuationToken = out.NextContinuationToken
	}
}

// Delete removes an object from the bucket.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &sdk.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return errors.Classify("DeleteObject", err)
	}
	return nil
}
