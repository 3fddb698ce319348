/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package awsmock

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3 is an in-memory fake of the S3 operations the object store uses.
type S3 struct {
	mu       sync.Mutex
	buckets  map[string]map[string][]byte
	created  []sdk.CreateBucketInput
	pageSize int
	nextErr  error
	headErr  error
}

// NewS3 creates an empty fake with no buckets.
func NewS3() *S3 {
	return &S3{buckets: make(map[string]map[string][]byte)}
}

// WithBucket pre-creates a bucket.
func (m *S3) WithBucket(name string) *S3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buckets[name] = make(map[string][]byte)
	return m
}

// WithPageSize forces ListObjectsV2 to return at most n keys per page.
func (m *S3) WithPageSize(n int) *S3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pageSize = n
	return m
}

// FailWith makes the next object call return err.
func (m *S3) FailWith(err error) *S3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextErr = err
	return m
}

// FailHeadWith makes HeadBucket return err instead of the missing-bucket
// signal.
func (m *S3) FailHeadWith(err error) *S3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.headErr = err
	return m
}

// CreateBucketCalls returns the CreateBucket requests received.
func (m *S3) CreateBucketCalls() []sdk.CreateBucketInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sdk.CreateBucketInput(nil), m.created...)
}

// Object returns the stored payload for bucket/key.
func (m *S3) Object(bucket, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.buckets[bucket][key]
	return data, ok
}

func (m *S3) takeErr() error {
	err := m.nextErr
	m.nextErr = nil
	return err
}

// HeadBucket reports bucket existence via a NotFound error.
func (m *S3) HeadBucket(ctx context.Context, params *sdk.HeadBucketInput, optFns ...func(*sdk.Options)) (*sdk.HeadBucketOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.headErr != nil {
		return nil, m.headErr
	}
	if _, ok := m.buckets[*params.Bucket]; !ok {
		return nil, &types.NotFound{}
	}
	return &sdk.HeadBucketOutput{}, nil
}

// CreateBucket records the request and creates the bucket.
func (m *S3) CreateBucket(ctx context.Context, params *sdk.CreateBucketInput, optFns ...func(*sdk.Options)) (*sdk.CreateBucketOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}
	m.created = append(m.created, *params)
	m.buckets[*params.Bucket] = make(map[string][]byte)
	return &sdk.CreateBucketOutput{}, nil
}

// PutObject stores the body bytes.
func (m *S3) PutObject(ctx context.Context, params *sdk.PutObjectInput, optFns ...func(*sdk.Options)) (*sdk.PutObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	bucket := m.buckets[*params.Bucket]
	if bucket == nil {
		bucket = make(map[string][]byte)
		m.buckets[*params.Bucket] = bucket
	}
	bucket[*params.Key] = data
	return &sdk.PutObjectOutput{}, nil
}

// GetObject returns the stored payload or NoSuchKey.
func (m *S3) GetObject(ctx context.Context, params *sdk.GetObjectInput, optFns ...func(*sdk.Options)) (*sdk.GetObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	data, ok := m.buckets[*params.Bucket][*params.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &sdk.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentLength: aws.Int64(int64(len(data))),
	}, nil
}

// ListObjectsV2 lists keys in sorted order, paginating when a page size is
// forced on the fake.
func (m *S3) ListObjectsV2(ctx context.Context, params *sdk.ListObjectsV2Input, optFns ...func(*sdk.Options)) (*sdk.ListObjectsV2Output, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	prefix := aws.ToString(params.Prefix)
	var keys []string
	for key := range m.buckets[*params.Bucket] {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	start := 0
	if token := aws.ToString(params.ContinuationToken); token != "" {
		for i, key := range keys {
			if key == token {
				start = i + 1
				break
			}
		}
	}

	end := len(keys)
	if m.pageSize > 0 && start+m.pageSize < end {
		end = start + m.pageSize
	}

	out := &sdk.ListObjectsV2Output{}
	for _, key := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(key)})
	}
	if end < len(keys) {
		out.NextContinuationToken = aws.String(keys[end-1])
	}
	return out, nil
}

// DeleteObject removes a key; deleting a missing key is not an error.
func (m *S3) DeleteObject(ctx context.Context, params *sdk.DeleteObjectInput, optFns ...func(*sdk.Options)) (*sdk.DeleteObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}
	delete(m.buckets[*params.Bucket], *params.Key)
	return &sdk.DeleteObjectOutput{}, nil
}
