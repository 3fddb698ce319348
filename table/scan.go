/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package table

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/supplychainlib/errors"
)

// ScanParams defines parameters for a table scan.
type ScanParams struct {
	// FilterExpression is an optional filter expression, forwarded verbatim.
	FilterExpression *string
	// ExpressionAttributeValues contains the values for expression placeholders.
	ExpressionAttributeValues Item
	// ExpressionAttributeNames optionally aliases reserved attribute names.
	ExpressionAttributeNames map[string]string
	// Limit defines an optional limit per scan page.
	Limit *int32
	// ExclusiveStartKey resumes a scan from a prior continuation token.
	ExclusiveStartKey map[string]types.AttributeValue
}

// Scanner pages through a table one continuation token at a time. It is
// restartable: the current token is available through StartKey and can be
// fed back via ScanParams.ExclusiveStartKey.
type Scanner struct {
	adapter  *Adapter
	input    *sdk.ScanInput
	startKey map[string]types.AttributeValue
	started  bool
	done     bool
}

// NewScanner prepares a lazy scan over the table. A nil params scans
// everything.
func (a *Adapter) NewScanner(params *ScanParams) (*Scanner, error) {
	input, startKey, err := a.buildScanInput(params)
	if err != nil {
		return nil, err
	}
	return &Scanner{adapter: a, input: input, startKey: startKey}, nil
}

// HasMorePages reports whether another call to NextPage may return items.
func (s *Scanner) HasMorePages() bool {
	return !s.done
}

// NextPage fetches and decodes one page of items.
func (s *Scanner) NextPage(ctx context.Context) ([]Item, error) {
	if s.done {
		return nil, nil
	}

	if s.started && s.startKey != nil {
		s.input.ExclusiveStartKey = s.startKey
	}
	s.started = true

	out, err := s.adapter.client.Scan(ctx, s.input)
	if err != nil {
		return nil, errors.Classify("Scan", err)
	}

	items := make([]Item, 0, len(out.Items))
	for _, raw := range out.Items {
		item, err := DecodeItem(raw)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	s.startKey = out.LastEvaluatedKey
	if len(out.LastEvaluatedKey) == 0 {
		s.done = true
	}
	return items, nil
}

// StartKey returns the continuation token to resume from. It is nil once
// the final page has been fetched.
func (s *Scanner) StartKey() map[string]types.AttributeValue {
	return s.startKey
}

// Scan collects every page of the table into one slice. For large tables
// prefer NewScanner or ScanStream, which bound memory to a page at a time.
func (a *Adapter) Scan(ctx context.Context, params *ScanParams) ([]Item, error) {
	scanner, err := a.NewScanner(params)
	if err != nil {
		return nil, err
	}

	var items []Item
	for scanner.HasMorePages() {
		page, err := scanner.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page...)
	}
	return items, nil
}

// ScanResult represents a single scanned item or an error encountered while
// producing it.
type ScanResult struct {
	Item  Item
	Error error
}

// StreamOptions configures ScanStream behavior.
type StreamOptions struct {
	// BufferSize is the channel buffer size (default: 100).
	BufferSize int
	// PageSize overrides the items fetched per page, when positive.
	PageSize int32
}

// StreamOption is a functional option for configuring streaming.
type StreamOption func(*StreamOptions)

// DefaultStreamOptions returns default streaming options.
func DefaultStreamOptions() StreamOptions {
	return StreamOptions{BufferSize: 100}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) StreamOption {
	return func(opts *StreamOptions) {
		opts.BufferSize = size
	}
}

// WithPageSize sets the items fetched per page.
func WithPageSize(size int32) StreamOption {
	return func(opts *StreamOptions) {
		opts.PageSize = size
	}
}

// ScanStream lazily scans the table, fetching each page only as the consumer
// drains the channel. The channel is closed once the scan finishes, fails, or
// the context is cancelled.
func (a *Adapter) ScanStream(ctx context.Context, params *ScanParams, opts ...StreamOption) <-chan ScanResult {
	options := DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}

	resultCh := make(chan ScanResult, options.BufferSize)

	go func() {
		defer close(resultCh)

		if options.PageSize > 0 {
			adjusted := ScanParams{}
			if params != nil {
				adjusted = *params
			}
			adjusted.Limit = aws.Int32(options.PageSize)
			params = &adjusted
		}

		scanner, err := a.NewScanner(params)
		if err != nil {
			select {
			case <-ctx.Done():
			case resultCh <- ScanResult{Error: err}:
			}
			return
		}

		for scanner.HasMorePages() {
			select {
			case <-ctx.Done():
				return
			default:
			}

			page, err := scanner.NextPage(ctx)
			if err != nil {
				select {
				case <-ctx.Done():
				case resultCh <- ScanResult{Error: err}:
				}
				return
			}

			for _, item := range page {
				select {
				case <-ctx.Done():
					return
				case resultCh <- ScanResult{Item: item}:
				}
			}
		}
	}()

	return resultCh
}

func (a *Adapter) buildScanInput(params *ScanParams) (*sdk.ScanInput, map[string]types.AttributeValue, error) {
	input := &sdk.ScanInput{TableName: &a.tableName}
	if params == nil {
		return input, nil, nil
	}

	input.FilterExpression = params.FilterExpression
	input.Limit = params.Limit
	if len(params.ExpressionAttributeNames) > 0 {
		input.ExpressionAttributeNames = params.ExpressionAttributeNames
	}
	if len(params.ExpressionAttributeValues) > 0 {
		values, err := EncodeItem(params.ExpressionAttributeValues)
		if err != nil {
			return nil, nil, err
		}
		input.ExpressionAttributeValues = values
	}
	if len(params.ExclusiveStartKey) > 0 {
		input.ExclusiveStartKey = params.ExclusiveStartKey
		return input, params.ExclusiveStartKey, nil
	}
	return input, nil, nil
}
