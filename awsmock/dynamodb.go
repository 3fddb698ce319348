/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package awsmock

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDB is an in-memory fake of the DynamoDB operations the table adapter
// uses. Items are stored per table under a composite key derived from the
// table's declared key attributes.
type DynamoDB struct {
	mu        sync.RWMutex
	tables    map[string]map[string]map[string]types.AttributeValue
	keyAttrs  map[string][]string
	pageSize  int
	nextErr   error
	scanCalls int
}

// NewDynamoDB creates an empty fake.
func NewDynamoDB() *DynamoDB {
	return &DynamoDB{
		tables:   make(map[string]map[string]map[string]types.AttributeValue),
		keyAttrs: make(map[string][]string),
	}
}

// WithKeyAttributes declares the key attribute names for a table. Tables
// without a declaration default to a single "id" attribute.
func (m *DynamoDB) WithKeyAttributes(table string, attrs ...string) *DynamoDB {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keyAttrs[table] = attrs
	return m
}

// WithPageSize forces Scan to return at most n items per page, regardless of
// the request limit.
func (m *DynamoDB) WithPageSize(n int) *DynamoDB {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pageSize = n
	return m
}

// FailWith makes the next call return err.
func (m *DynamoDB) FailWith(err error) *DynamoDB {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextErr = err
	return m
}

// ScanCalls reports how many Scan requests were served.
func (m *DynamoDB) ScanCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scanCalls
}

func (m *DynamoDB) takeErr() error {
	err := m.nextErr
	m.nextErr = nil
	return err
}

func (m *DynamoDB) keysFor(table string) []string {
	if attrs, ok := m.keyAttrs[table]; ok {
		return attrs
	}
	return []string{"id"}
}

func attributeToString(av types.AttributeValue) string {
	switch tv := av.(type) {
	case *types.AttributeValueMemberS:
		return tv.Value
	case *types.AttributeValueMemberN:
		return tv.Value
	case *types.AttributeValueMemberBOOL:
		return fmt.Sprintf("%v", tv.Value)
	default:
		return ""
	}
}

func compositeKey(attrs []string, item map[string]types.AttributeValue) string {
	parts := make([]string, 0, len(attrs))
	for _, name := range attrs {
		if av, ok := item[name]; ok {
			parts = append(parts, name+"="+attributeToString(av))
		}
	}
	return strings.Join(parts, "|")
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	cp := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		cp[k] = v
	}
	return cp
}

// GetItem returns the stored item for the request key, or an empty output
// when absent.
func (m *DynamoDB) GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	table := m.tables[*params.TableName]
	key := compositeKey(m.keysFor(*params.TableName), params.Key)
	item, ok := table[key]
	if !ok {
		return &sdk.GetItemOutput{}, nil
	}
	return &sdk.GetItemOutput{Item: copyItem(item)}, nil
}

// PutItem inserts or replaces an item.
func (m *DynamoDB) PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	name := *params.TableName
	if m.tables[name] == nil {
		m.tables[name] = make(map[string]map[string]types.AttributeValue)
	}
	key := compositeKey(m.keysFor(name), params.Item)
	m.tables[name][key] = copyItem(params.Item)
	return &sdk.PutItemOutput{}, nil
}

// DeleteItem removes an item; deleting a missing item is not an error.
func (m *DynamoDB) DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	name := *params.TableName
	key := compositeKey(m.keysFor(name), params.Key)
	delete(m.tables[name], key)
	return &sdk.DeleteItemOutput{}, nil
}

var (
	ifNotExistsExpr = regexp.MustCompile(`^SET\s+(\w+)\s*=\s*if_not_exists\(\s*(\w+)\s*,\s*(:\w+)\s*\)\s*\+\s*(:\w+)\s*$`)
	simpleSetExpr   = regexp.MustCompile(`^SET\s+(.+)$`)
)

// UpdateItem supports the expression shapes the library issues: counter
// increments via if_not_exists and plain comma-separated SET assignments.
func (m *DynamoDB) UpdateItem(ctx context.Context, params *sdk.UpdateItemInput, optFns ...func(*sdk.Options)) (*sdk.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	name := *params.TableName
	if m.tables[name] == nil {
		m.tables[name] = make(map[string]map[string]types.AttributeValue)
	}
	key := compositeKey(m.keysFor(name), params.Key)
	item, ok := m.tables[name][key]
	if !ok {
		item = copyItem(params.Key)
		m.tables[name][key] = item
	}

	expr := strings.TrimSpace(*params.UpdateExpression)
	values := params.ExpressionAttributeValues

	if match := ifNotExistsExpr.FindStringSubmatch(expr); match != nil {
		attr := match[1]
		base, hasBase := item[attr]
		if !hasBase {
			base = values[match[3]]
		}
		sum, err := addNumbers(base, values[match[4]])
		if err != nil {
			return nil, err
		}
		item[attr] = sum
		return &sdk.UpdateItemOutput{}, nil
	}

	if match := simpleSetExpr.FindStringSubmatch(expr); match != nil {
		for _, clause := range strings.Split(match[1], ",") {
			parts := strings.SplitN(clause, "=", 2)
			if len(parts) != 2 {
				return nil, fmt.Errorf("awsmock: unsupported update clause %q", clause)
			}
			attr := strings.TrimSpace(parts[0])
			if alias, ok := params.ExpressionAttributeNames[attr]; ok {
				attr = alias
			}
			placeholder := strings.TrimSpace(parts[1])
			value, ok := values[placeholder]
			if !ok {
				return nil, fmt.Errorf("awsmock: missing expression value %q", placeholder)
			}
			item[attr] = value
		}
		return &sdk.UpdateItemOutput{}, nil
	}

	return nil, fmt.Errorf("awsmock: unsupported update expression %q", expr)
}

func addNumbers(a, b types.AttributeValue) (types.AttributeValue, error) {
	na, aok := a.(*types.AttributeValueMemberN)
	nb, bok := b.(*types.AttributeValueMemberN)
	if !aok || !bok {
		return nil, fmt.Errorf("awsmock: arithmetic on non-numeric attributes")
	}

	ia, errA := strconv.ParseInt(na.Value, 10, 64)
	ib, errB := strconv.ParseInt(nb.Value, 10, 64)
	if errA == nil && errB == nil {
		return &types.AttributeValueMemberN{Value: strconv.FormatInt(ia+ib, 10)}, nil
	}

	fa, err := strconv.ParseFloat(na.Value, 64)
	if err != nil {
		return nil, err
	}
	fb, err := strconv.ParseFloat(nb.Value, 64)
	if err != nil {
		return nil, err
	}
	return &types.AttributeValueMemberN{Value: strconv.FormatFloat(fa+fb, 'f', -1, 64)}, nil
}

// Scan returns items in deterministic key order, honoring ExclusiveStartKey,
// the request limit, and any page size forced on the fake. Only equality
// filter expressions of the form "attr = :placeholder" are supported.
func (m *DynamoDB) Scan(ctx context.Context, params *sdk.ScanInput, optFns ...func(*sdk.Options)) (*sdk.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scanCalls++
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	name := *params.TableName
	keyAttrs := m.keysFor(name)
	table := m.tables[name]

	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	start := 0
	if len(params.ExclusiveStartKey) > 0 {
		after := compositeKey(keyAttrs, params.ExclusiveStartKey)
		for i, k := range keys {
			if k == after {
				start = i + 1
				break
			}
		}
	}

	limit := len(keys)
	if params.Limit != nil && int(*params.Limit) < limit {
		limit = int(*params.Limit)
	}
	if m.pageSize > 0 && m.pageSize < limit {
		limit = m.pageSize
	}

	out := &sdk.ScanOutput{}
	taken := 0
	lastKey := ""
	for _, k := range keys[start:] {
		if taken == limit {
			break
		}
		item := table[k]
		match, err := matchesFilter(params, item)
		if err != nil {
			return nil, err
		}
		if match {
			out.Items = append(out.Items, copyItem(item))
		}
		lastKey = k
		taken++
	}

	if start+taken < len(keys) {
		last := table[lastKey]
		lek := make(map[string]types.AttributeValue, len(keyAttrs))
		for _, attr := range keyAttrs {
			lek[attr] = last[attr]
		}
		out.LastEvaluatedKey = lek
	}
	return out, nil
}

var equalityFilter = regexp.MustCompile(`^\s*([#\w]+)\s*=\s*(:\w+)\s*$`)

func matchesFilter(params *sdk.ScanInput, item map[string]types.AttributeValue) (bool, error) {
	if params.FilterExpression == nil {
		return true, nil
	}
	match := equalityFilter.FindStringSubmatch(*params.FilterExpression)
	if match == nil {
		return false, fmt.Errorf("awsmock: unsupported filter expression %q", *params.FilterExpression)
	}

	attr := match[1]
	if alias, ok := params.ExpressionAttributeNames[attr]; ok {
		attr = alias
	}
	want, ok := params.ExpressionAttributeValues[match[2]]
	if !ok {
		return false, fmt.Errorf("awsmock: missing expression value %q", match[2])
	}

	have, ok := item[attr]
	if !ok {
		return false, nil
	}
	return attributeToString(have) == attributeToString(want), nil
}
