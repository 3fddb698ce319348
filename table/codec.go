/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/supplychainlib/errors"
)

// Item is a loosely typed record: attribute name to scalar, []any, nested
// Item/map, or []byte.
type Item map[string]any

// EncodeItem converts an Item into DynamoDB attribute values. Floating-point
// values are rendered as exact decimal strings so the store never truncates
// fractional precision.
func EncodeItem(item Item) (map[string]types.AttributeValue, error) {
	av := make(map[string]types.AttributeValue, len(item))
	for name, value := range item {
		encoded, err := encodeValue(value)
		if err != nil {
			return nil, errors.NewValidationError(name, err.Error())
		}
		av[name] = encoded
	}
	return av, nil
}

// DecodeItem converts DynamoDB attribute values back into an Item. Numeric
// attributes with no fractional part decode as int64, all others as float64.
func DecodeItem(av map[string]types.AttributeValue) (Item, error) {
	if av == nil {
		return nil, nil
	}
	item := make(Item, len(av))
	for name, value := range av {
		decoded, err := decodeValue(value)
		if err != nil {
			return nil, fmt.Errorf("failed to decode attribute %q: %w", name, err)
		}
		item[name] = decoded
	}
	return item, nil
}

func encodeValue(v any) (types.AttributeValue, error) {
	switch tv := v.(type) {
	case nil:
		return &types.AttributeValueMemberNULL{Value: true}, nil
	case string:
		return &types.AttributeValueMemberS{Value: tv}, nil
	case bool:
		return &types.AttributeValueMemberBOOL{Value: tv}, nil
	case int:
		return &types.AttributeValueMemberN{Value: strconv.FormatInt(int64(tv), 10)}, nil
	case int32:
		return &types.AttributeValueMemberN{Value: strconv.FormatInt(int64(tv), 10)}, nil
	case int64:
		return &types.AttributeValueMemberN{Value: strconv.FormatInt(tv, 10)}, nil
	case uint:
		return &types.AttributeValueMemberN{Value: strconv.FormatUint(uint64(tv), 10)}, nil
	case uint64:
		return &types.AttributeValueMemberN{Value: strconv.FormatUint(tv, 10)}, nil
	case float32:
		return encodeFloat(float64(tv), 32)
	case float64:
		return encodeFloat(tv, 64)
	case []byte:
		return &types.AttributeValueMemberB{Value: tv}, nil
	case []string:
		members := make([]types.AttributeValue, len(tv))
		for i, s := range tv {
			members[i] = &types.AttributeValueMemberS{Value: s}
		}
		return &types.AttributeValueMemberL{Value: members}, nil
	case []any:
		members := make([]types.AttributeValue, len(tv))
		for i, elem := range tv {
			encoded, err := encodeValue(elem)
			if err != nil {
				return nil, err
			}
			members[i] = encoded
		}
		return &types.AttributeValueMemberL{Value: members}, nil
	case Item:
		return encodeMap(tv)
	case map[string]any:
		return encodeMap(tv)
	default:
		return nil, fmt.Errorf("unsupported attribute type %T", v)
	}
}

func encodeMap(m map[string]any) (types.AttributeValue, error) {
	members := make(map[string]types.AttributeValue, len(m))
	for k, v := range m {
		encoded, err := encodeValue(v)
		if err != nil {
			return nil, err
		}
		members[k] = encoded
	}
	return &types.AttributeValueMemberM{Value: members}, nil
}

// encodeFloat renders the shortest decimal string that parses back to the
// same value, the exact-precision equivalent of building a decimal from the
// value's string form.
func encodeFloat(f float64, bits int) (types.AttributeValue, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("non-finite number %v cannot be stored", f)
	}
	return &types.AttributeValueMemberN{Value: strconv.FormatFloat(f, 'f', -1, bits)}, nil
}

func decodeValue(av types.AttributeValue) (any, error) {
	switch tv := av.(type) {
	case *types.AttributeValueMemberS:
		return tv.Value, nil
	case *types.AttributeValueMemberN:
		return decodeNumber(tv.Value)
	case *types.AttributeValueMemberBOOL:
		return tv.Value, nil
	case *types.AttributeValueMemberNULL:
		return nil, nil
	case *types.AttributeValueMemberB:
		return tv.Value, nil
	case *types.AttributeValueMemberL:
		list := make([]any, len(tv.Value))
		for i, member := range tv.Value {
			decoded, err := decodeValue(member)
			if err != nil {
				return nil, err
			}
			list[i] = decoded
		}
		return list, nil
	case *types.AttributeValueMemberM:
		nested := make(Item, len(tv.Value))
		for k, member := range tv.Value {
			decoded, err := decodeValue(member)
			if err != nil {
				return nil, err
			}
			nested[k] = decoded
		}
		return nested, nil
	case *types.AttributeValueMemberSS:
		list := make([]any, len(tv.Value))
		for i, s := range tv.Value {
			list[i] = s
		}
		return list, nil
	case *types.AttributeValueMemberNS:
		list := make([]any, len(tv.Value))
		for i, n := range tv.Value {
			decoded, err := decodeNumber(n)
			if err != nil {
				return nil, err
			}
			list[i] = decoded
		}
		return list, nil
	case *types.AttributeValueMemberBS:
		list := make([]any, len(tv.Value))
		for i, b := range tv.Value {
			list[i] = b
		}
		return list, nil
	default:
		return nil, fmt.Errorf("unsupported attribute value %T", av)
	}
}

// decodeNumber converts a stored decimal back to a native type: int64 when
// the value has no fractional part, float64 otherwise.
func decodeNumber(s string) (any, error) {
	if !strings.ContainsAny(s, ".eE") {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		if n, err := strconv.ParseUint(s, 10, 64); err == nil {
			return n, nil
		}
		// Larger than uint64: fall through to float parsing.
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid numeric value %q: %w", s, err)
	}
	// float64(math.MaxInt64) rounds up to 2^63, so the upper bound must be
	// strict or int64(f) overflows.
	if f == math.Trunc(f) && f >= math.MinInt64 && f < float64(1<<63) {
		return int64(f), nil
	}
	return f, nil
}
