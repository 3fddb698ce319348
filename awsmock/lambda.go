/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package awsmock

import (
	"context"
	"sync"

	sdk "github.com/aws/aws-sdk-go-v2/service/lambda"
)

// Lambda is an in-memory fake of the Lambda invoke operation.
type Lambda struct {
	mu       sync.Mutex
	invokes  []sdk.InvokeInput
	response *sdk.InvokeOutput
	nextErr  error
}

// NewLambda creates a fake that answers every invocation with status 200.
func NewLambda() *Lambda {
	return &Lambda{response: &sdk.InvokeOutput{StatusCode: 200}}
}

// RespondWith sets the output returned by subsequent invocations.
func (m *Lambda) RespondWith(out *sdk.InvokeOutput) *Lambda {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.response = out
	return m
}

// FailWith makes the next invocation return err.
func (m *Lambda) FailWith(err error) *Lambda {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextErr = err
	return m
}

// Invocations returns the invoke requests received.
func (m *Lambda) Invocations() []sdk.InvokeInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sdk.InvokeInput(nil), m.invokes...)
}

// Invoke records the request and returns the configured response.
func (m *Lambda) Invoke(ctx context.Context, params *sdk.InvokeInput, optFns ...func(*sdk.Options)) (*sdk.InvokeOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nextErr != nil {
		err := m.nextErr
		m.nextErr = nil
		return nil, err
	}
	m.invokes = append(m.invokes, *params)
	return m.response, nil
}
