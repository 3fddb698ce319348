/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package invoke

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"github.com/suparena/supplychainlib/errors"
)

// Mode selects the invocation semantics.
type Mode string

const (
	// ModeEvent fires the function asynchronously and returns immediately.
	ModeEvent Mode = "Event"
	// ModeRequestResponse invokes synchronously and returns the function's
	// response payload.
	ModeRequestResponse Mode = "RequestResponse"
)

// LambdaAPI is the narrow slice of the Lambda client used by the invoker.
// *lambda.Client satisfies it.
type LambdaAPI interface {
	Invoke(ctx context.Context, params *sdk.InvokeInput, optFns ...func(*sdk.Options)) (*sdk.InvokeOutput, error)
}

var _ LambdaAPI = (*sdk.Client)(nil)

// Result carries the outcome of a synchronous invocation. Asynchronous
// invocations only populate StatusCode.
type Result struct {
	StatusCode    int32
	Payload       []byte
	FunctionError string
}

// Invoker fires requests at named remote functions.
type Invoker struct {
	client LambdaAPI
}

// New constructs an Invoker.
func New(client LambdaAPI) *Invoker {
	return &Invoker{client: client}
}

// NewFromConfig constructs an Invoker with a real Lambda client.
func NewFromConfig(cfg aws.Config) *Invoker {
	return New(sdk.NewFromConfig(cfg))
}

// Invoke calls the named function with a JSON-serialized payload. ModeEvent
// is fire-and-forget; ModeRequestResponse blocks for the function's reply.
func (i *Invoker) Invoke(ctx context.Context, functionName string, payload any, mode Mode) (*Result, error) {
	if functionName == "" {
		return nil, errors.NewValidationError("functionName", "must not be empty")
	}
	if mode == "" {
		mode = ModeEvent
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.NewValidationError("payload", err.Error())
	}

	out, err := i.client.Invoke(ctx, &sdk.InvokeInput{
		FunctionName:   &functionName,
		InvocationType: types.InvocationType(mode),
		Payload:        body,
	})
	if err != nil {
		return nil, errors.Classify("Invoke", err)
	}

	result := &Result{StatusCode: out.StatusCode, Payload: out.Payload}
	if out.FunctionError != nil {
		result.FunctionError = *out.FunctionError
	}
	return result, nil
}
