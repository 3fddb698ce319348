/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package awsconfig

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// DefaultRegion is the ultimate fallback when neither an explicit region nor
// the AWS_REGION environment variable is set.
const DefaultRegion = "us-east-1"

// ResolveRegion picks the effective region: the explicit value when given,
// otherwise AWS_REGION, otherwise DefaultRegion.
func ResolveRegion(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("AWS_REGION"); env != "" {
		return env
	}
	return DefaultRegion
}

// Option customizes configuration loading.
type Option func(*settings)

type settings struct {
	accessKey string
	secretKey string
}

// WithStaticCredentials uses a fixed key pair instead of the SDK default
// credential chain.
func WithStaticCredentials(accessKey, secretKey string) Option {
	return func(s *settings) {
		s.accessKey = accessKey
		s.secretKey = secretKey
	}
}

// Load builds an AWS configuration for the resolved region. Credential
// resolution is otherwise delegated entirely to the SDK default chain.
func Load(ctx context.Context, region string, opts ...Option) (aws.Config, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(ResolveRegion(region)),
	}
	if s.accessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.accessKey, s.secretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return cfg, nil
}
