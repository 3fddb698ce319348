// Package awsconfig resolves the AWS region and builds SDK configuration
// shared by every adapter. Region selection order: explicit parameter,
// AWS_REGION, then the hardcoded us-east-1 fallback.
package awsconfig
