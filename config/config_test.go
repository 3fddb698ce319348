/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "supplychain.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	t.Setenv("AWS_REGION", "")
	t.Setenv("SUPPLYCHAIN_BUCKET", "")
	t.Setenv("SUPPLYCHAIN_TOPIC_ARN", "")
	t.Setenv("SUPPLYCHAIN_REORDER_FUNCTION", "")

	path := writeConfig(t, `
region: eu-west-1
bucket: supply-docs
topic_arn: arn:aws:sns:eu-west-1:123:alerts
reorder_function: reorder-processor
tables:
  suppliers: SuppliersProd
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "supply-docs", cfg.Bucket)
	assert.Equal(t, "arn:aws:sns:eu-west-1:123:alerts", cfg.TopicARN)
	assert.Equal(t, "reorder-processor", cfg.ReorderFunction)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("SUPPLYCHAIN_BUCKET", "override-bucket")

	path := writeConfig(t, "bucket: file-bucket\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "override-bucket", cfg.Bucket)
}

func TestRegionFallsBackToDefault(t *testing.T) {
	t.Setenv("AWS_REGION", "")

	path := writeConfig(t, "bucket: b\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", cfg.Region)
}

func TestTableOverride(t *testing.T) {
	cfg := &Config{Tables: map[string]string{"suppliers": "SuppliersProd"}}

	assert.Equal(t, "SuppliersProd", cfg.Table("suppliers", "Suppliers"))
	assert.Equal(t, "RawMaterials", cfg.Table("raw_materials", "RawMaterials"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
