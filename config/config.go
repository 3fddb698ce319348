/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/suparena/supplychainlib/awsconfig"
)

// Config holds the adapter settings for one deployment.
type Config struct {
	// Region is the AWS region; empty falls back to AWS_REGION, then us-east-1.
	Region string `yaml:"region"`

	// Bucket is the object store container for documents and attachments.
	Bucket string `yaml:"bucket"`

	// TopicARN is the notification topic, when one already exists.
	TopicARN string `yaml:"topic_arn"`

	// ReorderFunction is the Lambda invoked when stock falls below threshold.
	ReorderFunction string `yaml:"reorder_function"`

	// Tables optionally overrides the default table identities, keyed by
	// logical name (e.g. "suppliers").
	Tables map[string]string `yaml:"tables"`
}

// Load reads a YAML configuration file and applies environment overrides.
// A .env file alongside the process is honored when present.
func Load(path string) (*Config, error) {
	loadDotEnv()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := new(Config)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyEnv()
	return cfg, nil
}

// FromEnv builds a configuration from environment variables alone.
func FromEnv() *Config {
	loadDotEnv()
	cfg := new(Config)
	cfg.applyEnv()
	return cfg
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, proceeding with environment variables")
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SUPPLYCHAIN_BUCKET"); v != "" {
		c.Bucket = v
	}
	if v := os.Getenv("SUPPLYCHAIN_TOPIC_ARN"); v != "" {
		c.TopicARN = v
	}
	if v := os.Getenv("SUPPLYCHAIN_REORDER_FUNCTION"); v != "" {
		c.ReorderFunction = v
	}
	c.Region = awsconfig.ResolveRegion(c.Region)
}

// Table returns the configured identity for a logical table name, or the
// provided default.
func (c *Config) Table(logical, fallback string) string {
	if name, ok := c.Tables[logical]; ok && name != "" {
		return name
	}
	return fallback
}
