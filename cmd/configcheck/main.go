/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command configcheck resolves and prints the effective deployment
// configuration, so operators can verify environment overrides before
// pointing the adapters at real AWS resources.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/suparena/supplychainlib"
	"github.com/suparena/supplychainlib/config"
	"github.com/suparena/supplychainlib/stores"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	configPath  = flag.String("config", "", "Path to a YAML configuration file")
)

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := supplychainlib.GetVersionInfo()
		fmt.Printf("supplychainlib configcheck version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "configcheck: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg = config.FromEnv()
	}

	fmt.Printf("Region:           %s\n", cfg.Region)
	fmt.Printf("Bucket:           %s\n", valueOr(cfg.Bucket, "(unset)"))
	fmt.Printf("Topic ARN:        %s\n", valueOr(cfg.TopicARN, "(unset)"))
	fmt.Printf("Reorder function: %s\n", valueOr(cfg.ReorderFunction, "(unset)"))
	fmt.Println("Tables:")
	for _, t := range []struct{ logical, fallback string }{
		{"suppliers", stores.TableSuppliers},
		{"raw_materials", stores.TableRawMaterials},
		{"finished_products", stores.TableFinishedProducts},
		{"purchase_orders", stores.TablePurchaseOrders},
		{"distributors", stores.TableDistributors},
		{"distributor_orders", stores.TableDistributorOrders},
		{"distributor_inventory", stores.TableDistributorInventory},
		{"customer_orders", stores.TableCustomerOrders},
	} {
		fmt.Printf("  %-22s %s\n", t.logical+":", cfg.Table(t.logical, t.fallback))
	}
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
