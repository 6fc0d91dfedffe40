// gtable reconciles DynamoDB global tables (version 2017.11.29) from YAML
// spec files.
//
// # Installation
//
//	go install github.com/acksell/globaltable/dynamodb/cmd/gtable@latest
//
// # Commands
//
//	gtable plan -f orders.yaml       Show the region changes apply would make
//	gtable apply -f orders.yaml      Create or update the global table
//	gtable teardown -f orders.yaml   Delete every regional table
//	gtable teardown --name orders    Same, by instance name
//	gtable version
//
// # Spec file
//
//	name: orders
//	tableName: Orders
//	replicationGroup: [us-west-1, eu-west-1]
//	attributeDefinitions:
//	  - name: id
//	    type: S
//	keySchema:
//	  - attributeName: id
//	    keyType: HASH
//
// # Configuration
//
// Optional gtable.yaml, searched for from the working directory upwards:
//
//	stateDir: ./.gtable      # local state directory
//	stateTable: gtable-state # or a shared DynamoDB state table (pk: S)
//	concurrency: 4           # regional calls in flight
//	waitTimeout: 5m
//
// AWS credentials and the default region come from the usual SDK sources.
// Replication groups are always managed through us-east-1.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type configLoader func() (Config, error)

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configPath string

	root := &cobra.Command{
		Use:          "gtable",
		Short:        "Reconcile DynamoDB global tables",
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to config file (default: nearest "+configFilename+")")
	pf.Bool("debug", false, "Enable debug logging")
	pf.String("state-dir", "", "Local state directory")
	pf.String("state-table", "", "DynamoDB table for shared state")
	pf.String("state-region", "", "Region of the state table")
	pf.Int("concurrency", 0, "Maximum regional calls in flight (0 = unlimited)")
	pf.Duration("wait-timeout", 0, "How long to wait for each regional table to settle")

	for key, flag := range map[string]string{
		"debug":       "debug",
		"stateDir":    "state-dir",
		"stateTable":  "state-table",
		"stateRegion": "state-region",
		"concurrency": "concurrency",
		"waitTimeout": "wait-timeout",
	} {
		if err := v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	load := func() (Config, error) {
		wd, err := os.Getwd()
		if err != nil {
			wd = ""
		}
		return loadConfig(v, configPath, wd)
	}

	root.AddCommand(
		newPlanCmd(load),
		newApplyCmd(load),
		newTeardownCmd(load),
		newVersionCmd(),
	)
	return root
}
