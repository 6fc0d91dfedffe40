package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/acksell/globaltable/dynamodb/globaltable"
	"github.com/acksell/globaltable/dynamodb/schema"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

// loadSpec reads the spec file and resolves the instance name.
func loadSpec(path string) (globaltable.DesiredSpec, string, error) {
	doc, err := schema.LoadFile(path)
	if err != nil {
		return globaltable.DesiredSpec{}, "", err
	}
	desired, err := doc.Desired()
	if err != nil {
		return globaltable.DesiredSpec{}, "", fmt.Errorf("%s: %w", path, err)
	}
	return desired, doc.InstanceName(), nil
}

func newPlanCmd(load configLoader) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the region changes apply would make",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			cfg, err := load()
			if err != nil {
				return err
			}
			desired, name, err := loadSpec(file)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd)
			defer cancel()

			e, err := newEnv(ctx, cfg, name)
			if err != nil {
				return err
			}
			defer closeEnv(e, &err)

			plan, err := e.reconciler.Plan(ctx, desired)
			if err != nil {
				return err
			}
			writePlan(cmd.OutOrStdout(), e.stateKey, plan)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Spec file (YAML)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newApplyCmd(load configLoader) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create or update a global table",
		Long: `Create missing regional tables, delete surplus ones, then create or
update the replication group. Re-running apply after a failure completes the
change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			cfg, err := load()
			if err != nil {
				return err
			}
			desired, name, err := loadSpec(file)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd)
			defer cancel()

			e, err := newEnv(ctx, cfg, name)
			if err != nil {
				return err
			}
			defer closeEnv(e, &err)

			res, err := e.reconciler.Apply(ctx, desired)
			if err != nil {
				e.log.Error("apply failed", zap.String("key", e.stateKey), zap.Error(err))
				return err
			}
			writePlan(cmd.OutOrStdout(), e.stateKey, res.Plan)
			fmt.Fprintf(cmd.OutOrStdout(), "table:  %s\narn:    %s\n", res.Identity.TableName, res.Identity.GlobalTableArn)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Spec file (YAML)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newTeardownCmd(load configLoader) *cobra.Command {
	var file, name string
	cmd := &cobra.Command{
		Use:   "teardown",
		Short: "Delete every regional table of a global table",
		Long: `Delete every regional table recorded for the instance and forget it.
The replication group itself is left for DynamoDB to clean up.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			cfg, err := load()
			if err != nil {
				return err
			}
			if file != "" {
				doc, err := schema.LoadFile(file)
				if err != nil {
					return err
				}
				name = doc.InstanceName()
			}
			ctx, cancel := signalContext(cmd)
			defer cancel()

			e, err := newEnv(ctx, cfg, name)
			if err != nil {
				return err
			}
			defer closeEnv(e, &err)

			if err := e.reconciler.Teardown(ctx); err != nil {
				e.log.Error("teardown failed", zap.String("key", e.stateKey), zap.Error(err))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: torn down\n", e.stateKey)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Spec file (YAML)")
	cmd.Flags().StringVar(&name, "name", "", "Instance name")
	cmd.MarkFlagsOneRequired("file", "name")
	cmd.MarkFlagsMutuallyExclusive("file", "name")
	return cmd
}

// closeEnv closes e and reports its error unless *err is already set.
func closeEnv(e *env, err *error) {
	if cerr := e.close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("close state store: %w", cerr)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gtable version %s\n", version)
		},
	}
}

func writePlan(w io.Writer, key string, plan globaltable.Plan) {
	fmt.Fprintf(w, "%s (%s)\n", plan.Desired.TableName, key)
	if plan.NoOp() {
		fmt.Fprintf(w, "  no changes, regions: %s\n", strings.Join(plan.Deployed, ", "))
		return
	}
	if !plan.Provisioned {
		fmt.Fprintln(w, "  replication group: create")
	} else {
		fmt.Fprintln(w, "  replication group: update")
	}
	for _, r := range plan.Diff.Add {
		fmt.Fprintf(w, "  + %s\n", r)
	}
	for _, r := range plan.Diff.Delete {
		fmt.Fprintf(w, "  - %s\n", r)
	}
}
