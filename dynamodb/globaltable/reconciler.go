// Package globaltable converges a DynamoDB global table to a desired set of
// regions.
//
// A Reconciler owns one resource instance, identified by its state key.
// [Reconciler.Apply] creates missing regional tables, deletes surplus ones,
// then creates or updates the replication group and records the table's
// identity. Each pass recomputes the diff against the live replication group,
// so a pass that failed halfway is completed by running Apply again with the
// same spec. [Reconciler.Teardown] deletes every regional table of the
// recorded global table.
//
// Only one pass per resource may run at a time. Nothing enforces this.
package globaltable

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/acksell/globaltable/dynamodb/regiontable"
	"github.com/acksell/globaltable/dynamodb/replication"
	"github.com/acksell/globaltable/dynamodb/statestore"
	"github.com/acksell/globaltable/dynamodb/table"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RegionalTables provisions the per-region replica tables.
type RegionalTables interface {
	Create(ctx context.Context, name, region string, schema table.Schema) error
	Destroy(ctx context.Context, name, region string) error
}

// Directory reads and mutates replication group membership.
// Describe returns false, without error, when the group does not exist.
type Directory interface {
	Describe(ctx context.Context, name string) (replication.Group, bool, error)
	Create(ctx context.Context, name string, regions []string) (replication.Group, error)
	Update(ctx context.Context, name string, deltas []replication.Delta) error
}

// StateStore persists the identity between passes.
// Get returns statestore.ErrNotFound when nothing is stored.
type StateStore interface {
	Get(ctx context.Context, key string) (statestore.Record, error)
	Put(ctx context.Context, key string, rec statestore.Record) error
	Delete(ctx context.Context, key string) error
}

var (
	_ RegionalTables = (*regiontable.Manager)(nil)
	_ StateStore     = (*statestore.Memory)(nil)
	_ StateStore     = (*statestore.Badger)(nil)
	_ StateStore     = (*statestore.Dynamo)(nil)
	_ Directory      = (*replication.Directory)(nil)
)

// Result is the outcome of a successful Apply.
type Result struct {
	Identity Identity
	Plan     Plan
	// Created is true when this pass created the replication group.
	Created bool
}

// Reconciler drives one global table towards its desired spec.
type Reconciler struct {
	tables    RegionalTables
	directory Directory
	state     StateStore
	key       string
	opts      reconcilerOpts
}

// New creates a Reconciler for the resource stored under stateKey.
func New(tables RegionalTables, directory Directory, state StateStore, stateKey string, opts ...Option) *Reconciler {
	r := &Reconciler{
		tables:    tables,
		directory: directory,
		state:     state,
		key:       stateKey,
		opts: reconcilerOpts{
			logger: zap.NewNop(),
			now:    time.Now,
		},
	}
	for _, opt := range opts {
		opt(&r.opts)
	}
	return r
}

// Apply converges the deployed topology to desired.
//
// Validation, the rename guard and the describe call run before any mutation.
// When the deployed regions already match, Apply makes no regional or group
// calls. It only records the identity if no record exists yet.
// Once regional calls are dispatched the pass is not cancelled by ctx; it
// completes or fails with a *PartialFailureError or *GroupOperationError.
func (r *Reconciler) Apply(ctx context.Context, desired DesiredSpec) (Result, error) {
	plan, err := r.Plan(ctx, desired)
	if err != nil {
		return Result{}, err
	}
	name := plan.Desired.TableName
	log := r.opts.logger.With(zap.String("table", name))

	if plan.NoOp() {
		identity := plan.identity()
		if plan.Persisted == nil {
			// Converged by a pass whose state write failed.
			if err := r.persist(ctx, identity, plan.Deployed); err != nil {
				return Result{Plan: plan}, err
			}
			log.Info("recorded up to date global table", zap.Strings("regions", plan.Deployed))
			return Result{Identity: identity, Plan: plan}, nil
		}
		log.Info("global table is up to date", zap.Strings("regions", plan.Deployed))
		return Result{Identity: identity, Plan: plan}, nil
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	log.Info("reconciling global table",
		zap.Bool("provisioned", plan.Provisioned),
		zap.Strings("add", plan.Diff.Add),
		zap.Strings("delete", plan.Diff.Delete))

	pass := context.WithoutCancel(ctx)

	err = r.fanOut(pass, OpProvision, name, plan.Diff.Add, func(ctx context.Context, region string) error {
		return r.tables.Create(ctx, name, region, plan.Desired.Schema)
	})
	if err != nil {
		return Result{Plan: plan}, err
	}
	err = r.fanOut(pass, OpTeardown, name, plan.Diff.Delete, func(ctx context.Context, region string) error {
		return r.tables.Destroy(ctx, name, region)
	})
	if err != nil {
		return Result{Plan: plan}, err
	}

	identity := plan.identity()
	created := false
	if !plan.Provisioned {
		group, err := r.directory.Create(pass, name, plan.Desired.Regions)
		if err != nil {
			log.Error("replication group create failed after regional tables were created",
				zap.Strings("regions", plan.Desired.Regions), zap.Error(err))
			return Result{Plan: plan}, &GroupOperationError{TableName: name, Op: "create", Err: err}
		}
		if group.Arn != "" {
			identity.GlobalTableArn = group.Arn
		}
		created = true
	} else {
		deltas := plan.Diff.Deltas()
		if err := r.directory.Update(pass, name, deltas); err != nil {
			log.Error("replication group update failed after regional tables were changed",
				zap.Stringers("deltas", deltas), zap.Error(err))
			return Result{Plan: plan}, &GroupOperationError{TableName: name, Op: "update", Err: err}
		}
	}

	if err := r.persist(pass, identity, plan.Desired.Regions); err != nil {
		return Result{Plan: plan}, err
	}
	log.Info("global table reconciled", zap.Strings("regions", plan.Desired.Regions), zap.Bool("created", created))
	return Result{Identity: identity, Plan: plan, Created: created}, nil
}

// Teardown deletes every regional table of the recorded global table and
// then forgets it. Without a record it does nothing. The replication group
// itself is not deleted. On failure the record is kept, so Teardown can be
// repeated.
func (r *Reconciler) Teardown(ctx context.Context) error {
	persisted, err := r.loadState(ctx)
	if err != nil {
		return err
	}
	if persisted == nil {
		r.opts.logger.Debug("nothing to tear down", zap.String("key", r.key))
		return nil
	}
	name := persisted.TableName
	log := r.opts.logger.With(zap.String("table", name))

	group, provisioned, err := r.directory.Describe(ctx, name)
	if err != nil {
		return &DirectoryUnavailableError{TableName: name, Err: err}
	}
	regions := sortedSet(persisted.Regions)
	if provisioned {
		regions = sortedSet(group.Regions)
	} else {
		log.Warn("replication group not found, using recorded regions", zap.Strings("regions", regions))
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	pass := context.WithoutCancel(ctx)
	err = r.fanOut(pass, OpTeardown, name, regions, func(ctx context.Context, region string) error {
		return r.tables.Destroy(ctx, name, region)
	})
	if err != nil {
		return err
	}
	if err := r.state.Delete(pass, r.key); err != nil {
		return fmt.Errorf("clear state for %q: %w", name, err)
	}
	log.Info("global table torn down", zap.Strings("regions", regions))
	return nil
}

// fanOut runs fn for every region concurrently and waits for all of them.
func (r *Reconciler) fanOut(ctx context.Context, op Operation, name string, regions []string, fn func(ctx context.Context, region string) error) error {
	if len(regions) == 0 {
		return nil
	}
	errs := make([]error, len(regions))
	var g errgroup.Group
	if r.opts.concurrency > 0 {
		g.SetLimit(r.opts.concurrency)
	}
	for i, region := range regions {
		g.Go(func() error {
			errs[i] = fn(ctx, region)
			return nil
		})
	}
	_ = g.Wait()

	pf := &PartialFailureError{Op: op, TableName: name, Failed: make(map[string]error)}
	for i, err := range errs {
		if err != nil {
			pf.Failed[regions[i]] = err
		} else {
			pf.Succeeded = append(pf.Succeeded, regions[i])
		}
	}
	if len(pf.Failed) == 0 {
		return nil
	}
	r.opts.logger.Error("regional operation failed",
		zap.String("table", name),
		zap.String("op", string(op)),
		zap.Strings("succeeded", pf.Succeeded),
		zap.Strings("failed", pf.FailedRegions()))
	return pf
}

func (r *Reconciler) persist(ctx context.Context, identity Identity, regions []string) error {
	rec := statestore.Record{
		TableName:      identity.TableName,
		GlobalTableArn: identity.GlobalTableArn,
		Regions:        regions,
		UpdatedAt:      r.opts.now().UTC(),
	}
	if err := r.state.Put(ctx, r.key, rec); err != nil {
		return fmt.Errorf("persist state for %q: %w", identity.TableName, err)
	}
	return nil
}

func (r *Reconciler) loadState(ctx context.Context) (*statestore.Record, error) {
	rec, err := r.state.Get(ctx, r.key)
	if errors.Is(err, statestore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load state %q: %w", r.key, err)
	}
	return &rec, nil
}

type Option func(*reconcilerOpts)

type reconcilerOpts struct {
	logger      *zap.Logger
	concurrency int
	now         func() time.Time
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *reconcilerOpts) {
		o.logger = l
	}
}

// WithConcurrency caps the number of regional calls in flight.
// Zero or less means one goroutine per region.
func WithConcurrency(n int) Option {
	return func(o *reconcilerOpts) {
		o.concurrency = n
	}
}

// WithClock overrides the time source used to stamp persisted records.
func WithClock(now func() time.Time) Option {
	return func(o *reconcilerOpts) {
		o.now = now
	}
}
