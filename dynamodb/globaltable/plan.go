package globaltable

import (
	"context"
	"slices"

	"github.com/acksell/globaltable/dynamodb/replication"
	"github.com/acksell/globaltable/dynamodb/statestore"
)

// RegionDiff is the membership change needed to reach the desired regions.
type RegionDiff struct {
	Add    []string // desired but not deployed, sorted
	Delete []string // deployed but not desired, sorted
}

// Empty reports whether the diff changes nothing.
func (d RegionDiff) Empty() bool {
	return len(d.Add) == 0 && len(d.Delete) == 0
}

// Deltas lists every addition before every removal, so the group never
// shrinks below its final size while it is being updated.
func (d RegionDiff) Deltas() []replication.Delta {
	deltas := make([]replication.Delta, 0, len(d.Add)+len(d.Delete))
	for _, r := range d.Add {
		deltas = append(deltas, replication.CreateReplica(r))
	}
	for _, r := range d.Delete {
		deltas = append(deltas, replication.DeleteReplica(r))
	}
	return deltas
}

// Plan is the outcome of comparing a desired spec with the live topology.
type Plan struct {
	// Desired is the validated spec with sorted, de-duplicated regions.
	Desired DesiredSpec
	// Provisioned is false when the replication group does not exist.
	Provisioned bool
	// Group is the described group, zero when not provisioned.
	Group replication.Group
	// Deployed are the sorted regions currently in the group.
	Deployed []string
	// Persisted is the stored record, nil before the first successful Apply.
	Persisted *statestore.Record
	Diff      RegionDiff
}

// NoOp reports whether the deployed regions already equal the desired ones.
// Only region names are compared, schema drift is not detected.
func (p Plan) NoOp() bool {
	return slices.Equal(p.Desired.Regions, p.Deployed)
}

func (p Plan) identity() Identity {
	id := Identity{TableName: p.Desired.TableName, GlobalTableArn: p.Group.Arn}
	if p.Persisted != nil && p.Persisted.GlobalTableArn != "" {
		id.GlobalTableArn = p.Persisted.GlobalTableArn
	}
	return id
}

// Plan validates desired, applies the rename guard and diffs the desired
// regions against the replication group, without mutating anything.
func (r *Reconciler) Plan(ctx context.Context, desired DesiredSpec) (Plan, error) {
	if err := desired.Validate(); err != nil {
		return Plan{}, err
	}
	spec := desired.normalized()

	persisted, err := r.loadState(ctx)
	if err != nil {
		return Plan{}, err
	}
	if persisted != nil && persisted.TableName != spec.TableName {
		return Plan{}, &RenameRejectedError{Persisted: persisted.TableName, Requested: spec.TableName}
	}

	group, provisioned, err := r.directory.Describe(ctx, spec.TableName)
	if err != nil {
		return Plan{}, &DirectoryUnavailableError{TableName: spec.TableName, Err: err}
	}
	deployed := []string{}
	if provisioned {
		deployed = sortedSet(group.Regions)
	}

	return Plan{
		Desired:     spec,
		Provisioned: provisioned,
		Group:       group,
		Deployed:    deployed,
		Persisted:   persisted,
		Diff: RegionDiff{
			Add:    difference(spec.Regions, deployed),
			Delete: difference(deployed, spec.Regions),
		},
	}, nil
}
