package globaltable

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidSpec is wrapped by every validation failure of a DesiredSpec.
	ErrInvalidSpec = errors.New("invalid global table spec")
	// ErrPartialProvision matches a PartialFailureError raised while creating
	// regional tables.
	ErrPartialProvision = errors.New("partial provision failure")
	// ErrPartialTeardown matches a PartialFailureError raised while deleting
	// regional tables.
	ErrPartialTeardown = errors.New("partial teardown failure")
)

// RenameRejectedError means the desired table name differs from the persisted
// one. The old table has to be torn down first.
type RenameRejectedError struct {
	Persisted string
	Requested string
}

func (e *RenameRejectedError) Error() string {
	return fmt.Sprintf("can't rename global table to %q: tear down %q first", e.Requested, e.Persisted)
}

// DirectoryUnavailableError means the replication group could not be
// described for a reason other than it not existing. Nothing was mutated.
type DirectoryUnavailableError struct {
	TableName string
	Err       error
}

func (e *DirectoryUnavailableError) Error() string {
	return fmt.Sprintf("replication directory unavailable for %q: %v", e.TableName, e.Err)
}

func (e *DirectoryUnavailableError) Unwrap() error { return e.Err }

// Operation names the regional fan-out step that failed.
type Operation string

const (
	OpProvision Operation = "provision"
	OpTeardown  Operation = "teardown"
)

// PartialFailureError reports which regions of a fan-out succeeded and which
// failed. Re-running the whole pass is safe.
type PartialFailureError struct {
	Op        Operation
	TableName string
	Succeeded []string
	Failed    map[string]error
}

func (e *PartialFailureError) Error() string {
	regions := e.FailedRegions()
	parts := make([]string, len(regions))
	for i, r := range regions {
		parts[i] = fmt.Sprintf("%s: %v", r, e.Failed[r])
	}
	return fmt.Sprintf("%s of %q failed in %d region(s) [%s], succeeded in %v",
		e.Op, e.TableName, len(regions), strings.Join(parts, "; "), e.Succeeded)
}

// FailedRegions returns the failed regions in sorted order.
func (e *PartialFailureError) FailedRegions() []string {
	regions := make([]string, 0, len(e.Failed))
	for r := range e.Failed {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	return regions
}

func (e *PartialFailureError) Is(target error) bool {
	switch target {
	case ErrPartialProvision:
		return e.Op == OpProvision
	case ErrPartialTeardown:
		return e.Op == OpTeardown
	}
	return false
}

func (e *PartialFailureError) Unwrap() []error {
	regions := e.FailedRegions()
	errs := make([]error, len(regions))
	for i, r := range regions {
		errs[i] = e.Failed[r]
	}
	return errs
}

// GroupOperationError means creating or updating the replication group failed
// after the regional tables were already changed. Deployed regions and group
// membership disagree until the next successful Apply.
type GroupOperationError struct {
	TableName string
	Op        string // "create" or "update"
	Err       error
}

func (e *GroupOperationError) Error() string {
	return fmt.Sprintf("%s replication group %q: %v", e.Op, e.TableName, e.Err)
}

func (e *GroupOperationError) Unwrap() error { return e.Err }
