package globaltable

import (
	"fmt"

	"github.com/acksell/globaltable/dynamodb/table"
)

// DesiredSpec is the caller's description of a global table.
type DesiredSpec struct {
	// TableName is the name of every regional table and of the replication
	// group. It cannot change once provisioned.
	TableName string
	// Regions is the replication group. Order and duplicates are ignored.
	Regions []string
	Schema  table.Schema
}

// Identity is what a successful Apply reports about the global table.
type Identity struct {
	TableName      string
	GlobalTableArn string
}

// Validate reports whether the spec can be reconciled. Every failure wraps
// ErrInvalidSpec.
func (s DesiredSpec) Validate() error {
	if s.TableName == "" {
		return fmt.Errorf("%w: table name is required", ErrInvalidSpec)
	}
	if len(s.Regions) == 0 {
		return fmt.Errorf("%w: at least one region is required", ErrInvalidSpec)
	}
	for _, r := range s.Regions {
		if r == "" {
			return fmt.Errorf("%w: empty region name", ErrInvalidSpec)
		}
	}
	if err := s.Schema.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	return nil
}

// normalized returns a copy with sorted, de-duplicated regions, so the
// caller's slices are never retained or mutated.
func (s DesiredSpec) normalized() DesiredSpec {
	return DesiredSpec{
		TableName: s.TableName,
		Regions:   sortedSet(s.Regions),
		Schema:    s.Schema.Clone(),
	}
}
