// Package replication manages the replication group of a DynamoDB global
// table (version 2017.11.29): which regions hold a replica of the table.
//
// The group API is global, any regional endpoint can serve it. The reconciler
// uses a single client bound to [AdminRegion].
package replication

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/acksell/globaltable/dynamodb/ddbiface"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// AdminRegion is the region the directory client is bound to.
const AdminRegion = "us-east-1"

// Group is the deployed state of a replication group.
type Group struct {
	Name    string
	Arn     string
	Status  string
	Regions []string // sorted, never nil for a described group
}

// Directory reads and mutates replication groups.
type Directory struct {
	api  ddbiface.GlobalTableAPI
	opts dirOpts
}

// New creates a Directory. The api client should be bound to [AdminRegion].
func New(api ddbiface.GlobalTableAPI, opts ...Option) *Directory {
	d := &Directory{
		api:  api,
		opts: defaultOpts(),
	}
	for _, opt := range opts {
		opt(&d.opts)
	}
	return d
}

// Describe looks up the group by name. The boolean is false when the group
// does not exist, which is not an error. A group that exists without any
// replica is returned with an empty region list.
func (d *Directory) Describe(ctx context.Context, name string) (Group, bool, error) {
	out, err := withRetry(ctx, d, "describe", func() (*dynamodb.DescribeGlobalTableOutput, error) {
		return d.api.DescribeGlobalTable(ctx, &dynamodb.DescribeGlobalTableInput{
			GlobalTableName: aws.String(name),
		})
	})
	var notFound *types.GlobalTableNotFoundException
	if errors.As(err, &notFound) {
		d.opts.logger.Debug("global table not provisioned", zap.String("table", name))
		return Group{}, false, nil
	}
	if err != nil {
		return Group{}, false, fmt.Errorf("describe global table %q: %w", name, err)
	}
	if out.GlobalTableDescription == nil {
		return Group{}, false, fmt.Errorf("describe global table %q: empty description", name)
	}
	return toGroup(out.GlobalTableDescription), true, nil
}

// Create creates the group with one replica per region. Every region must
// already hold an ACTIVE, empty table of the same name with streams enabled.
func (d *Directory) Create(ctx context.Context, name string, regions []string) (Group, error) {
	replicas := make([]types.Replica, len(regions))
	for i, r := range regions {
		replicas[i] = types.Replica{RegionName: aws.String(r)}
	}
	out, err := withRetry(ctx, d, "create", func() (*dynamodb.CreateGlobalTableOutput, error) {
		return d.api.CreateGlobalTable(ctx, &dynamodb.CreateGlobalTableInput{
			GlobalTableName:  aws.String(name),
			ReplicationGroup: replicas,
		})
	})
	if err != nil {
		return Group{}, fmt.Errorf("create global table %q: %w", name, err)
	}
	d.opts.logger.Info("created global table",
		zap.String("table", name), zap.Strings("regions", regions))
	if out.GlobalTableDescription == nil {
		return Group{Name: name, Regions: append([]string{}, regions...)}, nil
	}
	return toGroup(out.GlobalTableDescription), nil
}

// Update applies the deltas in the given order in a single request.
// An empty delta list issues no request.
func (d *Directory) Update(ctx context.Context, name string, deltas []Delta) error {
	if len(deltas) == 0 {
		return nil
	}
	updates := make([]types.ReplicaUpdate, len(deltas))
	for i, delta := range deltas {
		u, err := delta.ddb()
		if err != nil {
			return fmt.Errorf("update global table %q: %w", name, err)
		}
		updates[i] = u
	}
	_, err := withRetry(ctx, d, "update", func() (*dynamodb.UpdateGlobalTableOutput, error) {
		return d.api.UpdateGlobalTable(ctx, &dynamodb.UpdateGlobalTableInput{
			GlobalTableName: aws.String(name),
			ReplicaUpdates:  updates,
		})
	})
	if err != nil {
		return fmt.Errorf("update global table %q: %w", name, err)
	}
	d.opts.logger.Info("updated global table",
		zap.String("table", name), zap.Stringers("deltas", deltas))
	return nil
}

func toGroup(desc *types.GlobalTableDescription) Group {
	regions := make([]string, 0, len(desc.ReplicationGroup))
	for _, r := range desc.ReplicationGroup {
		regions = append(regions, aws.ToString(r.RegionName))
	}
	sort.Strings(regions)
	return Group{
		Name:    aws.ToString(desc.GlobalTableName),
		Arn:     aws.ToString(desc.GlobalTableArn),
		Status:  string(desc.GlobalTableStatus),
		Regions: regions,
	}
}
