package replication

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DeltaKind is the membership change applied to one region.
type DeltaKind string

const (
	DeltaCreate DeltaKind = "Create"
	DeltaDelete DeltaKind = "Delete"
)

// Delta adds or removes one region from a replication group.
type Delta struct {
	Kind   DeltaKind
	Region string
}

// CreateReplica returns a delta adding region to the group.
func CreateReplica(region string) Delta {
	return Delta{Kind: DeltaCreate, Region: region}
}

// DeleteReplica returns a delta removing region from the group.
func DeleteReplica(region string) Delta {
	return Delta{Kind: DeltaDelete, Region: region}
}

func (d Delta) String() string {
	return fmt.Sprintf("%s{%s}", d.Kind, d.Region)
}

func (d Delta) ddb() (types.ReplicaUpdate, error) {
	switch d.Kind {
	case DeltaCreate:
		return types.ReplicaUpdate{Create: &types.CreateReplicaAction{RegionName: aws.String(d.Region)}}, nil
	case DeltaDelete:
		return types.ReplicaUpdate{Delete: &types.DeleteReplicaAction{RegionName: aws.String(d.Region)}}, nil
	default:
		return types.ReplicaUpdate{}, fmt.Errorf("unknown delta kind %q for region %q", d.Kind, d.Region)
	}
}
