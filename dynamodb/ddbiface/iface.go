// Package ddbiface provides the DynamoDB API surfaces used by the global
// table reconciler. Each interface mirrors a subset of the method signatures
// of the AWS SDK v2 *dynamodb.Client, so the real client satisfies all of
// them while tests can substitute mocks for a single surface.
package ddbiface

// TableAPI has no mock: regiontable tests drive the SDK waiters against a
// stateful fake.
//go:generate mockgen -destination=mocks/mock_iface.go -package=mocks -source=iface.go -exclude_interfaces=TableAPI

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// TableAPI is the control-plane surface of a single region's DynamoDB
// endpoint. DescribeTable is included so the SDK waiters can poll through it.
type TableAPI interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DeleteTable(ctx context.Context, params *dynamodb.DeleteTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// GlobalTableAPI manages global table (version 2017.11.29) replication groups.
type GlobalTableAPI interface {
	CreateGlobalTable(ctx context.Context, params *dynamodb.CreateGlobalTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateGlobalTableOutput, error)
	DescribeGlobalTable(ctx context.Context, params *dynamodb.DescribeGlobalTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeGlobalTableOutput, error)
	UpdateGlobalTable(ctx context.Context, params *dynamodb.UpdateGlobalTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateGlobalTableOutput, error)
}

// ItemAPI is the single-item data-plane surface used to persist reconciler state.
type ItemAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

var (
	_ TableAPI       = (*dynamodb.Client)(nil)
	_ GlobalTableAPI = (*dynamodb.Client)(nil)
	_ ItemAPI        = (*dynamodb.Client)(nil)
)
