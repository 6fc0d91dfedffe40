package replication

import (
	"context"
	"errors"
	"testing"

	"github.com/acksell/globaltable/dynamodb/ddbiface/mocks"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/cenkalti/backoff/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestDirectory(t *testing.T) (*Directory, *mocks.MockGlobalTableAPI) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockGlobalTableAPI(ctrl)
	dir := New(api,
		WithMaxTries(3),
		WithBackOff(func() backoff.BackOff { return &backoff.ZeroBackOff{} }),
	)
	return dir, api
}

func describeInput(name string) *dynamodb.DescribeGlobalTableInput {
	return &dynamodb.DescribeGlobalTableInput{GlobalTableName: aws.String(name)}
}

func TestDirectory_Describe(t *testing.T) {
	ctx := context.Background()

	t.Run("not provisioned", func(t *testing.T) {
		dir, api := newTestDirectory(t)
		api.EXPECT().DescribeGlobalTable(gomock.Any(), describeInput("Orders")).
			Return(nil, &types.GlobalTableNotFoundException{Message: aws.String("Global table not found")})

		group, ok, err := dir.Describe(ctx, "Orders")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, Group{}, group)
	})

	t.Run("present without replicas", func(t *testing.T) {
		dir, api := newTestDirectory(t)
		api.EXPECT().DescribeGlobalTable(gomock.Any(), describeInput("Orders")).
			Return(&dynamodb.DescribeGlobalTableOutput{
				GlobalTableDescription: &types.GlobalTableDescription{
					GlobalTableName: aws.String("Orders"),
				},
			}, nil)

		group, ok, err := dir.Describe(ctx, "Orders")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NotNil(t, group.Regions)
		assert.Empty(t, group.Regions)
	})

	t.Run("regions are sorted", func(t *testing.T) {
		dir, api := newTestDirectory(t)
		api.EXPECT().DescribeGlobalTable(gomock.Any(), describeInput("Orders")).
			Return(&dynamodb.DescribeGlobalTableOutput{
				GlobalTableDescription: &types.GlobalTableDescription{
					GlobalTableName:   aws.String("Orders"),
					GlobalTableArn:    aws.String("arn:aws:dynamodb::123456789012:global-table/Orders"),
					GlobalTableStatus: types.GlobalTableStatusActive,
					ReplicationGroup: []types.ReplicaDescription{
						{RegionName: aws.String("us-west-1")},
						{RegionName: aws.String("eu-west-1")},
					},
				},
			}, nil)

		group, ok, err := dir.Describe(ctx, "Orders")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, Group{
			Name:    "Orders",
			Arn:     "arn:aws:dynamodb::123456789012:global-table/Orders",
			Status:  "ACTIVE",
			Regions: []string{"eu-west-1", "us-west-1"},
		}, group)
	})

	t.Run("other errors are not retried", func(t *testing.T) {
		dir, api := newTestDirectory(t)
		denied := &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "no"}
		api.EXPECT().DescribeGlobalTable(gomock.Any(), describeInput("Orders")).
			Return(nil, denied).Times(1)

		_, ok, err := dir.Describe(ctx, "Orders")
		require.Error(t, err)
		assert.False(t, ok)
		assert.True(t, errors.Is(err, denied))
	})

	t.Run("throttling is retried", func(t *testing.T) {
		dir, api := newTestDirectory(t)
		gomock.InOrder(
			api.EXPECT().DescribeGlobalTable(gomock.Any(), describeInput("Orders")).
				Return(nil, &smithy.GenericAPIError{Code: "ThrottlingException"}),
			api.EXPECT().DescribeGlobalTable(gomock.Any(), describeInput("Orders")).
				Return(&dynamodb.DescribeGlobalTableOutput{
					GlobalTableDescription: &types.GlobalTableDescription{
						GlobalTableName:  aws.String("Orders"),
						ReplicationGroup: []types.ReplicaDescription{{RegionName: aws.String("eu-west-1")}},
					},
				}, nil),
		)

		group, ok, err := dir.Describe(ctx, "Orders")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{"eu-west-1"}, group.Regions)
	})
}

func TestDirectory_Create(t *testing.T) {
	ctx := context.Background()
	dir, api := newTestDirectory(t)

	api.EXPECT().CreateGlobalTable(gomock.Any(), &dynamodb.CreateGlobalTableInput{
		GlobalTableName: aws.String("Orders"),
		ReplicationGroup: []types.Replica{
			{RegionName: aws.String("eu-west-1")},
			{RegionName: aws.String("us-west-1")},
		},
	}).Return(&dynamodb.CreateGlobalTableOutput{
		GlobalTableDescription: &types.GlobalTableDescription{
			GlobalTableName:   aws.String("Orders"),
			GlobalTableArn:    aws.String("arn:aws:dynamodb::123456789012:global-table/Orders"),
			GlobalTableStatus: types.GlobalTableStatusCreating,
			ReplicationGroup: []types.ReplicaDescription{
				{RegionName: aws.String("eu-west-1")},
				{RegionName: aws.String("us-west-1")},
			},
		},
	}, nil)

	group, err := dir.Create(ctx, "Orders", []string{"eu-west-1", "us-west-1"})
	require.NoError(t, err)
	assert.Equal(t, "arn:aws:dynamodb::123456789012:global-table/Orders", group.Arn)
	assert.Equal(t, []string{"eu-west-1", "us-west-1"}, group.Regions)
}

func TestDirectory_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("deltas keep their order", func(t *testing.T) {
		dir, api := newTestDirectory(t)
		api.EXPECT().UpdateGlobalTable(gomock.Any(), &dynamodb.UpdateGlobalTableInput{
			GlobalTableName: aws.String("Orders"),
			ReplicaUpdates: []types.ReplicaUpdate{
				{Create: &types.CreateReplicaAction{RegionName: aws.String("us-west-1")}},
				{Delete: &types.DeleteReplicaAction{RegionName: aws.String("ap-south-1")}},
			},
		}).Return(&dynamodb.UpdateGlobalTableOutput{}, nil)

		err := dir.Update(ctx, "Orders", []Delta{CreateReplica("us-west-1"), DeleteReplica("ap-south-1")})
		require.NoError(t, err)
	})

	t.Run("no deltas issues no request", func(t *testing.T) {
		dir, _ := newTestDirectory(t)
		require.NoError(t, dir.Update(ctx, "Orders", nil))
	})

	t.Run("unknown delta kind", func(t *testing.T) {
		dir, _ := newTestDirectory(t)
		err := dir.Update(ctx, "Orders", []Delta{{Kind: "Rename", Region: "eu-west-1"}})
		require.Error(t, err)
	})

	t.Run("replica propagation is retried until max tries", func(t *testing.T) {
		dir, api := newTestDirectory(t)
		api.EXPECT().UpdateGlobalTable(gomock.Any(), gomock.Any()).
			Return(nil, &types.TableNotFoundException{Message: aws.String("not yet")}).
			Times(3)

		err := dir.Update(ctx, "Orders", []Delta{CreateReplica("us-west-1")})
		require.Error(t, err)
		var tnf *types.TableNotFoundException
		assert.True(t, errors.As(err, &tnf))
	})
}

func TestDeltaString(t *testing.T) {
	assert.Equal(t, "Create{us-west-1}", CreateReplica("us-west-1").String())
	assert.Equal(t, "Delete{eu-west-1}", DeleteReplica("eu-west-1").String())
}
