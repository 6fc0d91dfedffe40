package statestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/acksell/globaltable/dynamodb/ddbiface"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoPartitionKey is the string partition key attribute of the state table.
const DynamoPartitionKey = "pk"

// Dynamo keeps records as items of a DynamoDB table keyed by [DynamoPartitionKey].
type Dynamo struct {
	api       ddbiface.ItemAPI
	tableName string
}

func NewDynamo(api ddbiface.ItemAPI, tableName string) *Dynamo {
	return &Dynamo{api: api, tableName: tableName}
}

type dynamoItem struct {
	PK string `dynamodbav:"pk"`
	Record
}

func (d *Dynamo) key(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		DynamoPartitionKey: &types.AttributeValueMemberS{Value: key},
	}
}

func (d *Dynamo) Get(ctx context.Context, key string) (Record, error) {
	out, err := d.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(d.tableName),
		Key:            d.key(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return Record{}, fmt.Errorf("get state %q: %w", key, err)
	}
	if len(out.Item) == 0 {
		return Record{}, ErrNotFound
	}
	var item dynamoItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return Record{}, fmt.Errorf("decode state %q: %w", key, err)
	}
	return item.Record, nil
}

// Put writes rec unless the stored record names a different table.
func (d *Dynamo) Put(ctx context.Context, key string, rec Record) error {
	av, err := attributevalue.MarshalMap(dynamoItem{PK: key, Record: rec})
	if err != nil {
		return fmt.Errorf("encode state %q: %w", key, err)
	}
	cond := expression.AttributeNotExists(expression.Name(DynamoPartitionKey)).
		Or(expression.Equal(expression.Name("tableName"), expression.Value(rec.TableName)))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("build condition for state %q: %w", key, err)
	}
	_, err = d.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(d.tableName),
		Item:                      av,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	var condFailed *types.ConditionalCheckFailedException
	if errors.As(err, &condFailed) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("put state %q: %w", key, err)
	}
	return nil
}

func (d *Dynamo) Delete(ctx context.Context, key string) error {
	_, err := d.api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(d.tableName),
		Key:       d.key(key),
	})
	if err != nil {
		return fmt.Errorf("delete state %q: %w", key, err)
	}
	return nil
}
