// Package statestore persists the identity of a reconciled global table
// between runs. The reconciler writes a Record after every successful apply
// and deletes it after a successful teardown.
//
// Three backends are provided: [Memory] for tests, [Badger] for a local
// state directory and [Dynamo] for a shared DynamoDB state table.
package statestore

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by Get when no record exists for the key.
	ErrNotFound = errors.New("state record not found")
	// ErrConflict is returned by Put when the stored record belongs to a
	// different table than the one being written.
	ErrConflict = errors.New("state record belongs to a different table")
)

// Record is the persisted identity of one global table.
type Record struct {
	TableName      string    `yaml:"tableName" dynamodbav:"tableName"`
	GlobalTableArn string    `yaml:"globalTableArn,omitempty" dynamodbav:"globalTableArn,omitempty"`
	Regions        []string  `yaml:"regions,omitempty" dynamodbav:"regions,omitempty,stringset"`
	UpdatedAt      time.Time `yaml:"updatedAt" dynamodbav:"updatedAt"`
}
