// Package regiontable creates and destroys the single-region tables that
// make up the replicas of a global table. Every call is scoped to exactly one
// (table name, region) pair; fanning out across regions is the caller's job.
package regiontable

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/acksell/globaltable/dynamodb/ddbiface"
	"github.com/acksell/globaltable/dynamodb/table"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// ClientFactory returns a control-plane client bound to region.
type ClientFactory func(region string) ddbiface.TableAPI

// Manager provisions regional tables.
type Manager struct {
	clients ClientFactory
	opts    managerOpts
}

// New creates a Manager using clients to reach each region.
func New(clients ClientFactory, opts ...Option) *Manager {
	m := &Manager{
		clients: clients,
		opts:    defaultOpts(),
	}
	for _, opt := range opts {
		opt(&m.opts)
	}
	return m
}

// NewFromConfig creates a Manager that builds one *dynamodb.Client per region
// from cfg, overriding only the region.
func NewFromConfig(cfg aws.Config, opts ...Option) *Manager {
	var (
		mu      sync.Mutex
		clients = make(map[string]*dynamodb.Client)
	)
	factory := func(region string) ddbiface.TableAPI {
		mu.Lock()
		defer mu.Unlock()
		c, ok := clients[region]
		if !ok {
			c = dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
				o.Region = region
			})
			clients[region] = c
		}
		return c
	}
	return New(factory, opts...)
}

// Create creates table name in region with the given schema and waits until
// it is ACTIVE. Streams are always enabled with new and old images since
// replication between regions reads from them. A table that already exists is
// waited on instead of recreated, so repeating a failed Create is safe. A
// table that is still being deleted is waited out and created again.
func (m *Manager) Create(ctx context.Context, name, region string, schema table.Schema) error {
	log := m.opts.logger.With(zap.String("table", name), zap.String("region", region))
	client := m.clients(region)

	input := &dynamodb.CreateTableInput{
		TableName:            aws.String(name),
		AttributeDefinitions: schema.DDBAttributeDefinitions(),
		KeySchema:            schema.DDBKeySchema(),
		BillingMode:          types.BillingModePayPerRequest,
		StreamSpecification: &types.StreamSpecification{
			StreamEnabled:  aws.Bool(true),
			StreamViewType: types.StreamViewTypeNewAndOldImages,
		},
	}
	existed := false
	_, err := client.CreateTable(ctx, input)
	var inUse *types.ResourceInUseException
	if errors.As(err, &inUse) {
		// A table removed by an earlier pass may still be deleting.
		status, derr := m.status(ctx, client, name)
		if derr != nil {
			return fmt.Errorf("create table %q in %s: %w", name, region, derr)
		}
		if status == types.TableStatusDeleting {
			log.Info("regional table still deleting, waiting before recreating it")
			if m.opts.waitTimeout <= 0 {
				return fmt.Errorf("create table %q in %s: table is %s", name, region, status)
			}
			if err := m.waitGone(ctx, client, name); err != nil {
				return fmt.Errorf("wait for table %q in %s to finish deleting: %w", name, region, err)
			}
			_, err = client.CreateTable(ctx, input)
		} else {
			log.Info("regional table already exists", zap.String("status", string(status)))
			err, existed = nil, true
		}
	}
	if err != nil {
		return fmt.Errorf("create table %q in %s: %w", name, region, err)
	}
	if !existed {
		log.Info("creating regional table")
	}

	if m.opts.waitTimeout <= 0 {
		return nil
	}
	waiter := dynamodb.NewTableExistsWaiter(client, m.opts.existsWaiterOpts...)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(name)}, m.opts.waitTimeout); err != nil {
		return fmt.Errorf("wait for table %q in %s to become active: %w", name, region, err)
	}
	log.Debug("regional table active")
	return nil
}

// Destroy deletes table name in region and waits until it is gone.
// A table that does not exist is treated as already destroyed.
func (m *Manager) Destroy(ctx context.Context, name, region string) error {
	log := m.opts.logger.With(zap.String("table", name), zap.String("region", region))
	client := m.clients(region)

	_, err := client.DeleteTable(ctx, &dynamodb.DeleteTableInput{
		TableName: aws.String(name),
	})
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		log.Info("regional table already deleted")
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete table %q in %s: %w", name, region, err)
	}
	log.Info("deleting regional table")

	if m.opts.waitTimeout <= 0 {
		return nil
	}
	if err := m.waitGone(ctx, client, name); err != nil {
		return fmt.Errorf("wait for table %q in %s to be deleted: %w", name, region, err)
	}
	return nil
}

func (m *Manager) waitGone(ctx context.Context, client ddbiface.TableAPI, name string) error {
	waiter := dynamodb.NewTableNotExistsWaiter(client, m.opts.notExistsWaiterOpts...)
	return waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(name)}, m.opts.waitTimeout)
}

// status returns the table status. A table that vanished in the meantime
// reports DELETING so the caller waits and recreates it.
func (m *Manager) status(ctx context.Context, client ddbiface.TableAPI, name string) (types.TableStatus, error) {
	out, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(name)})
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return types.TableStatusDeleting, nil
	}
	if err != nil {
		return "", err
	}
	if out.Table == nil {
		return "", fmt.Errorf("describe table %q: empty description", name)
	}
	return out.Table.TableStatus, nil
}

type Option func(*managerOpts)

type managerOpts struct {
	logger              *zap.Logger
	waitTimeout         time.Duration
	existsWaiterOpts    []func(*dynamodb.TableExistsWaiterOptions)
	notExistsWaiterOpts []func(*dynamodb.TableNotExistsWaiterOptions)
}

func defaultOpts() managerOpts {
	return managerOpts{
		logger:      zap.NewNop(),
		waitTimeout: 5 * time.Minute,
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *managerOpts) {
		o.logger = l
	}
}

// WithWaitTimeout bounds how long Create and Destroy wait for the table to
// reach its target state. Zero or less disables waiting.
func WithWaitTimeout(d time.Duration) Option {
	return func(o *managerOpts) {
		o.waitTimeout = d
	}
}

// WithPollInterval sets the delay bounds used by the table waiters.
func WithPollInterval(minDelay, maxDelay time.Duration) Option {
	return func(o *managerOpts) {
		o.existsWaiterOpts = append(o.existsWaiterOpts, func(w *dynamodb.TableExistsWaiterOptions) {
			w.MinDelay, w.MaxDelay = minDelay, maxDelay
		})
		o.notExistsWaiterOpts = append(o.notExistsWaiterOpts, func(w *dynamodb.TableNotExistsWaiterOptions) {
			w.MinDelay, w.MaxDelay = minDelay, maxDelay
		})
	}
}
