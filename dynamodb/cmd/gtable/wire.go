package main

import (
	"context"
	"fmt"

	"github.com/acksell/globaltable/dynamodb/globaltable"
	"github.com/acksell/globaltable/dynamodb/regiontable"
	"github.com/acksell/globaltable/dynamodb/replication"
	"github.com/acksell/globaltable/dynamodb/statestore"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"go.uber.org/zap"
)

type callerIdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

var _ callerIdentityAPI = (*sts.Client)(nil)

// env is everything a command needs to reconcile one instance.
type env struct {
	log        *zap.Logger
	reconciler *globaltable.Reconciler
	stateKey   string
	close      func() error
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// stateKey returns the key under which instance name is recorded, prefixed
// with the caller's account ID when scoped.
func stateKey(ctx context.Context, api callerIdentityAPI, scoped bool, name string) (string, error) {
	if !scoped {
		return name, nil
	}
	out, err := api.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("resolve AWS account: %w", err)
	}
	account := aws.ToString(out.Account)
	if account == "" {
		return name, nil
	}
	return account + "/" + name, nil
}

func openStateStore(cfg Config, awsCfg aws.Config, log *zap.Logger) (globaltable.StateStore, func() error, error) {
	if cfg.StateTable != "" {
		client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			if cfg.StateRegion != "" {
				o.Region = cfg.StateRegion
			}
		})
		log.Debug("using DynamoDB state table", zap.String("stateTable", cfg.StateTable))
		return statestore.NewDynamo(client, cfg.StateTable), func() error { return nil }, nil
	}
	db, err := statestore.OpenBadger(statestore.BadgerOptions{Path: cfg.StateDir, Logger: log})
	if err != nil {
		return nil, nil, err
	}
	log.Debug("using local state directory", zap.String("stateDir", cfg.StateDir))
	return db, db.Close, nil
}

// newEnv connects to AWS and builds a reconciler for instance name.
func newEnv(ctx context.Context, cfg Config, name string) (*env, error) {
	log, err := newLogger(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	key, err := stateKey(ctx, sts.NewFromConfig(awsCfg), cfg.ScopeByAccount, name)
	if err != nil {
		return nil, err
	}

	state, closeState, err := openStateStore(cfg, awsCfg, log)
	if err != nil {
		return nil, err
	}

	tables := regiontable.NewFromConfig(awsCfg,
		regiontable.WithLogger(log.Named("regiontable")),
		regiontable.WithWaitTimeout(cfg.WaitTimeout),
	)
	admin := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		o.Region = replication.AdminRegion
	})
	directory := replication.New(admin, replication.WithLogger(log.Named("replication")))

	rec := globaltable.New(tables, directory, state, key,
		globaltable.WithLogger(log.Named("globaltable")),
		globaltable.WithConcurrency(cfg.Concurrency),
	)
	return &env{
		log:        log,
		reconciler: rec,
		stateKey:   key,
		close: func() error {
			_ = log.Sync()
			return closeState()
		},
	}, nil
}
