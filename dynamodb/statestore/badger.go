package statestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const badgerKeyPrefix = "globaltable/"

// Badger keeps records in a BadgerDB directory. Values are YAML documents so
// the state stays readable with badger's own tooling.
type Badger struct {
	db *badger.DB
}

// BadgerOptions configures the BadgerDB store.
type BadgerOptions struct {
	// Path to the database directory. If empty, uses in-memory mode.
	Path string
	// InMemory forces in-memory mode even if Path is set.
	InMemory bool
	// Logger receives badger's internal logs. If nil, logging is disabled.
	Logger *zap.Logger
}

// OpenBadger opens (or creates) the state database.
func OpenBadger(opts BadgerOptions) (*Badger, error) {
	badgerOpts := badger.DefaultOptions(opts.Path)

	if opts.Path == "" || opts.InMemory {
		badgerOpts = badgerOpts.WithInMemory(true).WithDir("").WithValueDir("")
	}

	if opts.Logger != nil {
		badgerOpts = badgerOpts.WithLogger(badgerLogger{opts.Logger.Named("badger").Sugar()})
	} else {
		badgerOpts = badgerOpts.WithLogger(nil)
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return &Badger{db: db}, nil
}

// Close closes the BadgerDB database.
func (b *Badger) Close() error {
	return b.db.Close()
}

func (b *Badger) Get(ctx context.Context, key string) (Record, error) {
	var rec Record
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return yaml.Unmarshal(val, &rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("get state %q: %w", key, err)
	}
	return rec, nil
}

func (b *Badger) Put(ctx context.Context, key string, rec Record) error {
	val, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode state %q: %w", key, err)
	}
	err = b.db.Update(func(txn *badger.Txn) error {
		existing, err := txn.Get(badgerKey(key))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err == nil {
			var old Record
			if err := existing.Value(func(v []byte) error { return yaml.Unmarshal(v, &old) }); err != nil {
				return err
			}
			if old.TableName != rec.TableName {
				return ErrConflict
			}
		}
		return txn.Set(badgerKey(key), val)
	})
	if errors.Is(err, ErrConflict) {
		return err
	}
	if err != nil {
		return fmt.Errorf("put state %q: %w", key, err)
	}
	return nil
}

func (b *Badger) Delete(ctx context.Context, key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(badgerKey(key))
	})
	if err != nil {
		return fmt.Errorf("delete state %q: %w", key, err)
	}
	return nil
}

func badgerKey(key string) []byte {
	return []byte(badgerKeyPrefix + key)
}

// badgerLogger routes badger's printf-style logging into zap.
type badgerLogger struct {
	s *zap.SugaredLogger
}

func (l badgerLogger) Errorf(format string, args ...any)   { l.s.Errorf(format, args...) }
func (l badgerLogger) Warningf(format string, args ...any) { l.s.Warnf(format, args...) }
func (l badgerLogger) Infof(format string, args ...any)    { l.s.Debugf(format, args...) }
func (l badgerLogger) Debugf(format string, args ...any)   { l.s.Debugf(format, args...) }
