package statestore

import (
	"context"
	"sync"
)

// Memory keeps records in process memory.
type Memory struct {
	mu      sync.Mutex
	records map[string]Record
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]Record)}
}

func (m *Memory) Get(ctx context.Context, key string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[key]
	if !ok {
		return Record{}, ErrNotFound
	}
	return cloneRecord(rec), nil
}

func (m *Memory) Put(ctx context.Context, key string, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.records[key]; ok && old.TableName != rec.TableName {
		return ErrConflict
	}
	m.records[key] = cloneRecord(rec)
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

func cloneRecord(rec Record) Record {
	rec.Regions = append([]string(nil), rec.Regions...)
	return rec
}
