package globaltable

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/acksell/globaltable/dynamodb/replication"
	"github.com/acksell/globaltable/dynamodb/statestore"
	"github.com/acksell/globaltable/dynamodb/table"
)

var testSchema = table.Schema{
	AttributeDefinitions: []table.AttributeDefinition{
		{Name: "pk", Type: table.KeyKindS},
		{Name: "sk", Type: table.KeyKindS},
	},
	KeySchema: []table.KeySchemaElement{
		{AttributeName: "pk", Role: table.KeyRoleHash},
		{AttributeName: "sk", Role: table.KeyRoleRange},
	},
}

// fakeTables records regional calls. Tables that exist are tracked per
// region so creates and destroys are idempotent like the real manager.
type fakeTables struct {
	mu         sync.Mutex
	existing   map[string]table.Schema
	creates    []string
	destroys   []string
	createErr  map[string]error
	destroyErr map[string]error

	inflight    int
	maxInflight int
}

func newFakeTables(regions ...string) *fakeTables {
	f := &fakeTables{
		existing:   make(map[string]table.Schema),
		createErr:  make(map[string]error),
		destroyErr: make(map[string]error),
	}
	for _, r := range regions {
		f.existing[r] = testSchema
	}
	return f
}

func (f *fakeTables) enter() {
	f.mu.Lock()
	f.inflight++
	f.maxInflight = max(f.maxInflight, f.inflight)
	f.mu.Unlock()
}

func (f *fakeTables) leave() {
	f.mu.Lock()
	f.inflight--
	f.mu.Unlock()
}

func (f *fakeTables) Create(ctx context.Context, name, region string, schema table.Schema) error {
	f.enter()
	defer f.leave()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, region)
	if err := f.createErr[region]; err != nil {
		return err
	}
	f.existing[region] = schema
	return nil
}

func (f *fakeTables) Destroy(ctx context.Context, name, region string) error {
	f.enter()
	defer f.leave()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroys = append(f.destroys, region)
	if err := f.destroyErr[region]; err != nil {
		return err
	}
	delete(f.existing, region)
	return nil
}

func (f *fakeTables) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.creates) + len(f.destroys)
}

func (f *fakeTables) sortedCreates() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return sortedSet(f.creates)
}

func (f *fakeTables) sortedDestroys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return sortedSet(f.destroys)
}

// fakeDirectory holds at most one replication group.
type fakeDirectory struct {
	group       *replication.Group
	describes   int
	creates     [][]string
	updates     [][]replication.Delta
	describeErr error
	createErr   error
	updateErr   error
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{}
}

func (f *fakeDirectory) withGroup(name string, regions ...string) *fakeDirectory {
	f.group = &replication.Group{
		Name:    name,
		Arn:     testArn(name),
		Status:  "ACTIVE",
		Regions: slices.Clone(regions),
	}
	return f
}

func testArn(name string) string {
	return fmt.Sprintf("arn:aws:dynamodb::123456789012:global-table/%s", name)
}

func (f *fakeDirectory) Describe(ctx context.Context, name string) (replication.Group, bool, error) {
	f.describes++
	if f.describeErr != nil {
		return replication.Group{}, false, f.describeErr
	}
	if f.group == nil || f.group.Name != name {
		return replication.Group{}, false, nil
	}
	g := *f.group
	g.Regions = slices.Clone(f.group.Regions)
	return g, true, nil
}

func (f *fakeDirectory) Create(ctx context.Context, name string, regions []string) (replication.Group, error) {
	f.creates = append(f.creates, slices.Clone(regions))
	if f.createErr != nil {
		return replication.Group{}, f.createErr
	}
	f.withGroup(name, regions...)
	return *f.group, nil
}

func (f *fakeDirectory) Update(ctx context.Context, name string, deltas []replication.Delta) error {
	f.updates = append(f.updates, slices.Clone(deltas))
	if f.updateErr != nil {
		return f.updateErr
	}
	for _, d := range deltas {
		switch d.Kind {
		case replication.DeltaCreate:
			f.group.Regions = append(f.group.Regions, d.Region)
		case replication.DeltaDelete:
			f.group.Regions = slices.DeleteFunc(f.group.Regions, func(r string) bool { return r == d.Region })
		}
	}
	return nil
}

func (f *fakeDirectory) mutations() int {
	return len(f.creates) + len(f.updates)
}

// countingState counts writes on top of an in-memory store.
type countingState struct {
	*statestore.Memory
	puts    int
	deletes int
	getErr  error
	// failPuts makes the next n Puts fail with errPutFailed.
	failPuts int
}

var errPutFailed = errors.New("state write failed")

func newCountingState() *countingState {
	return &countingState{Memory: statestore.NewMemory()}
}

func (s *countingState) seed(key string, rec statestore.Record) *countingState {
	if err := s.Memory.Put(context.Background(), key, rec); err != nil {
		panic(err)
	}
	return s
}

func (s *countingState) Get(ctx context.Context, key string) (statestore.Record, error) {
	if s.getErr != nil {
		return statestore.Record{}, s.getErr
	}
	return s.Memory.Get(ctx, key)
}

func (s *countingState) Put(ctx context.Context, key string, rec statestore.Record) error {
	s.puts++
	if s.failPuts > 0 {
		s.failPuts--
		return errPutFailed
	}
	return s.Memory.Put(ctx, key, rec)
}

func (s *countingState) Delete(ctx context.Context, key string) error {
	s.deletes++
	return s.Memory.Delete(ctx, key)
}
