package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/acksell/globaltable/dynamodb/globaltable"
	"github.com/acksell/globaltable/dynamodb/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ordersYAML = `
name: orders
tableName: Orders
replicationGroup: [us-west-1, eu-west-1]
attributeDefinitions:
  - name: id
    type: S
  - name: createdAt
    type: N
keySchema:
  - attributeName: id
    keyType: HASH
  - attributeName: createdAt
    keyType: RANGE
`

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.yaml")
	require.NoError(t, os.WriteFile(path, []byte(ordersYAML), 0o644))

	doc, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, &Document{
		Name:             "orders",
		TableName:        "Orders",
		ReplicationGroup: []string{"us-west-1", "eu-west-1"},
		AttributeDefinitions: []AttributeDef{
			{Name: "id", Type: "S"},
			{Name: "createdAt", Type: "N"},
		},
		KeySchema: []KeyElement{
			{AttributeName: "id", KeyType: "HASH"},
			{AttributeName: "createdAt", KeyType: "RANGE"},
		},
	}, doc)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "unknown field", yaml: "tableName: T\nbillingMode: PROVISIONED\n", wantErr: "billingMode"},
		{name: "no table name", yaml: "replicationGroup: [us-east-1]\n", wantErr: "tableName is required"},
		{name: "bad yaml", yaml: "tableName: [\n", wantErr: "yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInstanceName(t *testing.T) {
	assert.Equal(t, "orders", Document{Name: "orders", TableName: "Orders"}.InstanceName())
	assert.Equal(t, "Orders", Document{TableName: "Orders"}.InstanceName())
}

func TestDesired(t *testing.T) {
	doc, err := Parse([]byte(ordersYAML))
	require.NoError(t, err)

	spec, err := doc.Desired()
	require.NoError(t, err)
	assert.Equal(t, globaltable.DesiredSpec{
		TableName: "Orders",
		Regions:   []string{"us-west-1", "eu-west-1"},
		Schema: table.Schema{
			AttributeDefinitions: []table.AttributeDefinition{
				{Name: "id", Type: table.KeyKindS},
				{Name: "createdAt", Type: table.KeyKindN},
			},
			KeySchema: []table.KeySchemaElement{
				{AttributeName: "id", Role: table.KeyRoleHash},
				{AttributeName: "createdAt", Role: table.KeyRoleRange},
			},
		},
	}, spec)
}

func TestDesired_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
	}{
		{
			name: "bad attribute type",
			doc: Document{
				TableName:            "T",
				ReplicationGroup:     []string{"us-east-1"},
				AttributeDefinitions: []AttributeDef{{Name: "id", Type: "BOOL"}},
				KeySchema:            []KeyElement{{AttributeName: "id", KeyType: "HASH"}},
			},
		},
		{
			name: "bad key type",
			doc: Document{
				TableName:            "T",
				ReplicationGroup:     []string{"us-east-1"},
				AttributeDefinitions: []AttributeDef{{Name: "id", Type: "S"}},
				KeySchema:            []KeyElement{{AttributeName: "id", KeyType: "PARTITION"}},
			},
		},
		{
			name: "no regions",
			doc: Document{
				TableName:            "T",
				AttributeDefinitions: []AttributeDef{{Name: "id", Type: "S"}},
				KeySchema:            []KeyElement{{AttributeName: "id", KeyType: "HASH"}},
			},
		},
		{
			name: "undefined key attribute",
			doc: Document{
				TableName:            "T",
				ReplicationGroup:     []string{"us-east-1"},
				AttributeDefinitions: []AttributeDef{{Name: "id", Type: "S"}},
				KeySchema:            []KeyElement{{AttributeName: "pk", KeyType: "HASH"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.doc.Desired()
			require.ErrorIs(t, err, globaltable.ErrInvalidSpec)
		})
	}
}
