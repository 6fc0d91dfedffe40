// Package schema defines the YAML document that describes a desired global
// table, and converts it into the types the reconciler works with.
//
//	name: orders
//	tableName: Orders
//	replicationGroup: [us-west-1, eu-west-1]
//	attributeDefinitions:
//	  - name: id
//	    type: S
//	keySchema:
//	  - attributeName: id
//	    keyType: HASH
package schema

// Document is one desired global table as written in a spec file.
type Document struct {
	// Name identifies the reconciled instance. Defaults to TableName.
	Name                 string         `yaml:"name,omitempty" json:"name,omitempty"`
	TableName            string         `yaml:"tableName" json:"tableName"`
	ReplicationGroup     []string       `yaml:"replicationGroup" json:"replicationGroup"`
	AttributeDefinitions []AttributeDef `yaml:"attributeDefinitions" json:"attributeDefinitions"`
	KeySchema            []KeyElement   `yaml:"keySchema" json:"keySchema"`
}

// AttributeDef describes a key attribute.
type AttributeDef struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"` // "S", "N", or "B"
}

// KeyElement places an attribute in the primary key.
type KeyElement struct {
	AttributeName string `yaml:"attributeName" json:"attributeName"`
	KeyType       string `yaml:"keyType" json:"keyType"` // "HASH" or "RANGE"
}

// InstanceName returns Name, or TableName when Name is empty.
func (d Document) InstanceName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.TableName
}
