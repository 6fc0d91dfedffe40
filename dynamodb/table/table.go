// Package table describes the schema every regional replica of a global
// table is created with.
package table

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// AttributeDefinition declares a key attribute and its scalar type.
type AttributeDefinition struct {
	Name string
	Type KeyKind
}

// KeySchemaElement assigns a key role to an attribute.
type KeySchemaElement struct {
	AttributeName string
	Role          KeyRole
}

// Schema is the part of a table definition that must be identical across all
// replicas. Order of both slices is significant and preserved.
type Schema struct {
	AttributeDefinitions []AttributeDefinition
	KeySchema            []KeySchemaElement
}

// Validate checks that the key schema is well-formed and that every key
// attribute is declared in the attribute definitions.
func (s Schema) Validate() error {
	if len(s.AttributeDefinitions) == 0 {
		return fmt.Errorf("at least one attribute definition is required")
	}
	defined := make(map[string]bool, len(s.AttributeDefinitions))
	for _, def := range s.AttributeDefinitions {
		if def.Name == "" {
			return fmt.Errorf("attribute definition without a name")
		}
		if defined[def.Name] {
			return fmt.Errorf("attribute %q is defined more than once", def.Name)
		}
		if !def.Type.valid() {
			return fmt.Errorf("attribute %q: unsupported type %q", def.Name, def.Type)
		}
		defined[def.Name] = true
	}

	switch len(s.KeySchema) {
	case 1, 2:
	default:
		return fmt.Errorf("key schema must have one or two elements, got %d", len(s.KeySchema))
	}
	for i, el := range s.KeySchema {
		if !defined[el.AttributeName] {
			return fmt.Errorf("key attribute %q is not in the attribute definitions", el.AttributeName)
		}
		want := KeyRoleHash
		if i == 1 {
			want = KeyRoleRange
		}
		if el.Role != want {
			return fmt.Errorf("key schema element %d (%q) must be %s, got %q", i, el.AttributeName, want, el.Role)
		}
	}
	if len(s.KeySchema) == 2 && s.KeySchema[0].AttributeName == s.KeySchema[1].AttributeName {
		return fmt.Errorf("attribute %q cannot be both partition and sort key", s.KeySchema[0].AttributeName)
	}
	return nil
}

// Clone returns a deep copy, so callers can retain a schema without sharing
// the backing arrays with the input.
func (s Schema) Clone() Schema {
	return Schema{
		AttributeDefinitions: append([]AttributeDefinition(nil), s.AttributeDefinitions...),
		KeySchema:            append([]KeySchemaElement(nil), s.KeySchema...),
	}
}

// DDBAttributeDefinitions converts the attribute definitions for CreateTable.
func (s Schema) DDBAttributeDefinitions() []types.AttributeDefinition {
	out := make([]types.AttributeDefinition, len(s.AttributeDefinitions))
	for i, def := range s.AttributeDefinitions {
		out[i] = types.AttributeDefinition{
			AttributeName: aws.String(def.Name),
			AttributeType: def.Type.DDB(),
		}
	}
	return out
}

// DDBKeySchema converts the key schema for CreateTable.
func (s Schema) DDBKeySchema() []types.KeySchemaElement {
	out := make([]types.KeySchemaElement, len(s.KeySchema))
	for i, el := range s.KeySchema {
		out[i] = types.KeySchemaElement{
			AttributeName: aws.String(el.AttributeName),
			KeyType:       el.Role.DDB(),
		}
	}
	return out
}
