package schema

import (
	"bytes"
	"fmt"
	"os"

	"github.com/acksell/globaltable/dynamodb/globaltable"
	"github.com/acksell/globaltable/dynamodb/table"
	"gopkg.in/yaml.v3"
)

// LoadFile reads and parses a spec file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a spec document. Unknown fields are rejected.
func Parse(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if doc.TableName == "" {
		return nil, fmt.Errorf("tableName is required")
	}
	return &doc, nil
}

// Schema converts the key definitions into a table.Schema.
func (d Document) Schema() (table.Schema, error) {
	var s table.Schema
	for _, a := range d.AttributeDefinitions {
		kind, err := table.ParseKeyKind(a.Type)
		if err != nil {
			return table.Schema{}, fmt.Errorf("attribute %q: %w", a.Name, err)
		}
		s.AttributeDefinitions = append(s.AttributeDefinitions, table.AttributeDefinition{Name: a.Name, Type: kind})
	}
	for _, k := range d.KeySchema {
		role, err := table.ParseKeyRole(k.KeyType)
		if err != nil {
			return table.Schema{}, fmt.Errorf("key %q: %w", k.AttributeName, err)
		}
		s.KeySchema = append(s.KeySchema, table.KeySchemaElement{AttributeName: k.AttributeName, Role: role})
	}
	return s, nil
}

// Desired converts the document into a validated DesiredSpec.
func (d Document) Desired() (globaltable.DesiredSpec, error) {
	s, err := d.Schema()
	if err != nil {
		return globaltable.DesiredSpec{}, fmt.Errorf("%w: %v", globaltable.ErrInvalidSpec, err)
	}
	spec := globaltable.DesiredSpec{
		TableName: d.TableName,
		Regions:   d.ReplicationGroup,
		Schema:    s,
	}
	if err := spec.Validate(); err != nil {
		return globaltable.DesiredSpec{}, err
	}
	return spec, nil
}
