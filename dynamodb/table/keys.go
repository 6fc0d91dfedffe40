package table

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// KeyKind is the scalar type of a key attribute.
type KeyKind string

const (
	KeyKindS KeyKind = "S"
	KeyKindN KeyKind = "N"
	KeyKindB KeyKind = "B"
)

func (k KeyKind) valid() bool {
	switch k {
	case KeyKindS, KeyKindN, KeyKindB:
		return true
	}
	return false
}

// DDB returns the SDK scalar attribute type.
func (k KeyKind) DDB() types.ScalarAttributeType {
	return types.ScalarAttributeType(k)
}

// KeyRole is the role of an attribute in the primary key.
type KeyRole string

const (
	// KeyRoleHash marks the partition key.
	KeyRoleHash KeyRole = "HASH"
	// KeyRoleRange marks the sort key.
	KeyRoleRange KeyRole = "RANGE"
)

// DDB returns the SDK key type.
func (r KeyRole) DDB() types.KeyType {
	return types.KeyType(r)
}

// ParseKeyKind converts a string such as "S" into a KeyKind.
func ParseKeyKind(s string) (KeyKind, error) {
	k := KeyKind(s)
	if !k.valid() {
		return "", fmt.Errorf("unsupported attribute type %q, want one of S, N, B", s)
	}
	return k, nil
}

// ParseKeyRole converts "HASH" or "RANGE" into a KeyRole.
func ParseKeyRole(s string) (KeyRole, error) {
	switch r := KeyRole(s); r {
	case KeyRoleHash, KeyRoleRange:
		return r, nil
	}
	return "", fmt.Errorf("unsupported key type %q, want HASH or RANGE", s)
}
