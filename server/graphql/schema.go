package graphql

import (
	_ "embed"
)

//go:embed schema.graphql
var schema string

// GetGQLSchema returns the schema served on /graphql.
func GetGQLSchema() string {
	return schema
}
