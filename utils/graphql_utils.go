package utils

import (
	"github.com/graph-gophers/graphql-go"
)

// ParseGraphQLSchema parses schemaString against resolver and panics when a
// field has no matching resolver method.
func ParseGraphQLSchema(schemaString string, resolver interface{}) *graphql.Schema {
	return graphql.MustParseSchema(schemaString, resolver)
}
