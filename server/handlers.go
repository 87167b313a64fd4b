package server

import (
	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/Luismorlan/socialpost/server/graphql"
	"github.com/Luismorlan/socialpost/server/resolver"
	"github.com/Luismorlan/socialpost/store"
	"github.com/Luismorlan/socialpost/utils"
	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/graphql-go/relay"
)

// GraphqlHandler is the universal handler for all GraphQL queries issued from
// client, by default it binds to a POST method.
func GraphqlHandler(repo store.Repository) gin.HandlerFunc {
	schemaString := graphql.GetGQLSchema()
	h := &relay.Handler{
		Schema: utils.ParseGraphQLSchema(schemaString, resolver.NewResolver(repo)),
	}

	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// PlaygroundHandler serves the GraphQL playground against endpoint.
func PlaygroundHandler(endpoint string) gin.HandlerFunc {
	h := playground.Handler("GraphQL", endpoint)
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
