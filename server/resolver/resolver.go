package resolver

import (
	"github.com/Luismorlan/socialpost/store"
)

// Resolver is the root resolver for both Query and Mutation. It serves as
// dependency injection for the GraphQL front end, add any dependencies it
// requires here.
type Resolver struct {
	Repo store.Repository
}

func NewResolver(repo store.Repository) *Resolver {
	return &Resolver{Repo: repo}
}
