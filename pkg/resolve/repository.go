package resolve

import "context"

// IDReader finds a single entity by its UUID.
//
// Implementations return (nil, nil) when no entity matches. A non-nil error
// means the lookup itself failed.
type IDReader[E any] interface {
	FindByID(ctx context.Context, id string) (*E, error)
}

// SlugReader finds a single entity by its slug, with the same absence
// contract as IDReader.
type SlugReader[E any] interface {
	FindBySlug(ctx context.Context, slug string) (*E, error)
}

// Repository is the read capability set a Resolver needs.
type Repository[E any] interface {
	IDReader[E]
	SlugReader[E]
}
