package resolve

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/catalog/pkg/entityref"
)

// Resolver resolves UUID-or-slug references to entities of type E using a
// repository of type R.
//
// A Resolver holds no mutable state and is safe for concurrent use.
type Resolver[E any, R Repository[E]] struct {
	repo   R
	logger hclog.Logger
}

// Option configures a Resolver.
type Option func(*options)

type options struct {
	logger hclog.Logger
}

// WithLogger sets the logger used for debug output.
func WithLogger(log hclog.Logger) Option {
	return func(o *options) {
		o.logger = log
	}
}

// New creates a Resolver backed by repo.
func New[E any, R Repository[E]](repo R, opts ...Option) *Resolver[E, R] {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = hclog.NewNullLogger()
	}

	return &Resolver[E, R]{
		repo:   repo,
		logger: o.logger,
	}
}

// Resolve returns the entity identified by ref.
//
// If ref is a canonical UUID it is looked up with FindByID, otherwise with
// FindBySlug. Only one lookup is ever made. If the lookup finds nothing,
// Resolve returns a *ResourceNotFoundError carrying source. Repository errors
// are returned as is.
func (r *Resolver[E, R]) Resolve(ctx context.Context, ref, source string) (*E, error) {
	kind := entityref.Detect(ref)
	r.logger.Debug("resolving entity",
		"ref", ref,
		"source", source,
		"kind", kind,
	)

	var (
		entity *E
		err    error
	)
	switch kind {
	case entityref.KindUUID:
		entity, err = r.repo.FindByID(ctx, ref)
	case entityref.KindSlug:
		entity, err = r.repo.FindBySlug(ctx, ref)
	default:
		panic(fmt.Sprintf("resolve: unhandled reference kind %q", kind))
	}
	if err != nil {
		return nil, err
	}

	if entity == nil {
		r.logger.Debug("entity not found",
			"ref", ref,
			"source", source,
			"kind", kind,
		)
		return nil, &ResourceNotFoundError{Source: source}
	}

	return entity, nil
}
