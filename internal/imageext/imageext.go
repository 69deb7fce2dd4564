// Package imageext builds the gatsbyImageData field extension for Sanity image
// types and memoizes the built field maps per configuration.
package imageext

import (
	"context"
	"errors"
	"sync"

	"github.com/graphql-go/graphql"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/hmans/sanityimage/internal/cachekey"
	"github.com/hmans/sanityimage/internal/config"
	"github.com/hmans/sanityimage/internal/imagedata"
	"github.com/hmans/sanityimage/internal/imagefield"
)

// FieldName is the name of the field added to image types.
const FieldName = "gatsbyImageData"

var ErrNilField = errors.New("field builder returned nil")

// KeyFunc derives a cache key from a configuration.
type KeyFunc func(cfg config.Config, ns cachekey.Namespace) (string, error)

// FieldBuilder assembles a complete image field from a resolver and extra arguments.
type FieldBuilder func(resolve graphql.FieldResolveFn, args graphql.FieldConfigArgument) *graphql.Field

// ImageDataFunc produces image data for a node at query time.
type ImageDataFunc func(ctx context.Context, node any, args imagedata.Args, loc imagedata.Location) (*imagedata.ImageData, error)

// Cache memoizes field maps by derived configuration key.
// Entries are never evicted; Reset drops them all.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]graphql.Fields
	group   singleflight.Group

	keyFunc      KeyFunc
	fieldBuilder FieldBuilder
	imageData    ImageDataFunc
	logger       zerolog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithKeyFunc replaces the key derivation function.
func WithKeyFunc(fn KeyFunc) Option {
	return func(c *Cache) {
		c.keyFunc = fn
	}
}

// WithFieldBuilder replaces the image field builder.
func WithFieldBuilder(fn FieldBuilder) Option {
	return func(c *Cache) {
		c.fieldBuilder = fn
	}
}

// WithImageDataFunc replaces the function resolving image data at query time.
func WithImageDataFunc(fn ImageDataFunc) Option {
	return func(c *Cache) {
		c.imageData = fn
	}
}

// WithLogger sets the logger used for hit/miss diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// NewCache creates an empty cache wired to the default collaborators.
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		entries:      make(map[string]graphql.Fields),
		keyFunc:      cachekey.Derive,
		fieldBuilder: imagefield.FieldConfig,
		imageData:    imagedata.GetGatsbyImageData,
		logger:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrBuild returns the field map for cfg, building it on first use.
// Calls whose configurations derive the same key receive the same map.
// Concurrent callers for a key share a single build.
func (c *Cache) GetOrBuild(cfg config.Config) (graphql.Fields, error) {
	key, err := c.keyFunc(cfg, cachekey.ImageExtensions)
	if err != nil {
		return nil, err
	}

	if fields, ok := c.lookup(key); ok {
		c.logger.Debug().Str("key", key).Msg("image extension cache hit")
		return fields, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if fields, ok := c.lookup(key); ok {
			return fields, nil
		}

		fields, err := c.build(cfg)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = fields
		c.mu.Unlock()

		c.logger.Debug().
			Str("key", key).
			Str("project_id", cfg.ProjectID).
			Str("dataset", cfg.Dataset).
			Msg("image extension built")
		return fields, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(graphql.Fields), nil
}

// Len returns the number of cached field maps.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Reset drops every cached field map.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]graphql.Fields)
}

func (c *Cache) lookup(key string) (graphql.Fields, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fields, ok := c.entries[key]
	return fields, ok
}

// build creates the field map for cfg. The location is copied out of cfg
// here, so later changes to cfg do not reach the resolver.
func (c *Cache) build(cfg config.Config) (graphql.Fields, error) {
	loc := imagedata.Location{ProjectID: cfg.ProjectID, Dataset: cfg.Dataset}

	field := c.fieldBuilder(newResolver(c.imageData, loc), Arguments())
	if field == nil {
		return nil, ErrNilField
	}

	return graphql.Fields{FieldName: field}, nil
}

func newResolver(imageData ImageDataFunc, loc imagedata.Location) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		ctx := p.Context
		if ctx == nil {
			ctx = context.Background()
		}

		data, err := imageData(ctx, p.Source, ParseArgs(p.Args), loc)
		if err != nil {
			return nil, err
		}
		if data == nil {
			return nil, nil
		}
		return data, nil
	}
}
