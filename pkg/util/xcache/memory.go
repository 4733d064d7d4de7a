package xcache

import (
	"context"
	"errors"
	"time"

	"github.com/maypok86/otter"
	"golang.org/x/sync/singleflight"

	"github.com/wuxler/imgpull/pkg/util/xgeneric"
)

// DefaultMemoryCapacity is used by NewMemory when no explicit capacity is
// configured by the caller.
const DefaultMemoryCapacity = 32

// DefaultMemoryTTL is the entry lifetime used when a Set call does not
// supply its own TTL via WithTTL.
const DefaultMemoryTTL = time.Hour

// errNotLoaded marks a miss whose loader found no value.
var errNotLoaded = errors.New("xcache: no value loaded")

// NewMemory returns a new cache implementation based on memory, bounded to
// capacity entries and evicting according to otter's own policy once full.
func NewMemory[T any](capacity int, defaultTTL time.Duration) Cache[T] {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultMemoryTTL
	}

	cache, err := otter.MustBuilder[string, T](capacity).
		WithTTL(defaultTTL).
		Build()
	if err != nil {
		panic(err)
	}
	return &memoryCacheImpl[T]{
		cache:      cache,
		defaultTTL: defaultTTL,
	}
}

type memoryCacheImpl[T any] struct {
	cache      otter.Cache[string, T]
	defaultTTL time.Duration
	loadGroup  singleflight.Group
}

// Get returns the value of the key.
func (s *memoryCacheImpl[T]) Get(ctx context.Context, key string, options ...Option[T]) (T, bool) {
	o := MakeOptions(options...)
	v, ok := s.cache.Get(key)
	if ok {
		return v, true
	}
	loaded, err, _ := s.loadGroup.Do(key, func() (interface{}, error) {
		value, ok := o.Loader(ctx, key)
		if !ok {
			return nil, errNotLoaded
		}
		s.cache.Set(key, value)
		return value, nil
	})
	if err != nil {
		return xgeneric.ZeroValue[T](), false
	}
	return loaded.(T), true
}

// Set saves the value of the key. Entries are read-only once inserted: a
// second Set for the same key simply replaces the value and resets its TTL.
func (s *memoryCacheImpl[T]) Set(_ context.Context, key string, value T, options ...Option[T]) {
	o := MakeOptions(options...)
	if o.TTL > 0 && o.TTL != s.defaultTTL {
		s.cache.SetWithTTL(key, value, o.TTL)
		return
	}
	s.cache.Set(key, value)
}

// Delete removes the value of the key.
func (s *memoryCacheImpl[T]) Delete(_ context.Context, key string) {
	s.cache.Delete(key)
}
