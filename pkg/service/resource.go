package service

import (
	"context"
	"strings"

	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/cache"
	"github.com/mcbanners/banners/pkg/entity"
)

// ResourceService resolves resources.
type ResourceService struct {
	*base
}

// ByID resolves a resource by numeric identifier.
func (s *ResourceService) ByID(ctx context.Context, id int, b backend.Backend) (*entity.Resource, error) {
	if !backend.Supports(b, backend.CategoryResource, backend.ByID) {
		return nil, unsupported(b, backend.CategoryResource, backend.ByID)
	}
	a, ok := capability[ResourceByID](s.registry, b)
	if !ok {
		return nil, unsupported(b, backend.CategoryResource, backend.ByID)
	}
	return cache.Cached(ctx, s.cache, s.key("resource_by_id", b, itoa(id)), s.entityTTL,
		func(ctx context.Context) (*entity.Resource, error) {
			res, err := a.ResourceByID(ctx, id)
			return res, s.classify(ctx, err, "resource "+itoa(id), b)
		})
}

// ByName resolves a resource by slug or plugin id.
func (s *ResourceService) ByName(ctx context.Context, name string, b backend.Backend) (*entity.Resource, error) {
	if !backend.Supports(b, backend.CategoryResource, backend.ByName) {
		return nil, unsupported(b, backend.CategoryResource, backend.ByName)
	}
	a, ok := capability[ResourceByName](s.registry, b)
	if !ok {
		return nil, unsupported(b, backend.CategoryResource, backend.ByName)
	}
	return cache.Cached(ctx, s.cache, s.key("resource_by_name", b, strings.ToLower(name)), s.entityTTL,
		func(ctx context.Context) (*entity.Resource, error) {
			res, err := a.ResourceByName(ctx, name)
			return res, s.classify(ctx, err, "resource "+name, b)
		})
}
