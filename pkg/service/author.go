package service

import (
	"context"
	"strings"

	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/cache"
	"github.com/mcbanners/banners/pkg/entity"
	"github.com/mcbanners/banners/pkg/errors"
)

// AuthorService resolves authors.
type AuthorService struct {
	*base
}

// ByID resolves an author by numeric identifier.
func (s *AuthorService) ByID(ctx context.Context, id int, b backend.Backend) (*entity.Author, error) {
	if !backend.Supports(b, backend.CategoryAuthor, backend.ByID) {
		return nil, unsupported(b, backend.CategoryAuthor, backend.ByID)
	}
	a, ok := capability[AuthorByID](s.registry, b)
	if !ok {
		return nil, unsupported(b, backend.CategoryAuthor, backend.ByID)
	}
	return cache.Cached(ctx, s.cache, s.key("author_by_id", b, itoa(id)), s.entityTTL,
		func(ctx context.Context) (*entity.Author, error) {
			author, err := a.AuthorByID(ctx, id)
			return author, s.classify(ctx, err, "author "+itoa(id), b)
		})
}

// ByName resolves an author by username.
func (s *AuthorService) ByName(ctx context.Context, name string, b backend.Backend) (*entity.Author, error) {
	if !backend.Supports(b, backend.CategoryAuthor, backend.ByName) {
		return nil, unsupported(b, backend.CategoryAuthor, backend.ByName)
	}
	a, ok := capability[AuthorByName](s.registry, b)
	if !ok {
		return nil, unsupported(b, backend.CategoryAuthor, backend.ByName)
	}
	return cache.Cached(ctx, s.cache, s.key("author_by_name", b, strings.ToLower(name)), s.entityTTL,
		func(ctx context.Context) (*entity.Author, error) {
			author, err := a.AuthorByName(ctx, name)
			return author, s.classify(ctx, err, "author "+name, b)
		})
}

// ForResource resolves the owner of res through its embedded author
// reference, preferring the numeric id when the backend supports it.
// Polymart resources must go through [AuthorService.ForPolymartResource].
func (s *AuthorService) ForResource(ctx context.Context, res *entity.Resource, b backend.Backend) (*entity.Author, error) {
	ref := res.Author
	switch {
	case ref.ID != 0 && backend.Supports(b, backend.CategoryAuthor, backend.ByID):
		return s.ByID(ctx, ref.ID, b)
	case ref.Name != "" && backend.Supports(b, backend.CategoryAuthor, backend.ByName):
		return s.ByName(ctx, ref.Name, b)
	default:
		return nil, errors.New(errors.ErrCodeNotFound, "resource %s has no usable author reference on %s", res.ID, b.DisplayName())
	}
}

// ForPolymartResource resolves the owner of a Polymart resource. The owner
// may be a user or a team, which only the resource itself records.
func (s *AuthorService) ForPolymartResource(ctx context.Context, authorID, resourceID int) (*entity.Author, error) {
	b := backend.Polymart
	a, ok := capability[AuthorByResource](s.registry, b)
	if !ok {
		return nil, unsupported(b, backend.CategoryAuthor, backend.ByID)
	}
	return cache.Cached(ctx, s.cache, s.key("author_for_resource", b, itoa(authorID), itoa(resourceID)), s.entityTTL,
		func(ctx context.Context) (*entity.Author, error) {
			author, err := a.AuthorByResource(ctx, authorID, resourceID)
			return author, s.classify(ctx, err, "owner of resource "+itoa(resourceID), b)
		})
}
