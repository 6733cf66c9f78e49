package service

import (
	"context"

	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/cache"
	"github.com/mcbanners/banners/pkg/entity"
)

// MemberService resolves community members.
type MemberService struct {
	*base
}

// ByID resolves a member by numeric identifier.
func (s *MemberService) ByID(ctx context.Context, id int, b backend.Backend) (*entity.Member, error) {
	if !backend.Supports(b, backend.CategoryMember, backend.ByID) {
		return nil, unsupported(b, backend.CategoryMember, backend.ByID)
	}
	a, ok := capability[MemberByID](s.registry, b)
	if !ok {
		return nil, unsupported(b, backend.CategoryMember, backend.ByID)
	}
	return cache.Cached(ctx, s.cache, s.key("member_by_id", b, itoa(id)), s.entityTTL,
		func(ctx context.Context) (*entity.Member, error) {
			m, err := a.MemberByID(ctx, id)
			return m, s.classify(ctx, err, "member "+itoa(id), b)
		})
}
