package service

import (
	"context"

	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/cache"
	"github.com/mcbanners/banners/pkg/entity"
)

// TeamService resolves teams.
type TeamService struct {
	*base
}

// ByID resolves a team by numeric identifier.
func (s *TeamService) ByID(ctx context.Context, id int, b backend.Backend) (*entity.Team, error) {
	if !backend.Supports(b, backend.CategoryTeam, backend.ByID) {
		return nil, unsupported(b, backend.CategoryTeam, backend.ByID)
	}
	a, ok := capability[TeamByID](s.registry, b)
	if !ok {
		return nil, unsupported(b, backend.CategoryTeam, backend.ByID)
	}
	return cache.Cached(ctx, s.cache, s.key("team_by_id", b, itoa(id)), s.entityTTL,
		func(ctx context.Context) (*entity.Team, error) {
			t, err := a.TeamByID(ctx, id)
			return t, s.classify(ctx, err, "team "+itoa(id), b)
		})
}
