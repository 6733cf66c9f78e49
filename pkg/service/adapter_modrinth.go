package service

import (
	"context"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/mcbanners/banners/pkg/entity"
	"github.com/mcbanners/banners/pkg/integrations/modrinth"
)

type modrinthAdapter struct {
	client *modrinth.Client
	logger *log.Logger
}

// NewModrinthAdapter exposes a Modrinth client through the capability interfaces.
func NewModrinthAdapter(c *modrinth.Client, logger *log.Logger) any {
	return &modrinthAdapter{client: c, logger: logger}
}

// AuthorByName combines the user profile with their projects. Modrinth has
// no reviews; followers stand in for them.
func (a *modrinthAdapter) AuthorByName(ctx context.Context, name string) (*entity.Author, error) {
	var (
		user     *modrinth.User
		projects []modrinth.Project
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		user, err = a.client.FetchUser(gctx, name)
		return err
	})
	g.Go(func() (err error) {
		projects, err = a.client.FetchUserProjects(gctx, name)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var downloads int64
	var followers int
	for _, p := range projects {
		downloads += int64(p.Downloads)
		followers += int(p.Followers)
	}

	return &entity.Author{
		Name:          user.Username,
		ResourceCount: len(projects),
		Icon:          fetchIcon(ctx, a.client, a.logger, user.AvatarURL),
		Downloads:     downloads,
		Rating:        entity.NoRating,
		Reviews:       followers,
	}, nil
}

// ResourceByName resolves a project by slug or id. The owner and newest
// version come from separate endpoints, fetched concurrently.
func (a *modrinthAdapter) ResourceByName(ctx context.Context, slug string) (*entity.Resource, error) {
	p, err := a.client.FetchProject(ctx, slug)
	if err != nil {
		return nil, err
	}

	var (
		members []modrinth.TeamMember
		version *modrinth.Version
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		members, err = a.client.FetchTeamMembers(gctx, p.Team)
		return err
	})
	g.Go(func() (err error) {
		version, err = a.client.FetchLatestVersion(gctx, p)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &entity.Resource{
		ID:        p.ID,
		Name:      p.Title,
		Rating:    entity.NoRating,
		Reviews:   int(p.Followers),
		Downloads: int64(p.Downloads),
		Icon:      fetchIcon(ctx, a.client, a.logger, p.IconURL),
	}
	if owner, ok := modrinth.Owner(members); ok {
		res.Author = entity.AuthorRef{Name: owner.User.Username}
	}
	if version != nil {
		res.Version = version.VersionNumber
	}
	return res, nil
}
