package service

import (
	"context"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/mcbanners/banners/pkg/entity"
	"github.com/mcbanners/banners/pkg/integrations/ore"
)

type oreAdapter struct {
	client *ore.Client
	logger *log.Logger
}

// NewOreAdapter exposes an Ore client through the capability interfaces.
func NewOreAdapter(c *ore.Client, logger *log.Logger) any {
	return &oreAdapter{client: c, logger: logger}
}

// AuthorByName combines the user profile with their projects. Ore has no
// reviews; stars stand in for them.
func (a *oreAdapter) AuthorByName(ctx context.Context, name string) (*entity.Author, error) {
	var (
		user     *ore.User
		projects []ore.Project
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		user, err = a.client.FetchUser(gctx, name)
		return err
	})
	g.Go(func() (err error) {
		projects, err = a.client.FetchProjectsByOwner(gctx, name)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var downloads int64
	var stars int
	for _, p := range projects {
		downloads += int64(p.Stats.Downloads)
		stars += int(p.Stats.Stars)
	}

	count := int(user.ProjectCount)
	if count == 0 {
		count = len(projects)
	}

	return &entity.Author{
		Name:          user.Name,
		ResourceCount: count,
		Icon:          fetchIcon(ctx, a.client, a.logger, user.AvatarURL),
		Downloads:     downloads,
		Rating:        entity.NoRating,
		Reviews:       stars,
	}, nil
}

func (a *oreAdapter) ResourceByName(ctx context.Context, pluginID string) (*entity.Resource, error) {
	p, err := a.client.FetchProject(ctx, pluginID)
	if err != nil {
		return nil, err
	}
	var version string
	if len(p.PromotedVersions) > 0 {
		version = p.PromotedVersions[0].Version
	}
	return &entity.Resource{
		ID:        p.PluginID,
		Author:    entity.AuthorRef{Name: p.Namespace.Owner},
		Name:      p.Name,
		Version:   version,
		Rating:    entity.NoRating,
		Reviews:   int(p.Stats.Stars),
		Downloads: int64(p.Stats.Downloads),
		Icon:      fetchIcon(ctx, a.client, a.logger, p.IconURL),
	}, nil
}
