package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/mcbanners/banners/pkg/entity"
	"github.com/mcbanners/banners/pkg/integrations/spigot"
)

const spigotSite = "https://www.spigotmc.org/"

type spigotAdapter struct {
	client *spigot.Client
	logger *log.Logger
}

// NewSpigotAdapter exposes a SpigotMC client through the capability interfaces.
func NewSpigotAdapter(c *spigot.Client, logger *log.Logger) any {
	return &spigotAdapter{client: c, logger: logger}
}

// AuthorByID needs the author profile and the full resource listing to sum
// downloads and reviews; both must succeed.
func (a *spigotAdapter) AuthorByID(ctx context.Context, id int) (*entity.Author, error) {
	var (
		author    *spigot.Author
		resources []spigot.Resource
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		author, err = a.client.FetchAuthor(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		resources, err = a.client.FetchResourcesByAuthor(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var downloads int64
	var reviews int
	for _, r := range resources {
		downloads += int64(r.Stats.Downloads)
		reviews += int(r.Stats.Reviews.Total)
	}

	return &entity.Author{
		Name:          author.Username,
		ResourceCount: int(author.ResourceCount),
		Icon:          fetchIcon(ctx, a.client, a.logger, spigot.IconURL(author.Avatar)),
		Downloads:     downloads,
		Rating:        entity.NoRating,
		Reviews:       reviews,
	}, nil
}

func (a *spigotAdapter) ResourceByID(ctx context.Context, id int) (*entity.Resource, error) {
	r, err := a.client.FetchResource(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entity.Resource{
		ID:        strconv.Itoa(id),
		Author:    entity.AuthorRef{ID: int(r.Author.ID), Name: r.Author.Username},
		Name:      r.Title,
		Version:   r.CurrentVersion,
		Rating:    float64(r.Stats.Rating),
		Reviews:   int(r.Stats.Reviews.Total),
		Downloads: int64(r.Stats.Downloads),
		Icon:      fetchIcon(ctx, a.client, a.logger, absoluteSpigotURL(r.IconLink)),
	}, nil
}

func absoluteSpigotURL(link string) string {
	if link == "" || strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") || strings.HasPrefix(link, "data:") {
		return link
	}
	return spigotSite + strings.TrimPrefix(link, "/")
}
