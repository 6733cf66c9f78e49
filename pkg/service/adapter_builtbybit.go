package service

import (
	"context"
	"strconv"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/mcbanners/banners/pkg/entity"
	"github.com/mcbanners/banners/pkg/integrations/builtbybit"
)

type builtByBitAdapter struct {
	client *builtbybit.Client
	logger *log.Logger
}

// NewBuiltByBitAdapter exposes a BuiltByBit client through the capability interfaces.
func NewBuiltByBitAdapter(c *builtbybit.Client, logger *log.Logger) any {
	return &builtByBitAdapter{client: c, logger: logger}
}

// AuthorByID combines the member profile with the author's resources. The
// rating is the review-weighted mean over all resources.
func (a *builtByBitAdapter) AuthorByID(ctx context.Context, id int) (*entity.Author, error) {
	var (
		member    *builtbybit.Member
		resources []builtbybit.Resource
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		member, err = a.client.FetchMember(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		resources, err = a.client.FetchResourcesByAuthor(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var (
		downloads int64
		reviews   int
		weighted  float64
	)
	for _, r := range resources {
		downloads += int64(r.DownloadCount)
		reviews += int(r.ReviewCount)
		weighted += float64(r.ReviewAverage) * float64(r.ReviewCount)
	}
	avg := entity.NoRating
	if reviews > 0 {
		avg = weighted / float64(reviews)
	}

	return &entity.Author{
		Name:          member.Username,
		ResourceCount: len(resources),
		Icon:          fetchIcon(ctx, a.client, a.logger, member.AvatarURL),
		Downloads:     downloads,
		Rating:        avg,
		Reviews:       reviews,
	}, nil
}

// ResourceByID resolves a resource. The version is cosmetic, so a failed
// version lookup leaves it empty instead of failing the resource.
func (a *builtByBitAdapter) ResourceByID(ctx context.Context, id int) (*entity.Resource, error) {
	r, err := a.client.FetchResource(ctx, id)
	if err != nil {
		return nil, err
	}
	res := &entity.Resource{
		ID:        strconv.Itoa(r.ResourceID),
		Author:    entity.AuthorRef{ID: r.AuthorID},
		Name:      r.Title,
		Rating:    rating(float64(r.ReviewAverage), int(r.ReviewCount)),
		Reviews:   int(r.ReviewCount),
		Downloads: int64(r.DownloadCount),
	}
	if v, err := a.client.FetchLatestVersion(ctx, id); err == nil {
		res.Version = v.Name
	} else {
		a.logger.Debug("version unavailable", "resource", id, "error", err)
	}
	return res, nil
}

func (a *builtByBitAdapter) MemberByID(ctx context.Context, id int) (*entity.Member, error) {
	m, err := a.client.FetchMember(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entity.Member{
		ID:            m.MemberID,
		Name:          m.Username,
		Role:          m.Rank(),
		ResourceCount: int(m.ResourceCount),
		Icon:          fetchIcon(ctx, a.client, a.logger, m.AvatarURL),
	}, nil
}
