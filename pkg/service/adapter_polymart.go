package service

import (
	"context"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/mcbanners/banners/pkg/entity"
	"github.com/mcbanners/banners/pkg/integrations/polymart"
)

type polymartAdapter struct {
	client *polymart.Client
	logger *log.Logger
}

// NewPolymartAdapter exposes a Polymart client through the capability interfaces.
func NewPolymartAdapter(c *polymart.Client, logger *log.Logger) any {
	return &polymartAdapter{client: c, logger: logger}
}

func (a *polymartAdapter) AuthorByID(ctx context.Context, id int) (*entity.Author, error) {
	u, err := a.client.FetchUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return a.userAuthor(ctx, u), nil
}

// AuthorByResource looks at the resource's owner type: team-owned resources
// are attributed to the team, everything else to the user.
func (a *polymartAdapter) AuthorByResource(ctx context.Context, authorID, resourceID int) (*entity.Author, error) {
	res, err := a.client.FetchResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if res.Owner.Type == polymart.OwnerTeam {
		t, err := a.client.FetchTeam(ctx, authorID)
		if err != nil {
			return nil, err
		}
		return &entity.Author{
			Name:          t.Name,
			ResourceCount: int(t.Statistics.ResourceCount),
			Icon:          fetchIcon(ctx, a.client, a.logger, t.ProfilePictureURL),
			Downloads:     int64(t.Statistics.ResourceDownloads),
			Rating:        rating(float64(t.Statistics.ResourceAverageRating), int(t.Statistics.ResourceRatings)),
			Reviews:       int(t.Statistics.ResourceRatings),
		}, nil
	}
	u, err := a.client.FetchUser(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return a.userAuthor(ctx, u), nil
}

func (a *polymartAdapter) userAuthor(ctx context.Context, u *polymart.User) *entity.Author {
	return &entity.Author{
		Name:          u.Username,
		ResourceCount: int(u.Statistics.ResourceCount),
		Icon:          fetchIcon(ctx, a.client, a.logger, u.ProfilePictureURL),
		Downloads:     int64(u.Statistics.ResourceDownloads),
		Rating:        rating(float64(u.Statistics.ResourceAverageRating), int(u.Statistics.ResourceRatings)),
		Reviews:       int(u.Statistics.ResourceRatings),
	}
}

func (a *polymartAdapter) ResourceByID(ctx context.Context, id int) (*entity.Resource, error) {
	r, err := a.client.FetchResource(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entity.Resource{
		ID:        strconv.Itoa(id),
		Author:    entity.AuthorRef{ID: int(r.Owner.ID), Name: r.Owner.Name},
		Name:      r.Title,
		Version:   r.Updates.Latest.Version,
		Rating:    rating(float64(r.Reviews.Stars), int(r.Reviews.Count)),
		Reviews:   int(r.Reviews.Count),
		Downloads: int64(r.Downloads),
		Icon:      fetchIcon(ctx, a.client, a.logger, r.ThumbnailURL),
	}, nil
}

func (a *polymartAdapter) TeamByID(ctx context.Context, id int) (*entity.Team, error) {
	t, err := a.client.FetchTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	members := make([]entity.TeamMember, 0, len(t.Members))
	for _, m := range t.Members {
		members = append(members, entity.TeamMember{ID: int(m.ID), Name: m.Username, Role: m.Role})
	}
	return &entity.Team{
		ID:            int(t.ID),
		Name:          t.Name,
		Icon:          fetchIcon(ctx, a.client, a.logger, t.ProfilePictureURL),
		Members:       members,
		ResourceCount: int(t.Statistics.ResourceCount),
		Downloads:     int64(t.Statistics.ResourceDownloads),
		Rating:        rating(float64(t.Statistics.ResourceAverageRating), int(t.Statistics.ResourceRatings)),
	}, nil
}

// rating reports NoRating for entities nobody has reviewed yet.
func rating(avg float64, count int) float64 {
	if count == 0 {
		return entity.NoRating
	}
	return avg
}
