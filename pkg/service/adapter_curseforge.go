package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/mcbanners/banners/pkg/entity"
	"github.com/mcbanners/banners/pkg/integrations"
	"github.com/mcbanners/banners/pkg/integrations/curseforge"
)

type curseForgeAdapter struct {
	client *curseforge.Client
	logger *log.Logger
}

// NewCurseForgeAdapter exposes a CurseForge client through the capability interfaces.
func NewCurseForgeAdapter(c *curseforge.Client, logger *log.Logger) any {
	return &curseForgeAdapter{client: c, logger: logger}
}

// AuthorByID aggregates the author's mods. CurseForge has no public author
// profile endpoint, so the name comes from the mods' author lists and the
// icon from the most downloaded mod.
func (a *curseForgeAdapter) AuthorByID(ctx context.Context, id int) (*entity.Author, error) {
	mods, err := a.client.FetchModsByAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	return a.aggregate(ctx, mods, id, "")
}

func (a *curseForgeAdapter) AuthorByName(ctx context.Context, name string) (*entity.Author, error) {
	mods, err := a.client.SearchModsByAuthorName(ctx, name)
	if err != nil {
		return nil, err
	}
	return a.aggregate(ctx, mods, 0, name)
}

func (a *curseForgeAdapter) aggregate(ctx context.Context, mods []curseforge.Mod, id int, name string) (*entity.Author, error) {
	if len(mods) == 0 {
		label := name
		if label == "" {
			label = strconv.Itoa(id)
		}
		return nil, fmt.Errorf("curseforge author %s: %w", label, integrations.ErrNotFound)
	}

	var downloads int64
	top := &mods[0]
	for i := range mods {
		m := &mods[i]
		downloads += int64(m.DownloadCount)
		if m.DownloadCount > top.DownloadCount {
			top = m
		}
		if name == "" {
			for _, au := range m.Authors {
				if au.ID == id {
					name = au.Name
				}
			}
		}
	}

	return &entity.Author{
		Name:          name,
		ResourceCount: len(mods),
		Icon:          fetchIcon(ctx, a.client, a.logger, top.LogoURL()),
		Downloads:     downloads,
		Rating:        entity.NoRating,
	}, nil
}

func (a *curseForgeAdapter) ResourceByID(ctx context.Context, id int) (*entity.Resource, error) {
	m, err := a.client.FetchMod(ctx, id)
	if err != nil {
		return nil, err
	}
	res := &entity.Resource{
		ID:        strconv.Itoa(m.ID),
		Name:      m.Name,
		Version:   m.Version(),
		Rating:    entity.NoRating,
		Reviews:   int(m.ThumbsUpCount),
		Downloads: int64(m.DownloadCount),
		Icon:      fetchIcon(ctx, a.client, a.logger, m.LogoURL()),
	}
	if m.Rating != nil {
		res.Rating = *m.Rating
	}
	if len(m.Authors) > 0 {
		res.Author = entity.AuthorRef{ID: m.Authors[0].ID, Name: m.Authors[0].Name}
	}
	return res, nil
}
