// Package curseforge is a client for the CurseForge Core API.
package curseforge

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/integrations"
)

// MinecraftGameID is CurseForge's identifier for Minecraft.
const MinecraftGameID = 432

const (
	pageSize = 50
	maxPages = 20
)

// Mod is a CurseForge project.
type Mod struct {
	ID            int                  `json:"id"`
	Name          string               `json:"name"`
	Slug          string               `json:"slug"`
	Summary       string               `json:"summary"`
	DownloadCount integrations.FlexInt `json:"downloadCount"`
	ThumbsUpCount integrations.FlexInt `json:"thumbsUpCount"`
	Rating        *float64             `json:"rating"`
	Authors       []ModAuthor          `json:"authors"`
	Logo          *struct {
		ThumbnailURL string `json:"thumbnailUrl"`
		URL          string `json:"url"`
	} `json:"logo"`
	LatestFiles []struct {
		DisplayName string `json:"displayName"`
		FileName    string `json:"fileName"`
	} `json:"latestFiles"`
}

// ModAuthor is an author listed on a mod.
type ModAuthor struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// LogoURL returns the mod's thumbnail, falling back to the full logo.
func (m *Mod) LogoURL() string {
	if m.Logo == nil {
		return ""
	}
	if m.Logo.ThumbnailURL != "" {
		return m.Logo.ThumbnailURL
	}
	return m.Logo.URL
}

// Version returns the display name of the newest file, if any.
func (m *Mod) Version() string {
	if len(m.LatestFiles) == 0 {
		return ""
	}
	return m.LatestFiles[len(m.LatestFiles)-1].DisplayName
}

// HasAuthor reports whether the mod lists an author with the given name
// (case-insensitive) or id.
func (m *Mod) HasAuthor(id int, name string) bool {
	for _, a := range m.Authors {
		if (id != 0 && a.ID == id) || (name != "" && strings.EqualFold(a.Name, name)) {
			return true
		}
	}
	return false
}

type modResponse struct {
	Data Mod `json:"data"`
}

type searchResponse struct {
	Data       []Mod `json:"data"`
	Pagination struct {
		Index       int `json:"index"`
		PageSize    int `json:"pageSize"`
		ResultCount int `json:"resultCount"`
		TotalCount  int `json:"totalCount"`
	} `json:"pagination"`
}

// Client provides access to the CurseForge API.
// All methods are safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a CurseForge client. The API rejects requests without
// a key, so apiKey should be set in production.
func NewClient(apiKey string, opts ...integrations.Option) *Client {
	info := backend.Describe(backend.CurseForge)
	headers := info.Headers
	if apiKey != "" {
		headers[info.AuthHeader] = apiKey
	}
	client := integrations.NewClient(info.Name, headers, opts...)
	return &Client{
		Client:  client,
		baseURL: client.BaseURL(info.BaseURL),
	}
}

// FetchMod retrieves a mod by its numeric ID.
func (c *Client) FetchMod(ctx context.Context, id int) (*Mod, error) {
	var resp modResponse
	if err := c.Get(ctx, fmt.Sprintf("%s/mods/%d", c.baseURL, id), &resp); err != nil {
		return nil, fmt.Errorf("curseforge mod %d: %w", id, err)
	}
	if resp.Data.ID == 0 {
		return nil, fmt.Errorf("curseforge mod %d: %w", id, integrations.ErrNotFound)
	}
	return &resp.Data, nil
}

// FetchModsByAuthor lists Minecraft mods by author ID.
func (c *Client) FetchModsByAuthor(ctx context.Context, authorID int) ([]Mod, error) {
	mods, err := c.search(ctx, url.Values{"authorId": {strconv.Itoa(authorID)}})
	if err != nil {
		return nil, fmt.Errorf("curseforge mods of author %d: %w", authorID, err)
	}
	return mods, nil
}

// SearchModsByAuthorName searches Minecraft mods matching name and keeps
// those that list an author with exactly that name.
func (c *Client) SearchModsByAuthorName(ctx context.Context, name string) ([]Mod, error) {
	found, err := c.search(ctx, url.Values{"searchFilter": {name}})
	if err != nil {
		return nil, fmt.Errorf("curseforge mods of author %s: %w", name, err)
	}
	var mods []Mod
	for _, m := range found {
		if m.HasAuthor(0, name) {
			mods = append(mods, m)
		}
	}
	return mods, nil
}

func (c *Client) search(ctx context.Context, q url.Values) ([]Mod, error) {
	q.Set("gameId", strconv.Itoa(MinecraftGameID))
	q.Set("pageSize", strconv.Itoa(pageSize))

	var all []Mod
	for page := 0; page < maxPages; page++ {
		q.Set("index", strconv.Itoa(page*pageSize))
		var resp searchResponse
		if err := c.Get(ctx, c.baseURL+"/mods/search?"+q.Encode(), &resp); err != nil {
			return nil, err
		}
		all = append(all, resp.Data...)
		if len(resp.Data) < pageSize || len(all) >= resp.Pagination.TotalCount {
			break
		}
	}
	return all, nil
}
