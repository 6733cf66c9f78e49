// Package spigot is a client for the SpigotMC simple API.
package spigot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/integrations"
)

// pageSize is the number of resources the API returns per page.
const pageSize = 10

// maxPages bounds the resource listing walk for prolific authors.
const maxPages = 100

// Resource is a resource as returned by the getResource action.
type Resource struct {
	ID             integrations.FlexInt `json:"id"`
	Title          string               `json:"title"`
	Tag            string               `json:"tag"`
	CurrentVersion string               `json:"current_version"`
	IconLink       string               `json:"icon_link"`
	Author         struct {
		ID       integrations.FlexInt `json:"id"`
		Username string               `json:"username"`
	} `json:"author"`
	Premium struct {
		Price    integrations.FlexFloat `json:"price"`
		Currency string                 `json:"currency"`
	} `json:"premium"`
	Stats struct {
		Downloads integrations.FlexInt `json:"downloads"`
		Updates   integrations.FlexInt `json:"updates"`
		Reviews   struct {
			Unique integrations.FlexInt `json:"unique"`
			Total  integrations.FlexInt `json:"total"`
		} `json:"reviews"`
		Rating integrations.FlexFloat `json:"rating"`
	} `json:"stats"`
}

// Author is an author as returned by the getAuthor action.
type Author struct {
	ID            integrations.FlexInt `json:"id"`
	Username      string               `json:"username"`
	ResourceCount integrations.FlexInt `json:"resource_count"`
	Avatar        string               `json:"avatar"`
}

// Client provides access to the SpigotMC simple API.
// All methods are safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a SpigotMC client.
func NewClient(opts ...integrations.Option) *Client {
	info := backend.Describe(backend.Spigot)
	client := integrations.NewClient(info.Name, info.Headers, opts...)
	return &Client{
		Client:  client,
		baseURL: client.BaseURL(info.BaseURL),
	}
}

// FetchResource retrieves a resource by its numeric ID.
func (c *Client) FetchResource(ctx context.Context, id int) (*Resource, error) {
	var res Resource
	if err := c.action(ctx, "getResource", url.Values{"id": {strconv.Itoa(id)}}, &res); err != nil {
		return nil, fmt.Errorf("spigot resource %d: %w", id, err)
	}
	return &res, nil
}

// FetchAuthor retrieves an author by its numeric ID.
func (c *Client) FetchAuthor(ctx context.Context, id int) (*Author, error) {
	var author Author
	if err := c.action(ctx, "getAuthor", url.Values{"id": {strconv.Itoa(id)}}, &author); err != nil {
		return nil, fmt.Errorf("spigot author %d: %w", id, err)
	}
	return &author, nil
}

// FetchResourcesByAuthor walks every page of the author's resource listing.
func (c *Client) FetchResourcesByAuthor(ctx context.Context, authorID int) ([]Resource, error) {
	var all []Resource
	for page := 1; page <= maxPages; page++ {
		var batch []Resource
		q := url.Values{"id": {strconv.Itoa(authorID)}, "page": {strconv.Itoa(page)}}
		if err := c.action(ctx, "getResourcesByAuthor", q, &batch); err != nil {
			return nil, fmt.Errorf("spigot resources of author %d: %w", authorID, err)
		}
		all = append(all, batch...)
		if len(batch) < pageSize {
			break
		}
	}
	return all, nil
}

// IconURL strips the cache-busting query string from avatar links.
func IconURL(raw string) string {
	base, _, _ := strings.Cut(raw, "?")
	return base
}

// action calls the API and decodes the result. The API answers unknown IDs
// with 200 and an {"error": "..."} body, which maps to ErrNotFound.
func (c *Client) action(ctx context.Context, action string, q url.Values, v any) error {
	q.Set("action", action)

	var raw json.RawMessage
	if err := c.Get(ctx, c.baseURL+"?"+q.Encode(), &raw); err != nil {
		return err
	}

	var apiErr struct {
		Error string `json:"error"`
	}
	if len(raw) > 0 && raw[0] == '{' && json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
		return fmt.Errorf("%w: %s", integrations.ErrNotFound, apiErr.Error)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", integrations.ErrUnavailable, action, err)
	}
	return nil
}
