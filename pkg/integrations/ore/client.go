// Package ore is a client for the Sponge Ore v2 API.
//
// Ore requires a session for every call. Sessions are obtained from
// /authenticate, optionally with an API key, and reused until they expire.
package ore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/integrations"
)

const (
	pageSize = 25
	maxPages = 40
)

// Project is an Ore project (plugin).
type Project struct {
	PluginID  string `json:"plugin_id"`
	Name      string `json:"name"`
	Namespace struct {
		Owner string `json:"owner"`
		Slug  string `json:"slug"`
	} `json:"namespace"`
	PromotedVersions []struct {
		Version string `json:"version"`
	} `json:"promoted_versions"`
	Stats struct {
		Views     integrations.FlexInt `json:"views"`
		Downloads integrations.FlexInt `json:"downloads"`
		Stars     integrations.FlexInt `json:"stars"`
		Watchers  integrations.FlexInt `json:"watchers"`
	} `json:"stats"`
	IconURL string `json:"icon_url"`
}

// User is an Ore user.
type User struct {
	Name         string               `json:"name"`
	Tagline      string               `json:"tagline"`
	ProjectCount integrations.FlexInt `json:"project_count"`
	AvatarURL    string               `json:"avatar_url"`
}

type projectsPage struct {
	Pagination struct {
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
		Count  int `json:"count"`
	} `json:"pagination"`
	Result []Project `json:"result"`
}

type session struct {
	Session string    `json:"session"`
	Expires time.Time `json:"expires"`
}

// Client provides access to the Ore API.
// All methods are safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
	apiKey  string

	mu      sync.Mutex
	session session
	now     func() time.Time
}

// NewClient creates an Ore client. apiKey may be empty, in which case a
// public session is requested.
func NewClient(apiKey string, opts ...integrations.Option) *Client {
	info := backend.Describe(backend.Ore)
	client := integrations.NewClient(info.Name, info.Headers, opts...)
	return &Client{
		Client:  client,
		baseURL: client.BaseURL(info.BaseURL),
		apiKey:  apiKey,
		now:     time.Now,
	}
}

// FetchProject retrieves a project by plugin ID.
func (c *Client) FetchProject(ctx context.Context, pluginID string) (*Project, error) {
	var p Project
	if err := c.get(ctx, "/projects/"+integrations.URLEncode(pluginID), &p); err != nil {
		return nil, fmt.Errorf("ore project %s: %w", pluginID, err)
	}
	return &p, nil
}

// FetchUser retrieves a user by name.
func (c *Client) FetchUser(ctx context.Context, name string) (*User, error) {
	var u User
	if err := c.get(ctx, "/users/"+integrations.URLEncode(name), &u); err != nil {
		return nil, fmt.Errorf("ore user %s: %w", name, err)
	}
	return &u, nil
}

// FetchProjectsByOwner lists every project owned by the user.
func (c *Client) FetchProjectsByOwner(ctx context.Context, owner string) ([]Project, error) {
	var all []Project
	for page := 0; page < maxPages; page++ {
		q := url.Values{
			"owner":  {owner},
			"limit":  {strconv.Itoa(pageSize)},
			"offset": {strconv.Itoa(page * pageSize)},
		}
		var p projectsPage
		if err := c.get(ctx, "/projects?"+q.Encode(), &p); err != nil {
			return nil, fmt.Errorf("ore projects of %s: %w", owner, err)
		}
		all = append(all, p.Result...)
		if len(p.Result) < pageSize || len(all) >= p.Pagination.Count {
			break
		}
	}
	return all, nil
}

// get performs an authenticated GET, refreshing the session once if the
// server rejects it.
func (c *Client) get(ctx context.Context, path string, v any) error {
	for attempt := 0; attempt < 2; attempt++ {
		token, err := c.token(ctx, attempt > 0)
		if err != nil {
			return err
		}
		headers := map[string]string{"Authorization": fmt.Sprintf("OreApi session=%q", token)}
		err = c.GetWithHeaders(ctx, c.baseURL+path, headers, v)
		if err == nil || errors.Is(err, integrations.ErrNotFound) {
			return err
		}
		if attempt == 0 && integrations.StatusCode(err) == http.StatusUnauthorized {
			continue
		}
		return err
	}
	return integrations.ErrUnavailable
}

func (c *Client) token(ctx context.Context, force bool) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !force && c.session.Session != "" && c.now().Before(c.session.Expires.Add(-30*time.Second)) {
		return c.session.Session, nil
	}

	headers := map[string]string{}
	if c.apiKey != "" {
		headers["Authorization"] = fmt.Sprintf("OreApi apikey=%q", c.apiKey)
	}

	var s session
	if err := c.Do(ctx, http.MethodPost, c.baseURL+"/authenticate", headers, nil, &s); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			err = fmt.Errorf("%w: authenticate endpoint missing", integrations.ErrUnavailable)
		}
		return "", fmt.Errorf("ore authenticate: %w", err)
	}
	if s.Session == "" {
		return "", fmt.Errorf("ore authenticate: %w: empty session", integrations.ErrUnavailable)
	}
	c.session = s
	return s.Session, nil
}
