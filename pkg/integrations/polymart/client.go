// Package polymart is a client for the Polymart v1 API.
package polymart

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/integrations"
)

// Owner types reported on resources.
const (
	OwnerUser = "user"
	OwnerTeam = "team"
)

// Resource is returned by getResourceInfo.
type Resource struct {
	ID       integrations.FlexInt `json:"id"`
	Title    string               `json:"title"`
	Subtitle string               `json:"subtitle"`
	Owner    struct {
		ID   integrations.FlexInt `json:"id"`
		Name string               `json:"name"`
		Type string               `json:"type"`
	} `json:"owner"`
	Price        integrations.FlexFloat `json:"price"`
	Currency     string                 `json:"currency"`
	Downloads    integrations.FlexInt   `json:"downloads"`
	ThumbnailURL string                 `json:"thumbnailURL"`
	Reviews      struct {
		Count integrations.FlexInt   `json:"count"`
		Stars integrations.FlexFloat `json:"stars"`
	} `json:"reviews"`
	Updates struct {
		Latest struct {
			Version string `json:"version"`
		} `json:"latest"`
	} `json:"updates"`
}

// Statistics are the aggregate counters on users and teams.
type Statistics struct {
	ResourceCount         integrations.FlexInt   `json:"resourceCount"`
	ResourceDownloads     integrations.FlexInt   `json:"resourceDownloads"`
	ResourceRatings       integrations.FlexInt   `json:"resourceRatings"`
	ResourceAverageRating integrations.FlexFloat `json:"resourceAverageRating"`
}

// User is returned by getAccountInfo.
type User struct {
	ID                integrations.FlexInt `json:"id"`
	Username          string               `json:"username"`
	ProfilePictureURL string               `json:"profilePictureURL"`
	Statistics        Statistics           `json:"statistics"`
}

// TeamMember is a member listed on a team.
type TeamMember struct {
	ID       integrations.FlexInt `json:"id"`
	Username string               `json:"username"`
	Role     string               `json:"role"`
}

// Team is returned by getTeamInfo.
type Team struct {
	ID                integrations.FlexInt `json:"id"`
	Name              string               `json:"name"`
	ProfilePictureURL string               `json:"profilePictureURL"`
	Members           []TeamMember         `json:"members"`
	Statistics        Statistics           `json:"statistics"`
}

type envelope struct {
	Response struct {
		Success  bool            `json:"success"`
		Errors   json.RawMessage `json:"errors"`
		Resource json.RawMessage `json:"resource"`
		User     json.RawMessage `json:"user"`
		Team     json.RawMessage `json:"team"`
	} `json:"response"`
}

// Client provides access to the Polymart API.
// All methods are safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a Polymart client.
func NewClient(opts ...integrations.Option) *Client {
	info := backend.Describe(backend.Polymart)
	client := integrations.NewClient(info.Name, info.Headers, opts...)
	return &Client{
		Client:  client,
		baseURL: client.BaseURL(info.BaseURL),
	}
}

// FetchResource retrieves a resource by ID.
func (c *Client) FetchResource(ctx context.Context, id int) (*Resource, error) {
	env, err := c.call(ctx, "getResourceInfo", "resource_id", id)
	if err != nil {
		return nil, fmt.Errorf("polymart resource %d: %w", id, err)
	}
	var r Resource
	if err := decode(env.Response.Resource, &r); err != nil {
		return nil, fmt.Errorf("polymart resource %d: %w", id, err)
	}
	return &r, nil
}

// FetchUser retrieves a user account by ID.
func (c *Client) FetchUser(ctx context.Context, id int) (*User, error) {
	env, err := c.call(ctx, "getAccountInfo", "user_id", id)
	if err != nil {
		return nil, fmt.Errorf("polymart user %d: %w", id, err)
	}
	var u User
	if err := decode(env.Response.User, &u); err != nil {
		return nil, fmt.Errorf("polymart user %d: %w", id, err)
	}
	return &u, nil
}

// FetchTeam retrieves a team by ID.
func (c *Client) FetchTeam(ctx context.Context, id int) (*Team, error) {
	env, err := c.call(ctx, "getTeamInfo", "team_id", id)
	if err != nil {
		return nil, fmt.Errorf("polymart team %d: %w", id, err)
	}
	var t Team
	if err := decode(env.Response.Team, &t); err != nil {
		return nil, fmt.Errorf("polymart team %d: %w", id, err)
	}
	return &t, nil
}

// call invokes an endpoint. Polymart answers unknown IDs with
// success=false, which maps to ErrNotFound.
func (c *Client) call(ctx context.Context, endpoint, param string, id int) (*envelope, error) {
	q := url.Values{param: {strconv.Itoa(id)}}
	var env envelope
	if err := c.Get(ctx, c.baseURL+"/"+endpoint+"?"+q.Encode(), &env); err != nil {
		return nil, err
	}
	if !env.Response.Success {
		return nil, fmt.Errorf("%w: %s", integrations.ErrNotFound, string(env.Response.Errors))
	}
	return &env, nil
}

func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return integrations.ErrNotFound
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", integrations.ErrUnavailable, err)
	}
	return nil
}
