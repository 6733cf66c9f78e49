// Package builtbybit is a client for the BuiltByBit v1 API.
package builtbybit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/integrations"
)

const (
	pageSize = 20
	maxPages = 50
)

// Resource is a marketplace resource.
type Resource struct {
	ResourceID    int                    `json:"resource_id"`
	AuthorID      int                    `json:"author_id"`
	Title         string                 `json:"title"`
	TagLine       string                 `json:"tag_line"`
	Price         integrations.FlexFloat `json:"price"`
	Currency      string                 `json:"currency"`
	DownloadCount integrations.FlexInt   `json:"download_count"`
	PurchaseCount integrations.FlexInt   `json:"purchase_count"`
	ReviewCount   integrations.FlexInt   `json:"review_count"`
	ReviewAverage integrations.FlexFloat `json:"review_average"`
}

// Version is a published resource version.
type Version struct {
	VersionID int    `json:"version_id"`
	Name      string `json:"name"`
}

// Member is a forum member.
type Member struct {
	MemberID      int                  `json:"member_id"`
	Username      string               `json:"username"`
	AvatarURL     string               `json:"avatar_url"`
	ResourceCount integrations.FlexInt `json:"resource_count"`
	PostCount     integrations.FlexInt `json:"post_count"`
	Premium       bool                 `json:"premium"`
	Supreme       bool                 `json:"supreme"`
	Ultimate      bool                 `json:"ultimate"`
	Banned        bool                 `json:"banned"`
}

// Rank returns the member's highest purchased rank.
func (m *Member) Rank() string {
	switch {
	case m.Banned:
		return "Banned"
	case m.Ultimate:
		return "Ultimate"
	case m.Supreme:
		return "Supreme"
	case m.Premium:
		return "Premium"
	default:
		return "Member"
	}
}

type envelope struct {
	Result string          `json:"result"`
	Data   json.RawMessage `json:"data"`
	Error  *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client provides access to the BuiltByBit API.
// All methods are safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a BuiltByBit client authenticated with a private token.
func NewClient(token string, opts ...integrations.Option) *Client {
	info := backend.Describe(backend.BuiltByBit)
	headers := info.Headers
	if token != "" {
		headers[info.AuthHeader] = "Private " + token
	}
	client := integrations.NewClient(info.Name, headers, opts...)
	return &Client{
		Client:  client,
		baseURL: client.BaseURL(info.BaseURL),
	}
}

// FetchResource retrieves a resource by ID.
func (c *Client) FetchResource(ctx context.Context, id int) (*Resource, error) {
	var r Resource
	if err := c.get(ctx, fmt.Sprintf("/resources/%d", id), &r); err != nil {
		return nil, fmt.Errorf("builtbybit resource %d: %w", id, err)
	}
	return &r, nil
}

// FetchLatestVersion retrieves the newest version of a resource.
func (c *Client) FetchLatestVersion(ctx context.Context, id int) (*Version, error) {
	var v Version
	if err := c.get(ctx, fmt.Sprintf("/resources/%d/versions/latest", id), &v); err != nil {
		return nil, fmt.Errorf("builtbybit version of %d: %w", id, err)
	}
	return &v, nil
}

// FetchMember retrieves a member by ID.
func (c *Client) FetchMember(ctx context.Context, id int) (*Member, error) {
	var m Member
	if err := c.get(ctx, fmt.Sprintf("/members/%d", id), &m); err != nil {
		return nil, fmt.Errorf("builtbybit member %d: %w", id, err)
	}
	return &m, nil
}

// FetchResourcesByAuthor lists every resource published by the author.
func (c *Client) FetchResourcesByAuthor(ctx context.Context, authorID int) ([]Resource, error) {
	var all []Resource
	for page := 1; page <= maxPages; page++ {
		q := url.Values{"page": {strconv.Itoa(page)}, "count": {strconv.Itoa(pageSize)}}
		var batch []Resource
		if err := c.get(ctx, fmt.Sprintf("/resources/authors/%d?%s", authorID, q.Encode()), &batch); err != nil {
			return nil, fmt.Errorf("builtbybit resources of author %d: %w", authorID, err)
		}
		all = append(all, batch...)
		if len(batch) < pageSize {
			break
		}
	}
	return all, nil
}

// get unwraps the {result, data, error} envelope. Error results whose code
// names a missing entity map to ErrNotFound.
func (c *Client) get(ctx context.Context, path string, v any) error {
	var env envelope
	if err := c.Get(ctx, c.baseURL+path, &env); err != nil {
		return err
	}
	if env.Result != "success" {
		msg := env.Result
		if env.Error != nil {
			msg = env.Error.Code + ": " + env.Error.Message
			if env.Error.Code == "NotFoundError" || env.Error.Code == "ResourceNotFoundError" || env.Error.Code == "MemberNotFoundError" {
				return fmt.Errorf("%w: %s", integrations.ErrNotFound, msg)
			}
		}
		return fmt.Errorf("%w: %s", integrations.ErrUnavailable, msg)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("%w: %v", integrations.ErrUnavailable, err)
	}
	return nil
}
