// Package modrinth is a client for the Modrinth v2 API.
package modrinth

import (
	"context"
	"fmt"
	"strings"

	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/integrations"
)

// Project is a Modrinth project. Versions holds version IDs, newest last.
type Project struct {
	ID        string               `json:"id"`
	Slug      string               `json:"slug"`
	Title     string               `json:"title"`
	Downloads integrations.FlexInt `json:"downloads"`
	Followers integrations.FlexInt `json:"followers"`
	IconURL   string               `json:"icon_url"`
	Team      string               `json:"team"`
	Versions  []string             `json:"versions"`
}

// Version is a published project version.
type Version struct {
	ID            string `json:"id"`
	VersionNumber string `json:"version_number"`
}

// User is a Modrinth account.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// TeamMember is one entry of a project team.
type TeamMember struct {
	TeamID string `json:"team_id"`
	User   User   `json:"user"`
	Role   string `json:"role"`
}

// Client provides access to the Modrinth API.
// All methods are safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a Modrinth client.
func NewClient(opts ...integrations.Option) *Client {
	info := backend.Describe(backend.Modrinth)
	client := integrations.NewClient(info.Name, info.Headers, opts...)
	return &Client{
		Client:  client,
		baseURL: client.BaseURL(info.BaseURL),
	}
}

// FetchProject retrieves a project by ID or slug.
func (c *Client) FetchProject(ctx context.Context, idOrSlug string) (*Project, error) {
	var p Project
	if err := c.Get(ctx, c.baseURL+"/project/"+integrations.URLEncode(idOrSlug), &p); err != nil {
		return nil, fmt.Errorf("modrinth project %s: %w", idOrSlug, err)
	}
	return &p, nil
}

// FetchLatestVersion returns the newest version of the project, or nil if
// it has none.
func (c *Client) FetchLatestVersion(ctx context.Context, p *Project) (*Version, error) {
	if len(p.Versions) == 0 {
		return nil, nil
	}
	id := p.Versions[len(p.Versions)-1]
	var v Version
	if err := c.Get(ctx, c.baseURL+"/version/"+integrations.URLEncode(id), &v); err != nil {
		return nil, fmt.Errorf("modrinth version %s: %w", id, err)
	}
	return &v, nil
}

// FetchTeamMembers lists the members of a team.
func (c *Client) FetchTeamMembers(ctx context.Context, teamID string) ([]TeamMember, error) {
	var members []TeamMember
	if err := c.Get(ctx, c.baseURL+"/team/"+integrations.URLEncode(teamID)+"/members", &members); err != nil {
		return nil, fmt.Errorf("modrinth team %s: %w", teamID, err)
	}
	return members, nil
}

// FetchUser retrieves a user by username or ID.
func (c *Client) FetchUser(ctx context.Context, name string) (*User, error) {
	var u User
	if err := c.Get(ctx, c.baseURL+"/user/"+integrations.URLEncode(name), &u); err != nil {
		return nil, fmt.Errorf("modrinth user %s: %w", name, err)
	}
	return &u, nil
}

// FetchUserProjects lists the projects a user belongs to.
func (c *Client) FetchUserProjects(ctx context.Context, name string) ([]Project, error) {
	var projects []Project
	if err := c.Get(ctx, c.baseURL+"/user/"+integrations.URLEncode(name)+"/projects", &projects); err != nil {
		return nil, fmt.Errorf("modrinth projects of %s: %w", name, err)
	}
	return projects, nil
}

// Owner returns the team member holding the owner role, falling back to the
// first member.
func Owner(members []TeamMember) (TeamMember, bool) {
	for _, m := range members {
		if strings.EqualFold(m.Role, "owner") {
			return m, true
		}
	}
	if len(members) > 0 {
		return members[0], true
	}
	return TeamMember{}, false
}
