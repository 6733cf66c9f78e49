// Package banner turns a banner request into the entity it depicts.
//
// A request is a [backend.BannerType] plus a flat settings map. Settings keys
// starting with an underscore identify the entity (see [backend.KeyAuthorID]
// and friends); every other key is a style directive for the layout engine.
// [Resolver.Resolve] validates the identifier keys, dispatches to the
// normalization service for the type's category, and hands back the entity
// together with a copy of the settings that holds only style keys.
package banner

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/entity"
	"github.com/mcbanners/banners/pkg/errors"
	"github.com/mcbanners/banners/pkg/service"
)

// DefaultServerPort is used when _server_port is missing or invalid.
const DefaultServerPort = 25565

// Authors is the author lookup surface the resolver needs.
type Authors interface {
	ByID(ctx context.Context, id int, b backend.Backend) (*entity.Author, error)
	ByName(ctx context.Context, name string, b backend.Backend) (*entity.Author, error)
	ForResource(ctx context.Context, res *entity.Resource, b backend.Backend) (*entity.Author, error)
	ForPolymartResource(ctx context.Context, authorID, resourceID int) (*entity.Author, error)
}

// Resources is the resource lookup surface the resolver needs.
type Resources interface {
	ByID(ctx context.Context, id int, b backend.Backend) (*entity.Resource, error)
	ByName(ctx context.Context, name string, b backend.Backend) (*entity.Resource, error)
}

// Members resolves community members.
type Members interface {
	ByID(ctx context.Context, id int, b backend.Backend) (*entity.Member, error)
}

// Teams resolves teams.
type Teams interface {
	ByID(ctx context.Context, id int, b backend.Backend) (*entity.Team, error)
}

// Servers pings game servers.
type Servers interface {
	Get(ctx context.Context, host string, port int) (*entity.MinecraftServer, error)
}

// Resolved is the outcome of resolving one banner request. Exactly one of
// the entity fields is set, except for resource banners which also carry
// the resource's author.
type Resolved struct {
	Type     backend.BannerType
	Category backend.Category
	Backend  backend.Backend // zero for server banners

	Author   *entity.Author
	Resource *entity.Resource
	Member   *entity.Member
	Team     *entity.Team
	Server   *entity.MinecraftServer

	// Settings holds the style directives left after identifier keys are
	// removed. It never aliases the caller's map.
	Settings map[string]string
}

// Entity returns the primary entity the banner depicts.
func (r *Resolved) Entity() any {
	switch r.Category {
	case backend.CategoryAuthor:
		return r.Author
	case backend.CategoryResource:
		return r.Resource
	case backend.CategoryMember:
		return r.Member
	case backend.CategoryTeam:
		return r.Team
	case backend.CategoryServer:
		return r.Server
	default:
		return nil
	}
}

// Resolver maps banner requests to entities. It keeps no state between
// requests and is safe for concurrent use.
type Resolver struct {
	authors   Authors
	resources Resources
	members   Members
	teams     Teams
	servers   Servers
	logger    *log.Logger
}

// NewResolver creates a resolver backed by svc.
func NewResolver(svc *service.Services, logger *log.Logger) *Resolver {
	return &Resolver{
		authors:   svc.Authors,
		resources: svc.Resources,
		members:   svc.Members,
		teams:     svc.Teams,
		servers:   svc.Servers,
		logger:    orDefault(logger),
	}
}

// Lookups groups the services a [Resolver] dispatches to.
type Lookups struct {
	Authors   Authors
	Resources Resources
	Members   Members
	Teams     Teams
	Servers   Servers
}

// NewResolverWith creates a resolver from explicit lookups.
func NewResolverWith(l Lookups, logger *log.Logger) *Resolver {
	return &Resolver{
		authors:   l.Authors,
		resources: l.Resources,
		members:   l.Members,
		teams:     l.Teams,
		servers:   l.Servers,
		logger:    orDefault(logger),
	}
}

func orDefault(l *log.Logger) *log.Logger {
	if l == nil {
		return log.Default()
	}
	return l
}

// Resolve validates settings for t and fetches the entity it depicts.
func (r *Resolver) Resolve(ctx context.Context, t backend.BannerType, settings map[string]string) (*Resolved, error) {
	if !t.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidType, "unknown banner type %q", string(t))
	}
	if t.Category() == backend.CategoryDiscordUser {
		return nil, errors.New(errors.ErrCodeNotImplemented, "%s banners are not implemented", t)
	}
	for _, key := range t.RequiredKeys() {
		if strings.TrimSpace(settings[key]) == "" {
			return nil, errors.New(errors.ErrCodeInvalidSettings, "%s requires setting %q", t, key)
		}
	}

	b, _ := t.Backend()
	out := &Resolved{Type: t, Category: t.Category(), Backend: b}

	var err error
	switch out.Category {
	case backend.CategoryAuthor:
		out.Author, err = r.author(ctx, b, settings[backend.KeyAuthorID])
	case backend.CategoryResource:
		out.Resource, out.Author, err = r.resource(ctx, b, settings[backend.KeyResourceID])
	case backend.CategoryMember:
		var id int
		if id, err = numericID(backend.KeyMemberID, settings[backend.KeyMemberID]); err == nil {
			out.Member, err = r.members.ByID(ctx, id, b)
		}
	case backend.CategoryTeam:
		var id int
		if id, err = numericID(backend.KeyTeamID, settings[backend.KeyTeamID]); err == nil {
			out.Team, err = r.teams.ByID(ctx, id, b)
		}
	case backend.CategoryServer:
		host := strings.TrimSpace(settings[backend.KeyServerHost])
		out.Server, err = r.servers.Get(ctx, host, ParsePort(settings[backend.KeyServerPort]))
	default:
		err = errors.New(errors.ErrCodeInvalidType, "banner type %s has no category", t)
	}
	if err != nil {
		r.logger.Debug("resolve failed", "type", t, "code", errors.GetCode(err), "error", err)
		return nil, err
	}

	out.Settings = StyleSettings(settings)
	return out, nil
}

func (r *Resolver) author(ctx context.Context, b backend.Backend, raw string) (*entity.Author, error) {
	raw = strings.TrimSpace(raw)
	if id, err := strconv.Atoi(raw); err == nil && backend.Supports(b, backend.CategoryAuthor, backend.ByID) {
		return r.authors.ByID(ctx, id, b)
	}
	if backend.Supports(b, backend.CategoryAuthor, backend.ByName) {
		return r.authors.ByName(ctx, raw, b)
	}
	return nil, errors.New(errors.ErrCodeInvalidSettings, "setting %q must be numeric for %s", backend.KeyAuthorID, b.DisplayName())
}

// resource resolves the resource and then its author. Polymart owners can be
// users or teams, so Polymart chains through the (author, resource) pair.
func (r *Resolver) resource(ctx context.Context, b backend.Backend, raw string) (*entity.Resource, *entity.Author, error) {
	raw = strings.TrimSpace(raw)

	var (
		res *entity.Resource
		err error
	)
	id, convErr := strconv.Atoi(raw)
	switch {
	case convErr == nil && backend.Supports(b, backend.CategoryResource, backend.ByID):
		res, err = r.resources.ByID(ctx, id, b)
	case backend.Supports(b, backend.CategoryResource, backend.ByName):
		res, err = r.resources.ByName(ctx, raw, b)
	default:
		return nil, nil, errors.New(errors.ErrCodeInvalidSettings, "setting %q must be numeric for %s", backend.KeyResourceID, b.DisplayName())
	}
	if err != nil {
		return nil, nil, err
	}

	var author *entity.Author
	if b == backend.Polymart {
		author, err = r.authors.ForPolymartResource(ctx, res.Author.ID, id)
	} else {
		author, err = r.authors.ForResource(ctx, res, b)
	}
	if err != nil {
		return nil, nil, err
	}
	return res, author, nil
}

func numericID(key, raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidSettings, "setting %q must be a positive number, got %q", key, raw)
	}
	return id, nil
}

// ParsePort parses a server port, falling back to [DefaultServerPort] for
// empty, malformed or out-of-range values.
func ParsePort(raw string) int {
	port, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || port <= 0 || port > 65535 {
		return DefaultServerPort
	}
	return port
}

// StyleSettings returns a new map holding only the style keys of settings.
func StyleSettings(settings map[string]string) map[string]string {
	out := make(map[string]string, len(settings))
	for k, v := range settings {
		if backend.IsIdentifierKey(k) {
			continue
		}
		out[k] = v
	}
	return out
}
