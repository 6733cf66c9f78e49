// Package service turns raw upstream payloads into normalized entities.
//
// There is one service per entity category. Each service checks the backend
// support matrix, dispatches to the backend's adapter through a capability
// interface, and applies cache-aside: results are cached per
// (operation, identifier, backend) and only successful lookups are stored,
// so an outage heals on the next request.
//
// Failures are reported with three codes. UNSUPPORTED means the backend
// cannot resolve the category and no call was made. NOT_FOUND means the
// upstream reported the entity missing. UPSTREAM_UNAVAILABLE covers transport
// failures and bad payloads. Callers see the last two as one outcome; the
// distinction shows only in logs.
package service

import (
	"context"
	stderrors "errors"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/cache"
	"github.com/mcbanners/banners/pkg/errors"
	"github.com/mcbanners/banners/pkg/integrations"
)

// Config wires the services together.
type Config struct {
	Registry  *Registry
	Pinger    ServerPinger
	Cache     cache.Cache
	Keyer     cache.Keyer
	EntityTTL time.Duration
	ServerTTL time.Duration
	Logger    *log.Logger
}

// Services bundles the normalization services.
type Services struct {
	Authors   *AuthorService
	Resources *ResourceService
	Members   *MemberService
	Teams     *TeamService
	Servers   *ServerService
}

// New creates the services from cfg, filling in defaults for unset fields.
func New(cfg Config) *Services {
	b := newBase(cfg)
	return &Services{
		Authors:   &AuthorService{base: b},
		Resources: &ResourceService{base: b},
		Members:   &MemberService{base: b},
		Teams:     &TeamService{base: b},
		Servers:   &ServerService{base: b, pinger: cfg.Pinger},
	}
}

type base struct {
	registry  *Registry
	cache     cache.Cache
	keyer     cache.Keyer
	entityTTL time.Duration
	serverTTL time.Duration
	logger    *log.Logger
}

func newBase(cfg Config) *base {
	b := &base{
		registry:  cfg.Registry,
		cache:     cfg.Cache,
		keyer:     cfg.Keyer,
		entityTTL: cfg.EntityTTL,
		serverTTL: cfg.ServerTTL,
		logger:    cfg.Logger,
	}
	if b.registry == nil {
		b.registry = NewRegistry()
	}
	if b.cache == nil {
		b.cache = cache.NewNullCache()
	}
	if b.keyer == nil {
		b.keyer = cache.DefaultKeyer{}
	}
	if b.entityTTL <= 0 {
		b.entityTTL = cache.TTLEntity
	}
	if b.serverTTL <= 0 {
		b.serverTTL = cache.TTLServer
	}
	if b.logger == nil {
		b.logger = log.Default()
	}
	return b
}

func (b *base) key(op string, bk backend.Backend, ids ...string) string {
	return b.keyer.EntityKey(op, bk.String(), ids...)
}

// unsupported reports a (backend, category, lookup) combination the support
// matrix rules out.
func unsupported(bk backend.Backend, c backend.Category, l backend.Lookup) error {
	return errors.New(errors.ErrCodeUnsupported, "%s does not support %s lookup %s", bk.DisplayName(), c, l)
}

// classify converts an upstream failure into a coded error and logs it.
func (b *base) classify(ctx context.Context, err error, what string, bk backend.Backend) error {
	if err == nil {
		return nil
	}
	var coded *errors.Error
	if stderrors.As(err, &coded) {
		return err
	}
	if ctx.Err() != nil || !stderrors.Is(err, integrations.ErrNotFound) {
		b.logger.Warn("upstream unavailable", "entity", what, "backend", bk, "error", err)
		return errors.Wrap(errors.ErrCodeUpstreamUnavailable, err, "%s unavailable on %s", what, bk.DisplayName())
	}
	b.logger.Debug("entity not found", "entity", what, "backend", bk, "error", err)
	return errors.Wrap(errors.ErrCodeNotFound, err, "%s not found on %s", what, bk.DisplayName())
}

func itoa(n int) string { return strconv.Itoa(n) }
