package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/mcbanners/banners/pkg/cache"
	"github.com/mcbanners/banners/pkg/entity"
	"github.com/mcbanners/banners/pkg/errors"
	"github.com/mcbanners/banners/pkg/integrations"
)

// ServerService pings Minecraft servers.
type ServerService struct {
	*base
	pinger ServerPinger
}

// Get pings host:port. Results are cached briefly since player counts move.
func (s *ServerService) Get(ctx context.Context, host string, port int) (*entity.MinecraftServer, error) {
	if s.pinger == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "server pinging is not configured")
	}
	addr := fmt.Sprintf("%s:%d", host, port)
	key := s.keyer.EntityKey("server", "mcapi", strings.ToLower(host), itoa(port))
	return cache.Cached(ctx, s.cache, key, s.serverTTL,
		func(ctx context.Context) (*entity.MinecraftServer, error) {
			srv, err := s.pinger.Ping(ctx, host, port)
			if err == nil {
				return srv, nil
			}
			if ctx.Err() == nil && stderrors.Is(err, integrations.ErrNotFound) {
				s.logger.Debug("server not found", "addr", addr, "error", err)
				return nil, errors.Wrap(errors.ErrCodeNotFound, err, "server %s not found", addr)
			}
			s.logger.Warn("server ping unavailable", "addr", addr, "error", err)
			return nil, errors.Wrap(errors.ErrCodeUpstreamUnavailable, err, "server %s unavailable", addr)
		})
}
