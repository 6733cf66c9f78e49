package service

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mcbanners/banners/pkg/entity"
	"github.com/mcbanners/banners/pkg/integrations/mcapi"
)

type mcapiPinger struct {
	client *mcapi.Client
	logger *log.Logger
}

// NewServerPinger adapts the server-ping client.
func NewServerPinger(c *mcapi.Client, logger *log.Logger) ServerPinger {
	return &mcapiPinger{client: c, logger: logger}
}

func (p *mcapiPinger) Ping(ctx context.Context, host string, port int) (*entity.MinecraftServer, error) {
	s, err := p.client.FetchServer(ctx, host, port)
	if err != nil {
		return nil, err
	}
	motd := s.MOTD.Clean
	if motd == "" {
		motd = s.MOTD.Raw
	}
	return &entity.MinecraftServer{
		Host:          s.Host,
		Port:          s.Port,
		Online:        s.IsOnline(),
		PlayersOnline: int(s.Players.Online),
		PlayersMax:    int(s.Players.Max),
		MOTD:          strings.TrimSpace(motd),
		Version:       s.Version,
		Icon:          fetchIcon(ctx, p.client, p.logger, s.Icon),
	}, nil
}
