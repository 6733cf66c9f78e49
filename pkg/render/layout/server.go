package layout

import (
	"strconv"

	"github.com/mcbanners/banners/pkg/entity"
	"github.com/mcbanners/banners/pkg/render/component"
)

const defaultPort = 25565

// ServerLayout depicts a pinged Minecraft server.
type ServerLayout struct {
	Server *entity.MinecraftServer
}

func (l ServerLayout) Build(opts Options) *component.Tree {
	s := l.Server
	c := newCanvas(opts, BrandFor(0), s.Icon)

	name := s.Host
	if s.Port != 0 && s.Port != defaultPort {
		name += ":" + strconv.Itoa(s.Port)
	}
	c.title(name)

	if !s.Online {
		c.detail("Offline")
		return c.finish()
	}

	c.wrapped(s.MOTD, opts.MaxMOTDLength)

	var players, version string
	if !opts.HidePlayers {
		players = Players(s.PlayersOnline, s.PlayersMax)
	}
	if !opts.HideVersion {
		version = s.Version
	}
	c.detail(joinNonEmpty(players, version))
	return c.finish()
}
