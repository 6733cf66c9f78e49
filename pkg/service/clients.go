package service

import (
	"github.com/charmbracelet/log"

	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/integrations"
	"github.com/mcbanners/banners/pkg/integrations/builtbybit"
	"github.com/mcbanners/banners/pkg/integrations/curseforge"
	"github.com/mcbanners/banners/pkg/integrations/mcapi"
	"github.com/mcbanners/banners/pkg/integrations/modrinth"
	"github.com/mcbanners/banners/pkg/integrations/ore"
	"github.com/mcbanners/banners/pkg/integrations/polymart"
	"github.com/mcbanners/banners/pkg/integrations/spigot"
)

// Credentials holds the secrets some backends require. Empty values are
// allowed; the backend then answers with whatever anonymous access permits.
type Credentials struct {
	OreAPIKey        string
	CurseForgeAPIKey string
	BuiltByBitToken  string
}

// Clients holds one upstream client per backend. Nil entries are skipped
// when building the registry.
type Clients struct {
	Spigot     *spigot.Client
	Ore        *ore.Client
	CurseForge *curseforge.Client
	Modrinth   *modrinth.Client
	Polymart   *polymart.Client
	BuiltByBit *builtbybit.Client
	Server     *mcapi.Client
}

// NewClients creates every client with the shared options. Per-backend
// options, such as base URL overrides, are appended after the shared ones.
func NewClients(creds Credentials, shared []integrations.Option, perBackend map[string][]integrations.Option) *Clients {
	opts := func(name string) []integrations.Option {
		out := append([]integrations.Option(nil), shared...)
		return append(out, perBackend[name]...)
	}
	return &Clients{
		Spigot:     spigot.NewClient(opts(backend.Spigot.String())...),
		Ore:        ore.NewClient(creds.OreAPIKey, opts(backend.Ore.String())...),
		CurseForge: curseforge.NewClient(creds.CurseForgeAPIKey, opts(backend.CurseForge.String())...),
		Modrinth:   modrinth.NewClient(opts(backend.Modrinth.String())...),
		Polymart:   polymart.NewClient(opts(backend.Polymart.String())...),
		BuiltByBit: builtbybit.NewClient(creds.BuiltByBitToken, opts(backend.BuiltByBit.String())...),
		Server:     mcapi.NewClient(opts("mcapi")...),
	}
}

// NewRegistryFromClients registers an adapter for every non-nil client.
func NewRegistryFromClients(c *Clients, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	r := NewRegistry()
	if c.Spigot != nil {
		r.Register(backend.Spigot, NewSpigotAdapter(c.Spigot, logger))
	}
	if c.Ore != nil {
		r.Register(backend.Ore, NewOreAdapter(c.Ore, logger))
	}
	if c.CurseForge != nil {
		r.Register(backend.CurseForge, NewCurseForgeAdapter(c.CurseForge, logger))
	}
	if c.Modrinth != nil {
		r.Register(backend.Modrinth, NewModrinthAdapter(c.Modrinth, logger))
	}
	if c.Polymart != nil {
		r.Register(backend.Polymart, NewPolymartAdapter(c.Polymart, logger))
	}
	if c.BuiltByBit != nil {
		r.Register(backend.BuiltByBit, NewBuiltByBitAdapter(c.BuiltByBit, logger))
	}
	return r
}

// Pinger returns the server pinger for c, or nil when no server client is set.
func (c *Clients) Pinger(logger *log.Logger) ServerPinger {
	if c.Server == nil {
		return nil
	}
	if logger == nil {
		logger = log.Default()
	}
	return NewServerPinger(c.Server, logger)
}
