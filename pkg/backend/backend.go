// Package backend describes the upstream services banners are sourced from.
//
// It is a pure lookup table: the six marketplace backends, the entity
// categories a banner can depict, the banner types clients request, and the
// static support matrix that tells callers which (backend, category, lookup)
// combinations can be resolved at all. Consult [Supports] before issuing any
// network call.
package backend

import (
	"fmt"
	"strings"
)

// Backend identifies a third-party marketplace.
type Backend int

// Supported marketplaces. The zero value means "no backend" and is used by
// banner types that are not tied to a marketplace (servers, Discord).
const (
	Spigot Backend = iota + 1
	Ore
	CurseForge
	Modrinth
	Polymart
	BuiltByBit
)

// All lists every marketplace backend in declaration order.
var All = []Backend{Spigot, Ore, CurseForge, Modrinth, Polymart, BuiltByBit}

// Category is the kind of entity a banner depicts.
type Category int

const (
	CategoryAuthor Category = iota + 1
	CategoryResource
	CategoryServer
	CategoryMember
	CategoryTeam
	CategoryDiscordUser
)

func (c Category) String() string {
	switch c {
	case CategoryAuthor:
		return "author"
	case CategoryResource:
		return "resource"
	case CategoryServer:
		return "server"
	case CategoryMember:
		return "member"
	case CategoryTeam:
		return "team"
	case CategoryDiscordUser:
		return "discord user"
	default:
		return "unknown"
	}
}

// Lookup is the kind of identifier used to find an entity.
type Lookup int

const (
	ByID Lookup = iota + 1
	ByName
)

func (l Lookup) String() string {
	if l == ByName {
		return "name"
	}
	return "id"
}

// AuthScheme describes how a backend authenticates API requests.
type AuthScheme int

const (
	AuthNone    AuthScheme = iota
	AuthAPIKey             // static key in a request header
	AuthSession            // key exchanged for a short-lived session token
)

// Info holds the static description of a backend.
type Info struct {
	Name        string            // lowercase identifier used in cache keys and logs
	DisplayName string            // human-readable name used for branding
	BaseURL     string            // API root without trailing slash
	Headers     map[string]string // headers sent with every request
	Auth        AuthScheme
	AuthHeader  string // header carrying the credential, if Auth != AuthNone
}

// UserAgent is sent with every upstream request.
const UserAgent = "MCBanners"

var infos = map[Backend]Info{
	Spigot: {
		Name:        "spigot",
		DisplayName: "SpigotMC",
		BaseURL:     "https://api.spigotmc.org/simple/0.2/index.php",
	},
	Ore: {
		Name:        "ore",
		DisplayName: "Ore",
		BaseURL:     "https://ore.spongepowered.org/api/v2",
		Auth:        AuthSession,
		AuthHeader:  "Authorization",
	},
	CurseForge: {
		Name:        "curseforge",
		DisplayName: "CurseForge",
		BaseURL:     "https://api.curseforge.com/v1",
		Headers:     map[string]string{"Accept": "application/json"},
		Auth:        AuthAPIKey,
		AuthHeader:  "x-api-key",
	},
	Modrinth: {
		Name:        "modrinth",
		DisplayName: "Modrinth",
		BaseURL:     "https://api.modrinth.com/v2",
	},
	Polymart: {
		Name:        "polymart",
		DisplayName: "Polymart",
		BaseURL:     "https://api.polymart.org/v1",
	},
	BuiltByBit: {
		Name:        "builtbybit",
		DisplayName: "BuiltByBit",
		BaseURL:     "https://api.builtbybit.com/v1",
		Auth:        AuthAPIKey,
		AuthHeader:  "Authorization",
	},
}

// MinecraftServerAPI is the base URL of the server-ping service.
const MinecraftServerAPI = "https://mc.mcbanners.com/server"

// Describe returns the static description of b.
// The returned Headers map is a copy that always contains the User-Agent.
func Describe(b Backend) Info {
	info := infos[b]
	headers := map[string]string{"User-Agent": UserAgent}
	for k, v := range info.Headers {
		headers[k] = v
	}
	info.Headers = headers
	return info
}

func (b Backend) String() string {
	if info, ok := infos[b]; ok {
		return info.Name
	}
	return "none"
}

// DisplayName returns the branding name of b.
func (b Backend) DisplayName() string {
	return infos[b].DisplayName
}

// Valid reports whether b is one of the known marketplaces.
func (b Backend) Valid() bool {
	_, ok := infos[b]
	return ok
}

// ParseBackend converts a backend name (case-insensitive) into a Backend.
// "sponge" is accepted as an alias for Ore.
func ParseBackend(s string) (Backend, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "sponge" {
		return Ore, nil
	}
	for b, info := range infos {
		if info.Name == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown backend %q", s)
}

type support struct {
	category Category
	lookup   Lookup
}

var matrix = map[Backend]map[support]bool{
	Spigot: {
		{CategoryAuthor, ByID}:   true,
		{CategoryResource, ByID}: true,
	},
	Ore: {
		{CategoryAuthor, ByName}:   true,
		{CategoryResource, ByName}: true,
	},
	CurseForge: {
		{CategoryAuthor, ByID}:   true,
		{CategoryAuthor, ByName}: true,
		{CategoryResource, ByID}: true,
	},
	Modrinth: {
		{CategoryAuthor, ByName}:   true,
		{CategoryResource, ByName}: true,
	},
	Polymart: {
		{CategoryAuthor, ByID}:   true,
		{CategoryResource, ByID}: true,
		{CategoryTeam, ByID}:     true,
	},
	BuiltByBit: {
		{CategoryAuthor, ByID}:   true,
		{CategoryResource, ByID}: true,
		{CategoryMember, ByID}:   true,
	},
}

// Supports reports whether b can resolve entities of category c using the
// given lookup mode.
func Supports(b Backend, c Category, l Lookup) bool {
	return matrix[b][support{c, l}]
}
