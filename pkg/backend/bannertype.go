package backend

import (
	"fmt"
	"sort"
	"strings"
)

// Setting keys that identify the entity a banner depicts. Identifier keys are
// prefixed with an underscore and never reach the layout engine.
const (
	KeyAuthorID   = "_author_id"
	KeyResourceID = "_resource_id"
	KeyServerHost = "_server_host"
	KeyServerPort = "_server_port"
	KeyMemberID   = "_member_id"
	KeyTeamID     = "_team_id"
)

// IdentifierKeys lists every identifier setting key.
var IdentifierKeys = []string{KeyAuthorID, KeyResourceID, KeyServerHost, KeyServerPort, KeyMemberID, KeyTeamID}

// IsIdentifierKey reports whether key addresses an entity rather than a
// visual aspect of the banner.
func IsIdentifierKey(key string) bool {
	return strings.HasPrefix(key, "_")
}

// BannerType is one renderable banner kind.
type BannerType string

const (
	SpigotAuthor       BannerType = "SPIGOT_AUTHOR"
	SpigotResource     BannerType = "SPIGOT_RESOURCE"
	OreAuthor          BannerType = "ORE_AUTHOR"
	OreResource        BannerType = "ORE_RESOURCE"
	CurseForgeAuthor   BannerType = "CURSEFORGE_AUTHOR"
	CurseForgeResource BannerType = "CURSEFORGE_RESOURCE"
	ModrinthAuthor     BannerType = "MODRINTH_AUTHOR"
	ModrinthResource   BannerType = "MODRINTH_RESOURCE"
	PolymartAuthor     BannerType = "POLYMART_AUTHOR"
	PolymartResource   BannerType = "POLYMART_RESOURCE"
	PolymartTeam       BannerType = "POLYMART_TEAM"
	BuiltByBitAuthor   BannerType = "BUILTBYBIT_AUTHOR"
	BuiltByBitResource BannerType = "BUILTBYBIT_RESOURCE"
	BuiltByBitMember   BannerType = "BUILTBYBIT_MEMBER"
	MinecraftServer    BannerType = "MINECRAFT_SERVER"
	DiscordUser        BannerType = "DISCORD_USER"
)

type typeInfo struct {
	category Category
	backend  Backend
	keys     []string
}

var types = map[BannerType]typeInfo{
	SpigotAuthor:       {CategoryAuthor, Spigot, []string{KeyAuthorID}},
	SpigotResource:     {CategoryResource, Spigot, []string{KeyResourceID}},
	OreAuthor:          {CategoryAuthor, Ore, []string{KeyAuthorID}},
	OreResource:        {CategoryResource, Ore, []string{KeyResourceID}},
	CurseForgeAuthor:   {CategoryAuthor, CurseForge, []string{KeyAuthorID}},
	CurseForgeResource: {CategoryResource, CurseForge, []string{KeyResourceID}},
	ModrinthAuthor:     {CategoryAuthor, Modrinth, []string{KeyAuthorID}},
	ModrinthResource:   {CategoryResource, Modrinth, []string{KeyResourceID}},
	PolymartAuthor:     {CategoryAuthor, Polymart, []string{KeyAuthorID}},
	PolymartResource:   {CategoryResource, Polymart, []string{KeyResourceID}},
	PolymartTeam:       {CategoryTeam, Polymart, []string{KeyTeamID}},
	BuiltByBitAuthor:   {CategoryAuthor, BuiltByBit, []string{KeyAuthorID}},
	BuiltByBitResource: {CategoryResource, BuiltByBit, []string{KeyResourceID}},
	BuiltByBitMember:   {CategoryMember, BuiltByBit, []string{KeyMemberID}},
	MinecraftServer:    {CategoryServer, 0, []string{KeyServerHost}},
	DiscordUser:        {CategoryDiscordUser, 0, nil},
}

// Category returns the entity category t depicts.
func (t BannerType) Category() Category {
	return types[t].category
}

// Backend returns the marketplace t is sourced from. ok is false for banner
// types that are not tied to a marketplace.
func (t BannerType) Backend() (b Backend, ok bool) {
	b = types[t].backend
	return b, b != 0
}

// RequiredKeys returns the identifier setting keys t needs.
func (t BannerType) RequiredKeys() []string {
	return append([]string(nil), types[t].keys...)
}

// Valid reports whether t is a known banner type.
func (t BannerType) Valid() bool {
	_, ok := types[t]
	return ok
}

// BackendFor returns the marketplace associated with t.
func BackendFor(t BannerType) (Backend, bool) {
	return t.Backend()
}

// ParseBannerType converts s (case-insensitive, '-' or '_' separated) into a
// BannerType. The legacy SPONGE_* names are accepted for Ore banners.
func ParseBannerType(s string) (BannerType, error) {
	name := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	if rest, ok := strings.CutPrefix(name, "SPONGE_"); ok {
		name = "ORE_" + rest
	}
	t := BannerType(name)
	if !t.Valid() {
		return "", fmt.Errorf("unknown banner type %q", s)
	}
	return t, nil
}

// BannerTypes returns every banner type sorted by name.
func BannerTypes() []BannerType {
	out := make([]BannerType, 0, len(types))
	for t := range types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
