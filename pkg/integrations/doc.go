// Package integrations provides HTTP clients for the upstream services that
// supply banner data.
//
// # Overview
//
// Each backend has its own subpackage returning raw, backend-specific payloads:
//
//   - [spigot]: SpigotMC resources and authors
//   - [ore]: Sponge Ore projects and users
//   - [curseforge]: CurseForge mods
//   - [modrinth]: Modrinth projects, teams and users
//   - [polymart]: Polymart resources, users and teams
//   - [builtbybit]: BuiltByBit resources and members
//   - [mcapi]: the Minecraft server-ping service
//
// Normalization into backend-agnostic entities happens in the service layer.
//
// # Shared Infrastructure
//
// [Client] carries the behaviour common to all of them: default headers
// (always including the MCBanners User-Agent), a bounded timeout, an optional
// token-bucket rate limit and the retry policy. Every failure is reported as
// either [ErrNotFound] or [ErrUnavailable]; callers test with errors.Is.
//
// [Client.FetchImage] resolves icon URLs into embedded image bytes.
//
// [spigot]: github.com/mcbanners/banners/pkg/integrations/spigot
// [ore]: github.com/mcbanners/banners/pkg/integrations/ore
// [curseforge]: github.com/mcbanners/banners/pkg/integrations/curseforge
// [modrinth]: github.com/mcbanners/banners/pkg/integrations/modrinth
// [polymart]: github.com/mcbanners/banners/pkg/integrations/polymart
// [builtbybit]: github.com/mcbanners/banners/pkg/integrations/builtbybit
// [mcapi]: github.com/mcbanners/banners/pkg/integrations/mcapi
package integrations
