// Package pkg provides the core libraries for banners.
//
// # Overview
//
// banners renders 300x100 status images for authors, resources, members and
// teams on Minecraft marketplaces (SpigotMC, Ore, CurseForge, Modrinth,
// Polymart, BuiltByBit) and for Minecraft servers. The pkg directory is
// organized into four areas:
//
//  1. Domain: [backend], [entity], [banner]
//  2. Upstream: [integrations] clients and the [service] normalization layer
//  3. Rendering: [render/layout], [render/component], [render/sink], [fonts]
//  4. Infrastructure: [cache], [saved], [config], [observability], [pipeline]
//
// # Architecture
//
// A banner request flows through three stages:
//
//	banner type + settings
//	         ↓
//	    [banner] resolver (validate settings, pick lookup mode)
//	         ↓
//	    [service] (cache-aside lookup through a backend adapter)
//	         ↓
//	    [render/layout] (entity → component tree)
//	         ↓
//	    [render/sink] (component tree → PNG/JPEG)
//
// [pipeline] runs the stages for both the CLI and the HTTP server.
//
// # Quick Start
//
//	cfg := config.Default()
//	runner, err := pipeline.Setup(ctx, cfg, logger)
//	if err != nil {
//	    return err
//	}
//	defer runner.Close(ctx)
//
//	res, err := runner.Render(ctx, backend.ModrinthResource,
//	    map[string]string{"_resource_id": "sodium", "background": "forest"}, sink.PNG)
//
// # Main Packages
//
// [backend] - The static backend registry: base URLs, auth schemes, the
// support matrix and the banner type table.
//
// [integrations] - HTTP clients for each marketplace plus the server-ping
// service. Clients share rate limiting, retries and image fetching.
//
// [service] - Normalization services, one per entity category. Adapters map
// raw payloads onto [entity] types; results are cached per lookup.
//
// [banner] - Turns a banner type and settings map into resolved entities.
//
// [render/layout] - One layout per entity category, parameterized by style
// settings.
//
// [render/sink] - Draws component trees with gg and encodes PNG or JPEG.
//
// [saved] - Stores banner settings under short mnemonics (memory or MongoDB).
//
// [cache] - Entity cache backends: memory, file, Redis and null.
//
// [errors] - Coded errors shared by every layer.
//
// [backend]: https://pkg.go.dev/github.com/mcbanners/banners/pkg/backend
// [entity]: https://pkg.go.dev/github.com/mcbanners/banners/pkg/entity
// [banner]: https://pkg.go.dev/github.com/mcbanners/banners/pkg/banner
// [integrations]: https://pkg.go.dev/github.com/mcbanners/banners/pkg/integrations
// [service]: https://pkg.go.dev/github.com/mcbanners/banners/pkg/service
// [render/layout]: https://pkg.go.dev/github.com/mcbanners/banners/pkg/render/layout
// [render/component]: https://pkg.go.dev/github.com/mcbanners/banners/pkg/render/component
// [render/sink]: https://pkg.go.dev/github.com/mcbanners/banners/pkg/render/sink
// [fonts]: https://pkg.go.dev/github.com/mcbanners/banners/pkg/fonts
// [cache]: https://pkg.go.dev/github.com/mcbanners/banners/pkg/cache
// [saved]: https://pkg.go.dev/github.com/mcbanners/banners/pkg/saved
// [config]: https://pkg.go.dev/github.com/mcbanners/banners/pkg/config
// [observability]: https://pkg.go.dev/github.com/mcbanners/banners/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/mcbanners/banners/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/mcbanners/banners/pkg/errors
package pkg
