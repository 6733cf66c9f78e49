package service

import (
	"context"

	"github.com/mcbanners/banners/pkg/entity"
)

// Capability interfaces implemented by backend adapters. An adapter
// implements only what its backend supports; the registry type-asserts.

// AuthorByID resolves an author from a numeric identifier.
type AuthorByID interface {
	AuthorByID(ctx context.Context, id int) (*entity.Author, error)
}

// AuthorByName resolves an author from a username.
type AuthorByName interface {
	AuthorByName(ctx context.Context, name string) (*entity.Author, error)
}

// AuthorByResource resolves the owner of a resource from the
// (author, resource) pair. Polymart needs the resource to tell user owners
// from team owners.
type AuthorByResource interface {
	AuthorByResource(ctx context.Context, authorID, resourceID int) (*entity.Author, error)
}

// ResourceByID resolves a resource from a numeric identifier.
type ResourceByID interface {
	ResourceByID(ctx context.Context, id int) (*entity.Resource, error)
}

// ResourceByName resolves a resource from a slug or plugin id.
type ResourceByName interface {
	ResourceByName(ctx context.Context, name string) (*entity.Resource, error)
}

// MemberByID resolves a community member.
type MemberByID interface {
	MemberByID(ctx context.Context, id int) (*entity.Member, error)
}

// TeamByID resolves a team.
type TeamByID interface {
	TeamByID(ctx context.Context, id int) (*entity.Team, error)
}

// ServerPinger pings a Minecraft server.
type ServerPinger interface {
	Ping(ctx context.Context, host string, port int) (*entity.MinecraftServer, error)
}
