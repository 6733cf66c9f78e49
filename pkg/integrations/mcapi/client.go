// Package mcapi is a client for the Minecraft server-ping service.
package mcapi

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/integrations"
)

// Server is a ping result. Icon is a data: URI when the server sets a favicon.
type Server struct {
	Host    string `json:"host"`
	Port    int    `json:"port"`
	Online  *bool  `json:"online"`
	Version string `json:"version"`
	Icon    string `json:"icon"`
	MOTD    struct {
		Raw       string `json:"raw"`
		Formatted string `json:"formatted"`
		Clean     string `json:"clean"`
	} `json:"motd"`
	Players struct {
		Online integrations.FlexInt `json:"online"`
		Max    integrations.FlexInt `json:"max"`
	} `json:"players"`
}

// IsOnline reports reachability. Responses without the flag are treated as
// online, since the service only answers them for servers it reached.
func (s *Server) IsOnline() bool {
	return s.Online == nil || *s.Online
}

// Client provides access to the server-ping service.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a ping client for the public service. Use
// [integrations.WithBaseURL] to point it at a self-hosted instance.
func NewClient(opts ...integrations.Option) *Client {
	client := integrations.NewClient("mcapi", map[string]string{"User-Agent": backend.UserAgent}, opts...)
	return &Client{
		Client:  client,
		baseURL: client.BaseURL(backend.MinecraftServerAPI),
	}
}

// FetchServer pings host on port.
func (c *Client) FetchServer(ctx context.Context, host string, port int) (*Server, error) {
	u := c.baseURL + "/" + integrations.URLEncode(host) + "/" + strconv.Itoa(port)
	var s Server
	if err := c.Get(ctx, u, &s); err != nil {
		return nil, fmt.Errorf("ping %s:%d: %w", host, port, err)
	}
	if s.Host == "" {
		s.Host = host
	}
	if s.Port == 0 {
		s.Port = port
	}
	return &s, nil
}
