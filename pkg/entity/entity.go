// Package entity defines the backend-agnostic domain entities a banner
// depicts. Entities carry no backend-specific fields; layouts receive the
// backend tag separately and use it only for branding.
//
// Icons are embedded image bytes, never URLs. An empty icon means none was
// available and layouts draw a placeholder instead.
package entity

// NoRating marks an author or resource whose backend exposes no rating.
const NoRating = -1.0

// Author is the normalized profile of a resource publisher.
type Author struct {
	Name          string  `json:"name"`
	ResourceCount int     `json:"resource_count"`
	Icon          []byte  `json:"icon,omitempty"`
	Downloads     int64   `json:"downloads"`
	Rating        float64 `json:"rating"`
	Reviews       int     `json:"reviews"`
}

// HasRating reports whether the backend provided a rating.
func (a *Author) HasRating() bool { return a.Rating >= 0 }

// AuthorRef identifies a resource's owner on its backend. Backends that look
// authors up by name fill Name; numeric backends fill ID. Both may be set.
type AuthorRef struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Resource is a published plugin, mod or product.
type Resource struct {
	ID        string    `json:"id"`
	Author    AuthorRef `json:"author"`
	Name      string    `json:"name"`
	Version   string    `json:"version,omitempty"`
	Rating    float64   `json:"rating"`
	Reviews   int       `json:"reviews"`
	Downloads int64     `json:"downloads"`
	Icon      []byte    `json:"icon,omitempty"`
}

// HasRating reports whether the backend provided a rating.
func (r *Resource) HasRating() bool { return r.Rating >= 0 }

// Member is a marketplace community member.
type Member struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	ResourceCount int    `json:"resource_count"`
	Icon          []byte `json:"icon,omitempty"`
}

// TeamMember is one entry in a team roster.
type TeamMember struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// Team is a group publishing resources together. Members keep the order
// reported upstream.
type Team struct {
	ID            int          `json:"id"`
	Name          string       `json:"name"`
	Icon          []byte       `json:"icon,omitempty"`
	Members       []TeamMember `json:"members"`
	ResourceCount int          `json:"resource_count"`
	Downloads     int64        `json:"downloads"`
	Rating        float64      `json:"rating"`
}

// HasRating reports whether the team's resources have been rated.
func (t *Team) HasRating() bool { return t.Rating >= 0 }

// MinecraftServer is the result of pinging a game server.
type MinecraftServer struct {
	Host          string `json:"host"`
	Port          int    `json:"port"`
	Online        bool   `json:"online"`
	PlayersOnline int    `json:"players_online"`
	PlayersMax    int    `json:"players_max"`
	MOTD          string `json:"motd"`
	Version       string `json:"version"`
	Icon          []byte `json:"icon,omitempty"`
}
