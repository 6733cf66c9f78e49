package modrinth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mcbanners/banners/pkg/integrations"
)

func testClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	return &Client{
		Client:  integrations.NewClient("modrinth", nil),
		baseURL: serverURL,
	}
}

func testServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/project/sodium":
			fmt.Fprint(w, `{"id":"AANobbMI","slug":"sodium","title":"Sodium","downloads":5000,
				"icon_url":"https://x/s.png","team":"t1","versions":["v1","v2"]}`)
		case "/version/v2":
			fmt.Fprint(w, `{"id":"v2","version_number":"0.5.3"}`)
		case "/team/t1/members":
			fmt.Fprint(w, `[{"team_id":"t1","role":"Contributor","user":{"username":"helper"}},
				{"team_id":"t1","role":"Owner","user":{"id":"u1","username":"jelly","avatar_url":"https://x/a.png"}}]`)
		case "/user/jelly":
			fmt.Fprint(w, `{"id":"u1","username":"jelly","avatar_url":"https://x/a.png"}`)
		case "/user/jelly/projects":
			fmt.Fprint(w, `[{"id":"a","downloads":10},{"id":"b","downloads":15}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestClient_FetchProjectAndVersion(t *testing.T) {
	server := testServer()
	defer server.Close()
	c := testClient(t, server.URL)
	ctx := context.Background()

	p, err := c.FetchProject(ctx, "sodium")
	if err != nil {
		t.Fatalf("FetchProject failed: %v", err)
	}
	if p.Title != "Sodium" || p.Downloads != 5000 || p.Team != "t1" {
		t.Errorf("unexpected project: %+v", p)
	}

	v, err := c.FetchLatestVersion(ctx, p)
	if err != nil {
		t.Fatalf("FetchLatestVersion failed: %v", err)
	}
	if v.VersionNumber != "0.5.3" {
		t.Errorf("version = %q", v.VersionNumber)
	}

	none, err := c.FetchLatestVersion(ctx, &Project{})
	if none != nil || err != nil {
		t.Errorf("project without versions = %v, %v", none, err)
	}

	if _, err := c.FetchProject(ctx, "nope"); !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestClient_TeamOwner(t *testing.T) {
	server := testServer()
	defer server.Close()

	members, err := testClient(t, server.URL).FetchTeamMembers(context.Background(), "t1")
	if err != nil {
		t.Fatalf("FetchTeamMembers failed: %v", err)
	}
	owner, ok := Owner(members)
	if !ok || owner.User.Username != "jelly" {
		t.Errorf("Owner = %+v, %v", owner, ok)
	}

	if _, ok := Owner(nil); ok {
		t.Error("Owner(nil) should report false")
	}
	first, _ := Owner([]TeamMember{{Role: "Dev", User: User{Username: "a"}}})
	if first.User.Username != "a" {
		t.Errorf("fallback owner = %q", first.User.Username)
	}
}

func TestClient_FetchUserProjects(t *testing.T) {
	server := testServer()
	defer server.Close()
	c := testClient(t, server.URL)

	u, err := c.FetchUser(context.Background(), "jelly")
	if err != nil || u.ID != "u1" {
		t.Fatalf("FetchUser = %+v, %v", u, err)
	}
	projects, err := c.FetchUserProjects(context.Background(), "jelly")
	if err != nil || len(projects) != 2 {
		t.Fatalf("FetchUserProjects = %+v, %v", projects, err)
	}
}
