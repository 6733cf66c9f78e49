package ore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mcbanners/banners/pkg/integrations"
)

func testClient(t *testing.T, serverURL, apiKey string) *Client {
	t.Helper()
	return &Client{
		Client:  integrations.NewClient("ore", map[string]string{"User-Agent": "MCBanners"}),
		baseURL: serverURL,
		apiKey:  apiKey,
		now:     time.Now,
	}
}

func oreServer(t *testing.T, auths *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/authenticate" {
			if r.Method != http.MethodPost {
				t.Errorf("authenticate method = %s", r.Method)
			}
			n := auths.Add(1)
			fmt.Fprintf(w, `{"session":"s%d","expires":%q,"type":"public"}`, n, time.Now().Add(time.Hour).Format(time.RFC3339))
			return
		}
		if !strings.HasPrefix(r.Header.Get("Authorization"), "OreApi session=") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch {
		case r.URL.Path == "/projects/banners":
			fmt.Fprint(w, `{"plugin_id":"banners","name":"Banners","namespace":{"owner":"steve","slug":"Banners"},
				"promoted_versions":[{"version":"2.0"}],"stats":{"downloads":900,"stars":12},"icon_url":"https://x/i.png"}`)
		case r.URL.Path == "/users/steve":
			fmt.Fprint(w, `{"name":"steve","project_count":2}`)
		case r.URL.Path == "/projects" && r.URL.Query().Get("owner") == "steve":
			fmt.Fprint(w, `{"pagination":{"limit":25,"offset":0,"count":2},"result":[
				{"plugin_id":"a","stats":{"downloads":10,"stars":1}},
				{"plugin_id":"b","stats":{"downloads":20,"stars":2}}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestClient_FetchProject(t *testing.T) {
	var auths atomic.Int32
	server := oreServer(t, &auths)
	defer server.Close()

	c := testClient(t, server.URL, "")
	p, err := c.FetchProject(context.Background(), "banners")
	if err != nil {
		t.Fatalf("FetchProject failed: %v", err)
	}
	if p.Name != "Banners" || p.Namespace.Owner != "steve" || p.Stats.Downloads != 900 {
		t.Errorf("unexpected project: %+v", p)
	}

	_, err = c.FetchProject(context.Background(), "missing")
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if auths.Load() != 1 {
		t.Errorf("authenticated %d times, want session reuse", auths.Load())
	}
}

func TestClient_FetchUserAndProjects(t *testing.T) {
	var auths atomic.Int32
	server := oreServer(t, &auths)
	defer server.Close()

	c := testClient(t, server.URL, "")
	u, err := c.FetchUser(context.Background(), "steve")
	if err != nil {
		t.Fatalf("FetchUser failed: %v", err)
	}
	if u.ProjectCount != 2 {
		t.Errorf("ProjectCount = %d", u.ProjectCount)
	}

	projects, err := c.FetchProjectsByOwner(context.Background(), "steve")
	if err != nil {
		t.Fatalf("FetchProjectsByOwner failed: %v", err)
	}
	if len(projects) != 2 {
		t.Errorf("len = %d, want 2", len(projects))
	}
}

func TestClient_SessionRefreshOnUnauthorized(t *testing.T) {
	var auths atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/authenticate" {
			if got := r.Header.Get("Authorization"); got != `OreApi apikey="k"` {
				t.Errorf("auth header = %q", got)
			}
			n := auths.Add(1)
			fmt.Fprintf(w, `{"session":"s%d","expires":%q}`, n, time.Now().Add(time.Hour).Format(time.RFC3339))
			return
		}
		if r.Header.Get("Authorization") != `OreApi session="s2"` {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"name":"steve"}`)
	}))
	defer server.Close()

	c := testClient(t, server.URL, "k")
	if _, err := c.FetchUser(context.Background(), "steve"); err != nil {
		t.Fatalf("FetchUser failed: %v", err)
	}
	if auths.Load() != 2 {
		t.Errorf("authenticated %d times, want 2", auths.Load())
	}
}

func TestClient_AuthenticateFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := testClient(t, server.URL, "").FetchUser(context.Background(), "steve")
	if !errors.Is(err, integrations.ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}
