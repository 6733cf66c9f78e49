package curseforge

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
		Client:  integrations.NewClient("curseforge", map[string]string{"x-api-key": "key"}),
		baseURL: serverURL,
	}
}

func TestNewClientSetsKey(t *testing.T) {
	c := NewClient("secret")
	if c.Client == nil || c.baseURL == "" {
		t.Error("expected client to be initialized")
	}
}

func TestClient_FetchMod(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		switch r.URL.Path {
		case "/mods/238222":
			fmt.Fprint(w, `{"data":{"id":238222,"name":"JEI","downloadCount":250000000,
				"authors":[{"id":17072262,"name":"mezz"}],
				"logo":{"thumbnailUrl":"https://x/t.png","url":"https://x/l.png"},
				"latestFiles":[{"displayName":"jei-1.0"},{"displayName":"jei-1.1"}]}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	mod, err := c.FetchMod(context.Background(), 238222)
	if err != nil {
		t.Fatalf("FetchMod failed: %v", err)
	}
	if mod.Name != "JEI" || mod.DownloadCount != 250000000 {
		t.Errorf("unexpected mod: %+v", mod)
	}
	if mod.LogoURL() != "https://x/t.png" {
		t.Errorf("LogoURL = %q", mod.LogoURL())
	}
	if mod.Version() != "jei-1.1" {
		t.Errorf("Version = %q", mod.Version())
	}
	if !mod.HasAuthor(17072262, "") || !mod.HasAuthor(0, "MEZZ") {
		t.Error("HasAuthor should match by id and case-insensitive name")
	}

	if _, err := c.FetchMod(context.Background(), 1); !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestClient_FetchModsByAuthor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("gameId") != "432" || q.Get("authorId") != "7" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		fmt.Fprint(w, `{"data":[{"id":1,"downloadCount":5},{"id":2,"downloadCount":"6"}],
			"pagination":{"index":0,"pageSize":50,"resultCount":2,"totalCount":2}}`)
	}))
	defer server.Close()

	mods, err := testClient(t, server.URL).FetchModsByAuthor(context.Background(), 7)
	if err != nil {
		t.Fatalf("FetchModsByAuthor failed: %v", err)
	}
	if len(mods) != 2 || mods[1].DownloadCount != 6 {
		t.Errorf("unexpected mods: %+v", mods)
	}
}

func TestClient_SearchModsByAuthorName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("searchFilter") != "mezz" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		fmt.Fprint(w, `{"data":[
			{"id":1,"authors":[{"id":9,"name":"mezz"}]},
			{"id":2,"authors":[{"id":10,"name":"mezzanine"}]}],
			"pagination":{"totalCount":2}}`)
	}))
	defer server.Close()

	mods, err := testClient(t, server.URL).SearchModsByAuthorName(context.Background(), "mezz")
	if err != nil {
		t.Fatalf("SearchModsByAuthorName failed: %v", err)
	}
	if len(mods) != 1 || mods[0].ID != 1 {
		t.Errorf("unexpected mods: %+v", mods)
	}
}
