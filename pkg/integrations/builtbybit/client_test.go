package builtbybit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mcbanners/banners/pkg/integrations"
)

func testClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	return &Client{
		Client:  integrations.NewClient("builtbybit", map[string]string{"Authorization": "Private tok"}),
		baseURL: serverURL,
	}
}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Private tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/resources/9":
			fmt.Fprint(w, `{"result":"success","data":{"resource_id":9,"author_id":3,"title":"Crates",
				"download_count":120,"review_count":5,"review_average":4.8}}`)
		case "/resources/9/versions/latest":
			fmt.Fprint(w, `{"result":"success","data":{"version_id":77,"name":"1.4.0"}}`)
		case "/members/3":
			fmt.Fprint(w, `{"result":"success","data":{"member_id":3,"username":"dev","avatar_url":"https://x/a.png","supreme":true}}`)
		case "/resources/authors/3":
			page := r.URL.Query().Get("page")
			n := 20
			if page == "2" {
				n = 1
			}
			items := make([]string, n)
			for i := range items {
				items[i] = `{"resource_id":1,"download_count":10}`
			}
			fmt.Fprintf(w, `{"result":"success","data":[%s]}`, strings.Join(items, ","))
		default:
			fmt.Fprint(w, `{"result":"error","data":null,"error":{"code":"NotFoundError","message":"not found"}}`)
		}
	}))
}

func TestClient_FetchResource(t *testing.T) {
	server := testServer(t)
	defer server.Close()
	c := testClient(t, server.URL)

	r, err := c.FetchResource(context.Background(), 9)
	if err != nil {
		t.Fatalf("FetchResource failed: %v", err)
	}
	if r.Title != "Crates" || r.AuthorID != 3 || r.ReviewAverage != 4.8 {
		t.Errorf("unexpected resource: %+v", r)
	}

	v, err := c.FetchLatestVersion(context.Background(), 9)
	if err != nil || v.Name != "1.4.0" {
		t.Errorf("FetchLatestVersion = %+v, %v", v, err)
	}

	if _, err := c.FetchResource(context.Background(), 10); !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestClient_FetchMember(t *testing.T) {
	server := testServer(t)
	defer server.Close()

	m, err := testClient(t, server.URL).FetchMember(context.Background(), 3)
	if err != nil {
		t.Fatalf("FetchMember failed: %v", err)
	}
	if m.Username != "dev" || m.Rank() != "Supreme" {
		t.Errorf("unexpected member: %+v rank %s", m, m.Rank())
	}
}

func TestClient_FetchResourcesByAuthor(t *testing.T) {
	server := testServer(t)
	defer server.Close()

	resources, err := testClient(t, server.URL).FetchResourcesByAuthor(context.Background(), 3)
	if err != nil {
		t.Fatalf("FetchResourcesByAuthor failed: %v", err)
	}
	if len(resources) != 21 {
		t.Errorf("len = %d, want 21", len(resources))
	}
}

func TestClient_ErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":"error","error":{"code":"RateLimitError","message":"slow down"}}`)
	}))
	defer server.Close()

	_, err := testClient(t, server.URL).FetchMember(context.Background(), 3)
	if !errors.Is(err, integrations.ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestMemberRank(t *testing.T) {
	tests := []struct {
		m    Member
		want string
	}{
		{Member{}, "Member"},
		{Member{Premium: true}, "Premium"},
		{Member{Premium: true, Ultimate: true}, "Ultimate"},
		{Member{Ultimate: true, Banned: true}, "Banned"},
	}
	for _, tt := range tests {
		if got := tt.m.Rank(); got != tt.want {
			t.Errorf("Rank() = %q, want %q", got, tt.want)
		}
	}
}
