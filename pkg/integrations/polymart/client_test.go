package polymart

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
		Client:  integrations.NewClient("polymart", nil),
		baseURL: serverURL,
	}
}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case r.URL.Path == "/getResourceInfo" && q.Get("resource_id") == "7":
			fmt.Fprint(w, `{"response":{"success":true,"resource":{"id":"7","title":"Shop",
				"owner":{"id":"11","name":"acme","type":"team"},"downloads":"300",
				"thumbnailURL":"https://x/t.png","reviews":{"count":"4","stars":"4.25"},
				"updates":{"latest":{"version":"3.1"}}}}}`)
		case r.URL.Path == "/getAccountInfo" && q.Get("user_id") == "5":
			fmt.Fprint(w, `{"response":{"success":true,"user":{"id":"5","username":"bob",
				"statistics":{"resourceCount":"3","resourceDownloads":"900","resourceRatings":"6","resourceAverageRating":"4.5"}}}}`)
		case r.URL.Path == "/getTeamInfo" && q.Get("team_id") == "11":
			fmt.Fprint(w, `{"response":{"success":true,"team":{"id":"11","name":"Acme",
				"members":[{"id":"5","username":"bob","role":"Owner"},{"id":"6","username":"ann"}],
				"statistics":{"resourceCount":"2","resourceDownloads":"400"}}}}`)
		default:
			fmt.Fprint(w, `{"response":{"success":false,"errors":{"global":"not found"}}}`)
		}
	}))
}

func TestClient_FetchResource(t *testing.T) {
	server := testServer(t)
	defer server.Close()
	c := testClient(t, server.URL)

	r, err := c.FetchResource(context.Background(), 7)
	if err != nil {
		t.Fatalf("FetchResource failed: %v", err)
	}
	if r.Title != "Shop" || r.Owner.Type != OwnerTeam || r.Owner.ID != 11 {
		t.Errorf("unexpected resource: %+v", r)
	}
	if r.Reviews.Stars != 4.25 || r.Updates.Latest.Version != "3.1" {
		t.Errorf("unexpected details: %+v", r)
	}

	if _, err := c.FetchResource(context.Background(), 8); !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestClient_FetchUserAndTeam(t *testing.T) {
	server := testServer(t)
	defer server.Close()
	c := testClient(t, server.URL)

	u, err := c.FetchUser(context.Background(), 5)
	if err != nil {
		t.Fatalf("FetchUser failed: %v", err)
	}
	if u.Username != "bob" || u.Statistics.ResourceDownloads != 900 {
		t.Errorf("unexpected user: %+v", u)
	}

	team, err := c.FetchTeam(context.Background(), 11)
	if err != nil {
		t.Fatalf("FetchTeam failed: %v", err)
	}
	if team.Name != "Acme" || len(team.Members) != 2 {
		t.Errorf("unexpected team: %+v", team)
	}

	if _, err := c.FetchTeam(context.Background(), 12); !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
