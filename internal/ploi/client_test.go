package ploi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/uldin-nl/hostctl/internal/domain"
	"github.com/uldin-nl/hostctl/internal/services/auth"

	"github.com/google/go-cmp/cmp"
)

func TestFromStore(t *testing.T) {
	store := auth.NewMockStore()

	if _, err := FromStore(store); err == nil {
		t.Error("expected error when no token is stored")
	}

	if err := store.SetToken(TokenStore, "stored-token"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	client, err := FromStore(store)
	if err != nil {
		t.Fatalf("FromStore() error = %v", err)
	}
	if client.token != "stored-token" {
		t.Errorf("client token = %q, want stored token", client.token)
	}
}

// newTestClient creates a Client pointed at the given test server.
func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	c := New("test-token")
	c.SetBaseURL(serverURL)
	return c
}

// newRouter creates an httptest.Server that routes requests by
// "METHOD /path" (query string stripped). Unmatched requests fail the test.
func newRouter(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		handler, ok := handlers[key]
		if !ok {
			t.Errorf("unexpected request: %s", key)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// writeJSON writes v as a JSON response body.
func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("failed to encode response: %v", err)
	}
}

// dataEnvelope wraps v in the standard Ploi response envelope.
func dataEnvelope(v any) map[string]any {
	return map[string]any{"data": v}
}

func TestListServers_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := newRouter(t, map[string]http.HandlerFunc{
		"GET /servers": func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			writeJSON(t, w, http.StatusOK, dataEnvelope([]map[string]any{
				{"id": 42, "name": "web-1", "ip_address": "1.2.3.4", "status": "active", "sites_count": 3},
			}))
		},
	})

	client := newTestClient(t, srv.URL)
	servers, err := client.ListServers(context.Background())
	if err != nil {
		t.Fatalf("ListServers() error = %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "Bearer test-token")
	}

	want := []domain.Server{{ID: 42, Name: "web-1", IPAddress: "1.2.3.4", Status: "active", SitesCount: 3}}
	if diff := cmp.Diff(want, servers); diff != "" {
		t.Errorf("servers mismatch (-want +got):\n%s", diff)
	}
}

func TestGetSite_NotFound(t *testing.T) {
	srv := newRouter(t, map[string]http.HandlerFunc{
		"GET /servers/42/sites/7": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusNotFound, map[string]any{"error": "Site not found"})
		},
	})

	client := newTestClient(t, srv.URL)
	_, err := client.GetSite(context.Background(), 42, 7)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetSite() error = %v, want ErrNotFound", err)
	}
}

func TestCreateSite_SendsOptsAndMapsConflict(t *testing.T) {
	var gotOpts domain.CreateSiteOpts
	conflict := false
	srv := newRouter(t, map[string]http.HandlerFunc{
		"POST /servers/42/sites": func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewDecoder(r.Body).Decode(&gotOpts); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
			if conflict {
				writeJSON(t, w, http.StatusUnprocessableEntity, map[string]any{"error": "The root domain has already been taken."})
				return
			}
			writeJSON(t, w, http.StatusOK, dataEnvelope(map[string]any{
				"id": 512, "domain": gotOpts.RootDomain, "status": "creating", "system_user": gotOpts.SystemUser,
			}))
		},
	})

	client := newTestClient(t, srv.URL)
	opts := domain.CreateSiteOpts{
		RootDomain:   "blog.example.com",
		WebDirectory: "/public",
		ProjectType:  "wordpress",
		PHPVersion:   "8.4",
		SystemUser:   "alice",
	}

	site, err := client.CreateSite(context.Background(), 42, opts)
	if err != nil {
		t.Fatalf("CreateSite() error = %v", err)
	}
	if site.ID != 512 || site.Domain != "blog.example.com" {
		t.Errorf("site = %+v, want id 512 domain blog.example.com", site)
	}
	if diff := cmp.Diff(opts, gotOpts); diff != "" {
		t.Errorf("request opts mismatch (-want +got):\n%s", diff)
	}

	conflict = true
	if _, err := client.CreateSite(context.Background(), 42, opts); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("CreateSite() on duplicate = %v, want ErrConflict", err)
	}
}

func TestListSites_SearchAndPagination(t *testing.T) {
	var gotQuery map[string]string
	srv := newRouter(t, map[string]http.HandlerFunc{
		"GET /servers/42/sites": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			gotQuery = map[string]string{
				"page":           q.Get("page"),
				"filter[search]": q.Get("filter[search]"),
			}
			writeJSON(t, w, http.StatusOK, map[string]any{
				"data": []map[string]any{
					{"id": 1, "domain": "blog.example.com", "status": "active"},
				},
				"meta": map[string]any{"current_page": 2, "per_page": 10, "total": 11},
			})
		},
	})

	client := newTestClient(t, srv.URL)
	page, err := client.ListSites(context.Background(), 42, domain.ListSitesOpts{Page: 2, Search: "blog"})
	if err != nil {
		t.Fatalf("ListSites() error = %v", err)
	}

	if gotQuery["page"] != "2" || gotQuery["filter[search]"] != "blog" {
		t.Errorf("query = %v, want page=2 filter[search]=blog", gotQuery)
	}
	if page.CurrentPage != 2 || page.Total != 11 || len(page.Sites) != 1 {
		t.Errorf("page = %+v, want current_page 2 total 11 with 1 site", page)
	}
}

func TestRunWPCommand_UnwrappedResponse(t *testing.T) {
	var gotCommand string
	srv := newRouter(t, map[string]http.HandlerFunc{
		"POST /servers/42/commands/wp": func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				Command string `json:"command"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
			gotCommand = body.Command
			writeJSON(t, w, http.StatusOK, map[string]any{"status": "ok", "message": "Success: WordPress is up to date."})
		},
	})

	client := newTestClient(t, srv.URL)
	result, err := client.RunWPCommand(context.Background(), 42, "core update")
	if err != nil {
		t.Fatalf("RunWPCommand() error = %v", err)
	}

	if gotCommand != "core update" {
		t.Errorf("command = %q, want %q", gotCommand, "core update")
	}
	if !result.OK() || result.Message != "Success: WordPress is up to date." {
		t.Errorf("result = %+v, want ok with success message", result)
	}
}

func TestCreateFileBackup_SendsPathMap(t *testing.T) {
	var gotOpts domain.CreateFileBackupOpts
	srv := newRouter(t, map[string]http.HandlerFunc{
		"POST /backups/file-backups": func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewDecoder(r.Body).Decode(&gotOpts); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
			writeJSON(t, w, http.StatusOK, dataEnvelope(map[string]any{"id": 99, "interval": 0}))
		},
	})

	client := newTestClient(t, srv.URL)
	opts := domain.CreateFileBackupOpts{
		BackupConfiguration: 3,
		Server:              42,
		Sites:               []int64{512},
		Interval:            0,
		Path:                map[string]string{"512": "/home/alice/blog.example.com"},
	}

	backup, err := client.CreateFileBackup(context.Background(), opts)
	if err != nil {
		t.Fatalf("CreateFileBackup() error = %v", err)
	}
	if backup.ID != 99 {
		t.Errorf("backup.ID = %d, want 99", backup.ID)
	}
	if diff := cmp.Diff(opts, gotOpts); diff != "" {
		t.Errorf("request opts mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateSite_OmitsEmptyFields(t *testing.T) {
	var gotMethod string
	var gotBody map[string]any
	srv := newRouter(t, map[string]http.HandlerFunc{
		"PATCH /servers/42/sites/512": func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
			writeJSON(t, w, http.StatusOK, dataEnvelope(map[string]any{
				"id": 512, "domain": "blog.example.com", "status": "active", "project_root": "/current",
			}))
		},
	})

	client := newTestClient(t, srv.URL)
	site, err := client.UpdateSite(context.Background(), 42, 512, domain.UpdateSiteOpts{ProjectRoot: "/current"})
	if err != nil {
		t.Fatalf("UpdateSite() error = %v", err)
	}

	if gotMethod != http.MethodPatch {
		t.Errorf("method = %q, want PATCH", gotMethod)
	}
	want := map[string]any{"project_root": "/current"}
	if diff := cmp.Diff(want, gotBody); diff != "" {
		t.Errorf("request body mismatch (-want +got):\n%s", diff)
	}
	if site.ProjectRoot != "/current" {
		t.Errorf("site.ProjectRoot = %q, want /current", site.ProjectRoot)
	}
}

func TestConnectRepository_SendsOpts(t *testing.T) {
	var gotOpts domain.ConnectRepositoryOpts
	srv := newRouter(t, map[string]http.HandlerFunc{
		"POST /servers/42/sites/512/repository": func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewDecoder(r.Body).Decode(&gotOpts); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
			writeJSON(t, w, http.StatusOK, dataEnvelope(map[string]any{}))
		},
	})

	client := newTestClient(t, srv.URL)
	opts := domain.ConnectRepositoryOpts{Provider: "github", Branch: "main", Name: "acme/blog"}
	if err := client.ConnectRepository(context.Background(), 42, 512, opts); err != nil {
		t.Fatalf("ConnectRepository() error = %v", err)
	}

	if diff := cmp.Diff(opts, gotOpts); diff != "" {
		t.Errorf("request opts mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateCertificate_LetsEncrypt(t *testing.T) {
	var gotBody map[string]any
	srv := newRouter(t, map[string]http.HandlerFunc{
		"POST /servers/42/sites/512/certificates": func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
			writeJSON(t, w, http.StatusOK, dataEnvelope(map[string]any{
				"id": 77, "domain": "blog.example.com", "type": "letsencrypt", "status": "creating",
			}))
		},
	})

	client := newTestClient(t, srv.URL)
	cert, err := client.CreateCertificate(context.Background(), 42, 512, domain.CreateCertificateOpts{
		Type:        "letsencrypt",
		Certificate: "blog.example.com",
	})
	if err != nil {
		t.Fatalf("CreateCertificate() error = %v", err)
	}

	if cert.ID != 77 || cert.Status != "creating" {
		t.Errorf("cert = %+v, want id 77 status creating", cert)
	}
	if gotBody["type"] != "letsencrypt" || gotBody["certificate"] != "blog.example.com" {
		t.Errorf("request body = %v, want letsencrypt for blog.example.com", gotBody)
	}
	if _, ok := gotBody["private"]; ok {
		t.Error("private key sent for a letsencrypt certificate")
	}
}

func TestDeleteCertificate(t *testing.T) {
	deleted := false
	srv := newRouter(t, map[string]http.HandlerFunc{
		"DELETE /servers/42/sites/512/certificates/77": func(w http.ResponseWriter, r *http.Request) {
			deleted = true
			writeJSON(t, w, http.StatusOK, dataEnvelope(map[string]any{}))
		},
	})

	client := newTestClient(t, srv.URL)
	if err := client.DeleteCertificate(context.Background(), 42, 512, 77); err != nil {
		t.Fatalf("DeleteCertificate() error = %v", err)
	}
	if !deleted {
		t.Error("expected a DELETE request to reach the server")
	}

	errSrv := newRouter(t, map[string]http.HandlerFunc{
		"DELETE /servers/42/sites/512/certificates/78": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusNotFound, map[string]any{"error": "Certificate not found"})
		},
	})
	errClient := newTestClient(t, errSrv.URL)
	if err := errClient.DeleteCertificate(context.Background(), 42, 512, 78); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("DeleteCertificate() on missing cert = %v, want ErrNotFound", err)
	}
}

func TestGetServer_Unauthorized(t *testing.T) {
	srv := newRouter(t, map[string]http.HandlerFunc{
		"GET /servers/42": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusUnauthorized, map[string]any{"error": "Unauthenticated."})
		},
	})

	client := newTestClient(t, srv.URL)
	_, err := client.GetServer(context.Background(), 42)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("GetServer() error = %v, want ErrUnauthorized", err)
	}
}
