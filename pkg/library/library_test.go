package library

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mchmarny/shelfd/pkg/config"
	"github.com/mchmarny/shelfd/pkg/render"
	"github.com/mchmarny/shelfd/pkg/sidebar"
)

const (
	testHeader = "X-Remote-User"
	kindleUA   = "Mozilla/5.0 (X11; U; Linux armv7l like Android; en-us) AppleWebKit/531.2+ (KHTML, like Gecko) Version/5.0 Safari/533.2+ Kindle/3.0+"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type deniedFS struct {
	fs.FS
	denied map[string]bool
}

func (d deniedFS) Open(name string) (fs.File, error) {
	if d.denied[name] {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	return d.FS.Open(name)
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Title = "Shelf"
	cfg.Upload.Extensions = []string{"epub", "pdf"}
	cfg.Auth.ProxyHeader = testHeader
	cfg.Auth.Users = []config.UserConfig{
		{Name: "ada", Admin: true},
		{Name: "bob", Language: "deu", Sidebar: []string{"recent", "hot", "download", "list"}},
	}
	return cfg
}

type harness struct {
	lib    *Library
	router *gin.Engine
	logs   *bytes.Buffer
	reg    *prometheus.Registry
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	logs := &bytes.Buffer{}
	reg := prometheus.NewRegistry()
	opts = append([]Option{
		WithLogger(slog.New(slog.NewTextHandler(logs, nil))),
		WithRegistry(reg),
	}, opts...)
	lib := New(testConfig(), opts...)
	return &harness{lib: lib, router: lib.Router(), logs: logs, reg: reg}
}

func (h *harness) get(path, user string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if user != "" {
		req.Header.Set(testHeader, user)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func TestIndexAsGuest(t *testing.T) {
	h := newHarness(t)
	rec := h.get("/", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"<title>Shelf | Books</title>",
		`id="nav_new"`,
		`id="nav_hot"`,
		`href="/hot/stored"`,
		`id="nav_rand"`,
		`href="/language"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %q", want)
		}
	}

	for _, unwanted := range []string{
		`id="nav_download"`,
		`id="nav_read"`,
		`id="nav_archived"`,
		`id="nav_list"`,
		"btn-upload",
	} {
		if strings.Contains(body, unwanted) {
			t.Errorf("expected guest body not to contain %q", unwanted)
		}
	}

	if !strings.Contains(body, `class="nav-item active" id="nav_new"`) {
		t.Error("expected the index entry to be active")
	}
}

func TestIndexAsMember(t *testing.T) {
	h := newHarness(t)
	rec := h.get("/", "bob")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		`id="nav_download"`,
		`href="/download/stored"`,
		`id="nav_list"`,
		`accept=".epub,.pdf"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %q", want)
		}
	}

	// bob only enabled a few sections and filters by language
	for _, unwanted := range []string{`id="nav_rated"`, `id="nav_lang"`} {
		if strings.Contains(body, unwanted) {
			t.Errorf("expected member body not to contain %q", unwanted)
		}
	}
}

func TestIndexAsAdmin(t *testing.T) {
	h := newHarness(t)
	rec := h.get("/", "ada")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `href="/downloadlist"`) {
		t.Error("expected admin download entry to link to the download list")
	}
}

func TestUnknownProxyUser(t *testing.T) {
	h := newHarness(t)
	rec := h.get("/", "mallory")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "btn-upload") {
		t.Error("expected unknown user to be served as guest")
	}
	if !strings.Contains(h.logs.String(), "unknown user in proxy header") {
		t.Errorf("expected warning in logs, got: %s", h.logs.String())
	}
}

func TestSimpleAgent(t *testing.T) {
	h := newHarness(t)
	rec := h.get("/", "bob", "User-Agent", kindleUA)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	if strings.Contains(body, `id="nav_list"`) {
		t.Error("expected books list to be hidden on e-readers")
	}
	if !strings.Contains(body, `class="simple"`) {
		t.Error("expected simple layout on e-readers")
	}
}

func TestLocalizedSidebar(t *testing.T) {
	h := newHarness(t)
	rec := h.get("/", "", "Accept-Language", "de-DE,de;q=0.9")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Beliebte Bücher") {
		t.Error("expected German sidebar labels")
	}
	if !strings.Contains(body, `<html lang="de">`) {
		t.Error("expected German document language")
	}
}

func TestAccessRules(t *testing.T) {
	tests := []struct {
		name string
		path string
		user string
		want int
	}{
		{name: "book list guest", path: "/hot/stored", want: http.StatusOK},
		{name: "book list sort", path: "/rated/new", user: "bob", want: http.StatusOK},
		{name: "member list guest", path: "/read/stored", want: http.StatusUnauthorized},
		{name: "member list member", path: "/read/stored", user: "bob", want: http.StatusOK},
		{name: "archived guest", path: "/archived/stored", want: http.StatusUnauthorized},
		{name: "table guest", path: "/table", want: http.StatusUnauthorized},
		{name: "table member", path: "/table", user: "bob", want: http.StatusOK},
		{name: "download list member", path: "/downloadlist", user: "bob", want: http.StatusForbidden},
		{name: "download list admin", path: "/downloadlist", user: "ada", want: http.StatusOK},
		{name: "view config guest", path: "/admin/viewconfig", want: http.StatusForbidden},
		{name: "view config member", path: "/admin/viewconfig", user: "bob", want: http.StatusForbidden},
		{name: "view config admin", path: "/admin/viewconfig", user: "ada", want: http.StatusOK},
		{name: "profile guest", path: "/me", want: http.StatusUnauthorized},
		{name: "profile member", path: "/me", user: "bob", want: http.StatusOK},
		{name: "overview", path: "/category", want: http.StatusOK},
		{name: "unknown", path: "/nope", want: http.StatusNotFound},
	}

	h := newHarness(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := h.get(tt.path, tt.user)
			if rec.Code != tt.want {
				t.Errorf("GET %s as %q: expected status %d, got %d", tt.path, tt.user, tt.want, rec.Code)
			}
		})
	}
}

func TestSortParam(t *testing.T) {
	h := newHarness(t)
	rec := h.get("/hot/new", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `class="nav-item active" id="nav_hot"`) {
		t.Error("expected the hot entry to be active")
	}
}

func TestProfileToggles(t *testing.T) {
	h := newHarness(t)
	rec := h.get("/me", "bob")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		`name="show_hot" checked`,
		`name="show_download" checked`,
		`name="show_rated">`,
		`id="show_archived"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %q", want)
		}
	}

	// recent books and unread books have no toggle of their own
	for _, unwanted := range []string{`id="show_new"`, `id="show_unread"`} {
		if strings.Contains(body, unwanted) {
			t.Errorf("expected body not to contain %q", unwanted)
		}
	}
}

func TestViewConfigToggles(t *testing.T) {
	h := newHarness(t)
	rec := h.get("/admin/viewconfig", "ada")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		`name="show_download" checked`,
		`name="show_list" checked`,
		`name="show_hot" checked`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %q", want)
		}
	}
}

func TestSidebarAPI(t *testing.T) {
	h := newHarness(t)
	rec := h.get("/api/sidebar", "bob")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp SidebarResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Simple {
		t.Error("expected full layout")
	}

	wantView := []string{"recent", "hot", "download", "list"}
	if strings.Join(resp.View, ",") != strings.Join(wantView, ",") {
		t.Errorf("expected view %v, got %v", wantView, resp.View)
	}

	var keys []string
	for _, e := range resp.Entries {
		keys = append(keys, e.Key)
	}
	if got := strings.Join(keys, ","); got != "new,hot,download,list" {
		t.Errorf("expected entries new,hot,download,list, got %s", got)
	}

	for _, e := range resp.Entries {
		if e.Key == "download" && e.URL != "/download/stored" {
			t.Errorf("expected download url /download/stored, got %s", e.URL)
		}
	}
}

func TestPermissionDenied(t *testing.T) {
	fsys := deniedFS{FS: render.DefaultFS(), denied: map[string]bool{listTemplate: true}}
	h := newHarness(t, WithTemplates(fsys))

	rec := h.get("/", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
	if !strings.Contains(h.logs.String(), "no permission to access template file") {
		t.Errorf("expected permission error in logs, got: %s", h.logs.String())
	}

	if n := testutil.CollectAndCount(h.reg, "shelfd_page_renders_total"); n == 0 {
		t.Error("expected render metric to be recorded")
	}
}

func TestTemplateError(t *testing.T) {
	fsys := fstest.MapFS{
		"layout.html": {Data: []byte(`{{define "layout"}}{{template "content" .}}{{end}}`)},
	}
	h := newHarness(t, WithTemplates(fsys))

	rec := h.get("/", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if !strings.Contains(h.logs.String(), "request failed") {
		t.Errorf("expected error in logs, got: %s", h.logs.String())
	}
}

func TestURLFor(t *testing.T) {
	tests := []struct {
		entry sidebar.Entry
		want  string
	}{
		{sidebar.Entry{Route: sidebar.RouteIndex}, "/"},
		{sidebar.Entry{Route: sidebar.RouteBooksList, Page: "hot"}, "/hot/stored"},
		{sidebar.Entry{Route: sidebar.RouteDownloadList, Page: "download"}, "/downloadlist"},
		{sidebar.Entry{Route: sidebar.RouteLanguages}, "/language"},
		{sidebar.Entry{Route: sidebar.RouteBooksTable}, "/table"},
		{sidebar.Entry{Route: "web.unknown"}, "#"},
	}

	for _, tt := range tests {
		if got := URLFor(tt.entry); got != tt.want {
			t.Errorf("URLFor(%s): expected %s, got %s", tt.entry.Route, tt.want, got)
		}
	}
}

func TestEveryEntryIsRouted(t *testing.T) {
	h := newHarness(t)
	admin := &sidebar.Account{Name: "ada", Admin: true}
	sb := sidebar.Build(http.Header{}, admin, sidebar.NoOverride(), nil)

	for _, e := range sb.Entries {
		url := URLFor(e)
		if url == "#" {
			t.Errorf("entry %s has no route", e.Key)
			continue
		}
		if rec := h.get(url, "ada"); rec.Code != http.StatusOK {
			t.Errorf("GET %s for entry %s: expected status 200, got %d", url, e.Key, rec.Code)
		}
	}
}
