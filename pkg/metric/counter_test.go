package metric

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPagesCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPages(reg)

	p.Renders.Increment("index.html", "200")
	p.Renders.Increment("index.html", "200")
	p.Renders.Increment("table.html", "403")
	p.Sidebars.Increment("simple", "none")

	if got := testutil.ToFloat64(p.Renders.Vec().WithLabelValues("index.html", "200")); got != 2 {
		t.Fatalf("index renders = %v", got)
	}
	if got := testutil.ToFloat64(p.Renders.Vec().WithLabelValues("table.html", "403")); got != 1 {
		t.Fatalf("table renders = %v", got)
	}
	if got := testutil.ToFloat64(p.Sidebars.Vec().WithLabelValues("simple", "none")); got != 1 {
		t.Fatalf("sidebars = %v", got)
	}
}

func TestNewPagesTwiceOnSameRegistryPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPages(reg)

	defer func() {
		if recover() == nil {
			t.Fatal("expected duplicate registration to panic")
		}
	}()
	NewPages(reg)
}

func TestGetHandlerForRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPages(reg)
	p.Renders.Increment("index.html", "200")

	rec := httptest.NewRecorder()
	GetHandlerForRegistry(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `shelfd_page_renders_total{status="200",template="index.html"} 1`) {
		t.Fatalf("metric missing from output:\n%s", body)
	}
}
