package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCanonicalPathCollapsesStaticRequests(t *testing.T) {
	if got := canonicalPath("/login"); got != "/login" {
		t.Fatalf("expected routed path to pass through, got %q", got)
	}
	for _, p := range []string{"/", "/index.html", "/assets/app.css", "/anything/else.js"} {
		if got := canonicalPath(p); got != "/static" {
			t.Fatalf("expected %q to collapse to /static, got %q", p, got)
		}
	}
}

func TestInstrumentHandlerBoundsPathLabels(t *testing.T) {
	handler := InstrumentHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Many distinct static URLs must not each become a label value.
	for _, target := range []string{"/a.html", "/b.html", "/img/c.png", "/health"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: unexpected status %d", target, rec.Code)
		}
	}

	series, err := Registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range series {
		if mf.GetName() != "siteapi_http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() != "path" {
					continue
				}
				if _, ok := apiPaths[l.GetValue()]; !ok && l.GetValue() != "/static" {
					t.Fatalf("unexpected path label %q", l.GetValue())
				}
			}
		}
	}
}
