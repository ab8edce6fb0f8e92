package api

import (
	"context"
	"net/http"
	"net/url"
	"testing"
)

func TestListFeesForcesShowAll(t *testing.T) {
	var gotQuery url.Values
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	}))

	if _, err := c.ListFees(context.Background(), nil); err != nil {
		t.Fatalf("list fees: %v", err)
	}
	if gotQuery.Get("showAll") != "true" {
		t.Errorf("showAll = %q, want true", gotQuery.Get("showAll"))
	}

	// A caller-supplied showAll=false is overridden.
	filters := url.Values{}
	filters.Set("showAll", "false")
	filters.Set("type", "MANDATORY")
	if _, err := c.ListFees(context.Background(), filters); err != nil {
		t.Fatalf("list fees filtered: %v", err)
	}
	if gotQuery.Get("showAll") != "true" {
		t.Errorf("showAll = %q after caller override attempt, want true", gotQuery.Get("showAll"))
	}
	if gotQuery.Get("type") != "MANDATORY" {
		t.Errorf("type = %q, caller filters should pass through", gotQuery.Get("type"))
	}
}

func TestSetFeeStatusPatch(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		buf := make([]byte, 64)
		n, _ := r.Body.Read(buf)
		gotBody = string(buf[:n])
		w.WriteHeader(http.StatusOK)
	}))

	if err := c.SetFeeStatus(context.Background(), 12, false); err != nil {
		t.Fatalf("set fee status: %v", err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/fees/12/status" {
		t.Errorf("request = %s %s, want PATCH /fees/12/status", gotMethod, gotPath)
	}
	if gotBody != `{"active":false}` {
		t.Errorf("body = %q", gotBody)
	}
}
