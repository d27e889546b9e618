package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fillwire.dev/fillwire/registry"
)

func TestHandleInsertAndGetTag(t *testing.T) {
	reg := registry.NewMemoryRegistry(0)
	s := New(reg)

	body := `{"id":1,"name":"pressure","type":"Float","access":"ReadWrite","value":"1.5"}`
	req := httptest.NewRequest(http.MethodPost, "/tags", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("insert status = %d, body = %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/tags/1", nil)
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var got tagDTO
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "pressure" || got.Value != "1.5" {
		t.Fatalf("got %+v", got)
	}
}

func TestHandleGetUnknownTag(t *testing.T) {
	reg := registry.NewMemoryRegistry(0)
	s := New(reg)
	req := httptest.NewRequest(http.MethodGet, "/tags/999", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", rec.Code)
	}
}

func TestHandleUpdateValue(t *testing.T) {
	reg := registry.NewMemoryRegistry(0)
	tag, err := registry.NewTag(1, "x", registry.Integer, registry.ReadWrite, registry.IntValue(0))
	if err != nil {
		t.Fatal(err)
	}
	reg.Insert(tag)
	s := New(reg)

	req := httptest.NewRequest(http.MethodPut, "/tags/1/value", strings.NewReader(`{"value":"42"}`))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, body %s", rec.Code, rec.Body.String())
	}
	got, err := reg.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	if got.Value().(registry.IntValue) != 42 {
		t.Fatalf("got %v, want 42", got.Value())
	}
}

func TestHandleRemoveTagIsIdempotent(t *testing.T) {
	reg := registry.NewMemoryRegistry(0)
	tag, _ := registry.NewTag(1, "x", registry.Integer, registry.ReadWrite, registry.IntValue(0))
	reg.Insert(tag)
	s := New(reg)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodDelete, "/tags/1", nil)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("delete %d: got %d", i, rec.Code)
		}
	}
	if _, err := reg.Get(1); err != registry.NotFound {
		t.Fatal("tag still present after delete")
	}
}

func TestHandleClientCount(t *testing.T) {
	reg := registry.NewMemoryRegistry(0)
	reg.IncrClientCount(3)
	s := New(reg)

	req := httptest.NewRequest(http.MethodGet, "/clients/count", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	var body map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["count"] != 3 {
		t.Fatalf("got %v, want count=3", body)
	}
}

func TestHandleVersion(t *testing.T) {
	reg := registry.NewMemoryRegistry(0)
	s := New(reg)
	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.Len() == 0 {
		t.Fatalf("got %d, body %q", rec.Code, rec.Body.String())
	}
}
