package telemetry

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestResolvePriority(t *testing.T) {
	resolver, err := NewResolver("env-board", "https://collector.example.com/errors", "")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("route param wins over everything", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/v1/boards/route-board/tasks?boardId=query-board", nil)
		req.Header.Set("x-board-id", "header-board")

		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("boardId", "route-board")
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		id, ok := resolver.Resolve(req)
		if !ok || id != "route-board" {
			t.Errorf("Resolve() = (%q, %v), want (route-board, true)", id, ok)
		}
	})

	t.Run("query param beats header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/tasks?boardId=query-board", nil)
		req.Header.Set("x-board-id", "header-board")

		id, ok := resolver.Resolve(req)
		if !ok || id != "query-board" {
			t.Errorf("Resolve() = (%q, %v), want (query-board, true)", id, ok)
		}
	})

	t.Run("header beats configured board id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/tasks", nil)
		req.Header.Set("X-Board-Id", "header-board")

		id, ok := resolver.Resolve(req)
		if !ok || id != "header-board" {
			t.Errorf("Resolve() = (%q, %v), want (header-board, true)", id, ok)
		}
	})

	t.Run("configured board id beats host pattern", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/tasks", nil)
		req.Host = "webapi5f1a2b3c4d5e6f7081920a1b.example.com"

		id, ok := resolver.Resolve(req)
		if !ok || id != "env-board" {
			t.Errorf("Resolve() = (%q, %v), want (env-board, true)", id, ok)
		}
	})
}

func TestResolveHostPattern(t *testing.T) {
	resolver, err := NewResolver("", "", "")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/tasks", nil)
	req.Host = "webapi5f1a2b3c4d5e6f7081920a1b2c3d4e5f.example.com"

	id, ok := resolver.Resolve(req)
	if !ok || id != "5f1a2b3c4d5e6f7081920a1b" {
		t.Errorf("Resolve() = (%q, %v), want (5f1a2b3c4d5e6f7081920a1b, true)", id, ok)
	}
}

func TestResolveCollectorURLPattern(t *testing.T) {
	resolver, err := NewResolver("", "https://webapiaabbccddeeff00112233aabb.example.com/errors", "")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/tasks", nil)
	req.Host = "plain.example.com"

	id, ok := resolver.Resolve(req)
	if !ok || id != "aabbccddeeff00112233aabb" {
		t.Errorf("Resolve() = (%q, %v), want (aabbccddeeff00112233aabb, true)", id, ok)
	}
}

func TestResolveAbsent(t *testing.T) {
	resolver, err := NewResolver("", "https://collector.example.com/errors", "")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/tasks", nil)
	req.Host = "plain.example.com"

	id, ok := resolver.Resolve(req)
	if ok || id != "" {
		t.Errorf("Resolve() = (%q, %v), want absent", id, ok)
	}
}

func TestResolveCaseInsensitivePattern(t *testing.T) {
	resolver, err := NewResolver("", "", "")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/tasks", nil)
	req.Host = "WebAPI5F1A2B3C4D5E6F7081920A1B2C.example.com"

	id, ok := resolver.Resolve(req)
	if !ok || id != "5F1A2B3C4D5E6F7081920A1B" {
		t.Errorf("Resolve() = (%q, %v), want hex segment", id, ok)
	}
}

func TestResolveCustomPattern(t *testing.T) {
	resolver, err := NewResolver("", "", `tenant-([a-z0-9]+)\.`)
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/tasks", nil)
	req.Host = "tenant-acme42.example.com"

	id, ok := resolver.Resolve(req)
	if !ok || id != "acme42" {
		t.Errorf("Resolve() = (%q, %v), want (acme42, true)", id, ok)
	}
}

func TestResolveInvalidPattern(t *testing.T) {
	if _, err := NewResolver("", "", "(unclosed"); err == nil {
		t.Error("NewResolver() accepted an invalid pattern")
	}
}

func TestResolveStatic(t *testing.T) {
	t.Run("configured board id", func(t *testing.T) {
		resolver, _ := NewResolver("env-board", "", "")
		id, ok := resolver.ResolveStatic()
		if !ok || id != "env-board" {
			t.Errorf("ResolveStatic() = (%q, %v), want (env-board, true)", id, ok)
		}
	})

	t.Run("collector URL pattern", func(t *testing.T) {
		resolver, _ := NewResolver("", "https://webapiaabbccddeeff00112233aabb.example.com", "")
		id, ok := resolver.ResolveStatic()
		if !ok || id != "aabbccddeeff00112233aabb" {
			t.Errorf("ResolveStatic() = (%q, %v), want hex segment", id, ok)
		}
	})

	t.Run("absent", func(t *testing.T) {
		resolver, _ := NewResolver("", "", "")
		if id, ok := resolver.ResolveStatic(); ok {
			t.Errorf("ResolveStatic() = (%q, true), want absent", id)
		}
	})
}
