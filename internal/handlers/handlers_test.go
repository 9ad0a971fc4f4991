// handlers_test.go
//
// A construction materials catalog service: stores, brands, items, inventory and material attributes
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of materials-catalog.
// materials-catalog is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// materials-catalog is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with materials-catalog.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/materials-catalog/internal/config"
	"github.com/localnerve/materials-catalog/internal/database"
	"github.com/localnerve/materials-catalog/internal/events"
	"github.com/localnerve/materials-catalog/internal/handlers"
	"github.com/localnerve/materials-catalog/internal/middleware"
	"github.com/localnerve/materials-catalog/internal/services"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type memoryCache struct {
	mu          sync.Mutex
	generation  int64
	entries     map[string][]byte
	invalidated int
	// beforeSet runs once ahead of the next fill
	beforeSet func()
}

func (m *memoryCache) entryKey(generation int64, key string) string {
	return fmt.Sprintf("%d:%s", generation, key)
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.entries[m.entryKey(m.generation, key)]
	if !ok {
		return m.generation, false, nil
	}
	return m.generation, true, json.Unmarshal(data, dest)
}

func (m *memoryCache) Set(_ context.Context, generation int64, key string, value interface{}) error {
	m.mu.Lock()
	hook := m.beforeSet
	m.beforeSet = nil
	m.mu.Unlock()
	if hook != nil {
		hook()
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if generation != m.generation {
		return nil
	}
	m.entries[m.entryKey(generation, key)] = data
	return nil
}

func (m *memoryCache) Invalidate(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generation++
	m.invalidated++
	return nil
}

func (m *memoryCache) Ping(context.Context) error { return nil }
func (m *memoryCache) Close() error               { return nil }

type testServer struct {
	app    *fiber.App
	db     *gorm.DB
	events *recordingPublisher
	cache  *memoryCache
}

// setupTestDB opens a migrated SQLite database in a temp dir
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		DBType:            "sqlite",
		DBDatabase:        filepath.Join(t.TempDir(), "catalog.db"),
		DBConnectionLimit: 1,
		DBLogLevel:        "silent",
	}
	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func newTestServer(t *testing.T, policy services.CategoryPolicy, validator services.SessionValidator) *testServer {
	t.Helper()
	db := setupTestDB(t)
	pub := &recordingPublisher{}
	mc := &memoryCache{entries: map[string][]byte{}}

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	h := handlers.NewCatalogHandler(db, policy, mc, pub)
	h.Register(app.Group("/api/catalog"), middleware.AuthAdmin(validator))
	app.Get("/health", h.Health(&config.Config{DBType: "sqlite", DBDatabase: "catalog.db"}))

	return &testServer{app: app, db: db, events: pub, cache: mc}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response of %s %s: %v", method, path, err)
	}
	return resp.StatusCode, result
}

// create posts body and returns the created id
func (s *testServer) create(t *testing.T, path string, body interface{}) uint64 {
	t.Helper()
	status, result := s.do(t, http.MethodPost, path, body)
	if status != fiber.StatusCreated {
		t.Fatalf("POST %s: status %d, body %v", path, status, result)
	}
	return uint64(result["id"].(float64))
}

func TestCreateAndGetCategory(t *testing.T) {
	s := newTestServer(t, services.ExactCategoryPolicy, nil)

	id := s.create(t, "/api/catalog/categories", map[string]string{"name": "Cement"})
	status, result := s.do(t, http.MethodGet, "/api/catalog/categories/1", nil)
	if status != fiber.StatusOK {
		t.Fatalf("Expected status 200, got %d", status)
	}
	if result["label"] != "Cement" || result["path"] != "category/1" || id != 1 {
		t.Errorf("unexpected view: %v", result)
	}

	if len(s.events.events) != 1 || s.events.events[0].Path != "category/1" {
		t.Errorf("events = %+v", s.events.events)
	}
	if s.cache.invalidated != 1 {
		t.Errorf("cache invalidated %d times, want 1", s.cache.invalidated)
	}
}

func TestDuplicateNameConflict(t *testing.T) {
	s := newTestServer(t, services.ExactCategoryPolicy, nil)
	s.create(t, "/api/catalog/stores", map[string]string{"name": "Depot"})

	status, result := s.do(t, http.MethodPost, "/api/catalog/stores", map[string]string{"name": "Depot"})
	if status != fiber.StatusConflict {
		t.Fatalf("Expected status 409, got %d", status)
	}
	if result["type"] != "catalog.validation.unique" || result["ok"] != false {
		t.Errorf("unexpected error envelope: %v", result)
	}
}

func TestInvalidInput(t *testing.T) {
	s := newTestServer(t, services.ExactCategoryPolicy, nil)

	status, result := s.do(t, http.MethodPost, "/api/catalog/stores", map[string]string{"location": "nowhere"})
	if status != fiber.StatusBadRequest || result["type"] != "catalog.validation.input" {
		t.Errorf("missing name: %d %v", status, result)
	}

	status, _ = s.do(t, http.MethodGet, "/api/catalog/stores/abc", nil)
	if status != fiber.StatusBadRequest {
		t.Errorf("bad id: expected 400, got %d", status)
	}

	status, _ = s.do(t, http.MethodGet, "/api/catalog/stores/77", nil)
	if status != fiber.StatusNotFound {
		t.Errorf("unknown id: expected 404, got %d", status)
	}

	status, result = s.do(t, http.MethodPost, "/api/catalog/brands", map[string]interface{}{"name": "Orphan", "category_id": 9})
	if status != fiber.StatusUnprocessableEntity || result["type"] != "catalog.validation.reference" {
		t.Errorf("unknown category: %d %v", status, result)
	}
}

func TestInlineCreateAcceptsObjectOrArray(t *testing.T) {
	s := newTestServer(t, services.ExactCategoryPolicy, nil)
	s.create(t, "/api/catalog/categories", map[string]string{"name": "Cement"})

	status, result := s.do(t, http.MethodPost, "/api/catalog/categories/1/brands", []map[string]string{
		{"name": "Maple Leaf"},
		{"name": "Lucky"},
	})
	if status != fiber.StatusCreated || result["count"].(float64) != 2 {
		t.Fatalf("array: %d %v", status, result)
	}

	status, result = s.do(t, http.MethodPost, "/api/catalog/brands/1/items", map[string]string{"name": "OPC Bag", "brand_id": "2"})
	if status != fiber.StatusCreated {
		t.Fatalf("object: %d %v", status, result)
	}
	items := result["items"].([]interface{})
	if items[0].(map[string]interface{})["label"] != "OPC Bag (Maple Leaf)" {
		t.Errorf("path brand id must win: %v", items[0])
	}

	// one bad row rolls back the batch
	status, _ = s.do(t, http.MethodPost, "/api/catalog/categories/1/brands", []map[string]string{
		{"name": "Bestway"},
		{"name": "Lucky"},
	})
	if status != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d", status)
	}
	_, result = s.do(t, http.MethodGet, "/api/catalog/categories/1/brands", nil)
	if result["count"].(float64) != 2 {
		t.Errorf("batch was not rolled back: %v", result)
	}
}

func TestAttributeCategoryChecks(t *testing.T) {
	s := newTestServer(t, services.ExactCategoryPolicy, nil)
	s.create(t, "/api/catalog/categories", map[string]string{"name": "Bricks"})
	s.create(t, "/api/catalog/brands", map[string]interface{}{"name": "Kiln Co", "category_id": 1})
	s.create(t, "/api/catalog/items", map[string]interface{}{"name": "Red Clay Brick", "brand_id": 1})

	brick := map[string]interface{}{
		"item_id":                  "1",
		"brick_type":               "Clay",
		"dimensions_mm":            "230x110x75",
		"compressive_strength_mpa": "10.5",
		"water_absorption_percent": 12,
	}

	status, result := s.do(t, http.MethodPost, "/api/catalog/attributes/brick/validate", brick)
	if status != fiber.StatusUnprocessableEntity || result["type"] != "catalog.validation.category" {
		t.Errorf("validate: %d %v", status, result)
	}
	status, _ = s.do(t, http.MethodPost, "/api/catalog/attributes/brick", brick)
	if status != fiber.StatusUnprocessableEntity {
		t.Errorf("create: expected 422, got %d", status)
	}

	status, result = s.do(t, http.MethodGet, "/api/catalog/attributes/brick/choices", nil)
	if status != fiber.StatusOK || result["count"].(float64) != 1 {
		t.Errorf("choices: %d %v", status, result)
	}

	status, _ = s.do(t, http.MethodGet, "/api/catalog/attributes/store", nil)
	if status != fiber.StatusNotFound {
		t.Errorf("non-attribute kind: expected 404, got %d", status)
	}
}

func TestAttributesNormalizedPolicy(t *testing.T) {
	s := newTestServer(t, services.CategoryPolicy{Mode: config.CategoryMatchNormalized}, nil)
	s.create(t, "/api/catalog/categories", map[string]string{"name": "Cables"})
	s.create(t, "/api/catalog/brands", map[string]interface{}{"name": "Pakistan Cables", "category_id": 1})
	s.create(t, "/api/catalog/items", map[string]interface{}{"name": "3/29 Wire", "brand_id": 1})

	id := s.create(t, "/api/catalog/attributes/cable", map[string]interface{}{
		"item_id":                1,
		"cable_type":             "Single core",
		"conductor_material":     "Copper",
		"cross_section_area_mm2": "2.5",
		"voltage_rating_v":       450,
		"insulation_type":        "PVC",
	})

	status, result := s.do(t, http.MethodGet, "/api/catalog/resolve/cable/1", nil)
	if status != fiber.StatusOK || result["label"] != "Cable Specs - 3/29 Wire" || id != 1 {
		t.Errorf("resolve: %d %v", status, result)
	}
}

func TestAttributesRejectIncompleteBodies(t *testing.T) {
	s := newTestServer(t, services.ExactCategoryPolicy, nil)
	s.create(t, "/api/catalog/categories", map[string]string{"name": "Steel"})
	s.create(t, "/api/catalog/brands", map[string]interface{}{"name": "Amreli", "category_id": 1})
	s.create(t, "/api/catalog/items", map[string]interface{}{"name": "Grade 60 Rebar", "brand_id": 1})

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"unknown key", map[string]interface{}{
			"item_id": 1, "steel_type": "Deformed", "diameter_mm": 12, "tensile_strength_mpa": 420, "grade": "60",
		}},
		{"missing integer", map[string]interface{}{
			"item_id": 1, "steel_type": "Deformed", "diameter_mm": 12,
		}},
		{"null integer", map[string]interface{}{
			"item_id": 1, "steel_type": "Deformed", "diameter_mm": 12, "tensile_strength_mpa": nil,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, result := s.do(t, http.MethodPost, "/api/catalog/attributes/steel", tc.body)
			if status != fiber.StatusBadRequest {
				t.Errorf("expected 400, got %d %v", status, result)
			}
		})
	}

	var count int64
	if err := s.db.Table("steel_attributes").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("%d steel records stored from rejected bodies", count)
	}

	s.create(t, "/api/catalog/attributes/steel", map[string]interface{}{
		"item_id": 1, "steel_type": "Deformed", "diameter_mm": 12, "tensile_strength_mpa": 420,
	})
}

func TestDeleteCategoryCascadesThroughAPI(t *testing.T) {
	s := newTestServer(t, services.ExactCategoryPolicy, nil)
	s.create(t, "/api/catalog/categories", map[string]string{"name": "Cement"})
	s.create(t, "/api/catalog/brands", map[string]interface{}{"name": "Lucky", "category_id": 1})
	s.create(t, "/api/catalog/items", map[string]interface{}{"name": "Lucky OPC", "brand_id": 1})
	s.create(t, "/api/catalog/stores", map[string]string{"name": "Depot"})
	s.create(t, "/api/catalog/store-items", map[string]interface{}{"store_id": 1, "item_id": 1, "price": "1150.00"})

	status, result := s.do(t, http.MethodDelete, "/api/catalog/categories/1", nil)
	if status != fiber.StatusOK || result["path"] != "category/1" {
		t.Fatalf("delete: %d %v", status, result)
	}
	for _, path := range []string{"/api/catalog/brands/1", "/api/catalog/items/1", "/api/catalog/store-items/1"} {
		if status, _ := s.do(t, http.MethodGet, path, nil); status != fiber.StatusNotFound {
			t.Errorf("GET %s: expected 404, got %d", path, status)
		}
	}
	if status, _ := s.do(t, http.MethodGet, "/api/catalog/stores/1", nil); status != fiber.StatusOK {
		t.Errorf("store should survive, got %d", status)
	}
}

func TestResolveUsesCacheUntilWrite(t *testing.T) {
	s := newTestServer(t, services.ExactCategoryPolicy, nil)
	s.create(t, "/api/catalog/stores", map[string]string{"name": "Depot"})

	req := httptest.NewRequest(http.MethodGet, "/api/catalog/resolve/store/1", nil)
	resp, _ := s.app.Test(req, -1)
	if resp.Header.Get("X-Cache") != "MISS" {
		t.Errorf("first resolve: X-Cache = %q", resp.Header.Get("X-Cache"))
	}
	resp, _ = s.app.Test(httptest.NewRequest(http.MethodGet, "/api/catalog/resolve/store/1", nil), -1)
	if resp.Header.Get("X-Cache") != "HIT" {
		t.Errorf("second resolve: X-Cache = %q", resp.Header.Get("X-Cache"))
	}

	s.do(t, http.MethodPut, "/api/catalog/stores/1", map[string]string{"name": "Depot Renamed"})
	status, result := s.do(t, http.MethodGet, "/api/catalog/resolve/store/1", nil)
	if status != fiber.StatusOK || result["label"] != "Depot Renamed" {
		t.Errorf("resolve after write: %d %v", status, result)
	}
}

func TestResolveFillRacingWriteIsNotServed(t *testing.T) {
	s := newTestServer(t, services.ExactCategoryPolicy, nil)
	s.create(t, "/api/catalog/stores", map[string]string{"name": "Depot"})

	// a rename commits after the resolve read the row but before it filled the cache
	s.cache.beforeSet = func() {
		if err := s.db.Exec("UPDATE stores SET name = ? WHERE id = ?", "Depot Renamed", 1).Error; err != nil {
			t.Errorf("rename: %v", err)
		}
		s.cache.Invalidate(context.Background())
	}
	status, result := s.do(t, http.MethodGet, "/api/catalog/resolve/store/1", nil)
	if status != fiber.StatusOK || result["label"] != "Depot" {
		t.Fatalf("racing resolve: %d %v", status, result)
	}

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/api/catalog/resolve/store/1", nil), -1)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	defer resp.Body.Close()
	if resp.Header.Get("X-Cache") != "MISS" {
		t.Errorf("resolve after racing write: X-Cache = %q", resp.Header.Get("X-Cache"))
	}
	var view map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view["label"] != "Depot Renamed" {
		t.Errorf("label = %v, want the renamed store", view["label"])
	}
}

type rejectingValidator struct{}

func (rejectingValidator) ValidateSession(string, []string) (*services.SessionInfo, error) {
	return nil, errors.New("session is not valid")
}

func TestAdminRoutesRequireSession(t *testing.T) {
	s := newTestServer(t, services.ExactCategoryPolicy, rejectingValidator{})

	status, result := s.do(t, http.MethodPost, "/api/catalog/stores", map[string]string{"name": "Depot"})
	if status != fiber.StatusForbidden || result["type"] != "catalog.authorization.admin" {
		t.Errorf("no cookie: %d %v", status, result)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/catalog/stores", bytes.NewReader([]byte(`{"name":"Depot"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "cookie_session", Value: "expired"})
	resp, err := s.app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("bad session: expected 403, got %d", resp.StatusCode)
	}

	if status, _ := s.do(t, http.MethodGet, "/api/catalog/stores", nil); status != fiber.StatusOK {
		t.Errorf("reads stay public, got %d", status)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, services.ExactCategoryPolicy, nil)

	status, body := s.do(t, http.MethodGet, "/health", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, body %v", status, body)
	}
	if body["status"] != "healthy" || body["database"] != "ok" {
		t.Errorf("health = %v", body)
	}
	if body["authorizer"] != "disabled" || body["cache"] != "disabled" {
		t.Errorf("optional services = %v / %v, want disabled", body["authorizer"], body["cache"])
	}
}
