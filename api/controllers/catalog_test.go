package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/garagelab/modstudio-backend/internal/catalog"
	"github.com/garagelab/modstudio-backend/pkg/enums"
)

type stubCatalogSvc struct {
	page     catalog.ModificationPageDTO
	mod      catalog.ModificationDTO
	err      error
	captured *catalog.ListFilter
	created  *catalog.UpsertModificationInput
}

func (s *stubCatalogSvc) List(_ context.Context, filter catalog.ListFilter) (catalog.ModificationPageDTO, error) {
	if s.captured != nil {
		*s.captured = filter
	}
	return s.page, s.err
}

func (s *stubCatalogSvc) Get(context.Context, uuid.UUID) (catalog.ModificationDTO, error) {
	return s.mod, s.err
}

func (s *stubCatalogSvc) Create(_ context.Context, input catalog.UpsertModificationInput) (catalog.ModificationDTO, error) {
	if s.created != nil {
		*s.created = input
	}
	return s.mod, s.err
}

func (s *stubCatalogSvc) Update(context.Context, uuid.UUID, catalog.UpsertModificationInput) (catalog.ModificationDTO, error) {
	return s.mod, s.err
}

func (s *stubCatalogSvc) Deactivate(context.Context, uuid.UUID) error {
	return s.err
}

func TestCatalogListRejectsUnknownCategory(t *testing.T) {
	handler := CatalogList(&stubCatalogSvc{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/modifications?category=turbocharged", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCatalogListPassesCategoryFilter(t *testing.T) {
	var captured catalog.ListFilter
	svc := &stubCatalogSvc{captured: &captured}
	handler := CatalogList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/modifications?category=performance&limit=5", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if captured.Category == nil || *captured.Category != enums.ModCategoryPerformance {
		t.Fatalf("category filter not applied: %+v", captured)
	}
	if captured.Limit != 5 || captured.IncludeInactive {
		t.Fatalf("unexpected filter %+v", captured)
	}
}

func TestAdminCatalogListIncludesInactive(t *testing.T) {
	var captured catalog.ListFilter
	handler := AdminCatalogList(&stubCatalogSvc{captured: &captured}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/catalog/modifications", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if !captured.IncludeInactive {
		t.Fatal("expected inactive entries to be requested")
	}
}

func TestAdminCatalogCreateRejectsBadPrice(t *testing.T) {
	handler := AdminCatalogCreate(&stubCatalogSvc{}, nil)

	body := `{"name":"Cold Air Intake","category":"performance","price":"twelve"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/catalog/modifications", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAdminCatalogCreateSuccess(t *testing.T) {
	var created catalog.UpsertModificationInput
	svc := &stubCatalogSvc{
		mod:     catalog.ModificationDTO{ID: uuid.New(), Name: "Cold Air Intake"},
		created: &created,
	}
	handler := AdminCatalogCreate(svc, nil)

	body := `{"name":"Cold Air Intake","category":"performance","price":"349.99","description":"High-flow intake kit"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/catalog/modifications", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if created.Category != enums.ModCategoryPerformance {
		t.Fatalf("unexpected category %q", created.Category)
	}
	if !created.Price.Equal(decimal.RequireFromString("349.99")) {
		t.Fatalf("unexpected price %s", created.Price)
	}

	var envelope struct {
		Data catalog.ModificationDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Name != "Cold Air Intake" {
		t.Fatalf("unexpected body %+v", envelope.Data)
	}
}

func TestAdminCatalogDeactivate(t *testing.T) {
	handler := AdminCatalogDeactivate(&stubCatalogSvc{}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/catalog/modifications/x", nil)
	req = withURLParam(req, "modificationId", uuid.NewString())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}
