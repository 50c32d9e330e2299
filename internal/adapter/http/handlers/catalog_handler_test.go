package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/adapter/http/handlers/mocks"
	"storefront/internal/domain/entities"
	"storefront/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func newCatalogRouter(uc usecase.ICatalogUseCase) *gin.Engine {
	h := NewCatalogHandler(uc)
	r := gin.New()
	r.GET("/v1/products", h.ListProducts)
	r.GET("/v1/products/:id", h.GetProduct)
	return r
}

func TestCatalogHandler_ListProducts(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("passes query", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICatalogUseCase(ctrl)
		r := newCatalogRouter(uc)

		uc.EXPECT().List(gomock.Any(), "fridge", 5, 10).Return(usecase.ProductPage{
			Items: []entities.Product{{
				ID: "p1", Title: "Fridge", Price: decimal.RequireFromString("429.9"), InventoryCount: 2, Status: entities.ProductStatusActive,
			}},
			Total: 11,
		}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/products?q=fridge&limit=5&offset=10", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := decodeBody(t, w)
		items, ok := body["items"].([]any)
		if !ok || len(items) != 1 || body["total"] != float64(11) {
			t.Fatalf("unexpected body %v", body)
		}
		if p := items[0].(map[string]any); p["price"] != "429.90" || p["inStock"] != true {
			t.Fatalf("unexpected product %v", p)
		}
	})

	t.Run("bad limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICatalogUseCase(ctrl)
		r := newCatalogRouter(uc)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/products?limit=ten", nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICatalogUseCase(ctrl)
		r := newCatalogRouter(uc)

		uc.EXPECT().List(gomock.Any(), "", 0, 0).Return(usecase.ProductPage{}, errors.New("db"))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/products", nil))
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestCatalogHandler_GetProduct(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICatalogUseCase(ctrl)
		r := newCatalogRouter(uc)

		uc.EXPECT().Get(gomock.Any(), "p1").Return(entities.Product{ID: "p1", Title: "Fridge", Status: entities.ProductStatusActive}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/products/p1", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["id"] != "p1" || body["inStock"] != false {
			t.Fatalf("unexpected body %v", body)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICatalogUseCase(ctrl)
		r := newCatalogRouter(uc)

		uc.EXPECT().Get(gomock.Any(), "draft").Return(entities.Product{}, usecase.ErrProductNotFound)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/products/draft", nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
