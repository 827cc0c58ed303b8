package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewCatalogHandler(NewCatalogUseCase(NewMemoryCatalogRepository()))

	r := gin.New()
	api := r.Group("/api/catalog")
	api.GET("/products", handler.ListProducts)
	api.POST("/products", handler.AddProduct)
	api.GET("/orders", handler.ListOrderRecords)
	api.POST("/orders", handler.RecordOrder)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddProductHandler_Validation(t *testing.T) {
	r := newTestRouter()

	w := doJSON(r, http.MethodPost, "/api/catalog/products", `{"name":"","unitPrice":500}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/catalog/products", `{"name":"Widget","unitPrice":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/catalog/products", `{"name":"Widget","description":"a widget","unitPrice":500}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Widget","description":"a widget","unitPrice":500}`, w.Body.String())
}

func TestRecordOrderHandler(t *testing.T) {
	r := newTestRouter()

	w := doJSON(r, http.MethodPost, "/api/catalog/orders",
		`{"id":12,"customer":"alice","productId":7,"quantity":3,"placedOn":"2025-03-14"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"placedOn":"2025-03-14"`)

	w = doJSON(r, http.MethodGet, "/api/catalog/orders", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"orderId":12`)
}
