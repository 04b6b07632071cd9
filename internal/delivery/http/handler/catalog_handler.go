package handler

import (
	"net/http"

	"hamrah-bazaar/internal/reference"
	"hamrah-bazaar/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the fixed reference lists the client renders its
// filters and forms from.
type CatalogHandler struct {
	catalog *reference.Catalog
}

func NewCatalogHandler(catalog *reference.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/categories", h.Categories)
	router.GET("/cities", h.Cities)
	router.GET("/currencies", h.Currencies)
}

func (h *CatalogHandler) Categories(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Categories retrieved successfully", h.catalog.Categories())
}

func (h *CatalogHandler) Cities(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Cities retrieved successfully", h.catalog.Cities())
}

func (h *CatalogHandler) Currencies(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Currencies retrieved successfully", h.catalog.Currencies())
}
