package handler

import (
	"net/http"

	domainUser "hamrah-bazaar/internal/domain/user"
	"hamrah-bazaar/internal/usecase/listing"
	"hamrah-bazaar/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ListingHandler struct {
	service *listing.Service
}

func NewListingHandler(service *listing.Service) *ListingHandler {
	return &ListingHandler{service: service}
}

// RegisterPublicRoutes mounts the unauthenticated browse and search views.
func (h *ListingHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	listings := router.Group("/listings")
	{
		listings.GET("", h.Query)
		listings.GET("/:listing_id", h.Get)
	}
}

// RegisterProtectedRoutes mounts the authenticated owner and buyer routes.
func (h *ListingHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	listings := router.Group("/listings")
	{
		listings.POST("", h.Create)
		listings.PUT("/:listing_id", h.Update)
		listings.DELETE("/:listing_id", h.Delete)
		listings.POST("/:listing_id/report", h.Report)
	}

	router.GET("/my-listings", h.MyListings)

	favorites := router.Group("/favorites")
	{
		favorites.GET("", h.ListFavorites)
		favorites.POST("/:listing_id", h.AddFavorite)
		favorites.DELETE("/:listing_id", h.RemoveFavorite)
	}
}

// RegisterAdminRoutes mounts the moderation surface.
func (h *ListingHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/listings/pending", h.ListPending)
	router.POST("/listings/:listing_id/approve", h.Approve)
	router.POST("/listings/:listing_id/reject", h.Reject)
	router.GET("/reports", h.ListReports)
}

func (h *ListingHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req listing.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Listing submitted for review", created)
}

func (h *ListingHandler) Get(c *gin.Context) {
	listingID, ok := pathUUID(c, "listing_id")
	if !ok {
		return
	}

	// Identity is optional here: anonymous readers see approved listings,
	// owners and admins also see pending ones.
	requesterID := uuid.Nil
	if v, exists := c.Get("userID"); exists {
		if id, idOK := v.(uuid.UUID); idOK {
			requesterID = id
		}
	}
	isAdmin := currentUserRole(c) == domainUser.RoleAdmin

	found, err := h.service.Get(c.Request.Context(), listingID, requesterID, isAdmin)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Listing retrieved successfully", found)
}

func (h *ListingHandler) Query(c *gin.Context) {
	var req listing.QueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	listings, err := h.service.Query(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Listings retrieved successfully", listings)
}

func (h *ListingHandler) MyListings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	listings, err := h.service.ListOwner(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Listings retrieved successfully", listings)
}

func (h *ListingHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	listingID, ok := pathUUID(c, "listing_id")
	if !ok {
		return
	}

	var req listing.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), listingID, userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Listing updated successfully", updated)
}

func (h *ListingHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	listingID, ok := pathUUID(c, "listing_id")
	if !ok {
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), listingID, userID, currentUserRole(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !deleted {
		utils.ErrorResponse(c, http.StatusNotFound, "Listing not found")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Listing deleted successfully", nil)
}

func (h *ListingHandler) Report(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	listingID, ok := pathUUID(c, "listing_id")
	if !ok {
		return
	}

	var req listing.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.Report(c.Request.Context(), userID, listingID, &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Report submitted successfully", nil)
}

func (h *ListingHandler) AddFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	listingID, ok := pathUUID(c, "listing_id")
	if !ok {
		return
	}

	if err := h.service.AddFavorite(c.Request.Context(), userID, listingID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Listing added to favorites", nil)
}

func (h *ListingHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	listingID, ok := pathUUID(c, "listing_id")
	if !ok {
		return
	}

	if err := h.service.RemoveFavorite(c.Request.Context(), userID, listingID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Listing removed from favorites", nil)
}

func (h *ListingHandler) ListFavorites(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	listings, err := h.service.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Favorites retrieved successfully", listings)
}

func (h *ListingHandler) ListPending(c *gin.Context) {
	listings, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Pending listings retrieved successfully", listings)
}

func (h *ListingHandler) Approve(c *gin.Context) {
	listingID, ok := pathUUID(c, "listing_id")
	if !ok {
		return
	}

	approved, err := h.service.Approve(c.Request.Context(), listingID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Listing approved", approved)
}

func (h *ListingHandler) Reject(c *gin.Context) {
	listingID, ok := pathUUID(c, "listing_id")
	if !ok {
		return
	}

	if err := h.service.Reject(c.Request.Context(), listingID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Listing rejected", nil)
}

func (h *ListingHandler) ListReports(c *gin.Context) {
	reports, err := h.service.ListReports(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reports retrieved successfully", reports)
}
