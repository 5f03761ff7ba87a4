package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookcourier-backend/internal/domains/wishlist/model"
	"bookcourier-backend/internal/domains/wishlist/service"
	"bookcourier-backend/internal/shared/middleware"
	"bookcourier-backend/internal/shared/response"
)

// =====================================================
// WISHLIST HANDLER
// =====================================================
type WishlistHandler struct {
	wishlistService service.WishlistService
}

func NewWishlistHandler(wishlistService service.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
	}
}

func (h *WishlistHandler) Add(c *gin.Context) {
	var req model.AddToWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	entry, err := h.wishlistService.Add(c.Request.Context(), middleware.CallerEmail(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, entry)
}

func (h *WishlistHandler) List(c *gin.Context) {
	items, err := h.wishlistService.List(c.Request.Context(), middleware.CallerEmail(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, items)
}

func (h *WishlistHandler) Remove(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	if err := h.wishlistService.Remove(c.Request.Context(), middleware.CallerEmail(c), bookID); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "removed from wishlist"})
}
