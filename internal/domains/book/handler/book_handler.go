package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookcourier-backend/internal/domains/book/model"
	"bookcourier-backend/internal/domains/book/service"
	"bookcourier-backend/internal/shared/middleware"
	"bookcourier-backend/internal/shared/response"
)

// =====================================================
// BOOK HANDLER
// =====================================================
type BookHandler struct {
	bookService service.BookService
}

func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{
		bookService: bookService,
	}
}

// List returns the catalog. The public listing only shows published books;
// a librarian filter is available for the dashboard.
func (h *BookHandler) List(c *gin.Context) {
	var req model.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	if req.Status == "" {
		req.Status = model.BookStatusPublished
	}

	books, err := h.bookService.ListBooks(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, books)
}

func (h *BookHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	book, err := h.bookService.GetBook(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, book)
}

func (h *BookHandler) Create(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_ARGUMENT", "validation failed", err.Error())
		return
	}

	book, err := h.bookService.CreateBook(c.Request.Context(), middleware.CallerEmail(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, book)
}

func (h *BookHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_ARGUMENT", "validation failed", err.Error())
		return
	}

	book, err := h.bookService.UpdateBook(c.Request.Context(), middleware.CallerEmail(c), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, book)
}

func (h *BookHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	if err := h.bookService.DeleteBook(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "book and related orders deleted"})
}

// UploadCover accepts a multipart "cover" file, resizes it and stores it.
func (h *BookHandler) UploadCover(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	file, _, err := c.Request.FormFile("cover")
	if err != nil {
		response.BadRequest(c, "cover file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "cannot read cover file")
		return
	}

	url, err := h.bookService.UploadCover(c.Request.Context(), middleware.CallerEmail(c), id, data)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cover_url": url})
}

// BulkImport accepts a multipart "file" spreadsheet.
func (h *BookHandler) BulkImport(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "spreadsheet file is required")
		return
	}
	defer file.Close()

	result, err := h.bookService.BulkImport(c.Request.Context(), middleware.CallerEmail(c), file)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
