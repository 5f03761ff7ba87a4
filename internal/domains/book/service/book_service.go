package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"bookcourier-backend/internal/domains/book/model"
	"bookcourier-backend/internal/domains/book/repository"
	"bookcourier-backend/internal/infrastructure/storage"
	"bookcourier-backend/internal/shared"
	"bookcourier-backend/internal/shared/apperror"
	"bookcourier-backend/pkg/logger"
)

type bookService struct {
	repo       repository.BookRepository
	objects    storage.ObjectStorage
	images     *storage.ImageProcessor
	roleLookup func(ctx context.Context, email string) (string, error)
}

// NewBookService wires the catalog service. roleLookup resolves a caller's
// role so librarians can only edit their own books while admins edit any.
func NewBookService(
	repo repository.BookRepository,
	objects storage.ObjectStorage,
	images *storage.ImageProcessor,
	roleLookup func(ctx context.Context, email string) (string, error),
) BookService {
	return &bookService{
		repo:       repo,
		objects:    objects,
		images:     images,
		roleLookup: roleLookup,
	}
}

func (s *bookService) ListBooks(ctx context.Context, filter model.ListBooksRequest) ([]model.Book, error) {
	if filter.Status != "" && !model.IsValidBookStatus(filter.Status) {
		return nil, apperror.Newf(apperror.KindInvalidArgument, "unrecognised status %q", filter.Status)
	}

	books, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperror.FromStorage(err, "failed to list books")
	}

	return books, nil
}

func (s *bookService) GetBook(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return nil, apperror.New(apperror.KindNotFound, "book not found")
		}
		return nil, apperror.FromStorage(err, "failed to get book")
	}

	return book, nil
}

func (s *bookService) CreateBook(ctx context.Context, librarianEmail string, req model.CreateBookRequest) (*model.Book, error) {
	book := &model.Book{
		ID:             uuid.New(),
		Title:          req.Title,
		Author:         req.Author,
		Category:       req.Category,
		Price:          req.Price,
		Quantity:       req.Quantity,
		Status:         req.Status,
		LibrarianEmail: librarianEmail,
		CoverURL:       req.CoverURL,
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, apperror.FromStorage(err, "failed to create book")
	}

	return book, nil
}

func (s *bookService) UpdateBook(ctx context.Context, callerEmail string, id uuid.UUID, req model.UpdateBookRequest) (*model.Book, error) {
	book, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkOwnership(ctx, callerEmail, book); err != nil {
		return nil, err
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Category != nil {
		book.Category = *req.Category
	}
	if req.Price != nil {
		book.Price = *req.Price
	}
	if req.Quantity != nil {
		book.Quantity = *req.Quantity
	}
	if req.Status != nil {
		book.Status = *req.Status
	}
	if req.CoverURL != nil {
		book.CoverURL = req.CoverURL
	}

	if err := s.repo.Update(ctx, book); err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return nil, apperror.New(apperror.KindNotFound, "book not found")
		}
		return nil, apperror.FromStorage(err, "failed to update book")
	}

	return book, nil
}

// DeleteBook removes the book and cascades to its orders. Admin only; the
// route guard enforces the role.
func (s *bookService) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return apperror.New(apperror.KindNotFound, "book not found")
		}
		return apperror.FromStorage(err, "failed to delete book")
	}

	logger.Info("book deleted with order cascade", map[string]interface{}{
		"book_id": id,
	})

	return nil
}

func (s *bookService) UploadCover(ctx context.Context, callerEmail string, id uuid.UUID, data []byte) (string, error) {
	book, err := s.GetBook(ctx, id)
	if err != nil {
		return "", err
	}

	if err := s.checkOwnership(ctx, callerEmail, book); err != nil {
		return "", err
	}

	if err := s.images.ValidateImage(data); err != nil {
		return "", apperror.Wrap(apperror.KindInvalidArgument, "invalid cover image", err)
	}

	cover, err := s.images.ProcessCover(data)
	if err != nil {
		return "", apperror.Wrap(apperror.KindInvalidArgument, "cannot process cover image", err)
	}

	key := fmt.Sprintf("covers/%s.jpg", book.ID)
	url, err := s.objects.Upload(ctx, key, cover, "image/jpeg")
	if err != nil {
		return "", apperror.Wrap(apperror.KindInternal, "failed to store cover image", err)
	}

	if err := s.repo.UpdateCoverURL(ctx, book.ID, url); err != nil {
		return "", apperror.FromStorage(err, "failed to save cover url")
	}

	return url, nil
}

// BulkImport reads books from a spreadsheet. Expected columns:
// Title | Author | Category | Price | Quantity. Row 1 is the header.
// Bad rows are skipped and reported; good rows are imported as unpublished.
func (s *bookService) BulkImport(ctx context.Context, librarianEmail string, spreadsheet io.Reader) (*model.BulkImportResult, error) {
	f, err := excelize.OpenReader(spreadsheet)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInvalidArgument, "cannot open spreadsheet", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInvalidArgument, "cannot read spreadsheet rows", err)
	}

	result := &model.BulkImportResult{}
	for i, cells := range rows {
		if i == 0 {
			continue // header
		}

		row, err := parseImportRow(i+1, cells)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		book := &model.Book{
			ID:             uuid.New(),
			Title:          row.Title,
			Author:         row.Author,
			Category:       row.Category,
			Price:          row.Price,
			Quantity:       row.Quantity,
			Status:         model.BookStatusUnpublished,
			LibrarianEmail: librarianEmail,
		}

		if err := s.repo.Create(ctx, book); err != nil {
			return nil, apperror.FromStorage(err, "failed to import books")
		}
		result.Imported++
	}

	logger.Info("bulk import finished", map[string]interface{}{
		"librarian": librarianEmail,
		"imported":  result.Imported,
		"skipped":   result.Skipped,
	})

	return result, nil
}

func parseImportRow(line int, cells []string) (*model.BulkImportRow, error) {
	if len(cells) < 5 {
		return nil, fmt.Errorf("row %d: expected 5 columns, got %d", line, len(cells))
	}
	if cells[0] == "" || cells[1] == "" {
		return nil, fmt.Errorf("row %d: title and author are required", line)
	}

	price, err := decimal.NewFromString(cells[3])
	if err != nil {
		return nil, fmt.Errorf("row %d: invalid price %q", line, cells[3])
	}

	quantity, err := strconv.Atoi(cells[4])
	if err != nil || quantity < 0 {
		return nil, fmt.Errorf("row %d: invalid quantity %q", line, cells[4])
	}

	return &model.BulkImportRow{
		Line:     line,
		Title:    cells[0],
		Author:   cells[1],
		Category: cells[2],
		Price:    price,
		Quantity: quantity,
	}, nil
}

func (s *bookService) checkOwnership(ctx context.Context, callerEmail string, book *model.Book) error {
	if book.LibrarianEmail == callerEmail {
		return nil
	}

	role, err := s.roleLookup(ctx, callerEmail)
	if err == nil && role == shared.RoleAdmin {
		return nil
	}

	return apperror.New(apperror.KindForbidden, "book belongs to another librarian")
}
