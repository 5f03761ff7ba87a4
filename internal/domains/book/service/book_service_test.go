package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bookcourier-backend/internal/domains/book/model"
	"bookcourier-backend/internal/shared"
	"bookcourier-backend/internal/shared/apperror"
)

// =====================================================
// IN-MEMORY FAKE
// =====================================================

type memBookRepo struct {
	books map[uuid.UUID]*model.Book
}

func newMemBookRepo(books ...*model.Book) *memBookRepo {
	r := &memBookRepo{books: make(map[uuid.UUID]*model.Book)}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return r
}

func (r *memBookRepo) Create(ctx context.Context, book *model.Book) error {
	r.books[book.ID] = book
	return nil
}

func (r *memBookRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	book, ok := r.books[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	copied := *book
	return &copied, nil
}

func (r *memBookRepo) List(ctx context.Context, filter model.ListBooksRequest) ([]model.Book, error) {
	out := []model.Book{}
	for _, b := range r.books {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.Librarian != "" && b.LibrarianEmail != filter.Librarian {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *memBookRepo) Update(ctx context.Context, book *model.Book) error {
	if _, ok := r.books[book.ID]; !ok {
		return model.ErrBookNotFound
	}
	r.books[book.ID] = book
	return nil
}

func (r *memBookRepo) UpdateCoverURL(ctx context.Context, id uuid.UUID, coverURL string) error {
	return nil
}

func (r *memBookRepo) DecrementQuantity(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error) {
	book, ok := r.books[id]
	if !ok || book.Quantity <= 0 {
		return false, nil
	}
	book.Quantity--
	return true, nil
}

func (r *memBookRepo) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.books[id]; !ok {
		return model.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func staticRoles(roles map[string]string) func(ctx context.Context, email string) (string, error) {
	return func(ctx context.Context, email string) (string, error) {
		role, ok := roles[email]
		if !ok {
			return "", apperror.New(apperror.KindNotFound, "user not found")
		}
		return role, nil
	}
}

// =====================================================
// TESTS
// =====================================================

func TestUpdateBookOwnership(t *testing.T) {
	ctx := context.Background()
	roles := staticRoles(map[string]string{
		"owner@example.com": shared.RoleLibrarian,
		"other@example.com": shared.RoleLibrarian,
		"admin@example.com": shared.RoleAdmin,
	})

	newBook := func() *model.Book {
		return &model.Book{
			ID:             uuid.New(),
			Title:          "Original Title",
			Author:         "Author",
			Category:       "fiction",
			Price:          decimal.RequireFromString("12.00"),
			Quantity:       1,
			Status:         model.BookStatusPublished,
			LibrarianEmail: "owner@example.com",
		}
	}

	title := "Edited Title"

	t.Run("owner can edit", func(t *testing.T) {
		book := newBook()
		svc := NewBookService(newMemBookRepo(book), nil, nil, roles)

		updated, err := svc.UpdateBook(ctx, "owner@example.com", book.ID, model.UpdateBookRequest{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "Edited Title", updated.Title)
	})

	t.Run("another librarian is forbidden", func(t *testing.T) {
		book := newBook()
		svc := NewBookService(newMemBookRepo(book), nil, nil, roles)

		_, err := svc.UpdateBook(ctx, "other@example.com", book.ID, model.UpdateBookRequest{Title: &title})
		assert.True(t, apperror.Is(err, apperror.KindForbidden))
	})

	t.Run("admin can edit any book", func(t *testing.T) {
		book := newBook()
		svc := NewBookService(newMemBookRepo(book), nil, nil, roles)

		_, err := svc.UpdateBook(ctx, "admin@example.com", book.ID, model.UpdateBookRequest{Title: &title})
		assert.NoError(t, err)
	})

	t.Run("unknown book is NotFound", func(t *testing.T) {
		svc := NewBookService(newMemBookRepo(), nil, nil, roles)

		_, err := svc.UpdateBook(ctx, "owner@example.com", uuid.New(), model.UpdateBookRequest{Title: &title})
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})
}

func buildSpreadsheet(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestBulkImport(t *testing.T) {
	ctx := context.Background()
	repo := newMemBookRepo()
	svc := NewBookService(repo, nil, nil, staticRoles(nil))

	buf := buildSpreadsheet(t, [][]interface{}{
		{"Title", "Author", "Category", "Price", "Quantity"},
		{"Clean Code", "Robert Martin", "programming", "28.50", "4"},
		{"", "No Title", "fiction", "10.00", "1"},
		{"Bad Price", "Author", "fiction", "abc", "1"},
		{"The Mythical Man-Month", "Fred Brooks", "programming", "19.99", "2"},
	})

	result, err := svc.BulkImport(ctx, "librarian@example.com", buf)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	assert.Len(t, result.Errors, 2)

	// Imported rows land unpublished under the importing librarian.
	books, err := repo.List(ctx, model.ListBooksRequest{Librarian: "librarian@example.com"})
	require.NoError(t, err)
	require.Len(t, books, 2)
	for _, b := range books {
		assert.Equal(t, model.BookStatusUnpublished, b.Status)
	}
}

func TestListBooks(t *testing.T) {
	ctx := context.Background()

	published := &model.Book{ID: uuid.New(), Title: "A", Status: model.BookStatusPublished, LibrarianEmail: "l@example.com"}
	draft := &model.Book{ID: uuid.New(), Title: "B", Status: model.BookStatusUnpublished, LibrarianEmail: "l@example.com"}
	svc := NewBookService(newMemBookRepo(published, draft), nil, nil, staticRoles(nil))

	books, err := svc.ListBooks(ctx, model.ListBooksRequest{Status: model.BookStatusPublished})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "A", books[0].Title)

	_, err = svc.ListBooks(ctx, model.ListBooksRequest{Status: "archived"})
	assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))
}
