package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	bookModel "bookcourier-backend/internal/domains/book/model"
	bookRepo "bookcourier-backend/internal/domains/book/repository"
	"bookcourier-backend/internal/domains/wishlist/model"
	"bookcourier-backend/internal/domains/wishlist/repository"
	"bookcourier-backend/internal/shared/apperror"
)

// =====================================================
// SERVICE INTERFACE
// =====================================================
type WishlistService interface {
	Add(ctx context.Context, email string, req model.AddToWishlistRequest) (*model.WishlistEntry, error)
	List(ctx context.Context, email string) ([]model.WishlistItem, error)
	Remove(ctx context.Context, email string, bookID uuid.UUID) error
}

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================
type wishlistService struct {
	wishlists repository.WishlistRepository
	books     bookRepo.BookRepository
}

func NewWishlistService(wishlists repository.WishlistRepository, books bookRepo.BookRepository) WishlistService {
	return &wishlistService{
		wishlists: wishlists,
		books:     books,
	}
}

func (s *wishlistService) Add(ctx context.Context, email string, req model.AddToWishlistRequest) (*model.WishlistEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Wrap(apperror.KindInvalidArgument, err.Error(), err)
	}

	if _, err := s.books.GetByID(ctx, req.BookID); err != nil {
		if errors.Is(err, bookModel.ErrBookNotFound) {
			return nil, apperror.New(apperror.KindNotFound, "book not found")
		}
		return nil, apperror.FromStorage(err, "failed to load book")
	}

	entry := &model.WishlistEntry{
		ID:        uuid.New(),
		BookID:    req.BookID,
		UserEmail: email,
	}

	if err := s.wishlists.Add(ctx, entry); err != nil {
		if errors.Is(err, model.ErrAlreadyWishlisted) {
			return nil, apperror.New(apperror.KindConflict, "book already in wishlist")
		}
		return nil, apperror.FromStorage(err, "failed to add wishlist entry")
	}

	return entry, nil
}

func (s *wishlistService) List(ctx context.Context, email string) ([]model.WishlistItem, error) {
	items, err := s.wishlists.ListByUser(ctx, email)
	if err != nil {
		return nil, apperror.FromStorage(err, "failed to list wishlist")
	}
	return items, nil
}

func (s *wishlistService) Remove(ctx context.Context, email string, bookID uuid.UUID) error {
	if err := s.wishlists.Remove(ctx, bookID, email); err != nil {
		if errors.Is(err, model.ErrEntryNotFound) {
			return apperror.New(apperror.KindNotFound, "wishlist entry not found")
		}
		return apperror.FromStorage(err, "failed to remove wishlist entry")
	}
	return nil
}
