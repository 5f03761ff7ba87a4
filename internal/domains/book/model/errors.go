package model

import "errors"

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrBookOutOfStock    = errors.New("book is out of stock")
	ErrInvalidBookStatus = errors.New("invalid book status")
	ErrNotBookOwner      = errors.New("book belongs to another librarian")
)
