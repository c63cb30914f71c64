package domain

import "errors"

var (
	// ErrMissingColumns is returned when a dataset lacks the label or text column
	ErrMissingColumns = errors.New("required columns missing")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrEmptyDataset is returned when a dataset has no columns at all
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrUnsupportedFile is returned when an uploaded file is not a readable workbook
	ErrUnsupportedFile = errors.New("unsupported file")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidTaxonomy is returned when a taxonomy extension cannot be applied
	ErrInvalidTaxonomy = errors.New("invalid taxonomy")
)
