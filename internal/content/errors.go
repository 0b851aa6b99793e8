package content

import "errors"

var (
	// ErrNotFound means the requested item does not exist at the source.
	ErrNotFound = errors.New("content not found")

	// ErrInvalidID means the identifier cannot name a content file.
	ErrInvalidID = errors.New("invalid content identifier")

	// ErrNoIndex means the collection has no index to fetch.
	ErrNoIndex = errors.New("collection has no index")

	// ErrTooLarge means a downloaded file exceeds the size limit.
	ErrTooLarge = errors.New("content file too large")

	// ErrEmptyBatch means every file of a batch failed or the batch was empty.
	ErrEmptyBatch = errors.New("no content could be resolved")
)
