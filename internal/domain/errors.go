package domain

import "errors"

var (
	// ErrUnknownVendor means the dispatcher has no rule set for the vendor
	// key. There is no generic fallback: a loud failure beats silently wrong
	// extraction.
	ErrUnknownVendor = errors.New("unknown vendor")

	// ErrDocumentUnreadable means the text layer of a document could not be
	// extracted. Terminal for that document only; a batch continues.
	ErrDocumentUnreadable = errors.New("document unreadable")

	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrBatchNotFound   = errors.New("batch not found")

	// ErrArchiveDisabled means an archive operation was requested but no
	// archive bucket is configured.
	ErrArchiveDisabled = errors.New("archive not configured")
)
