package domain

// ReviewStatus represents the manual review state of a stored invoice.
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusFlagged  ReviewStatus = "flagged"
)

// ValidReviewStatuses is the set of accepted review status values.
var ValidReviewStatuses = map[ReviewStatus]bool{
	ReviewStatusPending:  true,
	ReviewStatusApproved: true,
	ReviewStatusFlagged:  true,
}

// BatchStatus represents the lifecycle of a batch run.
type BatchStatus string

const (
	BatchStatusRunning   BatchStatus = "running"
	BatchStatusCompleted BatchStatus = "completed"
	BatchStatusPartial   BatchStatus = "partial"
)
