// Package market holds the error kinds shared by loan- and pool-level
// auction operations.
package market

import (
	"errors"
	"fmt"
)

var (
	// ErrForbidden: wrong actor for a borrower-only or lender-only action.
	ErrForbidden = errors.New("forbidden")
	// ErrProfileIncomplete: borrower has no credit profile with a score.
	ErrProfileIncomplete = errors.New("credit profile incomplete")
	// ErrSelfBid: a lender may not bid on their own loan, or on a pool
	// containing one of their loans.
	ErrSelfBid = errors.New("cannot bid on own listing")
	// ErrSelfInvest: a lender may not fund their own listing.
	ErrSelfInvest = errors.New("cannot invest in own listing")
	// ErrNotAcceptingBids: the target is no longer pending/open.
	ErrNotAcceptingBids = errors.New("no longer accepting bids")
	// ErrBidNotImproving: the offered rate is not strictly below the
	// current best rate.
	ErrBidNotImproving = errors.New("bid must beat the current best rate")
	// ErrConflictRetry: a concurrent resolution won the race; the caller
	// may retry once.
	ErrConflictRetry = errors.New("target was resolved concurrently")
	// ErrStorageFailure wraps unexpected persistence errors.
	ErrStorageFailure = errors.New("storage failure")
)

// Storage wraps an unexpected persistence error as ErrStorageFailure so
// callers can branch on the kind without losing the cause.
func Storage(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageFailure, err)
}
