// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package feedback

import "fmt"

// StoreError wraps a failed feedback store operation with the operation
// name. Handlers map it to a 500 response; unlike generator failures it is
// never swallowed.
type StoreError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("feedback %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// storeErr wraps err in a *StoreError for the named operation.
// A nil err passes through as nil.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// Errors
var (
	// ErrStoreClosed is returned when an operation is attempted on a closed store.
	ErrStoreClosed = fmt.Errorf("feedback store is closed")

	// ErrNilRecord is returned when a nil record is passed to Submit.
	ErrNilRecord = fmt.Errorf("record cannot be nil")

	// ErrEmptyUserID is returned when no user ID is provided.
	ErrEmptyUserID = fmt.Errorf("user ID cannot be empty")

	// ErrEmptyItemID is returned when a record has no item ID.
	ErrEmptyItemID = fmt.Errorf("item ID cannot be empty")

	// ErrInvalidItemType is returned for item types other than "meal" or "restaurant".
	ErrInvalidItemType = fmt.Errorf("item type must be %q or %q", ItemTypeMeal, ItemTypeRestaurant)

	// ErrInvalidFeedbackType is returned for feedback types other than "like" or "dislike".
	ErrInvalidFeedbackType = fmt.Errorf("feedback type must be %q or %q", TypeLike, TypeDislike)
)
