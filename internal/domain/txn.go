package domain

import "context"

// TransactionRunner executes a unit of work against a single atomic scope.
// The scope commits when fn returns nil; any error aborts the whole unit of
// work and is rethrown unchanged, so partial application of a multi-row write
// is never observable.
type TransactionRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}
