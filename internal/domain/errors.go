package domain

import (
	"fmt"
	"time"
)

// PriceSupplierError means the external supplier returned zero points for a
// symbol across the whole requested window. The portfolio stays dirty and is
// retried on the next run.
type PriceSupplierError struct {
	Symbol string
	Start  time.Time
	End    time.Time
	Err    error
}

func (e PriceSupplierError) Error() string {
	msg := fmt.Sprintf("price supplier returned no closes for %s between %s and %s",
		e.Symbol, e.Start.Format(time.DateOnly), e.End.Format(time.DateOnly))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e PriceSupplierError) Unwrap() error {
	return e.Err
}

// UnresolvedPrimaryError is terminal per portfolio: there is no allocation or
// signal data to price, so retrying without new data would just spin.
type UnresolvedPrimaryError struct {
	PortfolioKey string
	Reason       string
}

func (e UnresolvedPrimaryError) Error() string {
	return fmt.Sprintf("no resolvable primary allocation for portfolio %s: %s", e.PortfolioKey, e.Reason)
}

// EmptyNavError means ingestion succeeded but no day ever produced a
// resolvable price. Non-terminal; retried on the next run.
type EmptyNavError struct {
	PortfolioKey string
}

func (e EmptyNavError) Error() string {
	return fmt.Sprintf("nav series is empty for portfolio %s", e.PortfolioKey)
}

// LockContentionError is the expected outcome when two triggers race. It is
// not a portfolio failure; the run exits cleanly reporting skipped=locked.
type LockContentionError struct {
	HeldByRunID  string
	HeldByHolder string
}

func (e LockContentionError) Error() string {
	return fmt.Sprintf("job lock is held by %s (run %s)", e.HeldByHolder, e.HeldByRunID)
}

// PersistenceError aborts the current portfolio's transaction; the batch loop
// continues with the next portfolio.
type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e PersistenceError) Unwrap() error {
	return e.Err
}
