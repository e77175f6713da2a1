package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"arwikicats/internal/core"

	"github.com/cenkalti/backoff/v5"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// retryBusy 在 SQLITE_BUSY / SQLITE_LOCKED 時以指數退避重試，其餘錯誤立即返回
func retryBusy[T any](contextValue context.Context, maxTries int, operation func() (T, error)) (T, error) {
	if maxTries < 1 {
		maxTries = 1
	}
	exponential := backoff.NewExponentialBackOff()
	exponential.InitialInterval = 20 * time.Millisecond
	exponential.MaxInterval = 500 * time.Millisecond

	result, err := backoff.Retry(contextValue, func() (T, error) {
		value, operationError := operation()
		if operationError != nil && !isBusy(operationError) {
			return value, backoff.Permanent(operationError)
		}
		return value, operationError
	}, backoff.WithBackOff(exponential), backoff.WithMaxTries(uint(maxTries)))

	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Err
	}
	return result, err
}

func isBusy(err error) bool {
	var sqliteError *sqlite.Error
	if errors.As(err, &sqliteError) {
		switch sqliteError.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return true
		}
	}
	return false
}

// classify 把驅動錯誤轉成核心錯誤；逾時與鎖競爭一律視為 ErrStorageBusy
func classify(err error, kind error) error {
	if err == nil {
		return nil
	}
	if isBusy(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", core.ErrStorageBusy, err)
	}
	if kind == nil {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}
