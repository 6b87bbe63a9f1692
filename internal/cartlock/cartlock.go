// Package cartlock serializes cart writes per customer.
//
// Every mutation of a customer's open order runs while holding the lock for
// that customer, so "get or create" sequences never interleave for the same
// customer. LocalLocker covers a single process; RedisLocker covers several
// processes sharing one database.
package cartlock

import (
	"context"
	"errors"
)

// ErrLockTimeout is returned when a lock could not be acquired before the
// context was done.
var ErrLockTimeout = errors.New("timed out waiting for cart lock")

// Unlock releases a held lock.
type Unlock func()

// Locker hands out exclusive locks keyed by customer.
type Locker interface {
	Lock(ctx context.Context, customerID string) (Unlock, error)
}

func key(customerID string) string {
	return "cartlock:" + customerID
}
