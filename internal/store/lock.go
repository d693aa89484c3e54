package store

import (
	"fmt"

	"github.com/gofrs/flock"
)

// Lock takes the exclusive rebuild lock at path without blocking. Callers
// must invoke the returned release function when done.
func Lock(path string) (func() error, error) {
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrLocked, path)
	}
	return lock.Unlock, nil
}
