package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"gensubs/internal/logging"
)

// acquireAdvisoryLock takes a best-effort lock on the output directory. A
// lock already held by another process is only warned about: concurrent runs
// against the same output directory are undefined behavior, not guarded
// against, and the warning is all the help the user gets.
func (p *Pipeline) acquireAdvisoryLock(ctx context.Context) func() {
	logger := logging.WithContext(ctx, p.logger)
	lockPath := filepath.Join(p.spec.OutputDirectory, ".gensubs.lock")
	lock := flock.New(lockPath)

	ok, err := lock.TryLock()
	if err != nil {
		logger.Debug("output directory lock unavailable", logging.Error(err))
		return func() {}
	}
	if !ok {
		logger.Warn("another run appears to be active in this output directory",
			logging.String("lock_file", lockPath),
		)
		return func() {}
	}
	return func() {
		_ = lock.Unlock()
		_ = os.Remove(lockPath)
	}
}
