// Package logger constructs the application's zap logger.
package logger

import "go.uber.org/zap"

// New returns a production logger in non-dev environments and a
// human-readable development logger otherwise.  Construction failures
// fall back to a no-op logger rather than aborting startup.
func New(env string) *zap.Logger {
    var (
        log *zap.Logger
        err error
    )
    if env == "dev" || env == "test" {
        log, err = zap.NewDevelopment()
    } else {
        log, err = zap.NewProduction()
    }
    if err != nil {
        return zap.NewNop()
    }
    return log
}
