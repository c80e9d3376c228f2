package persist

import (
	"io"
	"log/slog"

	"github.com/joshuapare/persistkit/eeprom/dirty"
)

// Options configures a Store.
type Options struct {
	// Logger receives Debug records for completed operations and Warn records
	// for verification failures. Default: discard.
	Logger *slog.Logger

	// Tracker is told about every modified byte. OpenFile installs its own
	// tracker when this is nil.
	Tracker dirty.DirtyTracker
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return discard
	}
	return o.Logger
}

func (o *Options) tracker() dirty.DirtyTracker {
	if o == nil {
		return nil
	}
	return o.Tracker
}
