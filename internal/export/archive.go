// Package export writes detected chirps to a daily-rotating archive file
// and/or advertises them over a TCP+mDNS network service, the two ways a
// real GRAVES monitoring station hands chirps off to the rest of the world.
package export

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"

	"meteorscatter/gravesdet/derive"
	gravesdet "meteorscatter/gravesdet/src"
)

func discardLogger() *log.Logger { return log.New(io.Discard) }

// Archiver is a gravesdet.Sink that appends one JSON line per chirp to a
// file whose name is generated from a strftime pattern, rotating to a new
// file whenever the formatted name changes (normally once a day).
type Archiver struct {
	dir       string
	pattern   string
	carrierHz float64
	logger    *log.Logger

	mu       sync.Mutex
	openName string
	file     *os.File
}

// NewArchiver prepares to write rotated archive files under dir, named by
// pattern (a strftime format string, e.g. "chirps-%Y-%m-%d.jsonl").
// carrierHz is used for the Doppler series attached to each archived
// record.
func NewArchiver(dir, pattern string, carrierHz float64, logger *log.Logger) *Archiver {
	if logger == nil {
		logger = discardLogger()
	}

	return &Archiver{
		dir:       dir,
		pattern:   pattern,
		carrierHz: carrierHz,
		logger:    logger,
	}
}

// OnChirp implements gravesdet.Sink. It never returns false: archival
// failures are logged and swallowed rather than aborting the feed that
// produced the chirp, since a dropped archive write is not as severe as a
// dropped detection.
func (a *Archiver) OnChirp(record *gravesdet.ChirpRecord) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	var name, fmtErr = strftime.Format(a.pattern, time.Now())
	if fmtErr != nil {
		a.logger.Error("could not format archive file name", "pattern", a.pattern, "err", fmtErr)
		return true
	}

	if name != a.openName {
		if a.file != nil {
			a.file.Close()
		}

		var full = filepath.Join(a.dir, name)
		var f, openErr = os.OpenFile(full, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0644)
		if openErr != nil {
			a.logger.Error("could not open archive file", "path", full, "err", openErr)
			a.file = nil
			a.openName = ""
			return true
		}

		a.file = f
		a.openName = name
		a.logger.Info("opened archive file", "path", full)
	}

	var doppler = derive.Doppler(record, a.carrierHz, 0)
	var arrays = derive.ToNamedArrays(record, doppler)

	if err := derive.WriteJSON(a.file, arrays); err != nil {
		a.logger.Error("could not write archive record", "err", err)
	}

	return true
}

// Close flushes and releases the currently open archive file, if any.
func (a *Archiver) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		return nil
	}
	var err = a.file.Close()
	a.file = nil
	a.openName = ""
	return err
}
