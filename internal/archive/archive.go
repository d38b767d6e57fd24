// Package archive relocates finished grade exports into timestamped
// storage. Every archived file gets a block appended to the organizer
// log before it is moved, so the log is a complete history even after
// the files themselves change names.
package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// timestampLayout names archived files down to the second. Two files
	// archived within the same second for the same base name would
	// collide; Archive refuses to overwrite rather than guessing.
	timestampLayout = "20060102-150405"

	logTimeLayout = "2006-01-02 15:04:05"
)

// Entry records one completed archive operation.
type Entry struct {
	Original   string // base name before archiving
	Archived   string // base name after archiving
	ArchivedAt time.Time
	Contents   []byte // snapshot written to the organizer log
}

// Options tunes an Archiver. Zero-value fields keep their defaults.
type Options struct {
	ArchiveDir string     // subdirectory for archived files, default "archive"
	LogName    string     // organizer log file name, default "organizer.log"
	Extension  string     // extension filter, default ".csv"
	Logger     *zap.Logger
	Now        func() time.Time // test hook
}

// Archiver moves matching files out of a working directory, one at a
// time, in lexicographic order. Not safe for concurrent use against the
// same directory; callers serialize.
type Archiver struct {
	dir        string
	archiveDir string
	logName    string
	ext        string
	logger     *zap.Logger
	now        func() time.Time
}

// New builds an Archiver rooted at dir.
func New(dir string, opts Options) *Archiver {
	a := &Archiver{
		dir:        dir,
		archiveDir: opts.ArchiveDir,
		logName:    opts.LogName,
		ext:        opts.Extension,
		logger:     opts.Logger,
		now:        opts.Now,
	}
	if a.archiveDir == "" {
		a.archiveDir = "archive"
	}
	if a.logName == "" {
		a.logName = "organizer.log"
	}
	if a.ext == "" {
		a.ext = ".csv"
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	if a.now == nil {
		a.now = time.Now
	}
	return a
}

// LogPath returns the organizer log location.
func (a *Archiver) LogPath() string {
	return filepath.Join(a.dir, a.logName)
}

// Discover lists files in the working directory matching the extension
// filter, sorted lexicographically so that repeated runs over identical
// inputs produce identical log ordering. An empty result is a valid
// "nothing to archive" outcome, not an error. The organizer log and the
// archive subdirectory are never candidates.
func (a *Archiver) Discover() ([]string, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", a.dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.EqualFold(filepath.Ext(name), a.ext) {
			continue
		}
		if name == a.logName {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Matches reports whether a base name would be picked up by Discover.
func (a *Archiver) Matches(name string) bool {
	return strings.EqualFold(filepath.Ext(name), a.ext) && name != a.logName
}

// Archive processes a single discovered file: snapshot its contents into
// the organizer log, then rename it into the archive subdirectory under
// a timestamped name. The log append happens first; a file that fails to
// move is still documented.
func (a *Archiver) Archive(name string) (*Entry, error) {
	src := filepath.Join(a.dir, name)
	contents, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	archivedAt := a.now()
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	archived := fmt.Sprintf("%s-%s%s", base, archivedAt.Format(timestampLayout), ext)

	entry := &Entry{
		Original:   name,
		Archived:   archived,
		ArchivedAt: archivedAt,
		Contents:   contents,
	}

	if err := a.appendLog(entry); err != nil {
		return nil, err
	}

	destDir := filepath.Join(a.dir, a.archiveDir)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	dest := filepath.Join(destDir, archived)
	if _, err := os.Lstat(dest); err == nil {
		return nil, fmt.Errorf("destination %s already exists", archived)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat %s: %w", archived, err)
	}
	if err := os.Rename(src, dest); err != nil {
		return nil, fmt.Errorf("failed to move %s: %w", name, err)
	}

	a.logger.Info("archived file",
		zap.String("original", name),
		zap.String("archived", archived))
	return entry, nil
}

// Run archives every discovered file in order. One file's failure does
// not abort the rest; the returned entries cover the files that
// succeeded and the error joins every per-file failure.
func (a *Archiver) Run() ([]*Entry, error) {
	names, err := a.Discover()
	if err != nil {
		return nil, err
	}

	var entries []*Entry
	var errs []error
	for _, name := range names {
		entry, err := a.Archive(name)
		if err != nil {
			a.logger.Warn("archive failed", zap.String("file", name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		entries = append(entries, entry)
	}
	return entries, errors.Join(errs...)
}

// appendLog writes one block to the organizer log: header, original and
// new names, a snapshot of the contents, footer, trailing blank line.
// Append-only; prior entries are never rewritten.
func (a *Archiver) appendLog(entry *Entry) error {
	f, err := os.OpenFile(a.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open organizer log: %w", err)
	}

	var b strings.Builder
	b.WriteString("==== ARCHIVED ====\n")
	fmt.Fprintf(&b, "Original: %s\n", entry.Original)
	fmt.Fprintf(&b, "Archived: %s\n", entry.Archived)
	fmt.Fprintf(&b, "Date: %s\n", entry.ArchivedAt.Format(logTimeLayout))
	b.WriteString("---- contents ----\n")
	b.Write(entry.Contents)
	if len(entry.Contents) > 0 && entry.Contents[len(entry.Contents)-1] != '\n' {
		b.WriteByte('\n')
	}
	b.WriteString("==== END ====\n\n")

	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return fmt.Errorf("failed to append organizer log: %w", err)
	}
	return f.Close()
}
