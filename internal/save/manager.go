package save

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	filePrefix = "uno_save_"
	fileSuffix = ".json.gz"
	timeLayout = "20060102_150405"

	// DefaultRetention is how many snapshots are kept after each save.
	DefaultRetention = 10
)

var fileNameRe = regexp.MustCompile(`^uno_save_\d{8}_\d{6}_\d{9}\.json\.gz$`)

// Entry is one listed snapshot.
type Entry struct {
	ID        string
	CreatedAt time.Time
	Version   string
}

// Manager stores snapshots as gzip-compressed JSON files in one directory.
type Manager struct {
	dir       string
	retention int
	verify    bool
	now       func() time.Time
	log       *logrus.Entry
}

// Option configures a Manager.
type Option func(*Manager)

// WithRetention sets how many snapshots survive rotation. Values below 1 are ignored.
func WithRetention(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retention = n
		}
	}
}

// WithVerify toggles checksum verification on load.
func WithVerify(v bool) Option {
	return func(m *Manager) { m.verify = v }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLogger sets the entry used for write, rotation and listing messages.
func WithLogger(log *logrus.Entry) Option {
	return func(m *Manager) { m.log = log }
}

// NewManager creates dir if needed and returns a Manager for it.
func NewManager(dir string, opts ...Option) (*Manager, error) {
	m := &Manager{
		dir:       dir,
		retention: DefaultRetention,
		verify:    true,
		now:       time.Now,
		log:       logrus.WithField("component", "save"),
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", ErrSaveWrite, dir, err)
	}
	return m, nil
}

// Dir is the directory snapshots are written to.
func (m *Manager) Dir() string {
	return m.dir
}

// Save writes p with fresh metadata and returns the snapshot identifier.
// Older snapshots beyond the retention limit are removed afterwards.
func (m *Manager) Save(p Payload) (string, error) {
	checksum, err := Checksum(p)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSaveWrite, err)
	}

	now := m.now()
	id := m.nextID(now)
	snap := Snapshot{
		Payload: p,
		Metadata: Metadata{
			Timestamp: now.Format(time.RFC3339Nano),
			Version:   Version,
			CreatedAt: now.UTC().Format(time.RFC3339Nano),
			Checksum:  checksum,
		},
	}

	if err := m.writeAtomic(id, snap); err != nil {
		return "", err
	}
	m.log.WithFields(logrus.Fields{"save": id, "game_id": p.GameID}).Info("snapshot written")

	m.rotate()
	return id, nil
}

// nextID returns an unused file name for t, nudging forward on collision.
// Names use UTC so that name order matches creation order.
func (m *Manager) nextID(t time.Time) string {
	t = t.UTC()
	for {
		id := fmt.Sprintf("%s%s_%09d%s", filePrefix, t.Format(timeLayout), t.Nanosecond(), fileSuffix)
		if _, err := os.Stat(filepath.Join(m.dir, id)); errors.Is(err, fs.ErrNotExist) {
			return id
		}
		t = t.Add(time.Nanosecond)
	}
}

// writeAtomic writes to a temp file in the same directory and renames it into place.
func (m *Manager) writeAtomic(id string, snap Snapshot) error {
	tmp, err := os.CreateTemp(m.dir, ".uno_save_*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveWrite, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	zw := gzip.NewWriter(tmp)
	if err := json.NewEncoder(zw).Encode(snap); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: encoding: %v", ErrSaveWrite, err)
	}
	if err := zw.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: compressing: %v", ErrSaveWrite, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: sync: %v", ErrSaveWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveWrite, err)
	}
	if err := os.Rename(tmpName, filepath.Join(m.dir, id)); err != nil {
		return fmt.Errorf("%w: rename: %v", ErrSaveWrite, err)
	}
	return nil
}

// rotate deletes the oldest snapshots beyond the retention limit. File names
// sort chronologically. Failures are logged, never returned.
func (m *Manager) rotate() {
	ids, err := m.ids()
	if err != nil {
		m.log.WithError(err).Warn("listing saves for rotation")
		return
	}
	if len(ids) <= m.retention {
		return
	}
	for _, id := range ids[:len(ids)-m.retention] {
		if err := os.Remove(filepath.Join(m.dir, id)); err != nil {
			m.log.WithError(err).WithField("save", id).Warn("removing old save")
			continue
		}
		m.log.WithField("save", id).Debug("removed old save")
	}
}

// ids returns the well-formed snapshot file names, oldest first.
func (m *Manager) ids() ([]string, error) {
	dirEntries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, de := range dirEntries {
		if !de.IsDir() && fileNameRe.MatchString(de.Name()) {
			ids = append(ids, de.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Load reads snapshot id. Verification, when enabled, recomputes the checksum
// and reports ErrIntegrityMismatch on any difference.
func (m *Manager) Load(id string) (*Payload, error) {
	snap, err := m.read(id)
	if err != nil {
		return nil, err
	}
	if m.verify {
		sum, err := Checksum(snap.Payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSaveFormat, err)
		}
		if sum != snap.Metadata.Checksum {
			return nil, fmt.Errorf("%w: %s", ErrIntegrityMismatch, id)
		}
	}
	return &snap.Payload, nil
}

func (m *Manager) read(id string) (*Snapshot, error) {
	name := filepath.Base(id)
	if !fileNameRe.MatchString(name) {
		return nil, fmt.Errorf("%w: unrecognized file name %q", ErrInvalidSaveFormat, id)
	}
	f, err := os.Open(filepath.Join(m.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSaveNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSaveNotFound, err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSaveFormat, err)
	}
	defer zr.Close()

	var snap Snapshot
	if err := json.NewDecoder(zr).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSaveFormat, err)
	}
	return &snap, nil
}

// List returns every readable snapshot, most recent first. Unreadable entries
// are logged and skipped.
func (m *Manager) List() ([]Entry, error) {
	ids, err := m.ids()
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		e, err := m.entry(id)
		if err != nil {
			m.log.WithError(err).WithField("save", id).Warn("skipping save entry")
			continue
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (m *Manager) entry(id string) (Entry, error) {
	snap, err := m.read(id)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrCorruptSaveEntry, err)
	}
	created, err := time.Parse(time.RFC3339Nano, snap.Metadata.CreatedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: created_at: %v", ErrCorruptSaveEntry, err)
	}
	return Entry{ID: id, CreatedAt: created, Version: snap.Metadata.Version}, nil
}
