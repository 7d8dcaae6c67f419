package pinvault

import (
	"bytes"
	"os"
	"sort"
)

// Store is the keyed collection of account records the engine mutates.
// Get returns a copy; callers modify the copy and persist through Update.
// Add and Update that fail perform no persistence write.
type Store interface {
	Exists(username string) bool
	Add(record AccountRecord) error
	Update(record AccountRecord) error
	Get(username string) (AccountRecord, bool)
	Accounts() []AccountRecord
}

// FileStore persists records to a newline-delimited flat file, one encoded
// record per line. Every mutation rewrites the whole file; a crash mid-write
// can corrupt it. The store assumes a single exclusive owner of the file for
// the lifetime of the process and is not safe for concurrent use.
//
// The at-rest transform can map a record byte onto the line delimiter, and a
// line containing 0x0A would be torn apart by the next load. Add and Update
// refuse such records with [ErrUnstorableRecord] rather than write a line no
// reader of this format can recover.
type FileStore struct {
	path    string
	records map[string]AccountRecord
	skipped int
}

// OpenFileStore loads the store at path. A missing file yields an empty
// store; malformed lines are skipped and counted, blank lines ignored, and
// when a username appears on multiple lines the last one read wins.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	s.records = make(map[string]AccountRecord)
	s.skipped = 0

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		if len(line) == 0 {
			continue
		}
		record, err := decodeRecord(line)
		if err != nil {
			s.skipped++
			continue
		}
		s.records[record.Username] = record
	}

	return nil
}

func (s *FileStore) save() error {
	usernames := make([]string, 0, len(s.records))
	for username := range s.records {
		usernames = append(usernames, username)
	}
	sort.Strings(usernames)

	var buf bytes.Buffer
	for _, username := range usernames {
		buf.Write(encodeRecord(s.records[username]))
		buf.WriteByte('\n')
	}

	return os.WriteFile(s.path, buf.Bytes(), 0o600)
}

// Exists reports whether a record for username is present.
func (s *FileStore) Exists(username string) bool {
	_, ok := s.records[username]
	return ok
}

// storable reports whether the record's encoded line survives a round trip
// through the file, i.e. contains no delimiter byte.
func storable(record AccountRecord) bool {
	return !bytes.ContainsRune(encodeRecord(record), '\n')
}

// Add inserts a new record and persists, failing with [ErrUserAlreadyExists]
// and no mutation when the username is taken, or [ErrUnstorableRecord] when
// the encoded record cannot be read back.
func (s *FileStore) Add(record AccountRecord) error {
	if s.Exists(record.Username) {
		return ErrUserAlreadyExists
	}
	if !storable(record) {
		return ErrUnstorableRecord
	}

	s.records[record.Username] = record
	if err := s.save(); err != nil {
		delete(s.records, record.Username)
		return err
	}
	return nil
}

// Update replaces an existing record and persists, failing with
// [ErrUserNotFound] and no write when the username is absent, or
// [ErrUnstorableRecord] when the encoded record cannot be read back.
func (s *FileStore) Update(record AccountRecord) error {
	prev, ok := s.records[record.Username]
	if !ok {
		return ErrUserNotFound
	}
	if !storable(record) {
		return ErrUnstorableRecord
	}

	s.records[record.Username] = record
	if err := s.save(); err != nil {
		s.records[record.Username] = prev
		return err
	}
	return nil
}

// Get returns a copy of the record for username.
func (s *FileStore) Get(username string) (AccountRecord, bool) {
	record, ok := s.records[username]
	return record, ok
}

// Accounts returns copies of all records, ordered by username.
func (s *FileStore) Accounts() []AccountRecord {
	out := make([]AccountRecord, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Username < out[j].Username
	})
	return out
}

// Skipped reports how many lines were discarded as malformed during the
// last load. Partial data is preferred over a failed startup; this count is
// the observability hook for it.
func (s *FileStore) Skipped() int {
	return s.skipped
}
