package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

const DefaultFile = "data/gamestats.json"

// ErrNotFound is returned by Load when the key has never been saved
var ErrNotFound = errors.New("key not found")

// FileStore keeps integer values in a single JSON object on disk.
// Keys it does not know about are preserved on save.
type FileStore struct {
	path  string
	mutex sync.Mutex
}

func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultFile
	}
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(key string) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	doc, err := s.read()
	if err != nil {
		return 0, err
	}
	raw, ok := doc[key]
	if !ok {
		return 0, errors.Wrapf(ErrNotFound, "%s in %s", key, s.path)
	}
	var v int
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, errors.Wrapf(err, "decoding %s in %s", key, s.path)
	}
	return v, nil
}

func (s *FileStore) Save(key string, value int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	doc, err := s.read()
	if err != nil {
		// unreadable files are replaced rather than blocking the save
		doc = make(map[string]json.RawMessage)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", key)
	}
	doc[key] = raw

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding store")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrap(err, "creating data directory")
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", s.path)
	}
	return nil
}

func (s *FileStore) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNotFound, "%s does not exist", s.path)
		}
		return nil, errors.Wrapf(err, "reading %s", s.path)
	}

	doc := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", s.path)
	}
	return doc, nil
}
