package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a save file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FileStore keeps the save as a single JSON or YAML document on disk.
type FileStore struct {
	path   string
	format Format
}

func NewFileStore(path string, format Format) *FileStore {
	if format != FormatYAML {
		format = FormatJSON
	}
	return &FileStore{path: path, format: format}
}

func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Save(ctx context.Context, rec SaveRecord) error {
	data, err := f.encode(rec)
	if err != nil {
		return errors.Wrap(err, "encode save")
	}
	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create save directory")
		}
	}
	// write then rename so a crash never leaves half a save behind
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", tmp)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, "replace %s", f.path)
	}
	return nil
}

func (f *FileStore) Load(ctx context.Context) (SaveRecord, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return SaveRecord{}, ErrNoSave
		}
		return SaveRecord{}, fmt.Errorf("%w: %v", ErrNoSave, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return SaveRecord{}, fmt.Errorf("%w: save file is empty", ErrNoSave)
	}
	doc, err := f.decode(data)
	if err != nil {
		return SaveRecord{}, fmt.Errorf("%w: save file is corrupted: %v", ErrNoSave, err)
	}
	return recordFromDocument(doc), nil
}

func (f *FileStore) Delete(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "delete %s", f.path)
	}
	return nil
}

func (f *FileStore) Close() error { return nil }

func (f *FileStore) encode(rec SaveRecord) ([]byte, error) {
	if f.format == FormatYAML {
		return yaml.Marshal(rec)
	}
	return json.MarshalIndent(rec, "", "  ")
}

func (f *FileStore) decode(data []byte) (map[string]any, error) {
	var doc map[string]any
	var err error
	if f.format == FormatYAML {
		err = yaml.Unmarshal(data, &doc)
	} else {
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("document is not a mapping")
	}
	return doc, nil
}
