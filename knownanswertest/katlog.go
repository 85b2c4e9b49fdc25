package knownanswertest

// Copyright (c) 2025 Colin McRae

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/predrag3141/polyrep/ddops"
)

// KATEntry is one line of a KATLog.
type KATEntry struct {
	Name          string        `json:"name"`
	Dim           int           `json:"dim"`
	NumGenerators int           `json:"numGenerators"`
	NumEqualities int           `json:"numEqualities"`
	NumFacets     int           `json:"numFacets"`
	NumVertices   int           `json:"numVertices"`
	Elapsed       time.Duration `json:"elapsed"`
	Report        *ddops.Report `json:"report,omitempty"`
	Error         string        `json:"error,omitempty"`
}

// KATLog writes one JSON object per line to a file named after a fresh
// UUID. It is safe for concurrent use.
type KATLog struct {
	mu      sync.Mutex
	path    string
	file    *os.File
	encoder *json.Encoder
	count   int
}

// NewKATLog creates a log file in dir.
func NewKATLog(dir string) (*KATLog, error) {
	path := filepath.Join(dir, fmt.Sprintf("kat-%s.jsonl", uuid.NewString()))
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("NewKATLog: could not create %q: %w", path, err)
	}
	return &KATLog{path: path, file: file, encoder: json.NewEncoder(file)}, nil
}

// Path returns the path of the log file.
func (kl *KATLog) Path() string {
	return kl.path
}

// Count returns the number of entries written.
func (kl *KATLog) Count() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	return kl.count
}

// Record appends entry to the log.
func (kl *KATLog) Record(entry KATEntry) error {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	if err := kl.encoder.Encode(entry); err != nil {
		return fmt.Errorf("KATLog.Record: %s: %w", entry.Name, err)
	}
	kl.count++
	return nil
}

// Close closes the log file.
func (kl *KATLog) Close() error {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	return kl.file.Close()
}

// ReadKATLog returns the entries of the log file at path.
func ReadKATLog(path string) ([]KATEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ReadKATLog: %w", err)
	}
	defer file.Close()
	var retVal []KATEntry
	decoder := json.NewDecoder(file)
	for decoder.More() {
		var entry KATEntry
		if err = decoder.Decode(&entry); err != nil {
			return nil, fmt.Errorf("ReadKATLog: entry %d of %q: %w", len(retVal), path, err)
		}
		retVal = append(retVal, entry)
	}
	return retVal, nil
}
