// Package lockfile implements tarjem.lock — a lock file that records
// MD5 checksums of source documents per target language. This enables
// incremental runs: a document whose source is unchanged since its
// last successful translation can be skipped, saving tokens and time.
//
// The lock file lives at the documentation root as tarjem.lock.
package lockfile

import (
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// LockFileName is the default lock file name.
const LockFileName = "tarjem.lock"

// Version is the lock file format version.
const Version = 1

// LockFile represents the tarjem.lock file structure.
type LockFile struct {
	Version   int                          `yaml:"version"`
	Checksums map[string]map[string]string `yaml:"checksums"` // lang -> source path -> md5

	mu   sync.Mutex `yaml:"-"`
	path string     `yaml:"-"`
}

// ---------------------------------------------------------------------------
// Loading and saving
// ---------------------------------------------------------------------------

// New returns an empty lock file rooted in the given directory.
func New(dir string) *LockFile {
	return &LockFile{
		Version:   Version,
		Checksums: make(map[string]map[string]string),
		path:      filepath.Join(dir, LockFileName),
	}
}

// Load reads a lock file from the given directory.
// Returns an empty lock file if the file doesn't exist.
func Load(dir string) (*LockFile, error) {
	path := filepath.Join(dir, LockFileName)
	lf := New(dir)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return lf, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, lf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	lf.path = path

	if lf.Checksums == nil {
		lf.Checksums = make(map[string]map[string]string)
	}

	return lf, nil
}

// Save writes the lock file to disk.
func (lf *LockFile) Save() error {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	if lf.path == "" {
		return fmt.Errorf("lock file path not set")
	}

	data, err := yaml.Marshal(lf)
	if err != nil {
		return fmt.Errorf("marshaling lock file: %w", err)
	}

	if err := os.WriteFile(lf.path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", lf.path, err)
	}

	return nil
}

// Path returns the lock file path.
func (lf *LockFile) Path() string {
	return lf.path
}

// ---------------------------------------------------------------------------
// Checksum operations
// ---------------------------------------------------------------------------

// Hash computes the MD5 hex digest of source content.
func Hash(data []byte) string {
	return fmt.Sprintf("%x", md5.Sum(data))
}

// SourceKey builds a lock file key for a source document path.
func SourceKey(path string) string {
	return filepath.ToSlash(path)
}

// IsChanged checks whether a source document has changed since its
// last successful translation into lang. Returns true for documents
// never translated before.
func (lf *LockFile) IsChanged(lang, sourcePath string, sourceContent []byte) bool {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	byLang, ok := lf.Checksums[lang]
	if !ok {
		return true
	}
	oldHash, ok := byLang[SourceKey(sourcePath)]
	if !ok {
		return true
	}
	return oldHash != Hash(sourceContent)
}

// Update records the checksum of a source document after its
// translation was written successfully.
func (lf *LockFile) Update(lang, sourcePath string, sourceContent []byte) {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	if lf.Checksums[lang] == nil {
		lf.Checksums[lang] = make(map[string]string)
	}
	lf.Checksums[lang][SourceKey(sourcePath)] = Hash(sourceContent)
}

// Clean removes entries for source documents that no longer exist,
// preventing stale checksums from accumulating.
func (lf *LockFile) Clean(lang string, currentPaths []string) {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	existing := lf.Checksums[lang]
	if existing == nil {
		return
	}

	valid := make(map[string]bool, len(currentPaths))
	for _, p := range currentPaths {
		valid[SourceKey(p)] = true
	}

	for k := range existing {
		if !valid[k] {
			delete(existing, k)
		}
	}
}

// ---------------------------------------------------------------------------
// Stats
// ---------------------------------------------------------------------------

// Stats returns the number of languages and total documents tracked.
func (lf *LockFile) Stats() (langs, docs int) {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	langs = len(lf.Checksums)
	for _, m := range lf.Checksums {
		docs += len(m)
	}
	return
}

// Langs returns the sorted list of tracked language codes.
func (lf *LockFile) Langs() []string {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	langs := make([]string, 0, len(lf.Checksums))
	for l := range lf.Checksums {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// Summary returns a human-readable summary string.
func (lf *LockFile) Summary() string {
	langs, docs := lf.Stats()
	if langs == 0 {
		return "empty"
	}

	var parts []string
	for _, l := range lf.Langs() {
		parts = append(parts, fmt.Sprintf("%s: %d documents", l, len(lf.Checksums[l])))
	}
	return fmt.Sprintf("%d languages, %d documents (%s)", langs, docs, strings.Join(parts, ", "))
}
