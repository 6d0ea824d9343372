package cache

import (
	"fmt"
	"hash/crc32"
	"os"
	"sync"
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Key derives the cache key for a fixture. Content is hashed with CRC32
// Castagnoli; the option fingerprint is hashed separately so the same
// fixture compiled under two option sets never collides.
func Key(content []byte, fingerprint string) string {
	return fmt.Sprintf("%08x-%08x",
		crc32.Checksum(content, castagnoli),
		crc32.Checksum([]byte(fingerprint), castagnoli))
}

// FileHasher hashes fixture files. Hashes are remembered per path, size and
// modification time so an unchanged file is never read twice.
type FileHasher struct {
	mu     sync.RWMutex
	hashes map[string]string
}

// NewFileHasher creates an empty hasher.
func NewFileHasher() *FileHasher {
	return &FileHasher{hashes: make(map[string]string)}
}

// Hash returns the content hash of the file at path.
func (fh *FileHasher) Hash(path string) (string, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	metaKey := fmt.Sprintf("%s:%d:%d", path, stat.ModTime().UnixNano(), stat.Size())
	fh.mu.RLock()
	hash, ok := fh.hashes[metaKey]
	fh.mu.RUnlock()
	if ok {
		return hash, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	hash = fmt.Sprintf("%08x", crc32.Checksum(content, castagnoli))

	fh.mu.Lock()
	fh.hashes[metaKey] = hash
	fh.mu.Unlock()
	return hash, nil
}

// Forget drops every remembered hash. The watcher calls it after a batch
// removes files.
func (fh *FileHasher) Forget() {
	fh.mu.Lock()
	defer fh.mu.Unlock()
	fh.hashes = make(map[string]string)
}
