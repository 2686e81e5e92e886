package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"relex/internal/token"
)

// Digest identifies a cache entry: sha256 over the file content hash and the
// composite pattern, so a lexicon change invalidates every entry.
type Digest [32]byte

// Increment when the payload format changes.
const tokenCacheSchemaVersion uint16 = 1

// TokenCache stores scan results on disk keyed by Digest. Safe for
// concurrent use. A nil *TokenCache is a no-op cache.
type TokenCache struct {
	mu  sync.RWMutex
	dir string
}

// cachedToken stores a token as a type index plus byte offsets; values are
// reconstructed from the source text on load.
type cachedToken struct {
	Type  uint32
	Start uint32
	End   uint32
}

type diskPayload struct {
	Schema  uint16
	Pattern string
	Types   []string
	Tokens  []cachedToken
}

// OpenTokenCache initializes a disk cache under the XDG cache directory.
func OpenTokenCache(app string) (*TokenCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &TokenCache{dir: dir}, nil
}

// CacheKey derives the entry digest from a file content hash and the
// tokenizer's composite pattern.
func CacheKey(fileHash [32]byte, pattern string) Digest {
	h := sha256.New()
	h.Write(fileHash[:])
	h.Write([]byte(pattern))
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

func (c *TokenCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "tokens", hexKey+".mp")
}

// Put serializes a token stream into the cache. Values are not stored; the
// offsets plus the source text are enough to restore them.
func (c *TokenCache) Put(key Digest, pattern string, types []string, tokens []token.Token) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	typeIndex := make(map[string]uint32, len(types))
	for i, name := range types {
		idx, err := safecast.Conv[uint32](i)
		if err != nil {
			return fmt.Errorf("type index overflow: %w", err)
		}
		typeIndex[name] = idx
	}

	payload := diskPayload{
		Schema:  tokenCacheSchemaVersion,
		Pattern: pattern,
		Types:   types,
		Tokens:  make([]cachedToken, 0, len(tokens)),
	}
	for _, tok := range tokens {
		idx, ok := typeIndex[tok.Type]
		if !ok {
			return fmt.Errorf("token type %q not in type list", tok.Type)
		}
		start, err := safecast.Conv[uint32](tok.Start)
		if err != nil {
			return fmt.Errorf("token start overflow: %w", err)
		}
		end, err := safecast.Conv[uint32](tok.End)
		if err != nil {
			return fmt.Errorf("token end overflow: %w", err)
		}
		payload.Tokens = append(payload.Tokens, cachedToken{Type: idx, Start: start, End: end})
	}

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// atomic replace
	return os.Rename(f.Name(), p)
}

// Get restores a token stream from the cache. The source text must be the
// same content the digest was computed from. Returns ok=false on a miss, a
// schema mismatch, or a pattern mismatch.
func (c *TokenCache) Get(key Digest, pattern, text string) ([]token.Token, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload diskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != tokenCacheSchemaVersion || payload.Pattern != pattern {
		return nil, false, nil
	}

	out := make([]token.Token, 0, len(payload.Tokens))
	for _, ct := range payload.Tokens {
		if int(ct.Type) >= len(payload.Types) || int(ct.End) > len(text) || ct.Start > ct.End {
			return nil, false, fmt.Errorf("corrupt cache entry %x", key[:4])
		}
		out = append(out, token.Token{
			Type:  payload.Types[ct.Type],
			Value: text[ct.Start:ct.End],
			Start: int(ct.Start),
			End:   int(ct.End),
		})
	}
	return out, true, nil
}

// DropAll invalidates the whole cache.
func (c *TokenCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
