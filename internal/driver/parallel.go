package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"relex/internal/diag"
	"relex/internal/lexer"
	"relex/internal/source"
	"relex/internal/token"
)

// Status tracks a file through a directory scan.
type Status uint8

const (
	StatusQueued Status = iota
	StatusTokenizing
	StatusDone
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusTokenizing:
		return "tokenizing"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Event is a progress notification from a directory scan.
type Event struct {
	Path   string
	Index  int
	Total  int
	Status Status
}

// Sink receives progress events. Publish may be called from multiple
// goroutines.
type Sink interface {
	Publish(Event)
}

// ChannelSink forwards events to a channel, dropping them when the receiver
// falls behind.
type ChannelSink struct{ C chan Event }

func NewChannelSink(buf int) *ChannelSink {
	return &ChannelSink{C: make(chan Event, buf)}
}

func (s *ChannelSink) Publish(ev Event) {
	select {
	case s.C <- ev:
	default:
	}
}

// DirOptions configures TokenizeDir.
type DirOptions struct {
	MaxDiagnostics int
	Jobs           int    // 0 means GOMAXPROCS
	Ext            string // file extension filter, e.g. ".txt"
	Progress       Sink   // optional
	Cache          *TokenCache
}

// FileResult is the outcome of scanning one file from a directory.
type FileResult struct {
	Path      string
	FileID    source.FileID
	Tokens    []token.Token
	Bag       *diag.Bag
	FromCache bool
}

// ListFiles returns the sorted list of files under dir with the extension.
func ListFiles(dir, ext string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// TokenizeDir scans every matching file under dir in parallel with the same
// tokenizer. Results are ordered by path. Per-file failures land in the
// per-file Bag; only listing errors and context cancellation return an error.
func TokenizeDir(ctx context.Context, dir string, tok *lexer.Tokenizer, opts DirOptions) (*source.FileSet, []FileResult, error) {
	files, err := ListFiles(dir, opts.Ext)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	// files load up front: FileSet is not safe for concurrent Add
	fileSet := source.NewFileSetWithBase(dir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	publish := func(ev Event) {
		if opts.Progress != nil {
			opts.Progress.Publish(ev)
		}
	}
	for i, path := range files {
		publish(Event{Path: path, Index: i, Total: len(files), Status: StatusQueued})
	}

	// index i is unique per goroutine, no mutex needed
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			publish(Event{Path: path, Index: i, Total: len(files), Status: StatusTokenizing})

			bag := diag.NewBag(opts.MaxDiagnostics)
			if loadErr, hadError := loadErrors[path]; hadError {
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
				})
				results[i] = FileResult{Path: path, Bag: bag}
				publish(Event{Path: path, Index: i, Total: len(files), Status: StatusError})
				return nil
			}

			fileID := fileIDs[path]
			tokens, fromCache := scanWithCache(fileSet, fileID, tok, bag, opts.Cache)
			results[i] = FileResult{
				Path:      path,
				FileID:    fileID,
				Tokens:    tokens,
				Bag:       bag,
				FromCache: fromCache,
			}

			status := StatusDone
			if bag.HasErrors() {
				status = StatusError
			}
			publish(Event{Path: path, Index: i, Total: len(files), Status: status})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// scanWithCache consults the token cache before scanning and stores fresh
// results back. Cache trouble never fails the scan.
func scanWithCache(fileSet *source.FileSet, fileID source.FileID, tok *lexer.Tokenizer, bag *diag.Bag, cache *TokenCache) ([]token.Token, bool) {
	file := fileSet.Get(fileID)

	// content warnings do not depend on scan results, so a cache hit must
	// not suppress them
	reportSourceHygiene(fileSet, fileID, bag)

	if cache == nil {
		return scanTokens(fileSet, fileID, tok, bag), false
	}

	key := CacheKey(file.Hash, tok.Pattern())
	if tokens, ok, err := cache.Get(key, tok.Pattern(), file.Text()); err == nil && ok {
		return tokens, true
	}

	tokens := scanTokens(fileSet, fileID, tok, bag)
	if tokens != nil {
		// best effort; a failed write only costs a rescan next time
		_ = cache.Put(key, tok.Pattern(), tok.Types(), tokens)
	}
	return tokens, false
}
