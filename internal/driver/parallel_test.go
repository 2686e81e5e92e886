package driver

import (
	"context"
	"testing"

	"relex/internal/diag"
	"relex/internal/lexer"
)

func TestTokenizeDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "  12 ab")
	writeFile(t, dir, "a.txt", "+ ☃")
	writeFile(t, dir, "skip.dat", "* not scanned *")

	fs, results, err := TokenizeDir(context.Background(), dir, newTestTokenizer(t), DirOptions{
		MaxDiagnostics: 10,
		Ext:            ".txt",
	})
	if err != nil {
		t.Fatalf("TokenizeDir: %v", err)
	}
	if fs.Len() != 2 {
		t.Errorf("expected 2 loaded files, got %d", fs.Len())
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	// results come back sorted by path
	if results[0].Path >= results[1].Path {
		t.Errorf("results not sorted: %q, %q", results[0].Path, results[1].Path)
	}
	if len(results[0].Tokens) != 2 || len(results[1].Tokens) != 2 {
		t.Errorf("unexpected token counts: %v, %v", results[0].Tokens, results[1].Tokens)
	}
}

func TestTokenizeDirEmpty(t *testing.T) {
	_, results, err := TokenizeDir(context.Background(), t.TempDir(), newTestTokenizer(t), DirOptions{
		MaxDiagnostics: 10,
		Ext:            ".txt",
	})
	if err != nil {
		t.Fatalf("TokenizeDir: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %v", results)
	}
}

func TestTokenizeDirReportsScanErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.txt", " * +abc ")
	writeFile(t, dir, "ok.txt", "ab 12")

	_, results, err := TokenizeDir(context.Background(), dir, newTestTokenizer(t), DirOptions{
		MaxDiagnostics: 10,
		Ext:            ".txt",
		Jobs:           2,
	})
	if err != nil {
		t.Fatalf("TokenizeDir: %v", err)
	}

	var bad, ok *FileResult
	for i := range results {
		switch {
		case results[i].Bag.HasErrors():
			bad = &results[i]
		default:
			ok = &results[i]
		}
	}
	if bad == nil || ok == nil {
		t.Fatalf("expected one failing and one clean file: %v", results)
	}
	if bad.Tokens != nil {
		t.Errorf("expected no tokens for the failing file, got %v", bad.Tokens)
	}
	if bad.Bag.Items()[0].Code != diag.LexUnexpectedInput {
		t.Errorf("unexpected code %v", bad.Bag.Items()[0].Code)
	}
	if len(ok.Tokens) != 2 {
		t.Errorf("expected 2 tokens for the clean file, got %v", ok.Tokens)
	}
}

func TestTokenizeDirProgressEvents(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "ab")
	writeFile(t, dir, "b.txt", "12")

	sink := NewChannelSink(64)
	_, _, err := TokenizeDir(context.Background(), dir, newTestTokenizer(t), DirOptions{
		MaxDiagnostics: 10,
		Ext:            ".txt",
		Progress:       sink,
	})
	if err != nil {
		t.Fatalf("TokenizeDir: %v", err)
	}
	close(sink.C)

	counts := make(map[Status]int)
	for ev := range sink.C {
		if ev.Total != 2 {
			t.Errorf("expected Total 2, got %d", ev.Total)
		}
		counts[ev.Status]++
	}
	if counts[StatusQueued] != 2 || counts[StatusTokenizing] != 2 || counts[StatusDone] != 2 {
		t.Errorf("unexpected event counts: %v", counts)
	}
}

func TestTokenizeDirCancel(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		writeFile(t, dir, name, "ab 12")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := TokenizeDir(ctx, dir, newTestTokenizer(t), DirOptions{
		MaxDiagnostics: 10,
		Ext:            ".txt",
		Jobs:           1,
	})
	if err == nil {
		t.Error("expected a cancellation error")
	}
}

func TestTokenizeDirUsesCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenTokenCache("relex-test")
	if err != nil {
		t.Fatalf("OpenTokenCache: %v", err)
	}

	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "ab 12")
	tok := newTestTokenizer(t)
	opts := DirOptions{MaxDiagnostics: 10, Ext: ".txt", Cache: cache}

	_, first, err := TokenizeDir(context.Background(), dir, tok, opts)
	if err != nil {
		t.Fatalf("first TokenizeDir: %v", err)
	}
	if first[0].FromCache {
		t.Error("first scan must not come from cache")
	}

	_, second, err := TokenizeDir(context.Background(), dir, tok, opts)
	if err != nil {
		t.Fatalf("second TokenizeDir: %v", err)
	}
	if !second[0].FromCache {
		t.Error("second scan should come from cache")
	}
	if len(second[0].Tokens) != len(first[0].Tokens) {
		t.Errorf("cached tokens differ: %v vs %v", second[0].Tokens, first[0].Tokens)
	}
}

func TestTokenizeDirCacheKeepsContentWarnings(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenTokenCache("relex-test")
	if err != nil {
		t.Fatalf("OpenTokenCache: %v", err)
	}

	dir := t.TempDir()
	// decomposed e + combining accent: scans fine, but warns about NFC
	writeFile(t, dir, "nfd.txt", "caf\x65\xcc\x81 12")

	tok, err := lexer.New(`\s+`, map[string]string{"word": `\S+`}, []string{"word"})
	if err != nil {
		t.Fatalf("lexer.New: %v", err)
	}
	opts := DirOptions{MaxDiagnostics: 10, Ext: ".txt", Cache: cache}

	_, cold, err := TokenizeDir(context.Background(), dir, tok, opts)
	if err != nil {
		t.Fatalf("cold TokenizeDir: %v", err)
	}
	if cold[0].FromCache || !cold[0].Bag.HasWarnings() {
		t.Fatalf("cold run: FromCache=%v warnings=%v", cold[0].FromCache, cold[0].Bag.HasWarnings())
	}

	_, warm, err := TokenizeDir(context.Background(), dir, tok, opts)
	if err != nil {
		t.Fatalf("warm TokenizeDir: %v", err)
	}
	if !warm[0].FromCache {
		t.Fatal("warm run should hit the cache")
	}
	if !warm[0].Bag.HasWarnings() {
		t.Fatal("cache hit dropped the content warning")
	}
	if warm[0].Bag.Items()[0].Code != diag.SrcNotNFC {
		t.Errorf("expected SrcNotNFC, got %v", warm[0].Bag.Items()[0].Code)
	}
	if len(warm[0].Tokens) != len(cold[0].Tokens) {
		t.Errorf("cached tokens differ: %v vs %v", warm[0].Tokens, cold[0].Tokens)
	}
}
