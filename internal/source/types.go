package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	// FileNotNFC is set when the content is not in Unicode NFC form.
	// Tokenizers compare bytes, so visually identical lexemes in different
	// normalization forms will not match each other; the driver surfaces
	// this as a source-hygiene warning.
	FileNotNFC
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// Text returns the file content as a string. Token values produced from the
// returned string are substrings of it, so the caller should convert once per
// scan rather than per token.
func (f *File) Text() string {
	return string(f.Content)
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
