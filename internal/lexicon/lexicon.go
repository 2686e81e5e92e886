// Package lexicon loads tokenizer definitions from TOML files. A lexicon
// declares the ignore pattern and the ordered token types the scanner is
// built from:
//
//	[lexicon]
//	ignore = '\s+'
//
//	[[token]]
//	name = "number"
//	pattern = '[0-9]+'
//
//	[[token]]
//	name = "+"
//
// Token order in the file is priority order. A token without a pattern scans
// as its name, quoted literally.
package lexicon

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"relex/internal/lexer"
)

// Lexicon is a parsed tokenizer definition, not yet compiled.
type Lexicon struct {
	Ignore string
	Tokens []TokenDef
}

// TokenDef is one token type declaration. Pattern is empty when the name
// itself is the lexeme.
type TokenDef struct {
	Name    string
	Pattern string
}

type fileConfig struct {
	Lexicon lexiconConfig `toml:"lexicon"`
	Token   []tokenConfig `toml:"token"`
}

type lexiconConfig struct {
	Ignore string `toml:"ignore"`
}

type tokenConfig struct {
	Name    string `toml:"name"`
	Pattern string `toml:"pattern"`
}

// defaultIgnore is used when the lexicon omits [lexicon].ignore.
const defaultIgnore = `\s+`

// Load reads and validates a lexicon file.
func Load(path string) (*Lexicon, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	lx, err := fromConfig(cfg, meta)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lx, nil
}

// Parse validates lexicon text held in memory.
func Parse(data string) (*Lexicon, error) {
	var cfg fileConfig
	meta, err := toml.Decode(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return fromConfig(cfg, meta)
}

func fromConfig(cfg fileConfig, meta toml.MetaData) (*Lexicon, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	if len(cfg.Token) == 0 {
		return nil, fmt.Errorf("no [[token]] entries")
	}

	ignore := cfg.Lexicon.Ignore
	if !meta.IsDefined("lexicon", "ignore") {
		ignore = defaultIgnore
	}

	lx := &Lexicon{Ignore: ignore, Tokens: make([]TokenDef, 0, len(cfg.Token))}
	seen := make(map[string]bool, len(cfg.Token))
	for i, tc := range cfg.Token {
		name := tc.Name
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("token %d: missing name", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate token type %q", name)
		}
		seen[name] = true
		lx.Tokens = append(lx.Tokens, TokenDef{Name: name, Pattern: tc.Pattern})
	}
	return lx, nil
}

// Types returns the token type names in priority order.
func (lx *Lexicon) Types() []string {
	out := make([]string, len(lx.Tokens))
	for i, td := range lx.Tokens {
		out[i] = td.Name
	}
	return out
}

// Overrides returns the name-to-pattern map for tokens that declare one.
func (lx *Lexicon) Overrides() map[string]string {
	out := make(map[string]string)
	for _, td := range lx.Tokens {
		if td.Pattern != "" {
			out[td.Name] = td.Pattern
		}
	}
	return out
}

// Build compiles the lexicon into a scanner.
func (lx *Lexicon) Build() (*lexer.Tokenizer, error) {
	return lexer.New(lx.Ignore, lx.Overrides(), lx.Types())
}
