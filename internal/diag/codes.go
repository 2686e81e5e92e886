package diag

import "fmt"

// Code is a compact numeric identifier with a stable string form. Ranges:
// 1000-1999 scanning, 2000-2999 lexicon configuration, 3000-3999 source
// hygiene, 4000-4999 I/O.
type Code uint16

const (
	UnknownCode Code = 0

	// Scanning
	LexInfo            Code = 1000
	LexUnexpectedInput Code = 1001

	// Lexicon configuration
	CfgInfo               Code = 2000
	CfgBadPattern         Code = 2001
	CfgZeroWidthPattern   Code = 2002
	CfgEmptyTokenName     Code = 2003
	CfgDuplicateTokenType Code = 2004
	CfgBadManifest        Code = 2005
	CfgUnknownKey         Code = 2006
	CfgNoTokenTypes       Code = 2007

	// Source hygiene
	SrcInfo   Code = 3000
	SrcNotNFC Code = 3001

	// I/O
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Scanning information",
	LexUnexpectedInput:    "Input matches no token type",
	CfgInfo:               "Lexicon information",
	CfgBadPattern:         "Pattern does not compile",
	CfgZeroWidthPattern:   "Pattern matches the empty string",
	CfgEmptyTokenName:     "Token type has an empty name",
	CfgDuplicateTokenType: "Duplicate token type name",
	CfgBadManifest:        "Lexicon file does not parse",
	CfgUnknownKey:         "Unknown key in lexicon file",
	CfgNoTokenTypes:       "Lexicon declares no token types",
	SrcInfo:               "Source information",
	SrcNotNFC:             "Source is not NFC-normalized",
	IOLoadFileError:       "I/O load file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SRC%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
