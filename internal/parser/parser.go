package parser

import (
	"os"

	"github.com/alecthomas/participle/v2"

	"github.com/bware/jimpl/internal/errors"
)

// SourceParser parses Java compilation units into their declaration
// structure. It is safe for reuse across files; the underlying grammar is
// built once.
type SourceParser struct {
	parser *participle.Parser[SourceFile]
}

// NewSourceParser creates a new Java declaration parser
func NewSourceParser() *SourceParser {
	return &SourceParser{
		parser: buildParser(),
	}
}

// Parse parses source text. The filename is used in error locations only.
func (p *SourceParser) Parse(filename, source string) (*SourceFile, error) {
	file, err := p.parser.ParseString(filename, source)
	if err != nil {
		parseErr := errors.WrapParseError(filename, err)
		if perr, ok := err.(participle.Error); ok {
			pos := perr.Position()
			parseErr.WithLocation(errors.SourceLocation{
				File:   pos.Filename,
				Line:   pos.Line,
				Column: pos.Column,
			})
		}
		return nil, parseErr
	}
	return file, nil
}

// ParseFile reads and parses a Java source file.
func (p *SourceParser) ParseFile(path string) (*SourceFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFileSystemError("read", path, err)
	}
	return p.Parse(path, string(content))
}
