package directive

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"

	"srcdep/internal/diag"
	"srcdep/internal/source"
)

// DefaultMarker is the comment prefix that opens a directive line.
const DefaultMarker = "///"

// Options configures a directive Scanner.
type Options struct {
	// Marker overrides the directive comment prefix. Empty means
	// DefaultMarker.
	Marker string
	// Reporter receives per-line scan diagnostics. Nil discards them.
	Reporter diag.Reporter
}

// Scanner walks one file line by line and yields directives in source
// order. A fresh Scanner restarts the walk from the top; a single bad
// line never aborts the rest of the file.
type Scanner struct {
	file     *source.File
	marker   string
	reporter diag.Reporter
	off      int // byte offset of the next unread line
}

// NewScanner creates a Scanner over file.
func NewScanner(file *source.File, opts Options) *Scanner {
	marker := opts.Marker
	if marker == "" {
		marker = DefaultMarker
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Scanner{
		file:     file,
		marker:   marker,
		reporter: reporter,
	}
}

// Next returns the next directive in the file. The second result is
// false once the file is exhausted.
func (s *Scanner) Next() (Directive, bool) {
	content := s.file.Content
	for s.off < len(content) {
		lineStart := s.off
		lineEnd := lineStart
		if nl := bytes.IndexByte(content[lineStart:], '\n'); nl >= 0 {
			lineEnd = lineStart + nl
			s.off = lineEnd + 1
		} else {
			lineEnd = len(content)
			s.off = lineEnd
		}

		if d, ok := s.parseLine(string(content[lineStart:lineEnd]), lineStart); ok {
			return d, true
		}
	}
	return Directive{}, false
}

// ScanFile collects every directive of file in source order.
func ScanFile(file *source.File, opts Options) []Directive {
	sc := NewScanner(file, opts)
	var out []Directive
	for {
		d, ok := sc.Next()
		if !ok {
			return out
		}
		out = append(out, d)
	}
}

// parseLine recognizes one directive line. Lines without the marker, or
// with nothing after it, are skipped without report.
func (s *Scanner) parseLine(text string, lineStart int) (Directive, bool) {
	i := skipSpace(text, 0)
	if !strings.HasPrefix(text[i:], s.marker) {
		return Directive{}, false
	}
	i += len(s.marker)

	// A marker glued to more punctuation (e.g. a //// banner) is an
	// ordinary comment, not a directive candidate.
	if i < len(text) {
		r, _ := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(r) {
			return Directive{}, false
		}
	}

	tokens := tokenize(text, i)
	if len(tokens) == 0 {
		return Directive{}, false
	}

	return s.parseTokens(tokens, lineStart, "")
}

// parseTokens dispatches on the leading keyword. guard is non-empty on
// the recursive call behind a {NAME} prefix.
func (s *Scanner) parseTokens(tokens []lineToken, lineStart int, guard string) (Directive, bool) {
	head := tokens[0]

	switch {
	case head.text == "uselibrary" || head.text == "usepackage":
		kind := KindUseLibrary
		if head.text == "usepackage" {
			kind = KindUsePackage
		}
		if len(tokens) != 2 {
			s.report(diag.DirMalformed, s.span(lineStart, head, tokens[len(tokens)-1]),
				fmt.Sprintf("'%s' expects exactly one name", head.text))
			return Directive{}, false
		}
		return Directive{
			Kind:  kind,
			Name:  tokens[1].text,
			Guard: guard,
			Span:  s.span(lineStart, head, tokens[1]),
		}, true

	case head.text == "switch":
		if guard != "" {
			s.report(diag.DirGuardedSwitch, s.span(lineStart, head, tokens[len(tokens)-1]),
				"a switch declaration cannot be guarded by another switch")
			return Directive{}, false
		}
		if len(tokens) != 3 {
			s.report(diag.DirMalformed, s.span(lineStart, head, tokens[len(tokens)-1]),
				"'switch' expects a name and a default (0 or 1)")
			return Directive{}, false
		}
		name := tokens[1].text
		if !isIdent(name) {
			s.report(diag.DirMalformed, s.span(lineStart, tokens[1], tokens[1]),
				fmt.Sprintf("invalid switch name %q", name))
			return Directive{}, false
		}
		def, ok := parseBoolToken(tokens[2].text)
		if !ok {
			s.report(diag.DirMalformed, s.span(lineStart, tokens[2], tokens[2]),
				fmt.Sprintf("switch default %q is not a boolean token", tokens[2].text))
			return Directive{}, false
		}
		return Directive{
			Kind:    KindSwitchDecl,
			Name:    name,
			Default: def,
			Span:    s.span(lineStart, head, tokens[2]),
		}, true

	case strings.HasPrefix(head.text, "{"):
		if guard != "" {
			s.report(diag.DirMalformed, s.span(lineStart, head, head),
				"nested guards are not supported")
			return Directive{}, false
		}
		name, ok := guardName(head.text)
		if !ok {
			s.report(diag.DirMalformed, s.span(lineStart, head, head),
				fmt.Sprintf("malformed guard %q, expected {NAME}", head.text))
			return Directive{}, false
		}
		if len(tokens) == 1 {
			s.report(diag.DirMalformed, s.span(lineStart, head, head),
				"guard without a directive")
			return Directive{}, false
		}
		return s.parseTokens(tokens[1:], lineStart, name)

	default:
		s.report(diag.DirUnknown, s.span(lineStart, head, head),
			fmt.Sprintf("unknown directive keyword %q", head.text))
		return Directive{}, false
	}
}

func (s *Scanner) report(code diag.Code, sp source.Span, msg string) {
	s.reporter.Report(code, diag.SevError, sp, msg, nil)
}

// span builds the file span from the first to the last token.
func (s *Scanner) span(lineStart int, first, last lineToken) source.Span {
	start, err := safecast.Conv[uint32](lineStart + first.start)
	if err != nil {
		panic(fmt.Errorf("span start overflow: %w", err))
	}
	end, err := safecast.Conv[uint32](lineStart + last.end)
	if err != nil {
		panic(fmt.Errorf("span end overflow: %w", err))
	}
	return source.Span{File: s.file.ID, Start: start, End: end}
}

type lineToken struct {
	text  string
	start int // byte offset within the line
	end   int
}

// tokenize splits text[from:] into whitespace-delimited tokens,
// keeping byte offsets for span reporting.
func tokenize(text string, from int) []lineToken {
	var out []lineToken
	i := from
	for i < len(text) {
		i = skipSpace(text, i)
		if i >= len(text) {
			break
		}
		start := i
		for i < len(text) {
			r, size := utf8.DecodeRuneInString(text[i:])
			if unicode.IsSpace(r) {
				break
			}
			i += size
		}
		out = append(out, lineToken{text: text[start:i], start: start, end: i})
	}
	return out
}

func skipSpace(text string, i int) int {
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

// parseBoolToken accepts the boolean spellings of the directive
// grammar: 0/1 and true/false.
func parseBoolToken(tok string) (value, ok bool) {
	switch tok {
	case "1", "true":
		return true, true
	case "0", "false":
		return false, true
	}
	return false, false
}

// guardName extracts NAME from a {NAME} token.
func guardName(tok string) (string, bool) {
	if len(tok) < 3 || tok[0] != '{' || tok[len(tok)-1] != '}' {
		return "", false
	}
	name := tok[1 : len(tok)-1]
	if !isIdent(name) {
		return "", false
	}
	return name, true
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if unicode.IsLetter(r) || r == '_' {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
