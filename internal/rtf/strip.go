// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rtf

import (
	"strconv"
	"strings"
)

// destinationWords name groups whose entire content is document metadata
// (font tables, style sheets, embedded objects). The stripper drops these
// groups whole; everything else it flattens to text (R4.2).
var destinationWords = map[string]bool{
	"colortbl": true, "fonttbl": true, "filetbl": true, "stylesheet": true,
	"listtable": true, "listoverridetable": true, "info": true,
	"generator": true, "pict": true, "object": true, "themedata": true,
	"colorschememapping": true, "xmlnstbl": true, "header": true,
	"footer": true, "ftnsep": true, "ftncn": true,
}

// cp1252High maps the Windows-1252 bytes that differ from Latin-1. Every
// other escaped byte decodes to the code point of the same value.
var cp1252High = map[byte]rune{
	0x80: '€', 0x82: '‚', 0x83: 'ƒ', 0x84: '„',
	0x85: '…', 0x86: '†', 0x87: '‡', 0x88: 'ˆ',
	0x89: '‰', 0x8a: 'Š', 0x8b: '‹', 0x8c: 'Œ',
	0x8e: 'Ž', 0x91: '‘', 0x92: '’', 0x93: '“',
	0x94: '”', 0x95: '•', 0x96: '–', 0x97: '—',
	0x98: '˜', 0x99: '™', 0x9a: 'š', 0x9b: '›',
	0x9c: 'œ', 0x9e: 'ž', 0x9f: 'Ÿ',
}

// stripper holds the scan state for one document: the output buffer, the
// current group depth, the depth of the group being skipped (0 when text is
// live), and the \uc substitution-skip counters.
type stripper struct {
	out       strings.Builder
	depth     int
	skipDepth int
	ucSkip    int
	pending   int
}

// StripControls converts markup to plain text: control words and group braces
// are dropped, destination groups are skipped whole, character escapes are
// decoded, and paragraph breaks become newlines. Only color runs and plain
// text are modeled; every other formatting construct is discarded, not
// interpreted (R4.1).
//
// A control word's single trailing space is its delimiter and is consumed
// with it. Protected <marker>cf<digits> sequences start with a non-escape
// byte, so they ride through untouched.
func StripControls(content string) string {
	s := stripper{ucSkip: 1}
	s.out.Grow(len(content))
	for i := 0; i < len(content); {
		i = s.step(content, i)
	}
	return s.out.String()
}

// step consumes one token starting at i and returns the index after it.
func (s *stripper) step(content string, i int) int {
	switch content[i] {
	case '{':
		s.depth++
		return i + 1
	case '}':
		s.depth--
		if s.skipDepth > 0 && s.depth < s.skipDepth {
			s.skipDepth = 0
		}
		return i + 1
	case '\r', '\n':
		// Raw line breaks are markup formatting, not text.
		return i + 1
	case '\\':
		return s.escape(content, i)
	default:
		if s.skipDepth > 0 {
			return i + 1
		}
		if s.pending > 0 {
			s.pending--
			return i + 1
		}
		s.out.WriteByte(content[i])
		return i + 1
	}
}

// escape consumes one backslash sequence starting at i.
func (s *stripper) escape(content string, i int) int {
	if i+1 >= len(content) {
		return i + 1
	}
	next := content[i+1]
	live := s.skipDepth == 0

	switch {
	case next == '\\' || next == '{' || next == '}':
		if live {
			s.out.WriteByte(next)
		}
		return i + 2
	case next == '\'':
		if i+4 > len(content) {
			return i + 2
		}
		b, err := strconv.ParseUint(content[i+2:i+4], 16, 8)
		if err != nil {
			return i + 2
		}
		if live {
			if s.pending > 0 {
				s.pending--
			} else {
				s.out.WriteRune(decodeByte(byte(b)))
			}
		}
		return i + 4
	case next == '*':
		if live {
			s.skipDepth = s.depth
		}
		return i + 2
	case next == '~':
		if live {
			s.out.WriteRune(' ')
		}
		return i + 2
	case next == '-':
		// Optional hyphen: invisible unless the line breaks there.
		return i + 2
	case next == '_':
		if live {
			s.out.WriteByte('-')
		}
		return i + 2
	case next == '\r', next == '\n':
		if live {
			s.out.WriteByte('\n')
		}
		if next == '\r' && i+2 < len(content) && content[i+2] == '\n' {
			return i + 3
		}
		return i + 2
	case isLetter(next):
		word, param, hasParam, width := readControlWord(content[i:])
		if !live {
			return i + width
		}
		switch {
		case destinationWords[word]:
			s.skipDepth = s.depth
		case word == "par" || word == "line":
			s.out.WriteByte('\n')
		case word == "tab":
			s.out.WriteByte('\t')
		case word == "uc" && hasParam:
			s.ucSkip = param
		case word == "u" && hasParam:
			r := param
			if r < 0 {
				r += 65536
			}
			s.out.WriteRune(rune(r))
			s.pending = s.ucSkip
		}
		return i + width
	default:
		// Unknown control symbol: dropped like any other formatting.
		return i + 2
	}
}

// readControlWord parses a control word at the backslash: its letters, an
// optional signed numeric parameter, and the single optional space that
// terminates it. The space belongs to the control word, not the text.
func readControlWord(s string) (word string, param int, hasParam bool, width int) {
	i := 1
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	word = s[1:i]

	j := i
	if j < len(s) && s[j] == '-' {
		j++
	}
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	if digits := s[i:j]; digits != "" && digits != "-" {
		if n, err := strconv.Atoi(digits); err == nil {
			param, hasParam = n, true
			i = j
		}
	}

	if i < len(s) && s[i] == ' ' {
		i++
	}
	return word, param, hasParam, i
}

// decodeByte maps one escaped byte to its Windows-1252 character.
func decodeByte(b byte) rune {
	if r, ok := cp1252High[b]; ok {
		return r
	}
	return rune(b)
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
