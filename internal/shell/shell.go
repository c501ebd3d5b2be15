// Package shell implements splitting of shell style command lines into arguments
// and the inverse, quoting arguments so they survive that split.
//
// The tokenizer is a small state-function scanner similar to that described by Rob Pike
// in his talk [Lexical Scanning in Go]. Unlike the .http scanner it was modelled on, it runs
// synchronously and accumulates into a token buffer rather than emitting position information,
// as the only thing callers need is the list of resulting arguments.
//
// It understands single quotes, double quotes and backslash escapes. It is not a shell,
// there is no variable expansion, globbing or command substitution and the only argument
// separator is a literal space, callers should normalise newlines and tabs first.
//
// [Lexical Scanning in Go]: https://go.dev/talks/2011/lex.slide#1
package shell

import (
	"strings"
	"unicode/utf8"
)

const eof = rune(-1) // eof signifies we have reached the end of the input.

// scanFn represents the state of the scanner as a function that does the work
// associated with the current state, then returns the next state.
type scanFn func(*scanner) scanFn

// scanner holds the state of a single tokenize call.
type scanner struct {
	src     string          // Raw source text
	current strings.Builder // The token currently being built
	tokens  []string        // Completed tokens
	pos     int             // Current position in src (bytes, 0 indexed)
}

// Tokenize splits src into arguments according to shell quoting rules.
//
// Rules, in priority order:
//
//   - A character following a backslash is always taken literally, in any quoting state
//   - A backslash outside single quotes marks the next character as escaped and is dropped
//   - A single quote outside double quotes toggles single quoting and is dropped
//   - A double quote outside single quotes toggles double quoting and is dropped
//   - An unquoted space ends the current token, if it is non-empty
//   - Anything else is appended to the current token
//
// Unterminated quotes run to the end of the input. Empty tokens are never returned,
// so quoted empty strings ('' or "") disappear.
func Tokenize(src string) []string {
	s := &scanner{src: src}

	for state := scanStart; state != nil; {
		state = state(s)
	}

	return s.tokens
}

// next returns the next utf8 rune in the input, or [eof], and advances the scanner
// over that rune.
func (s *scanner) next() rune {
	if s.pos >= len(s.src) {
		return eof
	}

	char, width := utf8.DecodeRuneInString(s.src[s.pos:])
	s.pos += width

	return char
}

// take appends char to the current token.
func (s *scanner) take(char rune) {
	s.current.WriteRune(char)
}

// flush ends the current token, recording it if it is non-empty.
func (s *scanner) flush() {
	if s.current.Len() > 0 {
		s.tokens = append(s.tokens, s.current.String())
	}

	s.current.Reset()
}

// scanStart is the unquoted state, the initial state of the scanner.
func scanStart(s *scanner) scanFn {
	for {
		switch char := s.next(); char {
		case eof:
			s.flush()
			return nil
		case '\\':
			return escaped(scanStart)
		case '\'':
			return scanSingle
		case '"':
			return scanDouble
		case ' ':
			s.flush()
		default:
			s.take(char)
		}
	}
}

// scanSingle scans the inside of a single quoted string, the opening
// quote has already been consumed.
//
// Nothing is special inside single quotes except the closing quote.
func scanSingle(s *scanner) scanFn {
	for {
		switch char := s.next(); char {
		case eof:
			s.flush()
			return nil
		case '\'':
			return scanStart
		default:
			s.take(char)
		}
	}
}

// scanDouble scans the inside of a double quoted string, the opening
// quote has already been consumed.
func scanDouble(s *scanner) scanFn {
	for {
		switch char := s.next(); char {
		case eof:
			s.flush()
			return nil
		case '\\':
			return escaped(scanDouble)
		case '"':
			return scanStart
		default:
			s.take(char)
		}
	}
}

// escaped returns a state that takes the next character literally before
// returning to the state it was escaped from.
//
// A trailing backslash at the very end of the input is dropped.
func escaped(from scanFn) scanFn {
	return func(s *scanner) scanFn {
		char := s.next()
		if char == eof {
			s.flush()
			return nil
		}

		s.take(char)

		return from
	}
}

// Word returns s unchanged if it is a plain shell word that [Tokenize] gives back
// as is, otherwise it returns [Quote] of s.
func Word(s string) string {
	if s == "" || strings.IndexFunc(s, needsQuoting) != -1 {
		return Quote(s)
	}

	return s
}

// needsQuoting reports whether char is anything other than a letter, digit
// or one of the few punctuation characters with no meaning to a shell.
func needsQuoting(char rune) bool {
	switch {
	case char >= 'a' && char <= 'z', char >= 'A' && char <= 'Z', char >= '0' && char <= '9':
		return false
	case strings.ContainsRune("-_.:/@%+=,", char):
		return false
	default:
		return true
	}
}

// Quote returns s wrapped in single quotes such that [Tokenize] (and a real
// POSIX shell) gives back exactly s.
//
// Embedded single quotes are written as '\'' i.e. close the quote, an escaped quote,
// then reopen.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
