// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package script reads insert/delete/print command scripts.
//
// A script is a stream of whitespace separated words. Line breaks carry no
// meaning, so "insert" and its key may sit on different lines:
//
//	insert 5 insert 3
//	delete
//	5
//	print
package script

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

type word struct {
	text string
	line int
}

// Parser yields commands one at a time. After the first error every call to
// Next returns that same error.
type Parser struct {
	scanner *bufio.Scanner
	line    int // line the scanner has reached
	current int // line of the last word returned
	err     error
}

// NewParser reads commands from r.
func NewParser(r io.Reader) *Parser {
	p := &Parser{line: 1}
	p.scanner = bufio.NewScanner(r)
	p.scanner.Split(p.splitWords)
	return p
}

// Next returns the next command, or io.EOF once the script is exhausted.
// Unknown verbs and missing or non-integer keys give an error wrapping
// ErrMalformedCommand.
func (p *Parser) Next() (Command, error) {
	if p.err != nil {
		return Command{}, p.err
	}
	cmd, err := p.next()
	if err != nil {
		p.err = err
	}
	return cmd, err
}

func (p *Parser) next() (Command, error) {
	verb, err := p.word()
	if err != nil {
		return Command{}, err
	}

	op, ok := opNames[verb.text]
	if !ok {
		return Command{}, fmt.Errorf("line %d: unknown command %q: %w", verb.line, verb.text, ErrMalformedCommand)
	}
	cmd := Command{Op: op, Line: verb.line}
	if !op.TakesKey() {
		return cmd, nil
	}

	arg, err := p.word()
	if errors.Is(err, io.EOF) {
		return Command{}, fmt.Errorf("line %d: %s without a key: %w", verb.line, op, ErrMalformedCommand)
	}
	if err != nil {
		return Command{}, err
	}
	cmd.Key, err = strconv.Atoi(arg.text)
	if err != nil {
		return Command{}, fmt.Errorf("line %d: %s key %q is not an integer: %w", arg.line, op, arg.text, ErrMalformedCommand)
	}
	return cmd, nil
}

// word returns the next whitespace separated word.
func (p *Parser) word() (word, error) {
	if !p.scanner.Scan() {
		err := p.scanner.Err()
		if errors.Is(err, bufio.ErrTooLong) {
			// no verb or integer key is anywhere near this long
			return word{}, fmt.Errorf("line %d: word too long: %w", p.line, ErrMalformedCommand)
		}
		if err != nil {
			return word{}, fmt.Errorf("reading script: %w", err)
		}
		return word{}, io.EOF
	}
	return word{text: p.scanner.Text(), line: p.current}, nil
}

var newline = []byte{'\n'}

// splitWords is bufio.ScanWords that also counts the line breaks it steps
// over.
func (p *Parser) splitWords(data []byte, atEOF bool) (int, []byte, error) {
	advance, token, err := bufio.ScanWords(data, atEOF)
	if err != nil || advance == 0 {
		return advance, token, err
	}
	consumed := data[:advance]
	if token == nil {
		p.line += bytes.Count(consumed, newline)
		return advance, nil, nil
	}
	// only whitespace precedes the token, so its first match is the token
	start := bytes.Index(consumed, token)
	p.line += bytes.Count(consumed[:start], newline)
	p.current = p.line
	p.line += bytes.Count(consumed[start+len(token):], newline)
	return advance, token, nil
}

// ParseAll reads the whole script. On a malformed command it returns the
// commands read before it together with the error.
func ParseAll(r io.Reader) ([]Command, error) {
	p := NewParser(r)
	var cmds []Command
	for {
		cmd, err := p.Next()
		if errors.Is(err, io.EOF) {
			return cmds, nil
		}
		if err != nil {
			return cmds, err
		}
		cmds = append(cmds, cmd)
	}
}
