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

package main

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/cybrota/avlscript/avl"
	"github.com/cybrota/avlscript/script"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"github.com/willf/bloom"
)

// Existing tooling greps for this exact text.
const malformedMessage = "Data not consistent in file"

const (
	seenKeysEstimate      = 1 << 16
	seenKeysFalsePositive = 0.01
)

// ErrInvariantViolation is returned when invariant checking is on and a
// mutation leaves the tree broken.
var ErrInvariantViolation = errors.New("tree invariant violated")

// RunOptions tunes a Runner. The zero value runs a script with no extras.
type RunOptions struct {
	CheckInvariants   bool
	SkipUnseenDeletes bool
	Progress          io.Writer    // progress bar destination, nil for none
	Cache             *RenderCache // nil renders every print afresh
	Logger            *zerolog.Logger
}

// Stats counts what a run did.
type Stats struct {
	Commands       int
	Inserted       int
	Duplicates     int
	Deleted        int
	Missing        int // deletes of keys that were not in the tree
	SkippedDeletes int // subset of Missing answered by the seen-keys filter
	Prints         int
	CacheHits      int
}

// Runner applies script commands to one tree and writes print output.
type Runner struct {
	tree  *avl.Tree
	out   *bufio.Writer
	opts  RunOptions
	log   zerolog.Logger
	seen  *bloom.BloomFilter
	stats Stats
}

// NewRunner prepares a runner for tree. Output is buffered until Run
// returns.
func NewRunner(tree *avl.Tree, out io.Writer, opts RunOptions) *Runner {
	r := &Runner{
		tree: tree,
		out:  bufio.NewWriter(out),
		opts: opts,
		log:  zerolog.Nop(),
	}
	if opts.Logger != nil {
		r.log = *opts.Logger
	}
	if opts.SkipUnseenDeletes {
		// Keys are only ever added to the filter, so a negative answer
		// means the key was never inserted and a delete has nothing to do.
		r.seen = bloom.NewWithEstimates(seenKeysEstimate, seenKeysFalsePositive)
		for v := range tree.Traverse() {
			r.seen.Add(keyBytes(v.Key))
		}
	}
	return r
}

// Run executes commands until the parser is exhausted. A malformed command
// writes the compatibility message and stops the run; its error is
// returned wrapped around script.ErrMalformedCommand.
func (r *Runner) Run(p *script.Parser) (Stats, error) {
	var bar *progressbar.ProgressBar
	if r.opts.Progress != nil {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(r.opts.Progress),
			progressbar.OptionSetDescription("Running script..."),
			progressbar.OptionSetWidth(50),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	err := r.run(p, bar)

	if bar != nil {
		_ = bar.Finish()
	}
	if ferr := r.out.Flush(); ferr != nil && err == nil {
		err = fmt.Errorf("writing output: %w", ferr)
	}
	return r.stats, err
}

func (r *Runner) run(p *script.Parser, bar *progressbar.ProgressBar) error {
	for {
		cmd, err := p.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if errors.Is(err, script.ErrMalformedCommand) {
				r.out.WriteString(malformedMessage)
			}
			return err
		}
		if err := r.Apply(cmd); err != nil {
			return err
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
}

// Apply runs a single command.
func (r *Runner) Apply(cmd script.Command) error {
	r.stats.Commands++
	r.log.Debug().Str("op", cmd.Op.String()).Int("key", cmd.Key).Int("line", cmd.Line).Msg("apply")

	switch cmd.Op {
	case script.OpInsert:
		if r.seen != nil {
			r.seen.Add(keyBytes(cmd.Key))
		}
		if !r.tree.Insert(cmd.Key) {
			r.stats.Duplicates++
			return nil
		}
		r.stats.Inserted++
		return r.checkTree(cmd)

	case script.OpDelete:
		if r.seen != nil && !r.seen.Test(keyBytes(cmd.Key)) {
			r.log.Trace().Int("key", cmd.Key).Msg("key never inserted, delete skipped")
			r.stats.Missing++
			r.stats.SkippedDeletes++
			return nil
		}
		if !r.tree.Delete(cmd.Key) {
			r.stats.Missing++
			return nil
		}
		r.stats.Deleted++
		return r.checkTree(cmd)

	case script.OpPrint:
		r.stats.Prints++
		text := r.render()
		r.out.WriteString(text)
		r.out.WriteString("\n")
		return nil
	}
	return fmt.Errorf("line %d: unsupported op %v", cmd.Line, cmd.Op)
}

// Stats returns the counters collected so far.
func (r *Runner) Stats() Stats {
	return r.stats
}

func (r *Runner) render() string {
	if r.opts.Cache == nil {
		return avl.Render(r.tree)
	}
	text, hit := r.opts.Cache.Render(r.tree)
	if hit {
		r.stats.CacheHits++
		r.log.Trace().Uint64("generation", r.tree.Generation()).Msg("render cache hit")
	}
	return text
}

func (r *Runner) checkTree(cmd script.Command) error {
	if !r.opts.CheckInvariants {
		return nil
	}
	if err := r.tree.Check(); err != nil {
		return fmt.Errorf("after %q on line %d: %w: %w", cmd, cmd.Line, ErrInvariantViolation, err)
	}
	return nil
}

func keyBytes(key int) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(key))
	return b[:]
}
