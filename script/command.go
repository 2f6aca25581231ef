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

package script

import (
	"errors"
	"fmt"
)

// ErrMalformedCommand is returned for an unknown command word or a bad key.
var ErrMalformedCommand = errors.New("malformed command")

// Op is the command verb.
type Op int

const (
	OpInsert Op = iota + 1
	OpDelete
	OpPrint
)

var opNames = map[string]Op{
	"insert": OpInsert,
	"delete": OpDelete,
	"print":  OpPrint,
}

func (op Op) String() string {
	for name, o := range opNames {
		if o == op {
			return name
		}
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// TakesKey reports whether the verb is followed by an integer key.
func (op Op) TakesKey() bool {
	return op == OpInsert || op == OpDelete
}

// Command is one parsed script command
type Command struct {
	Op   Op
	Key  int // unused for OpPrint
	Line int // 1-based line of the verb
}

func (c Command) String() string {
	if c.Op.TakesKey() {
		return fmt.Sprintf("%s %d", c.Op, c.Key)
	}
	return c.Op.String()
}
