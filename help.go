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
	"fmt"
	"runtime"

	markdown "github.com/MichaelMure/go-term-markdown"
)

func usageMarkdown() string {
	return fmt.Sprintf(`

 **avlscript %s**

Runs insert/delete/print scripts against a self-balancing (AVL) tree of integer keys and prints
the tree's shape after every print command.

Built with Go %s

# 1. Script format
* insert <key> - add a key, ignored if already present
* delete <key> - remove a key, ignored if absent
* print - write the tree in pre-order followed by a blank line
* Words are separated by any whitespace, so a key may follow its command on the next line
* Anything else stops the run with "Data not consistent in file"

# 2. Output format
* The root is printed as its key
* Every other node is printed as one "| " for each ancestor other than the root, then "|l_<key>" or "|r_<key>"

# 3. Commands
* avlscript <file> or avlscript run <file> - run a script
* avlscript step <file> - step through a script in the terminal
* avlscript settings - show configuration (~/.avlscript.yaml)

# License
Licensed under the Apache License, Version 2.0
Copyright © 2025 Naren Yellavula

`, version, runtime.Version())
}

func getHelpMessage() string {
	result := markdown.Render(usageMarkdown(), 80, 3)
	return string(result)
}
