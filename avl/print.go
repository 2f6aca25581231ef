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

package avl

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Print writes one line per node in pre-order. The root is printed as its
// key; every other node gets one "| " per ancestor level below the root
// followed by "|l_<key>" or "|r_<key>". An empty tree writes nothing.
//
//	5
//	|l_3
//	| |l_1
//	|r_8
func Print(w io.Writer, tree *Tree) error {
	bw := bufio.NewWriter(w)
	for v := range tree.Traverse() {
		writeVisit(bw, v)
	}
	return bw.Flush()
}

// Render returns what Print would write.
func Render(tree *Tree) string {
	var sb strings.Builder
	for v := range tree.Traverse() {
		writeVisit(&sb, v)
	}
	return sb.String()
}

func writeVisit(w io.StringWriter, v Visit) {
	switch v.Role {
	case RoleLeft:
		w.WriteString(strings.Repeat("| ", v.Depth-1))
		w.WriteString("|l_")
	case RoleRight:
		w.WriteString(strings.Repeat("| ", v.Depth-1))
		w.WriteString("|r_")
	}
	w.WriteString(strconv.Itoa(v.Key))
	w.WriteString("\n")
}
