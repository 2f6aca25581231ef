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

import "iter"

// Role tells how a visited node hangs off its parent.
type Role int

const (
	RoleRoot Role = iota
	RoleLeft
	RoleRight
)

func (r Role) String() string {
	switch r {
	case RoleRoot:
		return "root"
	case RoleLeft:
		return "left"
	case RoleRight:
		return "right"
	}
	return "unknown"
}

// Visit is one step of a structural walk.
type Visit struct {
	Key   int
	Depth int // 0 at the root
	Role  Role
}

// Traverse walks the tree in pre-order: a node, then its left subtree, then
// its right subtree. Every range over the result starts a fresh walk. The
// sequence must not be consumed across an Insert or Delete.
func (tree *Tree) Traverse() iter.Seq[Visit] {
	return func(yield func(Visit) bool) {
		walk(tree.root, 0, RoleRoot, yield)
	}
}

func walk(n *node, depth int, role Role, yield func(Visit) bool) bool {
	if n == nil {
		return true
	}
	if !yield(Visit{Key: n.key, Depth: depth, Role: role}) {
		return false
	}
	return walk(n.left, depth+1, RoleLeft, yield) &&
		walk(n.right, depth+1, RoleRight, yield)
}
