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

// Package avl implements a height-balanced binary search tree of int keys.
//
// A Tree is not safe for concurrent use. Nodes are never handed out: a
// two-child delete copies the successor's key upward, so node identity does
// not survive mutations. Track keys, not nodes.
package avl

import "fmt"

type node struct {
	key    int
	height int
	left   *node
	right  *node
}

// Tree holds the root of an AVL tree.
type Tree struct {
	root  *node
	count int
	gen   uint64
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{}
}

// Len is the number of keys in the tree.
func (tree *Tree) Len() int {
	return tree.count
}

// Height of the root, 0 for an empty tree.
func (tree *Tree) Height() int {
	return height(tree.root)
}

// Generation changes every time Insert or Delete modifies the tree.
func (tree *Tree) Generation() uint64 {
	return tree.gen
}

// Contains reports whether key is stored in the tree.
func (tree *Tree) Contains(key int) bool {
	n := tree.root
	for n != nil {
		switch {
		case key < n.key:
			n = n.left
		case key > n.key:
			n = n.right
		default:
			return true
		}
	}
	return false
}

// RotationError is the panic value raised when a rotation is asked to pivot
// on a missing child. It means the tree is already corrupt.
type RotationError struct {
	Direction string
	Key       int
}

func (e *RotationError) Error() string {
	return fmt.Sprintf("avl: rotate %s at key %d: missing pivot child", e.Direction, e.Key)
}

func height(n *node) int {
	if n == nil {
		return 0
	}
	return n.height
}

func updateHeight(n *node) {
	n.height = max(height(n.left), height(n.right)) + 1
}

func balanceFactor(n *node) int {
	if n == nil {
		return 0
	}
	return height(n.left) - height(n.right)
}

//	    y            x
//	   / \          / \
//	  x   c   ->   a   y
//	 / \              / \
//	a   b            b   c
func rotateRight(y *node) *node {
	if y.left == nil {
		panic(&RotationError{Direction: "right", Key: y.key})
	}
	x := y.left
	y.left = x.right
	x.right = y

	// y is now below x
	updateHeight(y)
	updateHeight(x)
	return x
}

//	  x                y
//	 / \              / \
//	a   y     ->     x   c
//	   / \          / \
//	  b   c        a   b
func rotateLeft(x *node) *node {
	if x.right == nil {
		panic(&RotationError{Direction: "left", Key: x.key})
	}
	y := x.right
	x.right = y.left
	y.left = x

	updateHeight(x)
	updateHeight(y)
	return y
}
