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

// Insert adds key to the tree. It returns false, leaving the tree untouched,
// when key is already present.
func (tree *Tree) Insert(key int) bool {
	var added bool
	tree.root, added = insertRecursive(tree.root, key)
	if added {
		tree.count++
		tree.gen++
	}
	return added
}

func insertRecursive(node *node, key int) (*node, bool) {
	if node == nil {
		return newNode(key), true
	}

	var added bool
	if key < node.key {
		node.left, added = insertRecursive(node.left, key)
	} else if key > node.key {
		node.right, added = insertRecursive(node.right, key)
	}
	if !added {
		// duplicate somewhere below: nothing changed on this path
		return node, false
	}

	updateHeight(node)

	// The inserted key tells which grandchild grew.
	balance := balanceFactor(node)
	if balance > 1 {
		if key < node.left.key {
			return rotateRight(node), true
		}
		// Left-Right case
		node.left = rotateLeft(node.left)
		return rotateRight(node), true
	}
	if balance < -1 {
		if key > node.right.key {
			return rotateLeft(node), true
		}
		// Right-Left case
		node.right = rotateRight(node.right)
		return rotateLeft(node), true
	}

	return node, true
}

func newNode(key int) *node {
	return &node{key: key, height: 1}
}
