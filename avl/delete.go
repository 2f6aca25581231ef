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

// Delete removes key from the tree. It returns false when key was not
// present.
func (tree *Tree) Delete(key int) bool {
	var removed bool
	tree.root, removed = deleteRecursive(tree.root, key)
	if removed {
		tree.count--
		tree.gen++
	}
	return removed
}

func deleteRecursive(node *node, key int) (*node, bool) {
	if node == nil {
		return nil, false // Key not found
	}

	var removed bool
	if key < node.key {
		node.left, removed = deleteRecursive(node.left, key)
	} else if key > node.key {
		node.right, removed = deleteRecursive(node.right, key)
	} else {
		// At most one child: the child takes the node's place.
		if node.left == nil {
			return node.right, true
		}
		if node.right == nil {
			return node.left, true
		}
		// Two children: take over the in-order successor's key, then drop
		// the successor, which has no left child.
		successor := findMin(node.right)
		node.key = successor.key
		node.right, _ = deleteRecursive(node.right, successor.key)
		removed = true
	}
	if !removed {
		return node, false
	}

	updateHeight(node)
	return rebalance(node), true
}

// rebalance picks the rotation from the child's balance factor since the
// deleted key no longer says which side shrank.
func rebalance(node *node) *node {
	balance := balanceFactor(node)

	// Left-heavy
	if balance > 1 {
		if balanceFactor(node.left) >= 0 {
			return rotateRight(node)
		}
		node.left = rotateLeft(node.left)
		return rotateRight(node)
	}

	// Right-heavy
	if balance < -1 {
		if balanceFactor(node.right) <= 0 {
			return rotateLeft(node)
		}
		node.right = rotateRight(node.right)
		return rotateLeft(node)
	}

	return node
}

func findMin(node *node) *node {
	for node.left != nil {
		node = node.left
	}
	return node
}
