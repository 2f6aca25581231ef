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

import "fmt"

// Check verifies search order, balance, stored heights and the key count.
// It returns an error describing the first violation found.
func (tree *Tree) Check() error {
	count, err := check(tree.root, nil, nil)
	if err != nil {
		return err
	}
	if count != tree.count {
		return fmt.Errorf("avl: tree holds %d keys, count says %d", count, tree.count)
	}
	return nil
}

// check returns the number of nodes below n. lo and hi are exclusive bounds
// inherited from the ancestors, nil when unbounded.
func check(n *node, lo, hi *int) (int, error) {
	if n == nil {
		return 0, nil
	}
	if lo != nil && n.key <= *lo {
		return 0, fmt.Errorf("avl: key %d not above ancestor %d", n.key, *lo)
	}
	if hi != nil && n.key >= *hi {
		return 0, fmt.Errorf("avl: key %d not below ancestor %d", n.key, *hi)
	}

	nl, err := check(n.left, lo, &n.key)
	if err != nil {
		return 0, err
	}
	nr, err := check(n.right, &n.key, hi)
	if err != nil {
		return 0, err
	}

	if want := max(height(n.left), height(n.right)) + 1; n.height != want {
		return 0, fmt.Errorf("avl: key %d has height %d, subtrees give %d", n.key, n.height, want)
	}
	if bf := balanceFactor(n); bf < -1 || bf > 1 {
		return 0, fmt.Errorf("avl: key %d out of balance (%+d)", n.key, bf)
	}
	return nl + nr + 1, nil
}
