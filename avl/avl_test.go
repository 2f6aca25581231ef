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
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type AVLTestCase struct {
	Name          string
	KeysToInsert  []int
	KeysToDelete  []int
	ExpectedOrder []int  // in-order keys after the operations
	ExpectedTree  string // Render output, empty to skip
}

func TestAVLTreeOperations(t *testing.T) {
	testCases := []AVLTestCase{
		{
			Name:          "Empty",
			ExpectedOrder: nil,
			ExpectedTree:  "",
		},
		{
			Name:          "Right-Right Insert",
			KeysToInsert:  []int{1, 2, 3},
			ExpectedOrder: []int{1, 2, 3},
			ExpectedTree:  "2\n|l_1\n|r_3\n",
		},
		{
			Name:          "Left-Left Insert",
			KeysToInsert:  []int{3, 2, 1},
			ExpectedOrder: []int{1, 2, 3},
			ExpectedTree:  "2\n|l_1\n|r_3\n",
		},
		{
			Name:          "Left-Right Insert",
			KeysToInsert:  []int{3, 1, 2},
			ExpectedOrder: []int{1, 2, 3},
			ExpectedTree:  "2\n|l_1\n|r_3\n",
		},
		{
			Name:          "Right-Left Insert",
			KeysToInsert:  []int{1, 3, 2},
			ExpectedOrder: []int{1, 2, 3},
			ExpectedTree:  "2\n|l_1\n|r_3\n",
		},
		{
			Name:          "Left-Left Insert Below Root",
			KeysToInsert:  []int{30, 20, 40, 10, 25, 15},
			ExpectedOrder: []int{10, 15, 20, 25, 30, 40},
			ExpectedTree:  "20\n|l_10\n| |r_15\n|r_30\n| |l_25\n| |r_40\n",
		},
		{
			Name:          "Negative Keys",
			KeysToInsert:  []int{-1, -5, 0, -3},
			ExpectedOrder: []int{-5, -3, -1, 0},
			ExpectedTree:  "-1\n|l_-5\n| |r_-3\n|r_0\n",
		},
		{
			Name:          "Duplicates Ignored",
			KeysToInsert:  []int{5, 5, 3, 5, 3},
			ExpectedOrder: []int{3, 5},
			ExpectedTree:  "5\n|l_3\n",
		},
		{
			Name:          "Delete Leaf",
			KeysToInsert:  []int{2, 1, 3},
			KeysToDelete:  []int{3},
			ExpectedOrder: []int{1, 2},
			ExpectedTree:  "2\n|l_1\n",
		},
		{
			Name:          "Delete Only Key",
			KeysToInsert:  []int{7},
			KeysToDelete:  []int{7},
			ExpectedOrder: nil,
			ExpectedTree:  "",
		},
		{
			Name:          "Delete Missing Key",
			KeysToInsert:  []int{2, 1, 3},
			KeysToDelete:  []int{4, 0},
			ExpectedOrder: []int{1, 2, 3},
			ExpectedTree:  "2\n|l_1\n|r_3\n",
		},
		{
			Name:          "Delete From Empty",
			KeysToDelete:  []int{1},
			ExpectedOrder: nil,
		},
		{
			Name:          "Delete With Right-Right Rebalance",
			KeysToInsert:  []int{2, 1, 3, 4},
			KeysToDelete:  []int{1},
			ExpectedOrder: []int{2, 3, 4},
			ExpectedTree:  "3\n|l_2\n|r_4\n",
		},
		{
			Name:          "Delete With Right-Right Rebalance On Even Child",
			KeysToInsert:  []int{2, 1, 4, 3, 5},
			KeysToDelete:  []int{1},
			ExpectedOrder: []int{2, 3, 4, 5},
			ExpectedTree:  "4\n|l_2\n| |r_3\n|r_5\n",
		},
		{
			Name:          "Delete With Right-Left Rebalance",
			KeysToInsert:  []int{2, 1, 4, 3},
			KeysToDelete:  []int{1},
			ExpectedOrder: []int{2, 3, 4},
			ExpectedTree:  "3\n|l_2\n|r_4\n",
		},
		{
			Name:          "Delete With Left-Left Rebalance",
			KeysToInsert:  []int{3, 4, 2, 1},
			KeysToDelete:  []int{4},
			ExpectedOrder: []int{1, 2, 3},
			ExpectedTree:  "2\n|l_1\n|r_3\n",
		},
		{
			Name:          "Delete With Left-Right Rebalance",
			KeysToInsert:  []int{3, 4, 1, 2},
			KeysToDelete:  []int{4},
			ExpectedOrder: []int{1, 2, 3},
			ExpectedTree:  "2\n|l_1\n|r_3\n",
		},
		{
			Name:          "Round Trip",
			KeysToInsert:  []int{5, 3, 8, 1, 4, 7, 9},
			KeysToDelete:  []int{3, 8},
			ExpectedOrder: []int{1, 4, 5, 7, 9},
			ExpectedTree:  "5\n|l_4\n| |l_1\n|r_9\n| |l_7\n",
		},
		{
			Name:          "Delete Two-Child Root",
			KeysToInsert:  []int{20, 10, 30, 5, 15, 25, 35},
			KeysToDelete:  []int{20},
			ExpectedOrder: []int{5, 10, 15, 25, 30, 35},
			ExpectedTree:  "25\n|l_10\n| |l_5\n| |r_15\n|r_30\n| |r_35\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			tree := New()
			for _, key := range tc.KeysToInsert {
				tree.Insert(key)
			}
			for _, key := range tc.KeysToDelete {
				tree.Delete(key)
			}

			require.NoError(t, tree.Check())
			assert.Equal(t, tc.ExpectedOrder, inOrder(tree))
			assert.Equal(t, len(tc.ExpectedOrder), tree.Len())
			if tc.ExpectedTree != "" || len(tc.ExpectedOrder) == 0 {
				assert.Equal(t, tc.ExpectedTree, Render(tree))
			}
		})
	}
}

func TestInsertReportsAdded(t *testing.T) {
	tree := New()
	require.True(t, tree.Insert(10))
	gen := tree.Generation()

	require.False(t, tree.Insert(10))
	assert.Equal(t, gen, tree.Generation(), "duplicate insert must not count as a change")
	assert.Equal(t, 1, tree.Len())
	assert.Equal(t, 1, tree.Height())
}

func TestDeleteReportsRemoved(t *testing.T) {
	tree := New()
	tree.Insert(1)
	tree.Insert(2)
	gen := tree.Generation()

	require.False(t, tree.Delete(3))
	assert.Equal(t, gen, tree.Generation())

	require.True(t, tree.Delete(1))
	assert.NotEqual(t, gen, tree.Generation())
	assert.False(t, tree.Contains(1))
	assert.True(t, tree.Contains(2))
	assert.Equal(t, 1, tree.Len())
}

func TestDuplicateInsertKeepsShape(t *testing.T) {
	tree := New()
	for _, k := range []int{50, 20, 70, 10, 30, 60, 80, 25} {
		tree.Insert(k)
	}
	before := Render(tree)
	for _, k := range []int{50, 25, 80} {
		tree.Insert(k)
	}
	assert.Equal(t, before, Render(tree))
}

func TestTwoChildDeleteTakesSuccessorKey(t *testing.T) {
	tree := New()
	for _, k := range []int{20, 10, 30, 5, 15, 25, 35} {
		tree.Insert(k)
	}
	require.True(t, tree.Delete(20))

	root := tree.root
	require.NotNil(t, root)
	assert.Equal(t, 25, root.key)
	assert.Equal(t, 10, root.left.key)
	assert.Equal(t, 30, root.right.key)
	assert.Nil(t, root.right.left)
	require.NoError(t, tree.Check())
}

func TestRotationPanicsWithoutPivot(t *testing.T) {
	require.PanicsWithError(t, "avl: rotate right at key 7: missing pivot child", func() {
		rotateRight(newNode(7))
	})
	require.PanicsWithError(t, "avl: rotate left at key 9: missing pivot child", func() {
		rotateLeft(newNode(9))
	})
}

func TestRotateRightUpdatesHeights(t *testing.T) {
	//     3
	//    /
	//   2
	//  /
	// 1
	y := &node{key: 3, height: 3, left: &node{key: 2, height: 2, left: newNode(1)}}
	x := rotateRight(y)

	assert.Equal(t, 2, x.key)
	assert.Equal(t, 2, x.height)
	assert.Equal(t, 1, x.left.height)
	assert.Equal(t, 1, x.right.height)
	assert.Equal(t, 3, x.right.key)
}

func TestRandomOperationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	tree := New()
	want := map[int]bool{}

	for i := 0; i < 5000; i++ {
		key := rng.IntN(400) - 200
		if rng.IntN(3) == 0 {
			assert.Equal(t, want[key], tree.Delete(key), "delete %d", key)
			delete(want, key)
		} else {
			assert.Equal(t, !want[key], tree.Insert(key), "insert %d", key)
			want[key] = true
		}
		if i%50 == 0 {
			require.NoError(t, tree.Check(), "after op %d", i)
		}
	}
	require.NoError(t, tree.Check())

	keys := make([]int, 0, len(want))
	for k := range want {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	assert.Equal(t, keys, inOrder(tree))
}

func TestCheckDetectsCorruption(t *testing.T) {
	tree := New()
	for _, k := range []int{2, 1, 3} {
		tree.Insert(k)
	}
	require.NoError(t, tree.Check())

	tree.root.left.key = 4
	assert.ErrorContains(t, tree.Check(), "not below ancestor")
	tree.root.left.key = 1

	tree.root.height = 5
	assert.ErrorContains(t, tree.Check(), "has height 5")
	tree.root.height = 2

	tree.count = 4
	assert.ErrorContains(t, tree.Check(), "count says 4")
	tree.count = 3

	// a chain of three under one root is out of balance even with honest heights
	tree.root.right = &node{key: 3, height: 2, right: newNode(4)}
	tree.root.left = nil
	tree.root.height = 3
	assert.ErrorContains(t, tree.Check(), "out of balance")
}

func inOrder(tree *Tree) []int {
	var keys []int
	inOrderTraversal(tree.root, &keys)
	return keys
}

func inOrderTraversal(node *node, result *[]int) {
	if node == nil {
		return
	}
	inOrderTraversal(node.left, result)
	*result = append(*result, node.key)
	inOrderTraversal(node.right, result)
}
