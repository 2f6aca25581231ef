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
	"time"

	"github.com/cybrota/avlscript/avl"
	"github.com/patrickmn/go-cache"
)

const (
	// Keep a rendering for 30 minutes unless the config says otherwise
	renderCacheExpiration = 30 * time.Minute
	// Clean up expired entries every 5 minutes
	renderCacheCleanup = 5 * time.Minute
)

// RenderCache remembers the printed form of a tree for as long as the tree
// is not modified. Scripts that print repeatedly between mutations reuse
// the text instead of walking the tree again.
type RenderCache struct {
	c   *cache.Cache
	ttl time.Duration
}

// NewRenderCache creates a cache whose entries live for ttl. A zero ttl
// falls back to renderCacheExpiration.
func NewRenderCache(ttl time.Duration) *RenderCache {
	if ttl <= 0 {
		ttl = renderCacheExpiration
	}
	return &RenderCache{
		c:   cache.New(ttl, renderCacheCleanup),
		ttl: ttl,
	}
}

// renderEntry is the last rendering of one tree.
type renderEntry struct {
	gen  uint64
	text string
}

// Render returns avl.Render(tree), and whether it came from the cache. Each
// tree has a single entry; a rendering from an older generation is replaced.
func (rc *RenderCache) Render(tree *avl.Tree) (string, bool) {
	key := renderKey(tree)
	if val, ok := rc.c.Get(key); ok {
		if entry := val.(renderEntry); entry.gen == tree.Generation() {
			return entry.text, true
		}
	}
	text := avl.Render(tree)
	// Use Set instead of Add to allow overwriting
	rc.c.Set(key, renderEntry{gen: tree.Generation(), text: text}, rc.ttl)
	return text, false
}

// Len is the number of live entries.
func (rc *RenderCache) Len() int {
	return rc.c.ItemCount()
}

func renderKey(tree *avl.Tree) string {
	return fmt.Sprintf("%p", tree)
}
