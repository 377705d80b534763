// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package cache

import (
	"sort"
	"strings"
	"sync"
)

// TrieNode is a node keyed by rune.
type TrieNode struct {
	children map[rune]*TrieNode
	isEnd    bool
	value    string // first inserted spelling, returned in results
	data     any
	count    int
}

// Trie is a thread-safe prefix tree for autocomplete.
type Trie struct {
	mu             sync.RWMutex
	root           *TrieNode
	size           int
	caseSensitive  bool
	maxSuggestions int
}

// TrieResult is one autocomplete match.
type TrieResult struct {
	Value string
	Data  any
	Count int
}

// NewTrie returns a case-insensitive trie returning at most 10 suggestions.
func NewTrie() *Trie {
	return NewTrieWithOptions(false, 10)
}

// NewTrieWithOptions returns a trie with explicit case handling and default
// suggestion limit.
func NewTrieWithOptions(caseSensitive bool, maxSuggestions int) *Trie {
	if maxSuggestions <= 0 {
		maxSuggestions = 10
	}
	return &Trie{
		root:           newTrieNode(),
		caseSensitive:  caseSensitive,
		maxSuggestions: maxSuggestions,
	}
}

func newTrieNode() *TrieNode {
	return &TrieNode{children: make(map[rune]*TrieNode)}
}

func (t *Trie) normalizeKey(key string) []rune {
	key = strings.TrimSpace(key)
	if !t.caseSensitive {
		key = strings.ToLower(key)
	}
	return []rune(key)
}

// Insert adds value, or bumps its count when already present.
func (t *Trie) Insert(value string) bool {
	return t.InsertWithData(value, nil)
}

// InsertWithData adds value with associated data. Re-inserting a key bumps
// its count and keeps the first spelling and data. It reports whether the
// key was new.
func (t *Trie) InsertWithData(value string, data any) bool {
	key := t.normalizeKey(value)
	if len(key) == 0 {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.root
	for _, ch := range key {
		next := node.children[ch]
		if next == nil {
			next = newTrieNode()
			node.children[ch] = next
		}
		node = next
	}

	node.count++
	if node.isEnd {
		return false
	}
	node.isEnd = true
	node.value = strings.TrimSpace(value)
	node.data = data
	t.size++
	return true
}

func (t *Trie) find(key []rune) *TrieNode {
	node := t.root
	for _, ch := range key {
		node = node.children[ch]
		if node == nil {
			return nil
		}
	}
	return node
}

// Search returns the data stored for an exact key.
func (t *Trie) Search(value string) (any, bool) {
	key := t.normalizeKey(value)
	if len(key) == 0 {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	if node := t.find(key); node != nil && node.isEnd {
		return node.data, true
	}
	return nil, false
}

// HasPrefix reports whether any key starts with prefix.
func (t *Trie) HasPrefix(prefix string) bool {
	key := t.normalizeKey(prefix)

	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(key) == 0 {
		return t.size > 0
	}
	return t.find(key) != nil
}

// Autocomplete returns up to the default number of suggestions.
func (t *Trie) Autocomplete(prefix string) []TrieResult {
	return t.AutocompleteWithLimit(prefix, t.maxSuggestions)
}

// AutocompleteWithLimit returns keys starting with prefix, most inserted
// first and then alphabetically. An empty prefix yields nothing.
func (t *Trie) AutocompleteWithLimit(prefix string, limit int) []TrieResult {
	if limit <= 0 {
		limit = t.maxSuggestions
	}
	key := t.normalizeKey(prefix)
	if len(key) == 0 {
		return nil
	}

	t.mu.RLock()
	node := t.find(key)
	var results []TrieResult
	collectWords(node, &results)
	t.mu.RUnlock()

	sortResults(results)
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func collectWords(node *TrieNode, results *[]TrieResult) {
	if node == nil {
		return
	}
	if node.isEnd {
		*results = append(*results, TrieResult{Value: node.value, Data: node.data, Count: node.count})
	}
	for _, child := range node.children {
		collectWords(child, results)
	}
}

func sortResults(results []TrieResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Count != results[j].Count {
			return results[i].Count > results[j].Count
		}
		return results[i].Value < results[j].Value
	})
}

// Delete removes an exact key and prunes empty branches.
func (t *Trie) Delete(value string) bool {
	key := t.normalizeKey(value)
	if len(key) == 0 {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deleteRecursive(t.root, key, 0)
}

func (t *Trie) deleteRecursive(node *TrieNode, key []rune, depth int) bool {
	if depth == len(key) {
		if !node.isEnd {
			return false
		}
		node.isEnd = false
		node.value = ""
		node.data = nil
		node.count = 0
		t.size--
		return true
	}

	ch := key[depth]
	child := node.children[ch]
	if child == nil {
		return false
	}

	deleted := t.deleteRecursive(child, key, depth+1)
	if deleted && !child.isEnd && len(child.children) == 0 {
		delete(node.children, ch)
	}
	return deleted
}

// Size returns the number of distinct keys.
func (t *Trie) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

// Clear removes every key.
func (t *Trie) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.root = newTrieNode()
	t.size = 0
}

// GetAll returns every key in ranked order.
func (t *Trie) GetAll() []TrieResult {
	t.mu.RLock()
	var results []TrieResult
	collectWords(t.root, &results)
	t.mu.RUnlock()

	sortResults(results)
	return results
}
