package ddops

// Copyright (c) 2025 Colin McRae

import "math/bits"

// history is the set of original inequalities a row was combined from.
type history []uint64

func newHistory(size int) history {
	return make(history, (size+63)/64)
}

func singleton(size, i int) history {
	h := newHistory(size)
	h[i/64] |= 1 << (uint(i) % 64)
	return h
}

func (h history) has(i int) bool {
	return h[i/64]&(1<<(uint(i)%64)) != 0
}

func (h history) set(i int) {
	h[i/64] |= 1 << (uint(i) % 64)
}

func (h history) union(g history) history {
	u := make(history, len(h))
	for w := range h {
		u[w] = h[w] | g[w]
	}
	return u
}

func (h history) count() int {
	n := 0
	for _, w := range h {
		n += bits.OnesCount64(w)
	}
	return n
}

// subsetOf returns whether every member of h is a member of g.
func (h history) subsetOf(g history) bool {
	for w := range h {
		if h[w]&^g[w] != 0 {
			return false
		}
	}
	return true
}

func (h history) equal(g history) bool {
	for w := range h {
		if h[w] != g[w] {
			return false
		}
	}
	return true
}
