// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package recommend

import "sort"

// selectDiverse picks up to limit candidates while capping how many any
// single restaurant contributes. Candidates are grouped by restaurant id
// (an empty id forms a singleton group, never merged with another), each
// group is ordered by adjusted score, and the selector repeatedly takes
// the head of whichever group currently has the best head. A group that
// still has candidates and headroom under the cap is re-inserted keyed by
// its new head, so a strong restaurant can take consecutive slots until
// it is capped.
//
// The output is shorter than limit when the capped groups cannot fill it;
// the selector never pads.
func selectDiverse(cands []Candidate, limit, maxPerRestaurant int) []Candidate {
	out := []Candidate{}
	if limit <= 0 || len(cands) == 0 {
		return out
	}
	if maxPerRestaurant < 1 {
		maxPerRestaurant = 1
	}

	groups := groupByRestaurant(cands)
	h := &headHeap{cands: cands}
	for _, g := range groups {
		h.push(g)
	}

	for len(out) < limit {
		g := h.pop()
		if g == nil {
			break
		}
		out = append(out, cands[g.queue[g.next]])
		g.next++
		g.taken++
		if g.taken < maxPerRestaurant && g.next < len(g.queue) {
			h.push(g)
		}
	}
	return out
}

// groupByRestaurant builds the per-restaurant queues: positions into the
// candidate slice, ordered by score descending with the incoming order
// preserved on ties. Queues appear in first-candidate order.
func groupByRestaurant(cands []Candidate) []*groupState {
	var groups []*groupState
	byRestaurant := make(map[string]*groupState)

	for i, c := range cands {
		if c.RestaurantID == "" {
			groups = append(groups, &groupState{queue: []int{i}})
			continue
		}
		g, ok := byRestaurant[c.RestaurantID]
		if !ok {
			g = &groupState{}
			byRestaurant[c.RestaurantID] = g
			groups = append(groups, g)
		}
		g.queue = append(g.queue, i)
	}

	for _, g := range groups {
		queue := g.queue
		sort.Slice(queue, func(a, b int) bool {
			if cands[queue[a]].Score != cands[queue[b]].Score {
				return cands[queue[a]].Score > cands[queue[b]].Score
			}
			return queue[a] < queue[b]
		})
	}
	return groups
}

// groupState is one restaurant's queue with its selection cursor.
type groupState struct {
	queue []int // positions into the candidate slice, score-ordered
	next  int   // cursor of the current head
	taken int   // candidates contributed to the output so far
}

// headHeap is a max-heap of groups keyed by each group's current head:
// higher score first, earlier pipeline position on ties. Positions are
// unique, so the ordering is total and the heap needs no stability of its
// own.
type headHeap struct {
	cands []Candidate
	heap  []*groupState
}

func (h *headHeap) push(g *groupState) {
	h.heap = append(h.heap, g)
	h.bubbleUp(len(h.heap) - 1)
}

func (h *headHeap) pop() *groupState {
	if len(h.heap) == 0 {
		return nil
	}
	top := h.heap[0]
	n := len(h.heap) - 1
	h.heap[0] = h.heap[n]
	h.heap = h.heap[:n]
	if n > 0 {
		h.bubbleDown(0)
	}
	return top
}

// before reports whether group a's head outranks group b's.
func (h *headHeap) before(a, b *groupState) bool {
	pa, pb := a.queue[a.next], b.queue[b.next]
	if h.cands[pa].Score != h.cands[pb].Score {
		return h.cands[pa].Score > h.cands[pb].Score
	}
	return pa < pb
}

func (h *headHeap) bubbleUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.before(h.heap[i], h.heap[parent]) {
			break
		}
		h.heap[i], h.heap[parent] = h.heap[parent], h.heap[i]
		i = parent
	}
}

func (h *headHeap) bubbleDown(i int) {
	n := len(h.heap)
	for {
		best := i
		left := 2*i + 1
		right := 2*i + 2

		if left < n && h.before(h.heap[left], h.heap[best]) {
			best = left
		}
		if right < n && h.before(h.heap[right], h.heap[best]) {
			best = right
		}
		if best == i {
			break
		}
		h.heap[i], h.heap[best] = h.heap[best], h.heap[i]
		i = best
	}
}
