// Package minimize implements Hopcroft partition-refinement minimization
// of a deterministic finite automaton.
package minimize

import (
	"github.com/levauto/levauto/automaton"
	"github.com/levauto/levauto/determinize"
)

// Minimize returns the minimal deterministic automaton recognizing the
// same language as a. a is first determinized, then totalized over
// [0, alphaMax] so every state has an outgoing transition for every
// symbol, which lets the refinement below treat the transition function
// as total.
//
// Partition refinement here always requeues both halves of a split for
// every symbol class, rather than only the provably-sufficient smaller
// half: it trades Hopcroft's classical O(n log n) work bound for an
// implementation with no block/worklist bookkeeping beyond a dedup map,
// while remaining a textbook Hopcroft refinement otherwise (reverse
// adjacency per symbol class, (block, class) worklist, split-on-preimage).
func Minimize(a *automaton.Automaton, alphaMax int32) (*automaton.Automaton, error) {
	if fast, ok := fastPath(a, alphaMax); ok {
		return fast, nil
	}

	det, err := determinize.Determinize(a)
	if err != nil {
		return nil, err
	}
	tot, err := automaton.Totalize(det, alphaMax)
	if err != nil {
		return nil, err
	}

	n := tot.NumStates()
	points := tot.GetStartPoints(alphaMax)
	numClasses := len(points)

	reverse := buildReverseAdjacency(tot, points, n)
	blocks, blockID := initialPartition(tot, n)
	blocks = refine(blocks, blockID, reverse, numClasses)

	return buildResult(tot, blocks, blockID, points, alphaMax)
}

// fastPath implements the cheap special cases: the empty automaton
// (zero states, or a non-accepting, transition-less state 0) minimizes
// to a fresh zero-state automaton, and an automaton whose sole state 0 accepts and
// has a single self-loop spanning the whole alphabet is already minimal.
func fastPath(a *automaton.Automaton, alphaMax int32) (*automaton.Automaton, bool) {
	if a.NumStates() == 0 {
		return automaton.New(), true
	}
	if !a.IsAccept(0) && a.NumTransitions(0) == 0 {
		return automaton.New(), true
	}
	if a.IsAccept(0) && a.NumTransitions(0) == 1 {
		t := a.Transition(0, 0)
		if t.Dest == 0 && t.Min == 0 && t.Max == alphaMax {
			return a, true
		}
	}
	return nil, false
}

// buildReverseAdjacency computes reverse[c][q]: the states p such that
// stepping p on the symbol class c's representative symbol lands on q.
func buildReverseAdjacency(tot *automaton.Automaton, points []int32, n int) [][][]int32 {
	reverse := make([][][]int32, len(points))
	for c := range reverse {
		reverse[c] = make([][]int32, n)
	}
	for p := 0; p < n; p++ {
		for c, point := range points {
			q := tot.Step(int32(p), point)
			reverse[c][q] = append(reverse[c][q], int32(p))
		}
	}
	return reverse
}

// initialPartition splits states into the accepting block and the
// non-accepting block, omitting whichever is empty.
func initialPartition(tot *automaton.Automaton, n int) ([][]int32, []int) {
	var blocks [][]int32
	var acc, nonAcc []int32
	for s := 0; s < n; s++ {
		if tot.IsAccept(int32(s)) {
			acc = append(acc, int32(s))
		} else {
			nonAcc = append(nonAcc, int32(s))
		}
	}
	if len(acc) > 0 {
		blocks = append(blocks, acc)
	}
	if len(nonAcc) > 0 {
		blocks = append(blocks, nonAcc)
	}
	blockID := make([]int, n)
	for i, blk := range blocks {
		for _, s := range blk {
			blockID[s] = i
		}
	}
	return blocks, blockID
}

type pending struct{ block, class int }

// refine runs the worklist-driven partition splitting in place over
// blocks/blockID: blocks is grown (never shrunk or reordered in its
// existing indices) as splits occur, and the grown slice is returned.
func refine(blocks [][]int32, blockID []int, reverse [][][]int32, numClasses int) [][]int32 {
	queue := make([]pending, 0, len(blocks)*numClasses)
	inQueue := map[pending]bool{}
	enqueue := func(b, c int) {
		p := pending{b, c}
		if !inQueue[p] {
			inQueue[p] = true
			queue = append(queue, p)
		}
	}
	for b := range blocks {
		for c := 0; c < numClasses; c++ {
			enqueue(b, c)
		}
	}

	blocksPtr := &blocks
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		inQueue[p] = false

		cur := *blocksPtr
		if p.block >= len(cur) {
			continue
		}
		members := cur[p.block]

		xByBlock := map[int]map[int32]bool{}
		for _, q := range members {
			for _, src := range reverse[p.class][q] {
				b := blockID[src]
				set := xByBlock[b]
				if set == nil {
					set = map[int32]bool{}
					xByBlock[b] = set
				}
				set[src] = true
			}
		}

		for bID, inX := range xByBlock {
			full := (*blocksPtr)[bID]
			if len(inX) == len(full) {
				continue
			}
			var inXList, notInX []int32
			for _, s := range full {
				if inX[s] {
					inXList = append(inXList, s)
				} else {
					notInX = append(notInX, s)
				}
			}
			(*blocksPtr)[bID] = inXList
			newID := len(*blocksPtr)
			*blocksPtr = append(*blocksPtr, notInX)
			for _, s := range inXList {
				blockID[s] = bID
			}
			for _, s := range notInX {
				blockID[s] = newID
			}
			for c := 0; c < numClasses; c++ {
				enqueue(bID, c)
				enqueue(newID, c)
			}
		}
	}
	return *blocksPtr
}

// buildResult materializes one output state per surviving partition
// block, with the block containing tot's initial state renumbered to 0,
// and transitions per symbol class from each block's representative
// member; FinishState's own interval-merge coalesces consecutive classes
// routed to the same destination block.
func buildResult(tot *automaton.Automaton, blocks [][]int32, blockID []int, points []int32, alphaMax int32) (*automaton.Automaton, error) {
	startBlock := blockID[0]
	order := make([]int, 0, len(blocks))
	order = append(order, startBlock)
	for i := range blocks {
		if i != startBlock {
			order = append(order, i)
		}
	}

	result := automaton.New()
	newStateOf := make(map[int]automaton.State, len(order))
	for _, bID := range order {
		newStateOf[bID] = result.CreateState()
	}
	for _, bID := range order {
		rep := blocks[bID][0]
		result.SetAccept(newStateOf[bID], tot.IsAccept(rep))
	}
	for _, bID := range order {
		rep := blocks[bID][0]
		src := newStateOf[bID]
		for c, point := range points {
			dest := tot.Step(rep, point)
			destBlock := newStateOf[blockID[dest]]
			lo := point
			hi := alphaMax
			if c+1 < len(points) {
				hi = points[c+1] - 1
			}
			if err := result.AddTransition(src, destBlock, lo, hi); err != nil {
				return nil, err
			}
		}
	}
	if err := result.FinishState(); err != nil {
		return nil, err
	}
	result.MarkDeterministic(true)
	return automaton.RemoveDeadStates(result)
}
