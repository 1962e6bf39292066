package service

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kkurihara/planboard/internal/domain"
	"github.com/kkurihara/planboard/internal/wbs"
)

func TestSetLeafProgress_RollsUpWeightedChain(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, root := h.newProject(t, "Rollup")

	a := h.addNode(t, root.ID, "A", nil)
	x := h.addNode(t, a.ID, "X", ptr(1))
	h.addNode(t, a.ID, "Y", ptr(3))

	chain, err := h.progress.SetLeafProgress(ctx, x.ID, 100)
	require.NoError(t, err)

	assert.Equal(t, 100, chain.Leaf.Progress)
	assert.Equal(t, domain.StatusCompleted, chain.Leaf.Status)

	// Ancestors are reported nearest-first: A then the root.
	require.Len(t, chain.Ancestors, 2)
	assert.Equal(t, a.ID, chain.Ancestors[0].NodeID)
	assert.Equal(t, 25, chain.Ancestors[0].Progress) // 100*1 / (1+3)
	assert.Equal(t, domain.StatusInProgress, chain.Ancestors[0].Status)
	assert.Equal(t, root.ID, chain.Ancestors[1].NodeID)
	assert.Equal(t, 25, chain.Ancestors[1].Progress)

	assert.Equal(t, 25, h.getNode(t, a.ID).Progress)
	assert.Equal(t, 25, h.getNode(t, root.ID).Progress)
}

func TestSetLeafProgress_EqualSplitWithoutWeights(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, root := h.newProject(t, "Equal")

	a := h.addNode(t, root.ID, "A", nil)
	x := h.addNode(t, a.ID, "X", nil)
	h.addNode(t, a.ID, "Y", nil)

	_, err := h.progress.SetLeafProgress(ctx, x.ID, 100)
	require.NoError(t, err)

	assert.Equal(t, 50, h.getNode(t, a.ID).Progress)
}

func TestSetLeafProgress_RejectsOutOfRange(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, root := h.newProject(t, "Range")
	leaf := h.addNode(t, root.ID, "Leaf", nil)

	_, err := h.progress.SetLeafProgress(ctx, leaf.ID, -1)
	assert.ErrorIs(t, err, wbs.ErrOutOfRange)

	_, err = h.progress.SetLeafProgress(ctx, leaf.ID, 101)
	assert.ErrorIs(t, err, wbs.ErrOutOfRange)
}

func TestSetLeafProgress_RejectsRootAndInternalNodes(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, root := h.newProject(t, "LeafOnly")

	a := h.addNode(t, root.ID, "A", nil)
	h.addNode(t, a.ID, "X", nil)

	_, err := h.progress.SetLeafProgress(ctx, root.ID, 50)
	assert.ErrorIs(t, err, wbs.ErrInvalidNode)

	_, err = h.progress.SetLeafProgress(ctx, a.ID, 50)
	assert.ErrorIs(t, err, wbs.ErrInvalidNode)
}

func TestSetLeafProgress_UnknownNode(t *testing.T) {
	h := newHarness(t)

	_, err := h.progress.SetLeafProgress(context.Background(), "missing", 50)
	assert.ErrorIs(t, err, wbs.ErrNotFound)
}

// Incremental rollup must agree with a from-scratch re-derivation of every
// internal node, whatever sequence of leaf edits produced the state.
func TestSetLeafProgress_MatchesFullRederivation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	p, root := h.newProject(t, "Property")

	rng := rand.New(rand.NewSource(42))

	var leaves []*domain.WbsNode
	for i := 0; i < 3; i++ {
		branch := h.addNode(t, root.ID, "branch", randomWeight(rng))
		childCount := rng.Intn(4)
		if childCount == 0 {
			leaves = append(leaves, branch)
			continue
		}
		for j := 0; j < childCount; j++ {
			leaves = append(leaves, h.addNode(t, branch.ID, "leaf", randomWeight(rng)))
		}
	}

	for i := 0; i < 25; i++ {
		leaf := leaves[rng.Intn(len(leaves))]
		_, err := h.progress.SetLeafProgress(ctx, leaf.ID, rng.Intn(101))
		require.NoError(t, err)
	}

	all, err := h.nodes.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	for _, n := range all {
		children, err := h.nodes.ListChildren(ctx, n.ID)
		require.NoError(t, err)
		if len(children) == 0 {
			continue
		}
		assert.Equal(t, wbs.WeightedProgress(children), n.Progress,
			"node %s disagrees with re-derivation", n.ID)
	}
}

func randomWeight(rng *rand.Rand) *float64 {
	if rng.Intn(2) == 0 {
		return nil
	}
	w := float64(1 + rng.Intn(5))
	return &w
}

func TestAggregateCounts_PartitionsAndTallies(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	p, root := h.newProject(t, "Counts")

	a := h.addNode(t, root.ID, "A", nil)
	x := h.addNode(t, a.ID, "X", nil)
	y := h.addNode(t, a.ID, "Y", nil)
	h.addNode(t, root.ID, "B", nil)

	_, err := h.progress.SetLeafProgress(ctx, x.ID, 100)
	require.NoError(t, err)
	_, err = h.progress.SetLeafProgress(ctx, y.ID, 30)
	require.NoError(t, err)

	counts, err := h.progress.AggregateCounts(ctx, p.ID)
	require.NoError(t, err)

	// The synthetic root is excluded from all tallies.
	assert.Equal(t, 4, counts.Total)
	assert.Equal(t, 3, counts.Leaves)
	assert.Equal(t, 1, counts.Internal)
	assert.Equal(t, 1, counts.Completed)
	assert.Equal(t, 2, counts.InProgress) // Y at 30 and its parent A at 65
	assert.Equal(t, 1, counts.NotStarted) // B
	assert.Equal(t, 0, counts.Delayed)
}

func TestAggregateCounts_EmptyProject(t *testing.T) {
	h := newHarness(t)
	p, _ := h.newProject(t, "Empty")

	counts, err := h.progress.AggregateCounts(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Total)
}
