package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kkurihara/planboard/internal/domain"
	"github.com/kkurihara/planboard/internal/wbs"
)

func TestNodeService_CreateDerivesLevelAndOrder(t *testing.T) {
	h := newHarness(t)
	_, root := h.newProject(t, "Create")

	first := h.addNode(t, root.ID, "First", nil)
	second := h.addNode(t, root.ID, "Second", nil)
	nested := h.addNode(t, first.ID, "Nested", nil)

	assert.Equal(t, domain.Level1, first.Level)
	assert.Equal(t, 0, first.OrderIndex)
	assert.Equal(t, 1, second.OrderIndex)
	assert.Equal(t, domain.Level2, nested.Level)
	assert.Equal(t, root.ProjectID, first.ProjectID)
	assert.Equal(t, first.ProjectID, nested.ProjectID)
}

func TestNodeService_CreateBelowMaxLevelRejected(t *testing.T) {
	h := newHarness(t)
	_, root := h.newProject(t, "Depth")

	l1 := h.addNode(t, root.ID, "L1", nil)
	l2 := h.addNode(t, l1.ID, "L2", nil)
	l3 := h.addNode(t, l2.ID, "L3", nil)
	l4 := h.addNode(t, l3.ID, "L4", nil)

	err := h.nodeSvc.Create(context.Background(), l4.ID, &domain.WbsNode{Title: "L5"})
	assert.ErrorIs(t, err, wbs.ErrBoundary)
}

func TestNodeService_CreateDilutesParentProgress(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, root := h.newProject(t, "Dilute")

	a := h.addNode(t, root.ID, "A", nil)
	x := h.addNode(t, a.ID, "X", nil)
	_, err := h.progress.SetLeafProgress(ctx, x.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, h.getNode(t, a.ID).Progress)

	h.addNode(t, a.ID, "Y", nil)
	assert.Equal(t, 50, h.getNode(t, a.ID).Progress)
}

func TestNodeService_UpdateWeightRecomputesParent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, root := h.newProject(t, "Weights")

	a := h.addNode(t, root.ID, "A", nil)
	x := h.addNode(t, a.ID, "X", ptr(1))
	h.addNode(t, a.ID, "Y", ptr(1))

	_, err := h.progress.SetLeafProgress(ctx, x.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 50, h.getNode(t, a.ID).Progress)

	// Tripling X's weight shifts the parent toward X's progress.
	updated := h.getNode(t, x.ID)
	updated.Weight = ptr(3)
	require.NoError(t, h.nodeSvc.Update(ctx, updated))

	assert.Equal(t, 75, h.getNode(t, a.ID).Progress)
}

func TestNodeService_NegativeWeightRejected(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, root := h.newProject(t, "Weights")

	err := h.nodeSvc.Create(ctx, root.ID, &domain.WbsNode{Title: "Bad", Weight: ptr(-1)})
	assert.ErrorIs(t, err, wbs.ErrOutOfRange)

	a := h.addNode(t, root.ID, "A", ptr(2))
	edit := h.getNode(t, a.ID)
	edit.Weight = ptr(-0.5)
	err = h.nodeSvc.Update(ctx, edit)
	assert.ErrorIs(t, err, wbs.ErrOutOfRange)

	// The stored weight is untouched.
	require.NotNil(t, h.getNode(t, a.ID).Weight)
	assert.Equal(t, 2.0, *h.getNode(t, a.ID).Weight)
}

func TestNodeService_UpdateDoesNotTouchProgress(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, root := h.newProject(t, "Immutable")

	leaf := h.addNode(t, root.ID, "Leaf", nil)
	_, err := h.progress.SetLeafProgress(ctx, leaf.ID, 60)
	require.NoError(t, err)

	edit := h.getNode(t, leaf.ID)
	edit.Title = "Renamed"
	edit.Progress = 5 // must be ignored
	require.NoError(t, h.nodeSvc.Update(ctx, edit))

	got := h.getNode(t, leaf.ID)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, 60, got.Progress)
}

func TestNodeService_DeleteRecomputesAndResequences(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, root := h.newProject(t, "Delete")

	a := h.addNode(t, root.ID, "A", nil)
	x := h.addNode(t, a.ID, "X", nil)
	y := h.addNode(t, a.ID, "Y", nil)
	z := h.addNode(t, a.ID, "Z", nil)

	_, err := h.progress.SetLeafProgress(ctx, x.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 33, h.getNode(t, a.ID).Progress)

	require.NoError(t, h.nodeSvc.Delete(ctx, y.ID))

	assert.Equal(t, 50, h.getNode(t, a.ID).Progress)
	assert.Equal(t, 0, h.getNode(t, x.ID).OrderIndex)
	assert.Equal(t, 1, h.getNode(t, z.ID).OrderIndex)
}

func TestNodeService_DeleteRootRejected(t *testing.T) {
	h := newHarness(t)
	_, root := h.newProject(t, "Guard")

	err := h.nodeSvc.Delete(context.Background(), root.ID)
	assert.ErrorIs(t, err, wbs.ErrInvalidNode)
}

func TestNodeService_TreeIncludesRoot(t *testing.T) {
	h := newHarness(t)
	p, root := h.newProject(t, "Tree")

	a := h.addNode(t, root.ID, "A", nil)
	h.addNode(t, a.ID, "X", nil)

	nodes, err := h.nodeSvc.Tree(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	assert.Equal(t, root.ID, nodes[0].ID)
}
