package dtnsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeHopPlan(t *testing.T) *ContactPlan {
	plan := NewContactPlan(1000, 1)
	require.NoError(t, plan.AddContact("a", "b", 0, 100, 0, 0))
	require.NoError(t, plan.AddContact("b", "c", 50, 150, 0, 0))
	require.NoError(t, plan.AddContact("a", "c", 0, 10, 0, 0)) // too short to matter at scale
	return plan
}

func TestBuildContactGraphWiresContactToContactEdge(t *testing.T) {
	plan := threeHopPlan(t)
	g := BuildContactGraph(plan, DefaultHashSeed)

	ab := plan.AllContacts()[0]
	bc := plan.AllContacts()[1]

	succs := g.Successors(ab)
	var found bool
	for _, s := range succs {
		if s == bc {
			found = true
		}
	}
	assert.True(t, found, "expected a->b contact to connect to b->c contact")
}

func TestBuildContactGraphWiresNominalEndpoints(t *testing.T) {
	plan := threeHopPlan(t)
	g := BuildContactGraph(plan, DefaultHashSeed)

	srcA := nominalVertex("a")
	require.True(t, g.HasVertex(srcA))

	ab := plan.AllContacts()[0]
	var sawAB bool
	for _, s := range g.Successors(srcA) {
		if s == ab {
			sawAB = true
		}
	}
	assert.True(t, sawAB, "expected source-nominal(a) to connect to a->b contact")
}

func TestSuccessorsAreSortedByToTime(t *testing.T) {
	plan := NewContactPlan(1000, 1)
	require.NoError(t, plan.AddContact("a", "x", 10, 40, 0, 0))
	require.NoError(t, plan.AddContact("a", "y", 10, 30, 0, 0))
	g := BuildContactGraph(plan, DefaultHashSeed)

	src := nominalVertex("a")
	succs := g.Successors(src)
	require.Len(t, succs, 2)
	assert.LessOrEqual(t, succs[0].ToTime, succs[1].ToTime)
}

func TestDebugGraphReportsHopCount(t *testing.T) {
	plan := NewContactPlan(1000, 1)
	require.NoError(t, plan.AddContact("a", "b", 0, 100, 0, 0))
	require.NoError(t, plan.AddContact("b", "c", 50, 150, 0, 0))
	g := BuildContactGraph(plan, DefaultHashSeed)

	hops, ok := g.DebugHopCount("a", "c")
	require.True(t, ok)
	assert.Equal(t, 2, hops)
}

func TestDebugHopCountUnknownNodeIsNotOK(t *testing.T) {
	plan := threeHopPlan(t)
	g := BuildContactGraph(plan, DefaultHashSeed)

	_, ok := g.DebugHopCount("a", "nowhere")
	assert.False(t, ok)
}
