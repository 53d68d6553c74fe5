package dtnsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStableHashIsDeterministicAcrossCalls(t *testing.T) {
	a := stableHash("node-7", DefaultHashSeed)
	b := stableHash("node-7", DefaultHashSeed)
	assert.Equal(t, a, b)
}

func TestStableHashDiffersByInput(t *testing.T) {
	a := stableHash("node-7", DefaultHashSeed)
	b := stableHash("node-8", DefaultHashSeed)
	assert.NotEqual(t, a, b)
}

func TestStableHashDiffersBySeed(t *testing.T) {
	a := stableHash("node-7", DefaultHashSeed)
	b := stableHash("node-7", DefaultHashSeed+1)
	assert.NotEqual(t, a, b)
}
