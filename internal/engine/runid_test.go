package engine

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDv7Generator_ValidFormat(t *testing.T) {
	gen := UUIDv7Generator{}
	id := gen.Generate()

	assert.Equal(t, 36, len(id), "UUID should be 36 characters")

	parsed, err := uuid.Parse(id)
	require.NoError(t, err, "id should be valid UUID")
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, id)
}

func TestUUIDv7Generator_Concurrent(t *testing.T) {
	gen := UUIDv7Generator{}
	const goroutines = 100

	ids := make(chan string, goroutines)
	var wg sync.WaitGroup

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- gen.Generate()
		}()
	}

	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		require.False(t, seen[id], "duplicate id generated")
		seen[id] = true
	}
	assert.Equal(t, goroutines, len(seen))
}

func TestFixedGenerator_Sequential(t *testing.T) {
	gen := NewFixedGenerator("run-1", "run-2", "run-3")

	assert.Equal(t, "run-1", gen.Generate())
	assert.Equal(t, "run-2", gen.Generate())
	assert.Equal(t, "run-3", gen.Generate())
}

func TestFixedGenerator_PanicsWhenExhausted(t *testing.T) {
	gen := NewFixedGenerator("run-1")
	assert.Equal(t, "run-1", gen.Generate())

	assert.Panics(t, func() {
		gen.Generate()
	}, "should panic when all ids exhausted")
}

func TestFixedGenerator_EmptyIDs(t *testing.T) {
	gen := NewFixedGenerator()
	assert.Panics(t, func() {
		gen.Generate()
	})
}
