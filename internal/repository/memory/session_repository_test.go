package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-research-be/pkg/synthesis"
)

func TestGetOrCreateLazilyInitializes(t *testing.T) {
	repo := NewSessionRepository()

	s1 := repo.GetOrCreate("alpha")
	require.NotNil(t, s1)
	assert.Equal(t, "alpha", s1.ID)
	assert.Empty(t, s1.History)

	s2 := repo.GetOrCreate("alpha")
	assert.Same(t, s1, s2, "same id must return the same instance")
}

func TestSessionsAreIsolated(t *testing.T) {
	repo := NewSessionRepository()

	a := repo.GetOrCreate("a")
	b := repo.GetOrCreate("b")

	a.Lock()
	a.AddMessage("user", "hello from a")
	a.Context.SynthesizedData = &synthesis.Record{CompanyOverview: "Acme"}
	a.Unlock()

	assert.Empty(t, b.History)
	assert.Nil(t, b.Context.SynthesizedData)
}

func TestResetClearsWithoutDeleting(t *testing.T) {
	repo := NewSessionRepository()

	s := repo.GetOrCreate("alpha")
	s.Lock()
	s.AddMessage("user", "hello")
	s.Context.SynthesizedData = &synthesis.Record{}
	s.Unlock()

	repo.Reset("alpha")

	again, found := repo.Get("alpha")
	require.True(t, found, "reset must not delete the entry")
	assert.Same(t, s, again)
	assert.Empty(t, again.History)
	assert.Nil(t, again.Context.SynthesizedData)
}

func TestResetUnknownIDIsNoop(t *testing.T) {
	repo := NewSessionRepository()
	repo.Reset("never-seen")

	_, found := repo.Get("never-seen")
	assert.False(t, found)
}

func TestConcurrentGetOrCreateSingleInstance(t *testing.T) {
	repo := NewSessionRepository()

	const goroutines = 32
	sessions := make([]any, goroutines)
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			sessions[i] = repo.GetOrCreate("shared")
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		assert.Same(t, sessions[0], sessions[i])
	}
}
