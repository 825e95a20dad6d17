package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soukbot-be/pkg/dialogue"
)

func TestSessionRepositorySaveGet(t *testing.T) {
	repo := NewSessionRepository(time.Hour)

	sess := dialogue.NewSession("user-1", "Maroc")
	sess.Step = dialogue.StepBudget
	repo.Save(sess)

	got, found := repo.Get("user-1")
	require.True(t, found)
	assert.Equal(t, dialogue.StepBudget, got.Step)

	_, found = repo.Get("user-2")
	assert.False(t, found)
}

func TestSessionRepositoryDelete(t *testing.T) {
	repo := NewSessionRepository(time.Hour)
	repo.Save(dialogue.NewSession("user-1", "Maroc"))
	repo.Delete("user-1")

	_, found := repo.Get("user-1")
	assert.False(t, found)
}

func TestSessionRepositoryExpiry(t *testing.T) {
	repo := NewSessionRepository(20 * time.Millisecond)
	repo.Save(dialogue.NewSession("user-1", "Maroc"))
	time.Sleep(40 * time.Millisecond)

	_, found := repo.Get("user-1")
	assert.False(t, found)
}

func TestLockUserSerializesTurns(t *testing.T) {
	repo := NewSessionRepository(time.Hour)

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			unlock := repo.LockUser("user-1")
			defer unlock()
			mu.Lock()
			order = append(order, n)
			mu.Unlock()
		}(i)
	}
	wg.Wait()
	assert.Len(t, order, 10)
}
