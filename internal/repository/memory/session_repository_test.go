package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepositoryLifecycle(t *testing.T) {
	var evicted []string
	repo := NewSessionRepository(time.Hour, func(s *Session) { evicted = append(evicted, s.ID) })

	repo.Save(&Session{ID: "s1", UserID: "u1"})
	got, ok := repo.Get("s1")
	require.True(t, ok)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, 1, repo.Count())

	repo.Delete("s1")
	_, ok = repo.Get("s1")
	assert.False(t, ok)
	assert.Equal(t, []string{"s1"}, evicted)
}

func TestSessionRepositoryGetExtendsExpiry(t *testing.T) {
	repo := NewSessionRepository(80*time.Millisecond, nil)
	repo.Save(&Session{ID: "s1"})

	time.Sleep(50 * time.Millisecond)
	_, ok := repo.Get("s1")
	require.True(t, ok)

	time.Sleep(50 * time.Millisecond)
	_, ok = repo.Get("s1")
	assert.True(t, ok, "the first Get pushed the expiry back")

	time.Sleep(120 * time.Millisecond)
	_, ok = repo.Get("s1")
	assert.False(t, ok)
}
