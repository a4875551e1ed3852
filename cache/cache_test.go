package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlsqlchat/session"
)

func newApp() *session.App {
	return session.NewApp(nil, session.Options{})
}

func TestSessions_GetOrCreateIsStablePerID(t *testing.T) {
	s := New(time.Hour, newApp)

	a := s.GetOrCreate("one")
	b := s.GetOrCreate("one")
	c := s.GetOrCreate("two")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, s.Count())
}

func TestSessions_AccessExtendsLifetime(t *testing.T) {
	s := New(80*time.Millisecond, newApp)
	first := s.GetOrCreate("busy")

	for i := 0; i < 4; i++ {
		time.Sleep(30 * time.Millisecond)
		require.Same(t, first, s.GetOrCreate("busy"))
	}
}

func TestSessions_ExpiredSessionStartsOver(t *testing.T) {
	s := New(20*time.Millisecond, newApp)
	first := s.GetOrCreate("id")

	time.Sleep(60 * time.Millisecond)

	assert.NotSame(t, first, s.GetOrCreate("id"))
}
