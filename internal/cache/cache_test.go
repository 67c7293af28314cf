package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	c := New(time.Minute)
	c.Set("cle", 42)

	v, ok := c.Get("cle")
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestGetAbsent(t *testing.T) {
	c := New(time.Minute)
	_, ok := c.Get("inconnue")
	assert.False(t, ok)
}

func TestExpiration(t *testing.T) {
	c := New(10 * time.Millisecond)
	c.Set("cle", "valeur")

	time.Sleep(20 * time.Millisecond)
	_, ok := c.Get("cle")
	assert.False(t, ok)
}

func TestInvalider(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Invalider("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok)
}

func TestVider(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", 1)
	c.Vider()
	_, ok := c.Get("a")
	assert.False(t, ok)
}
