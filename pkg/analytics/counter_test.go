package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/chatfang/pkg/analytics"
)

func TestCounterInsertionOrder(t *testing.T) {
	t.Parallel()

	c := analytics.NewCounter[string]()
	c.Inc("b")
	c.Inc("a")
	c.Inc("b")
	c.Inc("c")

	assert.Equal(t, []string{"b", "a", "c"}, c.Keys())
	assert.Equal(t, 2, c.Get("b"))
	assert.Equal(t, 1, c.Get("a"))
	assert.Zero(t, c.Get("missing"))
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 4, c.Total())
}

func TestCounterEmpty(t *testing.T) {
	t.Parallel()

	c := analytics.NewCounter[int]()

	assert.Zero(t, c.Len())
	assert.Zero(t, c.Total())
	assert.Empty(t, c.Keys())
}
