package internal

import (
	"context"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRodSessionWaitForTimeout(t *testing.T) {
	bin, ok := launcher.LookPath()
	if !ok {
		t.Skip("no local Chromium")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	session, err := NewRodDriver(true, bin).Open(ctx, `data:text/html,<p class="hit">hello</p>`)
	require.NoError(t, err)
	defer session.Close()

	require.NoError(t, session.WaitFor("p.hit", 5*time.Second))
	assert.Error(t, session.WaitFor("p.missing", 200*time.Millisecond))

	// a timed-out wait leaves the page usable
	require.NoError(t, session.WaitFor("p.hit", 5*time.Second))
	nodes, err := session.Elements("p.hit")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	tag, err := nodes[0].Tag()
	require.NoError(t, err)
	assert.Equal(t, "p", tag)
}
