package overlay

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xpdesk/workers"
)

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: t})
}

func TestOffsetFollowsPaginator(t *testing.T) {
	o := NewWorkersOverlay("wallet", 10)
	o.SetPage(workers.Page{Total: 35})
	assert.Equal(t, 0, o.Offset())

	_, changed := o.Update(keyMsg(tea.KeyRight))
	require.True(t, changed)
	assert.Equal(t, 10, o.Offset())

	_, changed = o.Update(keyMsg(tea.KeyLeft))
	require.True(t, changed)
	assert.Equal(t, 0, o.Offset())

	_, changed = o.Update(keyMsg(tea.KeyLeft))
	assert.False(t, changed, "already on the first page")
}

func TestRenderStates(t *testing.T) {
	o := NewWorkersOverlay("0xabc", 10)

	assert.Contains(t, o.Render(), "Loading workers")

	o.SetError(errors.New("connection refused"))
	assert.Contains(t, o.Render(), "connection refused")

	o.SetPage(workers.Page{Total: 0})
	assert.Contains(t, o.Render(), "No workers reporting")

	o.SetPage(workers.Page{
		Wallet: "0xabc",
		Total:  2,
		Active: 1,
		Workers: []workers.Worker{
			{Name: "rig1", LastSeen: time.Now().Unix()},
			{Name: "rig2", LastSeen: time.Now().Add(-time.Hour).Unix()},
		},
	})
	out := o.Render()
	assert.Contains(t, out, "2 total, 1 active")
	assert.Contains(t, out, "rig1")
	assert.Contains(t, out, "just now")
	assert.Contains(t, out, "1h ago")
}

func TestReloadKeepsCurrentPageVisible(t *testing.T) {
	o := NewWorkersOverlay("w", 10)
	o.SetPage(workers.Page{Total: 1, Workers: []workers.Worker{{Name: "rig1"}}})

	o.SetLoading()
	assert.Contains(t, o.Render(), "rig1", "stale page stays up while refreshing")
}
