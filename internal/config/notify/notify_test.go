package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeType_String(t *testing.T) {
	tests := []struct {
		ct   ChangeType
		want string
	}{
		{ChangeSet, "set"},
		{ChangeDelete, "delete"},
		{ChangeReload, "reload"},
		{ChangeType(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.ct.String())
	}
}

func TestNotifier_Subscribe(t *testing.T) {
	n := New()

	var got []Change
	sub := n.Subscribe(func(c Change) { got = append(got, c) })

	n.NotifySet("editor.evil", true, false, "user")
	require.Len(t, got, 1)
	assert.Equal(t, "editor.evil", got[0].Path)
	assert.Equal(t, false, got[0].NewValue)

	sub.Unsubscribe()
	sub.Unsubscribe()
	n.NotifySet("editor.evil", false, true, "user")
	assert.Len(t, got, 1, "observer called after Unsubscribe")
	assert.Zero(t, n.Len())
}

func TestNotifier_SubscribePath(t *testing.T) {
	n := New()

	var exact, parent, other int
	n.SubscribePath("evil.initial-mode", func(Change) { exact++ })
	n.SubscribePath("evil", func(Change) { parent++ })
	n.SubscribePath("ev", func(Change) { other++ })

	n.NotifySet("evil.initial-mode", "normal", "insert", "modeline")
	n.NotifyDelete("evil.dw-stops-at-word-end", true, "modeline")

	assert.Equal(t, 1, exact)
	assert.Equal(t, 2, parent)
	assert.Zero(t, other, "prefix without dot matched")

	n.NotifyReload("watcher")
	assert.Equal(t, []int{2, 3, 1}, []int{exact, parent, other}, "reload reaches every observer")
}

func TestNotifier_Order(t *testing.T) {
	n := New()

	var order []int
	for i := range 3 {
		n.Subscribe(func(Change) { order = append(order, i) })
	}
	n.NotifyReload("")

	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestNotifier_UnsubscribeDuringDelivery(t *testing.T) {
	n := New()

	var sub *Subscription
	calls := 0
	sub = n.Subscribe(func(Change) {
		calls++
		sub.Unsubscribe()
	})

	n.NotifyReload("")
	n.NotifyReload("")
	assert.Equal(t, 1, calls)
}

func TestNotifier_Close(t *testing.T) {
	n := New()
	called := false
	n.Subscribe(func(Change) { called = true })
	n.Close()
	n.NotifyReload("")
	assert.False(t, called, "observer called after Close")
}

func TestIsParentPath(t *testing.T) {
	tests := []struct {
		parent, child string
		want          bool
	}{
		{"editor", "editor.evil", true},
		{"editor", "editor", false},
		{"edit", "editor.evil", false},
		{"modeline", "modeline.disabled-languages", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isParentPath(tt.parent, tt.child), "isParentPath(%q, %q)", tt.parent, tt.child)
	}
}
