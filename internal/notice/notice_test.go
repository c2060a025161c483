package notice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestShow_HidesAfterDuration(t *testing.T) {
	n := New(20 * time.Millisecond)

	n.Show("Backpack")

	msg, visible := n.Current()
	assert.True(t, visible)
	assert.Equal(t, "Backpack added to cart!", msg)

	assert.Eventually(t, func() bool {
		_, visible := n.Current()
		return !visible
	}, time.Second, 5*time.Millisecond)
}

func TestShow_RestartsTimer(t *testing.T) {
	n := New(80 * time.Millisecond)

	n.Show("first")
	time.Sleep(50 * time.Millisecond)
	n.Show("second")
	time.Sleep(50 * time.Millisecond)

	msg, visible := n.Current()
	assert.True(t, visible, "second show must extend visibility")
	assert.Equal(t, "second added to cart!", msg)

	n.Stop()
}

func TestDismiss(t *testing.T) {
	n := New(time.Hour)
	n.Show("Backpack")

	n.Dismiss()

	msg, visible := n.Current()
	assert.False(t, visible)
	assert.Empty(t, msg)
}

func TestStop_CancelsPendingHide(t *testing.T) {
	n := New(20 * time.Millisecond)
	n.Show("Backpack")

	n.Stop()
	time.Sleep(60 * time.Millisecond)

	_, visible := n.Current()
	assert.True(t, visible, "stopped notice is never hidden by the timer")
}

func TestNew_DefaultDuration(t *testing.T) {
	assert.Equal(t, DefaultDuration, New(0).duration)
}
