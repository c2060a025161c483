package notice

import (
	"fmt"
	"sync"
	"time"
)

const DefaultDuration = 3 * time.Second

// Notice is the transient "added to cart" message. It hides itself after the
// configured duration; Stop cancels a pending hide when the owner goes away.
type Notice struct {
	duration time.Duration

	mu      sync.Mutex
	message string
	visible bool
	timer   *time.Timer
	seq     uint64
}

func New(duration time.Duration) *Notice {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Notice{duration: duration}
}

func (n *Notice) Show(title string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.stopTimer()
	n.seq++
	seq := n.seq

	n.message = fmt.Sprintf("%s added to cart!", title)
	n.visible = true
	n.timer = time.AfterFunc(n.duration, func() {
		n.expire(seq)
	})
}

func (n *Notice) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.stopTimer()
	n.visible = false
	n.message = ""
}

// Stop cancels the pending hide without changing what is shown.
func (n *Notice) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.stopTimer()
	n.seq++
}

func (n *Notice) Current() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.message, n.visible
}

func (n *Notice) expire(seq uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	// a newer Show restarted the timer
	if seq != n.seq {
		return
	}
	n.visible = false
	n.message = ""
	n.timer = nil
}

func (n *Notice) stopTimer() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
