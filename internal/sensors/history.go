package sensors

import (
	"sync"

	"github.com/asecurityteam/rolling"
	"github.com/cfan/cfan/internal/util"
)

// DefaultHistorySize is the number of aggregated samples kept for statistics
const DefaultHistorySize = 60

// History keeps the most recent aggregated temperatures.
type History struct {
	mu      sync.Mutex
	window  *rolling.PointPolicy
	size    int
	samples int
}

func NewHistory(size int) *History {
	return &History{
		window: util.CreateRollingWindow(size),
		size:   size,
	}
}

func (h *History) Add(value int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.window.Append(float64(value))
	h.samples = min(h.samples+1, h.size)
}

// Len returns the number of samples in the window
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.samples
}

// Max returns the highest sample in the window, or 0 if there are none
func (h *History) Max() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.samples <= 0 {
		return 0
	}
	return util.GetWindowMax(h.window)
}

// Avg returns the average of the samples in the window, or 0 if there are none
func (h *History) Avg() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.samples <= 0 {
		return 0
	}
	return util.GetWindowSum(h.window) / float64(h.samples)
}
