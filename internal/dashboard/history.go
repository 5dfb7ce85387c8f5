package dashboard

// DefaultHistorySize is the default number of samples retained per series.
const DefaultHistorySize = 60

// History retains recent usage samples for sparkline rendering: one series
// for swap utilization and one per GPU device. It is driven by the single
// update loop, so no locking is needed.
type History struct {
	size int
	swap *ringBuffer
	gpus map[int]*ringBuffer
}

// ringBuffer is a fixed-size circular buffer for float64 values.
type ringBuffer struct {
	data  []float64
	head  int
	count int
	size  int
}

// NewHistory creates a history tracker with the specified buffer size.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		size: size,
		swap: newRingBuffer(size),
		gpus: make(map[int]*ringBuffer),
	}
}

// PushSwap records a swap utilization percentage sample.
func (h *History) PushSwap(percent float64) {
	h.swap.push(percent)
}

// PushGPU records a memory utilization sample for one device.
func (h *History) PushGPU(device int, percent float64) {
	buf, ok := h.gpus[device]
	if !ok {
		buf = newRingBuffer(h.size)
		h.gpus[device] = buf
	}
	buf.push(percent)
}

// Swap returns the swap utilization series, oldest first.
func (h *History) Swap() []float64 {
	return h.swap.values()
}

// GPU returns the utilization series for one device, oldest first. Nil when
// the device has never been sampled.
func (h *History) GPU(device int) []float64 {
	buf, ok := h.gpus[device]
	if !ok {
		return nil
	}
	return buf.values()
}

func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]float64, size),
		size: size,
	}
}

func (r *ringBuffer) push(v float64) {
	r.data[r.head] = v
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// values returns the buffered samples in insertion order, oldest first.
func (r *ringBuffer) values() []float64 {
	out := make([]float64, 0, r.count)
	start := r.head - r.count
	if start < 0 {
		start += r.size
	}
	for i := 0; i < r.count; i++ {
		out = append(out, r.data[(start+i)%r.size])
	}
	return out
}
