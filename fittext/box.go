package fittext

import "sync"

// Box is one auto-fit text instance. It re-fits when its content, its bounds
// or the width of the container it is mounted on changes.
type Box struct {
	mu         sync.Mutex
	measurer   Measurer
	content    string
	bounds     Bounds
	width      float64
	result     Result
	container  *Container
	disconnect func()
}

// NewBox creates an unmounted box. Until it is mounted it renders at bounds.Max.
func NewBox(m Measurer, content string, bounds Bounds) *Box {
	b := &Box{
		measurer: m,
		content:  content,
		bounds:   bounds.withDefaults(),
	}
	b.refit()
	return b
}

// Mount attaches the box to a container and fits it to the container width.
// A box mounted elsewhere is moved.
func (b *Box) Mount(c *Container) {
	b.Unmount()

	disconnect := c.Observe(b.onResize)

	b.mu.Lock()
	b.container = c
	b.disconnect = disconnect
	b.width = c.Width()
	b.refit()
	b.mu.Unlock()
}

// Unmount stops observing the container. The last computed size is kept.
func (b *Box) Unmount() {
	b.mu.Lock()
	disconnect := b.disconnect
	b.disconnect = nil
	b.container = nil
	b.mu.Unlock()

	if disconnect != nil {
		disconnect()
	}
}

// Mounted reports whether the box observes a container
func (b *Box) Mounted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.container != nil
}

// SetContent replaces the text and re-fits when it changed
func (b *Box) SetContent(content string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.content == content {
		return
	}
	b.content = content
	b.refit()
}

// SetBounds replaces the size range and re-fits when it changed
func (b *Box) SetBounds(bounds Bounds) {
	bounds = bounds.withDefaults()

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bounds == bounds {
		return
	}
	b.bounds = bounds
	b.refit()
}

// Content returns the current text
func (b *Box) Content() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.content
}

// Size returns the current font size
func (b *Box) Size() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.result.Size
}

// Result returns the outcome of the latest fit
func (b *Box) Result() Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.result
}

func (b *Box) onResize(width float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.width == width {
		return
	}
	b.width = width
	b.refit()
}

// refit must be called with mu held
func (b *Box) refit() {
	b.result = Fit(b.measurer, b.content, b.width, b.bounds)
}
