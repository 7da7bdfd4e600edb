package fittext

import "sync"

// Container is a fixed-width layout box that notifies observers when its width changes
type Container struct {
	mu        sync.Mutex
	width     float64
	nextID    int
	observers map[int]func(width float64)
}

// NewContainer creates a container with an initial width
func NewContainer(width float64) *Container {
	return &Container{
		width:     width,
		observers: make(map[int]func(float64)),
	}
}

// Width returns the current available width
func (c *Container) Width() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width
}

// Resize sets a new width and notifies every observer when it changed
func (c *Container) Resize(width float64) {
	c.mu.Lock()
	if c.width == width {
		c.mu.Unlock()
		return
	}
	c.width = width
	callbacks := make([]func(float64), 0, len(c.observers))
	for _, fn := range c.observers {
		callbacks = append(callbacks, fn)
	}
	c.mu.Unlock()

	// Callbacks run outside the lock so they may read Width
	for _, fn := range callbacks {
		fn(width)
	}
}

// Observe registers fn for width changes and returns the function that disconnects it.
// Disconnecting more than once is a no-op.
func (c *Container) Observe(fn func(width float64)) (disconnect func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.observers[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.observers, id)
			c.mu.Unlock()
		})
	}
}

// Observers returns the number of attached observers
func (c *Container) Observers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.observers)
}
