// Package trail implements the cursor follower chain: a fixed run of dots where
// each dot eases toward its predecessor, plus the driver and gate around it.
package trail

// Dot is a point in viewport coordinates. Positions are never clamped.
type Dot struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Follower is what an Effect drives.
type Follower interface {
	OnPointerMove(x, y float64)
	OnTick()
	Dots() []Dot
}

// Chain is not safe for concurrent use; callers keep it on one goroutine.
type Chain struct {
	dots      []Dot
	sentinel  Dot
	moveAlpha float64
	tickAlpha float64
}

func NewChain(cfg Config) *Chain {
	n := cfg.Length
	if n < 1 {
		n = 1
	}
	c := &Chain{
		dots:      make([]Dot, n),
		sentinel:  cfg.Sentinel,
		moveAlpha: cfg.MoveAlpha,
		tickAlpha: cfg.TickAlpha,
	}
	c.Reset()
	return c
}

// OnPointerMove pins the head to the pointer and pulls the rest of the chain along.
func (c *Chain) OnPointerMove(x, y float64) {
	c.dots[0] = Dot{X: x, Y: y}
	c.relax(c.moveAlpha)
}

// OnTick eases every trailing dot toward its predecessor. The head stays put.
func (c *Chain) OnTick() {
	c.relax(c.tickAlpha)
}

// relax walks head to tail so each dot sees its predecessor's value from this pass.
func (c *Chain) relax(alpha float64) {
	for i := 1; i < len(c.dots); i++ {
		prev := c.dots[i-1]
		c.dots[i].X += (prev.X - c.dots[i].X) * alpha
		c.dots[i].Y += (prev.Y - c.dots[i].Y) * alpha
	}
}

func (c *Chain) Dots() []Dot {
	out := make([]Dot, len(c.dots))
	copy(out, c.dots)
	return out
}

func (c *Chain) Len() int {
	return len(c.dots)
}

// Reset parks every dot at the sentinel so nothing is drawn on screen.
func (c *Chain) Reset() {
	for i := range c.dots {
		c.dots[i] = c.sentinel
	}
}
