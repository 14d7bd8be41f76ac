package trail

// Marker is one painted dot: top-left corner, opacity and color.
type Marker struct {
	Left    float64
	Top     float64
	Opacity float64
	Color   string
}

// Renderer paints a frame of markers.
type Renderer interface {
	Render(markers []Marker)
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(markers []Marker)

func (f RendererFunc) Render(markers []Marker) { f(markers) }

// Markers lays out one marker per dot. Opacity fades with trailing index and
// colors alternate by index parity.
func Markers(dots []Dot, cfg Config) []Marker {
	n := float64(len(dots))
	markers := make([]Marker, len(dots))
	for i, d := range dots {
		markers[i] = Marker{
			Left:    d.X - cfg.Radius,
			Top:     d.Y - cfg.Radius,
			Opacity: 1 - float64(i)/n,
			Color:   cfg.Colors[i%2],
		}
	}
	return markers
}
