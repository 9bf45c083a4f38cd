package layout

// Category tells which schedule element a [Rect] was built from.
type Category string

const (
	CategoryTask         Category = "task"
	CategoryTransmission Category = "transmission"
)

// Rect is a positioned rectangle on the canvas. The origin is the top-left
// corner and Y increases downward.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Label    string   `json:"label"`
	Category Category `json:"category"`

	Lane     int `json:"lane"`                // lane whose band holds the rect
	Task     int `json:"task"`                // index of the source task in the schedule
	Index    int `json:"index"`               // transmission index within the task, -1 for task bars
	DestLane int `json:"dest_lane,omitempty"` // destination lane of a transmission
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// CenterX returns the horizontal center point of the rect.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center point of the rect.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// IsTransmission reports whether the rect was built from a transmission.
func (r Rect) IsTransmission() bool { return r.Category == CategoryTransmission }
