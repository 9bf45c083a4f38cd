package cache

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey is the key of a layout computed from the schedule whose
	// JSON hashes to scheduleHash.
	LayoutKey(scheduleHash string, opts LayoutKeyOpts) string

	// ArtifactKey is the key of a rendered artifact of the layout whose
	// JSON hashes to layoutHash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the layout options that change the layout.
type LayoutKeyOpts struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	RowWeight int     `json:"row_weight"`
	Numeric   string  `json:"numeric"`
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Title    string `json:"title,omitempty"`
	NoLabels bool   `json:"no_labels,omitempty"`
	Scale    int    `json:"scale,omitempty"`
	Cols     int    `json:"cols,omitempty"`
	Rows     int    `json:"rows,omitempty"`
}

// DefaultKeyer hashes options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(scheduleHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", scheduleHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
