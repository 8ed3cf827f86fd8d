package region

// Config describes one region file, <regionsDir>/<id>.yml.
type Config struct {
	ID      string       // Derived from filename (without .yml extension)
	Name    string       `yaml:"name"`
	Country string       `yaml:"country"`
	Lat     float64      `yaml:"lat"`
	Lng     float64      `yaml:"lng"`
	Feeds   []FeedConfig `yaml:"feeds"`
}

// FeedConfig is a feed source. Category is an editorial hint shown to
// operators; item classification never reads it.
type FeedConfig struct {
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
}
