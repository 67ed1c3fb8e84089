package types

// Model is one locally runnable model variant from the catalog.
type Model struct {
	// Name of the model as known by the inference backend.
	// example: resnet50-int8
	Name string `json:"name" yaml:"name" toml:"name" example:"resnet50-int8"`
	// Accuracy score; higher is better.
	// example: 76.1
	Accuracy float64 `json:"accuracy" yaml:"accuracy" toml:"accuracy" example:"76.1"`
	// Performance cost; lower is faster/cheaper.
	// example: 4
	Cost float64 `json:"cost" yaml:"cost" toml:"cost" example:"4"`
	// Optional free-form description.
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
}
