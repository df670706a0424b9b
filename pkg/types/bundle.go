package types

// Scaffold is the output of the project scaffold builder.
type Scaffold struct {
	// Config is the full pipeline invocation.
	Config Invocation
	// Manifest is the path of the full manifest CSV.
	Manifest string
	// ShortManifest is the path of the non-contiguous subset manifest.
	ShortManifest string
	// RawFiles lists the placeholder instrument files in manifest order.
	RawFiles []string
}

// Harness is the output of the real-data harness builder.
type Harness struct {
	Config   Invocation
	Manifest string
	// Files lists the discovered instrument files; empty when the data
	// directory held no matches.
	Files []string
}

// QuantBundle holds the paths of the four tables a downstream statistics
// step consumes.
type QuantBundle struct {
	Peptides   string `json:"peptides" yaml:"peptides"`
	Proteins   string `json:"proteins" yaml:"proteins"`
	Annotation string `json:"annotation" yaml:"annotation"`
	Contrasts  string `json:"contrasts" yaml:"contrasts"`
}

// Paths returns the four table paths in a fixed order: peptides, proteins,
// annotation, contrasts.
func (b QuantBundle) Paths() []string {
	return []string{b.Peptides, b.Proteins, b.Annotation, b.Contrasts}
}
