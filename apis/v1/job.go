// Package v1 defines the manifest schema for batch extraction jobs.
package v1

// ExtractJob is a declarative list of archives to extract.
type ExtractJob struct {
	Kind     string         `yaml:"kind" json:"kind" validate:"required,eq=ExtractJob"`
	Metadata Metadata       `yaml:"metadata" json:"metadata" validate:"required"`
	Spec     ExtractJobSpec `yaml:"spec" json:"spec" validate:"required"`
}

type Metadata struct {
	Name   string            `yaml:"name" json:"name" validate:"required"`
	Labels map[string]string `yaml:"labels,omitempty" json:"labels,omitempty"`
}

type ExtractJobSpec struct {
	Archives []Archive `yaml:"archives" json:"archives" validate:"required,min=1,dive"`
}

// Archive describes one extraction pass: where the bytes come from, how to
// decode them, and where the entries land.
type Archive struct {
	// Source is a file path, "-" for stdin, or an http(s):// or s3:// URL.
	Source string `yaml:"source" json:"source" validate:"required"`

	// Format is an optional format hint. Empty means auto-detect.
	Format string `yaml:"format,omitempty" json:"format,omitempty"`

	// Target is the directory entries are extracted into.
	Target string `yaml:"target" json:"target" validate:"required"`

	// StripComponents discards this many leading path segments from every
	// entry name.
	StripComponents int `yaml:"strip_components,omitempty" json:"strip_components,omitempty" validate:"gte=0"`

	// Include and Exclude are path.Match globs over entry names. An entry
	// is extracted when it matches no exclude glob and, if any include
	// globs are given, at least one of them.
	Include []string `yaml:"include,omitempty" json:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`

	// Encoding is the IANA name of the character encoding for entry names
	// that are not UTF-8 (e.g. "GBK", "ISO8859-1").
	Encoding string `yaml:"encoding,omitempty" json:"encoding,omitempty"`

	// S3 configures object storage access for s3:// sources.
	S3 *S3Spec `yaml:"s3,omitempty" json:"s3,omitempty"`
}

// S3Spec configures S3-compatible object storage access.
type S3Spec struct {
	Region          string `yaml:"region,omitempty" json:"region,omitempty"`
	Endpoint        string `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	AccessKeyID     string `yaml:"access_key_id,omitempty" json:"access_key_id,omitempty"`
	SecretAccessKey string `yaml:"secret_access_key,omitempty" json:"secret_access_key,omitempty"`
	ForcePathStyle  bool   `yaml:"force_path_style,omitempty" json:"force_path_style,omitempty"`
}
