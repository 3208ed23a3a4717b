package generator

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	DefaultMarkerNamespace = "CC.Generators"
	DefaultMarkerName      = "CreatorAttribute"
	DefaultStandIn         = "moq"
	DefaultExtension       = "cs"
	DefaultManifestFile    = "creator.manifest.yaml"
)

// Options control source discovery, generation and output.
//
// InDir           – directory scanned for sources
// OutDir          – directory receiving generated units
// MarkerNamespace – namespace of the marker annotation; "" with a MarkerName is the global namespace
// MarkerName      – type name of the marker annotation
// StandIn         – stand-in strategy for reference-typed dependencies (moq, fakeiteasy)
// Extension       – file extension of generated units, without the dot
// Workers         – maximum number of units evaluated concurrently
// ManifestFile    – manifest path, relative to OutDir unless absolute
// ExcludeDirs     – directory names skipped during discovery
type Options struct {
	InDir           string   `json:"in_dir,omitempty" yaml:"in_dir,omitempty" toml:"in_dir,omitempty" mapstructure:"in_dir,omitempty"`
	OutDir          string   `json:"out_dir,omitempty" yaml:"out_dir,omitempty" toml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	MarkerNamespace string   `json:"marker_namespace,omitempty" yaml:"marker_namespace,omitempty" toml:"marker_namespace,omitempty" mapstructure:"marker_namespace,omitempty"`
	MarkerName      string   `json:"marker_name,omitempty" yaml:"marker_name,omitempty" toml:"marker_name,omitempty" mapstructure:"marker_name,omitempty"`
	StandIn         string   `json:"stand_in,omitempty" yaml:"stand_in,omitempty" toml:"stand_in,omitempty" mapstructure:"stand_in,omitempty"`
	Extension       string   `json:"extension,omitempty" yaml:"extension,omitempty" toml:"extension,omitempty" mapstructure:"extension,omitempty"`
	Workers         int      `json:"workers,omitempty" yaml:"workers,omitempty" toml:"workers,omitempty" mapstructure:"workers,omitempty"`
	ManifestFile    string   `json:"manifest_file,omitempty" yaml:"manifest_file,omitempty" toml:"manifest_file,omitempty" mapstructure:"manifest_file,omitempty"`
	ExcludeDirs     []string `json:"exclude_dirs,omitempty" yaml:"exclude_dirs,omitempty" toml:"exclude_dirs,omitempty" mapstructure:"exclude_dirs,omitempty"`
}

func NewOptions() *Options {
	return &Options{
		InDir:           ".",
		OutDir:          "Generated",
		MarkerNamespace: DefaultMarkerNamespace,
		MarkerName:      DefaultMarkerName,
		StandIn:         DefaultStandIn,
		Extension:       DefaultExtension,
		Workers:         runtime.GOMAXPROCS(0),
		ManifestFile:    DefaultManifestFile,
		ExcludeDirs:     []string{"bin", "obj", ".git"},
	}
}

// Normalize fills blanks with defaults and makes directories absolute.
func (o *Options) Normalize() error {
	if len(o.InDir) == 0 {
		o.InDir = "."
	}
	if len(o.OutDir) == 0 {
		o.OutDir = "Generated"
	}
	var err error
	if o.InDir, err = filepath.Abs(o.InDir); err != nil {
		return fmt.Errorf("resolve input directory: %w", err)
	}
	if o.OutDir, err = filepath.Abs(o.OutDir); err != nil {
		return fmt.Errorf("resolve output directory: %w", err)
	}
	// A blank namespace next to a configured name is the global namespace.
	if o.MarkerName == "" {
		o.MarkerName = DefaultMarkerName
		if o.MarkerNamespace == "" {
			o.MarkerNamespace = DefaultMarkerNamespace
		}
	}
	o.StandIn = strings.ToLower(strings.TrimSpace(o.StandIn))
	if o.StandIn == "" {
		o.StandIn = DefaultStandIn
	}
	o.Extension = strings.TrimPrefix(o.Extension, ".")
	if o.Extension == "" {
		o.Extension = DefaultExtension
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.ManifestFile == "" {
		o.ManifestFile = DefaultManifestFile
	}
	if !filepath.IsAbs(o.ManifestFile) {
		o.ManifestFile = filepath.Join(o.OutDir, o.ManifestFile)
	}
	return nil
}

// MarkerQualifiedName is the fully qualified marker annotation type name.
func (o *Options) MarkerQualifiedName() string {
	if o.MarkerNamespace == "" {
		return o.MarkerName
	}
	return o.MarkerNamespace + "." + o.MarkerName
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithInDir(d string) Option        { return func(o *Options) { o.InDir = d } }
func WithOutDir(d string) Option       { return func(o *Options) { o.OutDir = d } }
func WithStandIn(s string) Option      { return func(o *Options) { o.StandIn = s } }
func WithExtension(e string) Option    { return func(o *Options) { o.Extension = e } }
func WithWorkers(n int) Option         { return func(o *Options) { o.Workers = n } }
func WithManifestFile(f string) Option { return func(o *Options) { o.ManifestFile = f } }
func WithMarker(namespace, name string) Option {
	return func(o *Options) { o.MarkerNamespace, o.MarkerName = namespace, name }
}
func WithExcludeDirs(names ...string) Option {
	return func(o *Options) {
		for _, n := range names {
			o.ExcludeDirs = append(o.ExcludeDirs, strings.TrimSpace(n))
		}
	}
}

// New builds normalized Options from defaults and opts.
func New(opts ...Option) (*Options, error) {
	o := NewOptions()
	for _, fn := range opts {
		fn(o)
	}
	if err := o.Normalize(); err != nil {
		return nil, err
	}
	return o, nil
}
