package options

import (
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/richinsley/gocube/assets"
	"gopkg.in/yaml.v3"
)

// EnvConfig names the environment variable holding an optional config file path.
const EnvConfig = "GOCUBE_CONFIG"

// Options configure the window and where assets are read from.
type Options struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	FPS    int    `yaml:"fps"`
	// AssetDir is read instead of the embedded assets when set.
	AssetDir       string `yaml:"asset_dir"`
	VertexShader   string `yaml:"vertex_shader"`
	FragmentShader string `yaml:"fragment_shader"`
	Texture        string `yaml:"texture"`

	// FS, when non-nil, takes precedence over AssetDir and the embedded assets.
	FS fs.FS `yaml:"-"`
}

func Default() *Options {
	return &Options{
		Width:          640,
		Height:         480,
		Title:          "gocube",
		FPS:            60,
		VertexShader:   assets.VertexShader,
		FragmentShader: assets.FragmentShader,
		Texture:        assets.Texture,
	}
}

// Load overlays the YAML file at path onto the defaults. A missing file, or
// an empty path, yields the defaults.
func Load(path string) (*Options, error) {
	opts := Default()
	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Config %s not found, using defaults", path)
			return opts, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	log.Printf("Loaded config %s", path)
	return opts, nil
}

// FromEnv loads the file named by GOCUBE_CONFIG, if any.
func FromEnv() (*Options, error) {
	return Load(os.Getenv(EnvConfig))
}

func (o *Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", o.Width, o.Height)
	}
	if o.FPS <= 0 {
		return fmt.Errorf("invalid frame rate %d", o.FPS)
	}
	if o.VertexShader == "" || o.FragmentShader == "" || o.Texture == "" {
		return fmt.Errorf("asset paths must not be empty")
	}
	return nil
}

// AspectRatio is width over height.
func (o *Options) AspectRatio() float32 {
	return float32(o.Width) / float32(o.Height)
}

// Assets returns the filesystem the asset paths are relative to.
func (o *Options) Assets() fs.FS {
	if o.FS != nil {
		return o.FS
	}
	if o.AssetDir != "" {
		return os.DirFS(o.AssetDir)
	}
	return assets.FS
}
