package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vango-toast/internal/errors"
	"github.com/vango-dev/vango-toast/pkg/toast"
)

const (
	// DefaultPort is the default preview server port.
	DefaultPort = 3100

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"
)

// FileNames are the configuration file names Load looks for, in order.
var FileNames = []string{"toast.json", "toast.yaml", "toast.yml", "toast.toml"}

// Config is the vango-toast project configuration.
type Config struct {
	// Toast holds registry defaults and animation timings.
	Toast ToastConfig `json:"toast" yaml:"toast" toml:"toast"`

	// Preview configures the live preview server.
	Preview PreviewConfig `json:"preview" yaml:"preview" toml:"preview"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ToastConfig holds toast defaults. Durations are in milliseconds.
type ToastConfig struct {
	// Duration is the default auto-dismiss delay; 0 disables auto-dismiss.
	Duration *int64 `json:"duration,omitempty" yaml:"duration,omitempty" toml:"duration,omitempty"`

	// EntryDelay is the wait before the entry animation.
	EntryDelay int64 `json:"entryDelay,omitempty" yaml:"entryDelay,omitempty" toml:"entryDelay,omitempty"`

	// ExitDelay is the wait between the exit animation and detaching.
	ExitDelay int64 `json:"exitDelay,omitempty" yaml:"exitDelay,omitempty" toml:"exitDelay,omitempty"`

	// ProgressSettle is the wait before the progress bar starts.
	ProgressSettle int64 `json:"progressSettle,omitempty" yaml:"progressSettle,omitempty" toml:"progressSettle,omitempty"`

	// Progress shows the progress bar by default.
	Progress *bool `json:"progress,omitempty" yaml:"progress,omitempty" toml:"progress,omitempty"`

	// ClickToDismiss dismisses toasts on click by default.
	ClickToDismiss *bool `json:"clickToDismiss,omitempty" yaml:"clickToDismiss,omitempty" toml:"clickToDismiss,omitempty"`

	// ContainerID is the id of the mounting surface element.
	ContainerID string `json:"containerId,omitempty" yaml:"containerId,omitempty" toml:"containerId,omitempty"`
}

// PreviewConfig configures the live preview server.
type PreviewConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty" toml:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" yaml:"port,omitempty" toml:"port,omitempty"`

	// OpenBrowser opens the browser automatically on start.
	OpenBrowser bool `json:"openBrowser,omitempty" yaml:"openBrowser,omitempty" toml:"openBrowser,omitempty"`

	// Metrics serves /metrics (default true).
	Metrics *bool `json:"metrics,omitempty" yaml:"metrics,omitempty" toml:"metrics,omitempty"`
}

func ptr[T any](v T) *T { return &v }

// New creates a Config with default values.
func New() *Config {
	def := toast.DefaultConfig()
	return &Config{
		Toast: ToastConfig{
			Duration:       ptr(def.Defaults.Duration.Milliseconds()),
			EntryDelay:     def.EntryDelay.Milliseconds(),
			ExitDelay:      def.ExitDelay.Milliseconds(),
			ProgressSettle: def.ProgressSettle.Milliseconds(),
			Progress:       ptr(def.Defaults.Progress),
			ClickToDismiss: ptr(def.Defaults.ClickToDismiss),
			ContainerID:    def.ContainerID,
		},
		Preview: PreviewConfig{
			Host:    DefaultHost,
			Port:    DefaultPort,
			Metrics: ptr(true),
		},
	}
}

// Load loads the first configuration file found in dir.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New(errors.CodeConfigNotFound).
		WithDetail("No " + strings.Join(FileNames, ", ") + " found in " + dir)
}

// LoadFile loads a configuration file, choosing the format by extension.
// Fields missing from the file keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfigNotFound).
				WithDetail("No configuration file at " + path)
		}
		return nil, errors.New(errors.CodeConfigParse).Wrap(err)
	}

	cfg := New()
	if err := decode(path, data, cfg); err != nil {
		return nil, err
	}
	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return parseError(path, err, yamlLine(err), 0)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			var derr *toml.DecodeError
			if stderrors.As(err, &derr) {
				row, col := derr.Position()
				return parseError(path, err, row, col)
			}
			return parseError(path, err, 0, 0)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			var serr *json.SyntaxError
			if stderrors.As(err, &serr) {
				line, col := lineCol(data, serr.Offset)
				return parseError(path, err, line, col)
			}
			return parseError(path, err, 0, 0)
		}
	}
	return nil
}

func parseError(path string, err error, line, col int) error {
	e := errors.New(errors.CodeConfigParse).Wrap(err)
	if line > 0 {
		e.WithLocation(path, line, col)
	}
	return e
}

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// yamlLine extracts the first line number from a yaml.v3 error.
func yamlLine(err error) int {
	m := yamlLineRe.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// lineCol converts a byte offset into a 1-based line and column.
func lineCol(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset]
	line := bytes.Count(before, []byte("\n")) + 1
	col := int(offset) - bytes.LastIndexByte(before, '\n')
	return line, col - 1
}

func (c *Config) applyDefaults() {
	def := New()
	if c.Toast.Duration == nil {
		c.Toast.Duration = def.Toast.Duration
	}
	if c.Toast.EntryDelay == 0 {
		c.Toast.EntryDelay = def.Toast.EntryDelay
	}
	if c.Toast.ExitDelay == 0 {
		c.Toast.ExitDelay = def.Toast.ExitDelay
	}
	if c.Toast.ProgressSettle == 0 {
		c.Toast.ProgressSettle = def.Toast.ProgressSettle
	}
	if c.Toast.Progress == nil {
		c.Toast.Progress = def.Toast.Progress
	}
	if c.Toast.ClickToDismiss == nil {
		c.Toast.ClickToDismiss = def.Toast.ClickToDismiss
	}
	if c.Toast.ContainerID == "" {
		c.Toast.ContainerID = def.Toast.ContainerID
	}
	if c.Preview.Host == "" {
		c.Preview.Host = DefaultHost
	}
	if c.Preview.Port == 0 {
		c.Preview.Port = DefaultPort
	}
	if c.Preview.Metrics == nil {
		c.Preview.Metrics = def.Preview.Metrics
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value int64
	}{
		{"toast.entryDelay", c.Toast.EntryDelay},
		{"toast.exitDelay", c.Toast.ExitDelay},
		{"toast.progressSettle", c.Toast.ProgressSettle},
	}
	if c.Toast.Duration != nil {
		fields = append(fields, struct {
			name  string
			value int64
		}{"toast.duration", *c.Toast.Duration})
	}
	for _, f := range fields {
		if f.value < 0 {
			return errors.New(errors.CodeConfigInvalid).
				WithDetail(fmt.Sprintf("%s is %d; durations must not be negative", f.name, f.value)).
				WithSuggestion("Use 0 for toast.duration to disable auto-dismiss.")
		}
		if f.value > toast.MaxDurationMillis {
			return errors.New(errors.CodeConfigInvalid).
				WithDetail(fmt.Sprintf("%s is %d; durations are capped at %d ms", f.name, f.value, toast.MaxDurationMillis))
		}
	}
	if c.Preview.Port < 1 || c.Preview.Port > 65535 {
		return errors.New(errors.CodeInvalidPort).
			WithDetail(fmt.Sprintf("Port %d is outside 1-65535", c.Preview.Port))
	}
	return nil
}

// Registry converts the toast settings into a registry configuration.
func (t ToastConfig) Registry() toast.Config {
	cfg := toast.DefaultConfig()
	if t.Duration != nil {
		cfg.Defaults.Duration = ms(*t.Duration)
	}
	if t.Progress != nil {
		cfg.Defaults.Progress = *t.Progress
	}
	if t.ClickToDismiss != nil {
		cfg.Defaults.ClickToDismiss = *t.ClickToDismiss
	}
	if t.EntryDelay > 0 {
		cfg.EntryDelay = ms(t.EntryDelay)
	}
	if t.ExitDelay > 0 {
		cfg.ExitDelay = ms(t.ExitDelay)
	}
	if t.ProgressSettle > 0 {
		cfg.ProgressSettle = ms(t.ProgressSettle)
	}
	if t.ContainerID != "" {
		cfg.ContainerID = t.ContainerID
	}
	return cfg
}

func ms(n int64) time.Duration { return time.Duration(n) * time.Millisecond }

// Address returns host:port.
func (p PreviewConfig) Address() string {
	return p.Host + ":" + strconv.Itoa(p.Port)
}

// URL returns the preview URL.
func (p PreviewConfig) URL() string {
	return "http://" + p.Address()
}

// MetricsEnabled reports whether /metrics is served.
func (p PreviewConfig) MetricsEnabled() bool {
	return p.Metrics == nil || *p.Metrics
}

// Save writes the config back to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the config to path, in the format its extension names.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	case ".toml":
		data, err = toml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New(errors.CodeConfigParse).Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New(errors.CodeConfigParse).Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from or saved to.
func (c *Config) Path() string {
	return c.configPath
}
