package engine

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds process-wide tuning the engine thread reads once at
// startup. Attr follows gazed-vu's functional-options pattern so new
// knobs can be added without breaking New's signature.
type Config struct {
	defaultWidth, defaultHeight uint32
	resourcesDir                string
	configDir                   string
	threadPoolCap               int
	maxFixedIntervalFPS         float64
	inputQueueCapacity          int
	safeMode                    bool
}

var configDefaults = Config{
	defaultWidth:  800,
	defaultHeight: 450,
}

// Attr configures optional engine attributes for New.
type Attr func(*Config)

// DefaultSize sets the view size used when a CreateView call passes
// (0, 0).
func DefaultSize(width, height uint32) Attr {
	return func(c *Config) {
		if width > 0 {
			c.defaultWidth = width
		}
		if height > 0 {
			c.defaultHeight = height
		}
	}
}

// ResourcesDir points the web engine at its static resources directory.
func ResourcesDir(dir string) Attr {
	return func(c *Config) { c.resourcesDir = dir }
}

// ConfigDir points the web engine at a writable per-profile directory. If
// set, New also looks for a servoview.yaml tuning file there (see
// LoadConfigFile).
func ConfigDir(dir string) Attr {
	return func(c *Config) { c.configDir = dir }
}

// ThreadPoolCap sets the cap on the web engine's internal worker pool
// kept in Config. 0 means no cap. The value is stored only: it is not
// passed to the web engine through WebEngineOptions.
func ThreadPoolCap(cap int) Attr {
	return func(c *Config) {
		if cap >= 0 {
			c.threadPoolCap = cap
		}
	}
}

// fileTuning is the optional servoview.yaml schema read from ConfigDir.
// Each key maps to a knob a CreateView caller can otherwise only reach
// through the C ABI's per-call parameters (§6): fixed_interval_hz caps
// the fixed-interval refresh rate any view may request,
// input_queue_capacity sizes every view's bounded input-event queue, and
// safe_mode forces the producer-fence safety path on regardless of a
// view's UNSAFE_NO_PRODUCER_FENCE flag.
type fileTuning struct {
	ThreadPoolCap      int     `yaml:"thread_pool_cap"`
	FixedIntervalHz    float64 `yaml:"fixed_interval_hz"`
	InputQueueCapacity int     `yaml:"input_queue_capacity"`
	SafeMode           bool    `yaml:"safe_mode"`
}

// LoadConfigFile reads configDir/servoview.yaml, if present, and applies
// any tuning it contains on top of c. A missing file is not an error;
// a malformed one is returned to the caller.
func LoadConfigFile(c *Config, configDir string) error {
	if configDir == "" {
		return nil
	}
	data, err := os.ReadFile(configDir + "/servoview.yaml")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var tuning fileTuning
	if err := yaml.Unmarshal(data, &tuning); err != nil {
		return err
	}
	if tuning.ThreadPoolCap > 0 {
		c.threadPoolCap = tuning.ThreadPoolCap
	}
	if tuning.FixedIntervalHz > 0 {
		c.maxFixedIntervalFPS = tuning.FixedIntervalHz
	}
	if tuning.InputQueueCapacity > 0 {
		c.inputQueueCapacity = tuning.InputQueueCapacity
	}
	if tuning.SafeMode {
		c.safeMode = true
	}
	return nil
}
