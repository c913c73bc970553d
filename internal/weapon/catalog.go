package weapon

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wave-arena/internal/config"
)

// Catalog resolves weapon names to strategies.
type Catalog struct {
	byName   map[string]Config
	names    []string
	fallback string
	logger   *log.Logger
}

// NewCatalog builds a catalog from configuration. The default weapon must
// be listed in the catalog; otherwise the first entry becomes the default.
func NewCatalog(cfg config.WeaponsConfig, logger *log.Logger) *Catalog {
	c := &Catalog{
		byName: make(map[string]Config, len(cfg.Catalog)),
		logger: logger,
	}
	for _, wc := range cfg.Catalog {
		c.byName[wc.Name] = FromConfig(wc)
		c.names = append(c.names, wc.Name)
	}
	c.fallback = cfg.Default
	if _, ok := c.byName[c.fallback]; !ok && len(c.names) > 0 {
		c.fallback = c.names[0]
	}
	return c
}

// Names lists weapon names in configuration order.
func (c *Catalog) Names() []string {
	return c.names
}

// Has reports whether name is a known weapon.
func (c *Catalog) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Default returns the fallback weapon name.
func (c *Catalog) Default() string {
	return c.fallback
}

// Get returns the strategy for name. Unknown names fall back to the
// default weapon with a warning; Get never fails.
func (c *Catalog) Get(name string) Strategy {
	cfg, ok := c.byName[name]
	if !ok {
		if c.logger != nil {
			c.logger.Warn("unknown weapon, using default", "weapon", name, "default", c.fallback)
		}
		cfg = c.byName[c.fallback]
		if cfg.Name == "" {
			cfg = Config{Name: c.fallback, ProjectileCount: 1}
		}
	}
	return New(cfg)
}

// Recommended returns the weapon suited to a wave: bow early on, then
// wand, staff and finally whip.
func (c *Catalog) Recommended(wave int) string {
	var name string
	switch {
	case wave <= 2:
		name = "bow"
	case wave <= 5:
		name = "wand"
	case wave <= 8:
		name = "staff"
	default:
		name = "whip"
	}
	if !c.Has(name) {
		return c.fallback
	}
	return name
}
