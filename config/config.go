// Package config gathers settings shared by all songkit commands. Defaults
// come from the environment (SONGKIT_*), optionally loaded from a .env
// file, and from the XDG base directories. Command line flags override.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/zionsongs/songkit"
	"github.com/zionsongs/songkit/convert"
	"github.com/zionsongs/songkit/dateutil"
)

const envPrefix = "SONGKIT_"

// Config for songkit commands.
type Config struct {
	// DataDir is the generic data dir for all songkit tools.
	DataDir string
	// CacheDir keeps fetched index pages.
	CacheDir string
	// Catalog is the song number mapping CSV.
	Catalog string
	// Songbook and Author are written to OpenLyrics properties.
	Songbook string
	Author   string
	// Modified is the OpenLyrics modifiedDate, beginning of today if zero.
	Modified   time.Time
	MaxRetries int
	Timeout    time.Duration
	// Delay between two requests to the same site.
	Delay time.Duration
}

// Default returns the configuration without any environment applied.
func Default() *Config {
	dataDir := filepath.Join(xdg.DataHome, songkit.AppName)
	return &Config{
		DataDir:    dataDir,
		CacheDir:   filepath.Join(xdg.CacheHome, songkit.AppName),
		Catalog:    filepath.Join(dataDir, "songs_catalog.csv"),
		Songbook:   "Zion Songs",
		Author:     convert.DefaultAuthor,
		MaxRetries: 3,
		Timeout:    30 * time.Second,
		Delay:      500 * time.Millisecond,
	}
}

// Load reads the given env files, or ".env" in the current directory if
// none are given and it exists, then applies SONGKIT_* variables. Variables
// already set in the environment win over file values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			envFiles = []string{".env"}
		}
	}
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("env: %w", err)
		}
	}
	c := Default()
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	return c, nil
}

func getenv(key string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + key)
	return v, ok && v != ""
}

func (c *Config) applyEnv() error {
	if v, ok := getenv("DATA_DIR"); ok {
		c.DataDir = v
		c.Catalog = filepath.Join(v, "songs_catalog.csv")
	}
	if v, ok := getenv("CACHE_DIR"); ok {
		c.CacheDir = v
	}
	if v, ok := getenv("CATALOG"); ok {
		c.Catalog = v
	}
	if v, ok := getenv("SONGBOOK"); ok {
		c.Songbook = v
	}
	if v, ok := getenv("AUTHOR"); ok {
		c.Author = v
	}
	if v, ok := getenv("MODIFIED_DATE"); ok {
		t, err := dateutil.Parse(v)
		if err != nil {
			return fmt.Errorf("%sMODIFIED_DATE: %w", envPrefix, err)
		}
		c.Modified = t
	}
	if v, ok := getenv("MAX_RETRIES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sMAX_RETRIES: %w", envPrefix, err)
		}
		c.MaxRetries = n
	}
	for key, dst := range map[string]*time.Duration{"TIMEOUT": &c.Timeout, "DELAY": &c.Delay} {
		if v, ok := getenv(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, key, err)
			}
			*dst = d
		}
	}
	return nil
}

// Path returns a file name under the data directory.
func (c *Config) Path(elem ...string) string {
	return filepath.Join(append([]string{c.DataDir}, elem...)...)
}

// Fields for debug logging.
func (c *Config) Fields() log.Fields {
	return log.Fields{
		"data":     c.DataDir,
		"cache":    c.CacheDir,
		"catalog":  c.Catalog,
		"songbook": c.Songbook,
		"author":   c.Author,
	}
}
