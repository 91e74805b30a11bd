package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAssembler(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAssembler() error {
	if err := ensureRange(map[string]int{
		"assembler.download_concurrency": c.Assembler.DownloadConcurrency,
		"assembler.write_concurrency":    c.Assembler.WriteConcurrency,
	}, 1, maxConcurrency); err != nil {
		return err
	}
	if c.Assembler.PaddingBytes < 0 || c.Assembler.PaddingBytes > 1 {
		return errors.New("assembler.padding_bytes must be 0 or 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

func ensureRange(values map[string]int, lo, hi int) error {
	for key, value := range values {
		if value < lo || value > hi {
			return fmt.Errorf("%s must be between %d and %d", key, lo, hi)
		}
	}
	return nil
}
