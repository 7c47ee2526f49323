package config

import "errors"

// FileSource supplies the raw bytes of the persisted config file. A missing
// file is reported as (nil, nil).
type FileSource interface {
	ReadConfig() ([]byte, error)
}

// Resolve builds the effective configuration for one dispatch:
// defaults, then environment, then config file, then the caller's preview
// flag again so a stale file cannot turn preview on or off.
//
// The returned Config is always usable. The error, if any, carries the
// problems that were skipped along the way and is meant for logging only.
func Resolve(src FileSource) (*Config, error) {
	cfg := DefaultConfig()
	var errs []error

	errs = append(errs, ApplyEnvOverrides(cfg))

	if src != nil {
		b, err := src.ReadConfig()
		if err != nil {
			errs = append(errs, err)
		} else if err := ApplyFile(cfg, b); err != nil {
			errs = append(errs, err)
		}
	}

	cfg.Preview = PreviewFromEnv()
	for _, w := range cfg.Validate() {
		errs = append(errs, errors.New(w))
	}
	cfg.Normalize()
	return cfg, errors.Join(errs...)
}
