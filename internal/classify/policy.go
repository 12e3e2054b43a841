package classify

import (
	"path/filepath"
	"strings"
	"time"

	"snapsort/internal/config"
	"snapsort/internal/services"
	"snapsort/internal/timestamp"
)

// Policy is the immutable classification configuration. It is constructed
// once at startup from the validated config and passed by value into every
// component; nothing mutates it afterward.
type Policy struct {
	WatchRoot       string
	DestRoot        string
	Source          timestamp.Source
	Origin          time.Time
	PeriodDays      int
	Extensions      map[string]struct{}
	SettleDelay     time.Duration
	ProcessExisting bool
}

// PolicyFromConfig freezes the classification section of cfg into a Policy.
// The returned flag reports whether the time source was downgraded because
// embedded-capture reading is unavailable in this build; the caller logs the
// single warning for that.
func PolicyFromConfig(cfg *config.Config) (Policy, bool, error) {
	source, err := timestamp.ParseSource(cfg.Classification.TimeSource)
	if err != nil {
		return Policy{}, false, services.Wrap(services.ErrValidation, "classify", "parse time source", "", err)
	}
	source, downgraded := timestamp.Downgrade(source)

	extensions := make(map[string]struct{}, len(cfg.Classification.Extensions))
	for _, ext := range cfg.Classification.Extensions {
		extensions[ext] = struct{}{}
	}

	return Policy{
		WatchRoot:       cfg.Paths.WatchDir,
		DestRoot:        cfg.Paths.DestDir,
		Source:          source,
		Origin:          cfg.OriginDate(),
		PeriodDays:      cfg.Classification.PeriodDays,
		Extensions:      extensions,
		SettleDelay:     cfg.SettleDelay(),
		ProcessExisting: cfg.Classification.ProcessExisting,
	}, downgraded, nil
}

// MatchesExtension reports whether the filename carries one of the policy's
// recognized extensions, compared case-insensitively.
func (p Policy) MatchesExtension(name string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return false
	}
	_, ok := p.Extensions[ext]
	return ok
}
