package sheet

import (
	"strings"
	"time"
)

// Config holds configuration for the sheet layout and highlighting.
type Config struct {
	// Key namespaces this sheet in the store and the index snapshot cache.
	Key string `mapstructure:"key" default:"ads"`
	// LinkedFields is a comma-separated list of linked columns whose cells
	// propagate edits to every row sharing the old value.
	LinkedFields string `mapstructure:"linked_fields" default:"campaignName,adGroupName"`
	// MismatchFields is a comma-separated list of fields expected to agree
	// by derived domain.
	MismatchFields string `mapstructure:"mismatch_fields" default:"finalUrl,mobileFinalUrl"`
	// ReadOnlyFields is a comma-separated list of statically read-only fields.
	ReadOnlyFields string `mapstructure:"read_only_fields" default:"adGroupId,adId,approvalStatus,errorMessages"`
	// ErrorColor is the row background for rows carrying an error.
	ErrorColor string `mapstructure:"error_color" default:"#f4cccc"`
	// StagedColor is the softer row background for rows being corrected.
	StagedColor string `mapstructure:"staged_color" default:"#fff2cc"`
	// MismatchColor is the cell background for disagreeing fields.
	MismatchColor string `mapstructure:"mismatch_color" default:"#fce5cd"`
	// IndexTTLSeconds is the time-to-live of the persisted bucket index
	// snapshot. Default six hours.
	IndexTTLSeconds int `mapstructure:"index_ttl_seconds" default:"21600"`
}

// Linked returns the linked column field names.
func (c Config) Linked() []string {
	return splitFields(c.LinkedFields)
}

// Mismatch returns the fields compared by the mismatch highlighter.
func (c Config) Mismatch() []string {
	return splitFields(c.MismatchFields)
}

// ReadOnly returns the statically read-only field names.
func (c Config) ReadOnly() []string {
	return splitFields(c.ReadOnlyFields)
}

// IndexTTL returns the snapshot time-to-live as a duration.
func (c Config) IndexTTL() time.Duration {
	if c.IndexTTLSeconds <= 0 {
		return 6 * time.Hour
	}
	return time.Duration(c.IndexTTLSeconds) * time.Second
}

func splitFields(raw string) []string {
	var fields []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
