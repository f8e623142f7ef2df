package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"fraudlens/internal/domain"
)

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a client-supplied name for use in storage keys and
// Content-Disposition. Replaces non-alphanumeric chars (except - _) with _,
// collapses consecutive underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns the export filename for a kind and format:
// {kind}_analysis_{epoch_millis}.{ext}, with per-row transaction exports
// named {kind}_analysis_transactions_{epoch_millis}.csv.
func BuildFilename(kind domain.DocumentKind, format domain.ExportFormat, at time.Time) string {
	millis := at.UnixMilli()
	if format == domain.ExportFormatTransactionsCSV {
		return fmt.Sprintf("%s_analysis_transactions_%d.csv", kind, millis)
	}
	return fmt.Sprintf("%s_analysis_%d.%s", kind, millis, domain.ExportExtensions[format])
}
