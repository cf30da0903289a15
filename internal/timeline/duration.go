package timeline

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/torchbearer/chronicle/internal/simerr"
)

var durationPart = regexp.MustCompile(`(\d+)\s*(days?|d|hours?|hrs?|h|minutes?|mins?|m)\b`)

// ParseDuration extracts a minute count from a natural-language
// duration phrase such as "1 hour 30 minutes", "2 days", or "45 min".
// Components may appear in any order; repeated components accumulate.
// Text with no recognizable component, or one that sums to zero,
// fails with INVALID_FORMAT. Durations over one week fail with
// DURATION_TOO_LARGE so long skips are chained by the caller.
func ParseDuration(text string) (int, error) {
	lower := strings.ToLower(strings.TrimSpace(text))
	matches := durationPart.FindAllStringSubmatch(lower, -1)
	if len(matches) == 0 {
		return 0, simerr.New(simerr.CodeInvalidFormat, "unrecognized duration %q", text)
	}

	total := 0
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, simerr.New(simerr.CodeInvalidFormat, "unreadable amount in duration %q", text)
		}
		switch {
		case strings.HasPrefix(m[2], "d"):
			total += n * 24 * 60
		case strings.HasPrefix(m[2], "h"):
			total += n * 60
		default:
			total += n
		}
	}

	if total == 0 {
		return 0, simerr.New(simerr.CodeInvalidFormat, "duration %q is zero", text)
	}
	if total > MaxAdvanceMinutes {
		return 0, simerr.New(simerr.CodeDurationTooLarge,
			"duration %q is %d minutes; the cap is one week (%d)", text, total, MaxAdvanceMinutes)
	}
	return total, nil
}
