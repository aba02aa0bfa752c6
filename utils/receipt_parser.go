package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/watercharging/evtax-service/dto"
)

// Heuristic constants. Receipt layouts vary wildly, so every field is
// located the same way: prefer a line carrying a known label, fall back
// to a blind scan.
var (
	amountKeywords  = []string{"금액", "납부액", "청구금액", "합계", "총금액"}
	dueDateKeywords = []string{"납부기한", "기한", "마감", "납부일"}
)

const (
	stationMarker     = "충전소"
	stationNameMaxLen = 30
)

// amountPattern matches comma-grouped thousands (at least one separator)
// or a bare run of 5+ digits, with an optional trailing currency marker.
var amountPattern = regexp.MustCompile(`([0-9]{1,3}(?:,[0-9]{3})+|[0-9]{5,})\s*(?:원|KRW)?`)

// stationStripPattern removes everything up to and including the station
// marker plus an optional separator, leaving the bare name.
var stationStripPattern = regexp.MustCompile(`^.*충전소\s*[:：-]?\s*`)

// datePatterns are tried in priority order; the first candidate that
// normalizes to a valid date wins. A candidate failing validation does
// not stop the scan, the next pattern gets its turn.
var datePatterns = []struct {
	re        *regexp.Regexp
	normalize func(m []string) (string, bool)
}{
	{
		// 2025.08.31 / 2025/08/31 / 2025-08-31
		re:        regexp.MustCompile(`([0-9]{4})[./-]([0-9]{1,2})[./-]([0-9]{1,2})`),
		normalize: func(m []string) (string, bool) { return normalizeDateParts(m[1], m[2], m[3]) },
	},
	{
		// 2025년 8월 31일
		re:        regexp.MustCompile(`([0-9]{4})\s*년\s*([0-9]{1,2})\s*월\s*([0-9]{1,2})\s*일?`),
		normalize: func(m []string) (string, bool) { return normalizeDateParts(m[1], m[2], m[3]) },
	},
	{
		// 20250831
		re:        regexp.MustCompile(`[0-9]{8}`),
		normalize: func(m []string) (string, bool) { return normalizeDateParts(m[0][:4], m[0][4:6], m[0][6:8]) },
	},
}

// ExtractReceiptFields parses a receipt/invoice OCR transcription into a
// best-effort field set. It never fails: a field whose heuristics find
// nothing is simply left absent, and no field's absence blocks another.
func ExtractReceiptFields(text string) dto.ReceiptFields {
	lines := splitLines(text)

	return dto.ReceiptFields{
		Amount:      extractAmount(text, lines),
		DueDate:     extractDueDate(lines),
		StationName: extractStationName(lines),
	}
}

// splitLines breaks text into trimmed, non-empty lines on any newline
// convention.
func splitLines(text string) []string {
	var lines []string
	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// extractAmount looks for the amount on a labeled line first. On a
// keyword line the first match wins; in the blind fallback scan the
// numeric maximum wins, since receipts tend to carry several small
// line items and one large total.
func extractAmount(text string, lines []string) *int64 {
	for _, line := range lines {
		if !containsAny(line, amountKeywords) {
			continue
		}
		if m := amountPattern.FindStringSubmatch(line); m != nil {
			if v, err := parseAmountToken(m[1]); err == nil {
				return &v
			}
		}
	}

	var candidates []int64
	for _, line := range lines {
		candidates = append(candidates, amountCandidates(line)...)
	}
	if len(candidates) == 0 {
		candidates = amountCandidates(text)
	}
	if len(candidates) == 0 {
		return nil
	}

	max := candidates[0]
	for _, v := range candidates[1:] {
		if v > max {
			max = v
		}
	}
	return &max
}

func amountCandidates(s string) []int64 {
	var out []int64
	for _, m := range amountPattern.FindAllStringSubmatch(s, -1) {
		if v, err := parseAmountToken(m[1]); err == nil {
			out = append(out, v)
		}
	}
	return out
}

func parseAmountToken(token string) (int64, error) {
	return strconv.ParseInt(strings.ReplaceAll(token, ",", ""), 10, 64)
}

// extractDueDate prefers the first line labeled with a due-date keyword,
// then falls back to scanning every line in order.
func extractDueDate(lines []string) *string {
	for _, line := range lines {
		if containsAny(line, dueDateKeywords) {
			if d, ok := findDateInLine(line); ok {
				return &d
			}
			break
		}
	}

	for _, line := range lines {
		if d, ok := findDateInLine(line); ok {
			return &d
		}
	}
	return nil
}

func findDateInLine(line string) (string, bool) {
	for _, p := range datePatterns {
		m := p.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if d, ok := p.normalize(m); ok {
			return d, true
		}
	}
	return "", false
}

// normalizeDateParts zero-pads and validates a year/month/day split.
// Only generic ranges are checked (month 1-12, day 1-31); month length
// and leap years are deliberately not validated, so 2025-09-31 passes.
func normalizeDateParts(year, month, day string) (string, bool) {
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return "", false
	}
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > 31 {
		return "", false
	}
	return fmt.Sprintf("%s-%02d-%02d", year, m, d), true
}

// extractStationName takes the remainder of the first line mentioning
// the station marker, or the truncated first line when no line does.
func extractStationName(lines []string) *string {
	for _, line := range lines {
		if !strings.Contains(line, stationMarker) {
			continue
		}
		name := stationStripPattern.ReplaceAllString(line, "")
		if name == "" {
			name = line
		}
		return &name
	}

	if len(lines) == 0 {
		return nil
	}
	name := truncateRunes(lines[0], stationNameMaxLen)
	return &name
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
