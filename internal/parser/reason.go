package parser

import (
	"regexp"
	"strings"

	"github.com/guttosm/botjournal/internal/domain/models"
)

// reasonRule maps free-text exit reasons to a category.
type reasonRule struct {
	re     *regexp.Regexp
	reason models.ExitReason
}

// reasonRules are evaluated top to bottom against the lower-cased reason text;
// the first match wins. sl and tp match as word prefixes so numbered targets
// like "TP1" or "SL2" classify.
var reasonRules = []reasonRule{
	{re: regexp.MustCompile(`predictive exit`), reason: models.ExitManual},
	{re: regexp.MustCompile(`stop[ -]?loss|\bsl`), reason: models.ExitStopLoss},
	{re: regexp.MustCompile(`take[ -]?profit|\btp`), reason: models.ExitTakeProfit},
}

// explicitReasons are the bracketed markers the bot prints after the exit price.
var explicitReasons = map[string]models.ExitReason{
	"TP":     models.ExitTakeProfit,
	"SL":     models.ExitStopLoss,
	"MANUAL": models.ExitManual,
}

// classifyExit picks the exit category from the explicit marker when present,
// otherwise from the reason text.
func classifyExit(marker, text string) models.ExitReason {
	if r, ok := explicitReasons[strings.ToUpper(strings.TrimSpace(marker))]; ok {
		return r
	}
	lower := strings.ToLower(text)
	for _, rule := range reasonRules {
		if rule.re.MatchString(lower) {
			return rule.reason
		}
	}
	return models.ExitManual
}
