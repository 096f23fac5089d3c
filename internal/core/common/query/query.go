package query

import (
	"net/url"
	"strings"
	"time"

	"github.com/frahmantamala/expense-tracker/internal/core/common/validation"
	expenseDatamodel "github.com/frahmantamala/expense-tracker/internal/core/datamodel/expense"
)

// ParseDateParam returns the trimmed value of key when it looks like
// YYYY-MM-DD and false otherwise, so malformed bounds are ignored.
func ParseDateParam(values url.Values, key string) (string, bool) {
	v := strings.TrimSpace(values.Get(key))
	if v == "" || !validation.DatePattern.MatchString(v) {
		return "", false
	}
	return v, true
}

// DateParamOr falls back to def when the parameter is absent or malformed.
func DateParamOr(values url.Values, key, def string) string {
	if v, ok := ParseDateParam(values, key); ok {
		return v
	}
	return def
}

func Today(now time.Time) string {
	return now.Format(expenseDatamodel.DateLayout)
}

func FirstDayOfMonth(now time.Time) string {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(expenseDatamodel.DateLayout)
}
