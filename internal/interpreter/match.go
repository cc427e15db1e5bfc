package interpreter

import (
	"fmt"
	"regexp"
	"sort"
	"unicode/utf8"

	"github.com/ai-kiosk/api/internal/catalog"
)

// quantityAlt matches a digit run or a Korean counting word.
const quantityAlt = `\d+|한|하나|두|둘|세|셋|네|넷|다섯|여섯|일곱|여덟|아홉|열`

// counterSuffix matches the unit-counter words that may trail a
// quantity (pieces, cups, bottles, bowls).
const counterSuffix = `(?:개|잔|병|그릇)?`

// itemMatcher finds occurrences of one menu item inside an utterance:
// an optional leading quantity, the item name, then an optional
// trailing quantity and unit counter.
type itemMatcher struct {
	item catalog.MenuItem
	re   *regexp.Regexp
}

func newItemMatcher(item catalog.MenuItem) *itemMatcher {
	pattern := fmt.Sprintf(`(?i)(%s)?\s*%s(?:\s+(%s))?%s`,
		quantityAlt, regexp.QuoteMeta(item.Name), quantityAlt, counterSuffix)
	return &itemMatcher{item: item, re: regexp.MustCompile(pattern)}
}

// next consumes the leftmost occurrence from the working copy of the
// utterance. It returns the resolved quantity (leading token wins over
// trailing, default 1) and the text with the matched span removed, so
// repeated calls walk every occurrence exactly once.
func (m *itemMatcher) next(working string) (qty int, rest string, ok bool) {
	loc := m.re.FindStringSubmatchIndex(working)
	if loc == nil {
		return 0, working, false
	}
	token := ""
	switch {
	case loc[2] >= 0:
		token = working[loc[2]:loc[3]]
	case loc[4] >= 0:
		token = working[loc[4]:loc[5]]
	}
	return ParseQuantity(token), working[:loc[0]] + working[loc[1]:], true
}

// storeMatchers compiles a matcher per menu item, longest name first.
// Longer names must win over shorter names they textually contain
// (e.g. 치즈돈까스 before 돈까스), so the order is load-bearing.
func storeMatchers(s *catalog.Store) []*itemMatcher {
	menu := append([]catalog.MenuItem(nil), s.Menu...)
	sort.SliceStable(menu, func(i, j int) bool {
		return utf8.RuneCountInString(menu[i].Name) > utf8.RuneCountInString(menu[j].Name)
	})
	matchers := make([]*itemMatcher, len(menu))
	for i, item := range menu {
		matchers[i] = newItemMatcher(item)
	}
	return matchers
}
