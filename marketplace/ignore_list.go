package marketplace

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

var _ IIgnoreList = &StaticIgnoreList{}

// StaticIgnoreList is an ignore list defined at deployment time e.g. for test subscriptions. Lookups are case-insensitive.
type StaticIgnoreList struct {
	subscriptions mapset.Set[string]
}

// NewStaticIgnoreList returns an ignore list containing subscriptionIDs.
func NewStaticIgnoreList(subscriptionIDs ...string) *StaticIgnoreList {
	l := &StaticIgnoreList{subscriptions: mapset.NewSet[string]()}
	for i := range subscriptionIDs {
		id := normaliseSubscriptionID(subscriptionIDs[i])
		if id != "" {
			l.subscriptions.Add(id)
		}
	}
	return l
}

func (l *StaticIgnoreList) ShouldIgnoreCreateFailure(azureSubscriptionID string) bool {
	if l == nil || l.subscriptions == nil {
		return false
	}
	return l.subscriptions.Contains(normaliseSubscriptionID(azureSubscriptionID))
}

func (l *StaticIgnoreList) Len() int {
	if l == nil || l.subscriptions == nil {
		return 0
	}
	return l.subscriptions.Cardinality()
}

func normaliseSubscriptionID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
