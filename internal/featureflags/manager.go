// Package featureflags evaluates FEATURE_FLAGS for optional routes and integrations.
package featureflags

import (
	"hash/fnv"
	"sort"
	"strconv"
	"strings"
)

// Known flags.
const (
	DebugOrders = "debug_orders"
	OrderEvents = "order_events"
)

type mode int

const (
	modeOff mode = iota
	modeOn
	modePercent
	modeRestaurants
)

// rule is one parsed FEATURE_FLAGS entry.
type rule struct {
	raw         string
	mode        mode
	percent     int
	restaurants map[string]struct{}
}

// Manager answers flag queries from a comma-separated FEATURE_FLAGS value.
// Each entry is name=value where value is one of
//
//	on | true | 1          enabled everywhere
//	off | false | 0        disabled
//	25%                    stable rollout to a share of restaurants
//	casa-pepe|la-arepa     enabled for the listed restaurants only
//
// Malformed entries and unknown names evaluate to off.
type Manager struct {
	rules map[string]rule
}

// NewManager parses raw, e.g. "debug_orders=on,order_events=25%".
func NewManager(raw string) *Manager {
	rules := make(map[string]rule)
	for _, entry := range strings.Split(raw, ",") {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		name, value = normalize(name), strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		rules[name] = parseRule(value)
	}
	return &Manager{rules: rules}
}

func parseRule(value string) rule {
	r := rule{raw: strings.ToLower(value)}
	switch r.raw {
	case "on", "true", "1":
		r.mode = modeOn
		return r
	case "off", "false", "0":
		return r
	}

	if pct, ok := strings.CutSuffix(r.raw, "%"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(pct))
		if err != nil || n <= 0 {
			return r
		}
		if n >= 100 {
			r.mode = modeOn
			return r
		}
		r.mode, r.percent = modePercent, n
		return r
	}

	r.mode = modeRestaurants
	r.restaurants = make(map[string]struct{})
	for _, id := range strings.Split(value, "|") {
		if id = strings.TrimSpace(id); id != "" {
			r.restaurants[id] = struct{}{}
		}
	}
	return r
}

// Enabled reports whether a flag is on without restaurant context. Rollouts
// and restaurant lists count as off here.
func (m *Manager) Enabled(name string) bool {
	return m.EnabledFor(name, "")
}

// EnabledFor reports whether a flag is on for restaurantID.
func (m *Manager) EnabledFor(name, restaurantID string) bool {
	if m == nil {
		return false
	}
	r, ok := m.rules[normalize(name)]
	if !ok {
		return false
	}

	switch r.mode {
	case modeOn:
		return true
	case modePercent:
		return restaurantID != "" && rolloutBucket(name, restaurantID) < r.percent
	case modeRestaurants:
		_, listed := r.restaurants[restaurantID]
		return listed
	default:
		return false
	}
}

// Raw returns the configured values keyed by normalized flag name.
func (m *Manager) Raw() map[string]string {
	out := make(map[string]string, len(m.rules))
	for name, r := range m.rules {
		out[name] = r.raw
	}
	return out
}

// Names lists the configured flags in order.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.rules))
	for name := range m.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// rolloutBucket maps a restaurant to 0..99, stable per flag.
func rolloutBucket(name, restaurantID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(normalize(name) + ":" + restaurantID))
	return int(h.Sum32() % 100)
}
