package access

import (
	"fmt"
	"net"
	"strings"
	"time"

	"workhub/internal/model"
)

// RequestContext carries the request attributes conditions are matched
// against. Handlers build it once per request.
type RequestContext struct {
	Now        time.Time
	IP         net.IP
	Attributes map[string]interface{}
}

// ConditionMatcher решает, выполняется ли одно условие политики в данном
// контексте запроса. Матчер передается ядру через конструктор, без
// глобального реестра.
type ConditionMatcher interface {
	Match(key string, want interface{}, reqCtx RequestContext) bool
}

// MatchAll reports whether every condition of the map is satisfied.
// An empty condition map always matches.
func MatchAll(m ConditionMatcher, conditions model.JSONMap, reqCtx RequestContext) bool {
	for key, want := range conditions {
		if !m.Match(key, want, reqCtx) {
			return false
		}
	}
	return true
}

// DefaultMatcher understands the built-in condition kinds:
//
//	time_range: {"start": "09:00", "end": "18:00"}
//	ip_range:   ["10.0.0.0/8", "192.168.1.0/24"]
//	weekdays:   ["monday", "tuesday", ...]
//
// Any other key is compared for equality against RequestContext.Attributes.
// A condition that cannot be resolved from the context fails: absence of
// evidence is denial.
type DefaultMatcher struct{}

func (DefaultMatcher) Match(key string, want interface{}, reqCtx RequestContext) bool {
	switch key {
	case "time_range":
		return matchTimeRange(want, reqCtx.Now)
	case "ip_range":
		return matchIPRange(want, reqCtx.IP)
	case "weekdays":
		return matchWeekdays(want, reqCtx.Now)
	}

	got, ok := reqCtx.Attributes[key]
	if !ok {
		return false
	}
	// Значения приходят из jsonb, поэтому числа будут float64:
	// сравниваем строковые представления
	return fmt.Sprintf("%v", got) == fmt.Sprintf("%v", want)
}

func matchTimeRange(want interface{}, now time.Time) bool {
	window, ok := want.(map[string]interface{})
	if !ok {
		return false
	}
	start, err := parseClock(window["start"])
	if err != nil {
		return false
	}
	end, err := parseClock(window["end"])
	if err != nil {
		return false
	}
	current := now.Hour()*60 + now.Minute()
	if start <= end {
		return current >= start && current <= end
	}
	// Окно через полночь, например 22:00-06:00
	return current >= start || current <= end
}

func parseClock(v interface{}) (int, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("clock value is not a string")
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func matchIPRange(want interface{}, ip net.IP) bool {
	if ip == nil {
		return false
	}
	cidrs, ok := want.([]interface{})
	if !ok {
		// Одиночный CIDR допустим и как строка
		if s, ok := want.(string); ok {
			cidrs = []interface{}{s}
		} else {
			return false
		}
	}
	for _, raw := range cidrs {
		s, ok := raw.(string)
		if !ok {
			continue
		}
		_, network, err := net.ParseCIDR(s)
		if err != nil {
			continue
		}
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

func matchWeekdays(want interface{}, now time.Time) bool {
	days, ok := want.([]interface{})
	if !ok {
		return false
	}
	today := strings.ToLower(now.Weekday().String())
	for _, raw := range days {
		if s, ok := raw.(string); ok && strings.ToLower(s) == today {
			return true
		}
	}
	return false
}
