package access_test

import (
	"net"
	"testing"
	"time"

	"workhub/internal/access"
	"workhub/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestDefaultMatcher_TimeRange(t *testing.T) {
	m := access.DefaultMatcher{}
	window := map[string]interface{}{"start": "09:00", "end": "18:00"}

	noon := access.RequestContext{Now: time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)}
	night := access.RequestContext{Now: time.Date(2025, 6, 2, 3, 0, 0, 0, time.UTC)}

	assert.True(t, m.Match("time_range", window, noon))
	assert.False(t, m.Match("time_range", window, night))
}

func TestDefaultMatcher_TimeRangeOverMidnight(t *testing.T) {
	// Окно 22:00-06:00 захватывает и поздний вечер, и раннее утро
	m := access.DefaultMatcher{}
	window := map[string]interface{}{"start": "22:00", "end": "06:00"}

	lateEvening := access.RequestContext{Now: time.Date(2025, 6, 2, 23, 30, 0, 0, time.UTC)}
	earlyMorning := access.RequestContext{Now: time.Date(2025, 6, 2, 5, 0, 0, 0, time.UTC)}
	noon := access.RequestContext{Now: time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)}

	assert.True(t, m.Match("time_range", window, lateEvening))
	assert.True(t, m.Match("time_range", window, earlyMorning))
	assert.False(t, m.Match("time_range", window, noon))
}

func TestDefaultMatcher_TimeRangeMalformed(t *testing.T) {
	m := access.DefaultMatcher{}
	reqCtx := access.RequestContext{Now: time.Now()}

	// Непарсящееся условие не выполняется
	assert.False(t, m.Match("time_range", map[string]interface{}{"start": "nine", "end": "18:00"}, reqCtx))
	assert.False(t, m.Match("time_range", "09:00-18:00", reqCtx))
	assert.False(t, m.Match("time_range", map[string]interface{}{"start": "09:00"}, reqCtx))
}

func TestDefaultMatcher_IPRange(t *testing.T) {
	m := access.DefaultMatcher{}
	cidrs := []interface{}{"10.0.0.0/8", "192.168.1.0/24"}

	inside := access.RequestContext{IP: net.ParseIP("10.1.2.3")}
	insideSecond := access.RequestContext{IP: net.ParseIP("192.168.1.77")}
	outside := access.RequestContext{IP: net.ParseIP("8.8.8.8")}

	assert.True(t, m.Match("ip_range", cidrs, inside))
	assert.True(t, m.Match("ip_range", cidrs, insideSecond))
	assert.False(t, m.Match("ip_range", cidrs, outside))
}

func TestDefaultMatcher_IPRangeSingleString(t *testing.T) {
	m := access.DefaultMatcher{}

	assert.True(t, m.Match("ip_range", "10.0.0.0/8", access.RequestContext{IP: net.ParseIP("10.0.0.1")}))
}

func TestDefaultMatcher_IPRangeNoClientIP(t *testing.T) {
	// Без IP клиента условие не выполняется
	m := access.DefaultMatcher{}

	assert.False(t, m.Match("ip_range", []interface{}{"10.0.0.0/8"}, access.RequestContext{}))
}

func TestDefaultMatcher_Weekdays(t *testing.T) {
	m := access.DefaultMatcher{}
	days := []interface{}{"monday", "Tuesday"}

	monday := access.RequestContext{Now: time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)}
	wednesday := access.RequestContext{Now: time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)}

	assert.True(t, m.Match("weekdays", days, monday))
	assert.False(t, m.Match("weekdays", days, wednesday))
}

func TestDefaultMatcher_AttributeEquality(t *testing.T) {
	m := access.DefaultMatcher{}
	reqCtx := access.RequestContext{
		Attributes: map[string]interface{}{
			"department": "engineering",
			"level":      float64(3), // jsonb числа приходят как float64
		},
	}

	assert.True(t, m.Match("department", "engineering", reqCtx))
	assert.False(t, m.Match("department", "sales", reqCtx))
	assert.True(t, m.Match("level", float64(3), reqCtx))
	assert.True(t, m.Match("level", 3, reqCtx))
}

func TestDefaultMatcher_MissingAttribute(t *testing.T) {
	// Отсутствие атрибута в контексте означает отказ
	m := access.DefaultMatcher{}

	assert.False(t, m.Match("department", "engineering", access.RequestContext{}))
}

func TestMatchAll(t *testing.T) {
	m := access.DefaultMatcher{}
	reqCtx := access.RequestContext{
		Now:        time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
		Attributes: map[string]interface{}{"department": "engineering"},
	}

	// Пустой набор условий всегда выполняется
	assert.True(t, access.MatchAll(m, nil, reqCtx))
	assert.True(t, access.MatchAll(m, model.JSONMap{}, reqCtx))

	// Все условия должны выполниться одновременно
	both := model.JSONMap{
		"time_range": map[string]interface{}{"start": "09:00", "end": "18:00"},
		"department": "engineering",
	}
	assert.True(t, access.MatchAll(m, both, reqCtx))

	oneFails := model.JSONMap{
		"time_range": map[string]interface{}{"start": "09:00", "end": "18:00"},
		"department": "sales",
	}
	assert.False(t, access.MatchAll(m, oneFails, reqCtx))
}
