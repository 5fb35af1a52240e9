package config

import (
	"fmt"
	"github.com/ohler55/ojg/oj"
	"sort"
	"strings"
	"time"
)

const (
	SkipHeaderCount = "SKIP_HEADER_COUNT"
)

// known keys and the value used when the store has none
var fallback = map[string]interface{}{
	SkipHeaderCount: int64(1),
}

func IsKnownKey(key string) bool {
	_, ok := fallback[key]
	return ok
}

// Defaults are the process wide settings persisted in a Store.
type Defaults struct {
	Store Store
	Now   func() time.Time
}

func NewDefaults(store Store) *Defaults {
	return &Defaults{
		Store: store,
		Now:   time.Now,
	}
}

func (self *Defaults) hhmm() string {
	now := time.Now
	if self.Now != nil {
		now = self.Now
	}
	return now().Format("15:04")
}

// GetDefault returns the stored value of key, or its fallback when nothing
// is stored.
func (self *Defaults) GetDefault(key string) (interface{}, error) {
	raw, ok, err := self.Store.Get(key)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" || raw == "null" {
		return fallback[key], nil
	}
	v, err := oj.ParseString(raw)
	if err != nil {
		return nil, fmt.Errorf("default %s: %w", key, err)
	}
	return v, nil
}

// SetDefault stores value under key. The call is refused unless hhmm occurs
// in the current local time formatted as HH:MM, and the key must be one of the
// known defaults.
func (self *Defaults) SetDefault(key string, value interface{}, hhmm string) (string, error) {
	cur := self.hhmm()
	if hhmm == "" || !strings.Contains(cur, hhmm) {
		return "", fmt.Errorf("provide correct time HH:MM = %s", cur)
	}
	if !IsKnownKey(key) {
		return "", fmt.Errorf("key %s not found", key)
	}
	raw := oj.JSON(value)
	if err := self.Store.Set(key, raw); err != nil {
		return "", err
	}
	return fmt.Sprintf("[%s] = %s", key, raw), nil
}

func (self *Defaults) RemoveDefault(key string) error {
	return self.Store.Delete(key)
}

// AllDefaults lists the stored raw values of the known keys, ordered by key.
func (self *Defaults) AllDefaults() ([][2]string, error) {
	all, err := self.Store.All()
	if err != nil {
		return nil, err
	}
	out := [][2]string{}
	for k, v := range all {
		if IsKnownKey(k) {
			out = append(out, [2]string{k, v})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i][0] < out[j][0]
	})
	return out, nil
}

// HeaderCount is the configured SKIP_HEADER_COUNT.
func (self *Defaults) HeaderCount() (int, error) {
	v, err := self.GetDefault(SkipHeaderCount)
	if err != nil {
		return 0, err
	}
	var n int
	switch x := v.(type) {
	case int64:
		n = int(x)
	case float64:
		if x != float64(int64(x)) {
			return 0, fmt.Errorf("%s must be an integer, got %v", SkipHeaderCount, x)
		}
		n = int(x)
	default:
		return 0, fmt.Errorf("%s must be an integer, got %v", SkipHeaderCount, v)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %d", SkipHeaderCount, n)
	}
	return n, nil
}
