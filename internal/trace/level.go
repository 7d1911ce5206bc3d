package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity. Each level admits the scopes of the
// levels below it.
type Level uint8

const (
	LevelOff    Level = iota // nothing
	LevelError               // internal failures only
	LevelPhase               // unit boundaries
	LevelDetail              // model events
	LevelDebug               // instance events too
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// widest scope admitted per level; failures bypass it
var levelScopes = [...]Scope{0, 0, ScopeUnit, ScopeModel, ScopeInstance}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a config string to a Level. Case and surrounding
// spaces are ignored; empty means off.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return LevelOff, nil
	}
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope pass this level.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(levelScopes) {
		return false
	}
	return scope != 0 && scope <= levelScopes[l]
}
