package caplog

import (
	"strings"

	"github.com/go-caplog/caplog/capture"
)

// MatchLevel matches events at exactly the given level.
func MatchLevel(lvl capture.Level) func(capture.Event) bool {
	return func(ev capture.Event) bool {
		return ev.Level == lvl
	}
}

// MatchMessage matches events whose message equals msg.
func MatchMessage(msg string) func(capture.Event) bool {
	return func(ev capture.Event) bool {
		return ev.Message == msg
	}
}

// MessageContains matches events whose message contains substr.
func MessageContains(substr string) func(capture.Event) bool {
	return func(ev capture.Event) bool {
		return strings.Contains(ev.Message, substr)
	}
}

// MatchTarget matches events emitted under the given target.
func MatchTarget(target string) func(capture.Event) bool {
	return func(ev capture.Event) bool {
		return ev.Target == target
	}
}
