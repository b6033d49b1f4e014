package analytics

import (
	"context"
)

// Static serves fixed lists, typically from config.
type Static struct {
	recent   []string
	trending []string
}

// NewStatic copies recent and trending into a new Static provider.
func NewStatic(recent, trending []string) *Static {
	return &Static{
		recent:   append([]string(nil), recent...),
		trending: append([]string(nil), trending...),
	}
}

func (s *Static) Recent(context.Context) ([]string, error) {
	return append([]string(nil), s.recent...), nil
}

func (s *Static) Trending(context.Context) ([]string, error) {
	return append([]string(nil), s.trending...), nil
}
