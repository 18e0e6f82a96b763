package commands

import (
	"github.com/temirov/snapsource/internal/ignore"
	"go.uber.org/zap"
)

// TreeBuilder renders a directory as an ASCII tree using configured options.
type TreeBuilder struct {
	Matcher  *ignore.Matcher
	MaxDepth int
	Logger   *zap.Logger
}

func (treeBuilder *TreeBuilder) logger() *zap.Logger {
	if treeBuilder.Logger == nil {
		return zap.NewNop()
	}
	return treeBuilder.Logger
}
