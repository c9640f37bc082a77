package languages

import (
	"github.com/glato/emerge/pkg/emerge/config"
	"github.com/glato/emerge/pkg/emerge/result"
)

func newTestContext(sourceDir string) *Context {
	return &Context{
		Analysis: &config.Analysis{SourceDirectory: sourceDir},
		Store:    result.NewStore(),
	}
}
