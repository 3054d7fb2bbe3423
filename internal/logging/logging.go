// Package logging provides categorized loggers for marketcrew. Each
// subsystem logs through its own named zap logger so log output can be
// filtered per category. The package defaults to a nop logger; the CLI
// installs the real one at boot.
package logging

import (
	"sync"

	"go.uber.org/zap"
)

// Category names a logging subsystem.
type Category string

const (
	CategoryBoot      Category = "boot"
	CategoryCatalog   Category = "catalog"
	CategoryReasoning Category = "reasoning"
	CategoryNormalize Category = "normalize"
	CategoryPipeline  Category = "pipeline"
	CategoryEvents    Category = "events"
)

var (
	mu    sync.RWMutex
	root  = zap.NewNop()
	named = map[Category]*zap.SugaredLogger{}
)

// SetLogger installs the root logger. Called once at boot; safe to call
// again in tests.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	root = l
	named = map[Category]*zap.SugaredLogger{}
}

// Get returns the sugared logger for a category.
func Get(c Category) *zap.SugaredLogger {
	mu.RLock()
	if lg, ok := named[c]; ok {
		mu.RUnlock()
		return lg
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if lg, ok := named[c]; ok {
		return lg
	}
	lg := root.Named(string(c)).Sugar()
	named[c] = lg
	return lg
}

func Boot(format string, args ...interface{})      { Get(CategoryBoot).Infof(format, args...) }
func Catalog(format string, args ...interface{})   { Get(CategoryCatalog).Infof(format, args...) }
func Reasoning(format string, args ...interface{}) { Get(CategoryReasoning).Infof(format, args...) }
func Normalize(format string, args ...interface{}) { Get(CategoryNormalize).Infof(format, args...) }
func Pipeline(format string, args ...interface{})  { Get(CategoryPipeline).Infof(format, args...) }
func Events(format string, args ...interface{})    { Get(CategoryEvents).Infof(format, args...) }

func CatalogDebug(format string, args ...interface{})  { Get(CategoryCatalog).Debugf(format, args...) }
func PipelineDebug(format string, args ...interface{}) { Get(CategoryPipeline).Debugf(format, args...) }
