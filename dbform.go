// Package dbform turns table column metadata into HTML form markup. The
// helpers here cover the common case; pkg/orchestrator exposes the full
// pipeline.
package dbform

import (
	"context"

	"github.com/goliatone/go-dbform/pkg/model"
	"github.com/goliatone/go-dbform/pkg/orchestrator"
	"github.com/goliatone/go-dbform/pkg/schema"
)

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML reads columns from source, merges values (nil for a blank
// form) and renders them with the named renderer.
func GenerateHTML(ctx context.Context, source schema.Source, values model.Values, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Source:   source,
		Values:   values,
		Renderer: rendererName,
	})
}

// GenerateHTMLFromColumns renders already loaded metadata, bypassing the
// source stage.
func GenerateHTMLFromColumns(ctx context.Context, columns []model.ColumnMetadata, values model.Values, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Columns:  columns,
		Values:   values,
		Renderer: rendererName,
	})
}
