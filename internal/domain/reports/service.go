package reports

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"catreport/internal/core/apperror"
	"catreport/internal/domain/catalog"
	"catreport/internal/infrastructure/xmldoc"
	"catreport/pkg/logger"
)

var tracer = otel.Tracer("catreport/reports")

// ServiceConfig configures the report service.
type ServiceConfig struct {
	Columns  []Column
	Pipeline Pipeline
}

// Service runs the whole batch: extract, resolve, assemble, build and
// post-process. It holds no state between runs.
type Service struct {
	columns  []Column
	pipeline Pipeline
}

// NewService creates a new report service. Zero values fall back to
// DefaultColumns and DefaultPipeline.
func NewService(cfg ServiceConfig) *Service {
	s := &Service{columns: cfg.Columns, pipeline: cfg.Pipeline}
	if len(s.columns) == 0 {
		s.columns = DefaultColumns()
	}
	if s.pipeline == nil {
		s.pipeline = DefaultPipeline(DefaultDateColumn)
	}
	return s
}

// Columns returns the configured report layout.
func (s *Service) Columns() []Column {
	return s.columns
}

// GenerateFromFile parses the export at path and generates the report.
func (s *Service) GenerateFromFile(ctx context.Context, path string) (*Result, error) {
	log := logger.FromContext(ctx)

	var doc *xmldoc.Document
	err := stage(ctx, "parse", func(ctx context.Context, span trace.Span) error {
		log.Infow("parsing XML document", "path", path)
		var err error
		doc, err = xmldoc.Load(path)
		if err != nil {
			return apperror.NewIO("load export", path, err)
		}
		span.SetAttributes(attribute.Int("rows", doc.RowCount()))
		logger.Debug(ctx, "parsed XML document", "root", doc.Root, "tables", doc.Tables(), "rows", doc.RowCount())
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Generate(ctx, doc)
}

// Generate builds the post-processed report from a parsed export.
func (s *Service) Generate(ctx context.Context, src catalog.Source) (*Result, error) {
	start := time.Now()
	log := logger.FromContext(ctx)

	var tables *catalog.Tables
	err := stage(ctx, "extract", func(ctx context.Context, span trace.Span) error {
		var err error
		tables, err = catalog.Extract(src, func(table string, rows int) {
			log.Infow("extracted table", "table", table, "rows", rows)
		})
		if err != nil {
			return err
		}
		span.SetAttributes(
			attribute.Int("products", tables.Products.Len()),
			attribute.Int("categories", tables.Categories.Len()),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var paths catalog.Paths
	err = stage(ctx, "resolve-paths", func(ctx context.Context, span trace.Span) error {
		log.Infow("building category paths", "categories", tables.Categories.Len())
		var err error
		paths, err = catalog.NewPathResolver(tables.Categories).ResolveAll()
		return err
	})
	if err != nil {
		return nil, err
	}

	var assembly *catalog.Assembly
	err = stage(ctx, "assemble", func(ctx context.Context, span trace.Span) error {
		log.Info("identifying current products, adding metadata and categories")
		var err error
		assembly, err = catalog.Assemble(tables, paths)
		if err != nil {
			return err
		}
		span.SetAttributes(attribute.Int("current_products", len(assembly.Products)))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(assembly.OrphanEntries) > 0 {
		logger.Warn(ctx, "catalog entries reference unknown products",
			"count", len(assembly.OrphanEntries),
			"first", assembly.OrphanEntries[0].String(),
		)
	}
	if shown := categoryColumns(s.columns); assembly.MaxCategories() > shown {
		logger.Warn(ctx, "products link to more categories than the report shows",
			"max_categories", assembly.MaxCategories(),
			"category_columns", shown,
		)
	}

	var report Report
	err = stage(ctx, "build", func(ctx context.Context, span trace.Span) error {
		report = Build(assembly.Products, s.columns)
		span.SetAttributes(attribute.Int("rows", report.Len()))
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = stage(ctx, "postprocess", func(ctx context.Context, span trace.Span) error {
		var err error
		report, err = s.pipeline.Run(ctx, report)
		return err
	})
	if err != nil {
		return nil, err
	}

	summary := Summary{
		Products:        tables.Products.Len(),
		CurrentProducts: len(assembly.Products),
		Categories:      tables.Categories.Len(),
		CatalogEntries:  tables.CatalogEntries.Len(),
		OrphanEntries:   len(assembly.OrphanEntries),
		MaxCategories:   assembly.MaxCategories(),
	}
	summary.Retired, summary.Archived, summary.Deleted = assembly.StatusCounts()
	summary.Duration = time.Since(start)

	log.Infow("report generated",
		"rows", report.Len(),
		"current_products", summary.CurrentProducts,
		"products", summary.Products,
		"retired", summary.Retired,
		"archived", summary.Archived,
		"deleted", summary.Deleted,
		"duration", summary.Duration,
	)

	return &Result{Report: report, Summary: summary}, nil
}

// stage runs fn inside a tracing span named after the pipeline stage.
func stage(ctx context.Context, name string, fn func(ctx context.Context, span trace.Span) error) error {
	ctx, span := tracer.Start(ctx, "report."+name,
		trace.WithAttributes(attribute.String("stage", name)))
	defer span.End()

	start := time.Now()
	if err := fn(ctx, span); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%s: %w", name, err)
	}
	logger.Debug(ctx, "stage finished", "stage", name, "elapsed", time.Since(start))
	return nil
}

func categoryColumns(cols []Column) int {
	n := 0
	for _, c := range cols {
		if _, ok := catalog.CategoryColumnIndex(c.Key); ok {
			n++
		}
	}
	return n
}
