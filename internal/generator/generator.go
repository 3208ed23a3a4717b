package generator

import (
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/cmmoran/creatorgen/internal/model"
	cfg "github.com/cmmoran/creatorgen/pkg/generator"
)

// Generator turns every annotated declaration a provider exposes into an
// output unit. Units share nothing and are evaluated concurrently.
type Generator struct {
	Opts *cfg.Options

	provider TypeProvider
	marker   Marker
	standIn  StandIn
	logger   *slog.Logger
}

// New builds a Generator over p. A nil opts uses the defaults.
func New(p TypeProvider, opts *cfg.Options) (*Generator, error) {
	if opts == nil {
		opts = cfg.NewOptions()
	}
	standIn, err := StandInFor(opts.StandIn)
	if err != nil {
		return nil, err
	}
	return &Generator{
		Opts:     opts,
		provider: p,
		marker:   Marker{Namespace: opts.MarkerNamespace, Name: opts.MarkerName},
		standIn:  standIn,
		logger:   slog.Default().With("component", "generator"),
	}, nil
}

// WithStandIn replaces the stand-in strategy.
func (g *Generator) WithStandIn(s StandIn) *Generator {
	g.standIn = s
	return g
}

func (g *Generator) Marker() Marker {
	return g.marker
}

// MarkerOutput is the batch-level unit declaring the marker annotation.
func (g *Generator) MarkerOutput() model.Output {
	return model.Output{
		FileKey: g.marker.FileKey(g.extension()),
		Content: g.marker.Definition(),
	}
}

// Resolve builds the GenerationUnit for ad. It returns nil without error when
// the target type cannot be resolved.
func (g *Generator) Resolve(ad model.AnnotatedDeclaration) (*model.GenerationUnit, error) {
	desc, err := g.provider.ResolveType(ad.Target)
	if err != nil {
		return nil, fmt.Errorf("resolve %s for %s: %w", ad.Target.FullName(), ad.Name, err)
	}
	if desc == nil {
		g.logger.Debug("target type not resolved", "declaration", ad.Name, "target", ad.Target.FullName())
		return nil, nil
	}

	target := desc.Ref
	result := ResultType(desc)
	ctor := SelectConstructor(desc)
	paramTypes := make([]model.TypeRef, 0, len(ctor.Parameters))
	for _, p := range ctor.Parameters {
		paramTypes = append(paramTypes, p.Type)
	}

	return &model.GenerationUnit{
		Declaration: ad,
		Target:      target,
		ResultType:  result,
		Constructor: ctor,
		Imports: AggregateImports(
			ad.Imports,
			result,
			target.EnclosingNamespace(),
			paramTypes,
			g.standIn.Namespace(),
		),
	}, nil
}

// Emit renders unit into its named output.
func (g *Generator) Emit(unit *model.GenerationUnit) model.Output {
	return model.Output{
		FileKey: unit.Declaration.Name + ".g." + g.extension(),
		Content: Emit(unit, g.standIn),
		Source:  declarationKey(unit.Declaration),
	}
}

// Run produces the marker definition followed by one output per resolved
// declaration, in scan order. A provider failure aborts the batch.
func (g *Generator) Run() ([]model.Output, error) {
	decls := slices.Collect(Scan(g.provider, g.marker))
	units := make([]*model.Output, len(decls))

	var eg errgroup.Group
	eg.SetLimit(max(g.Opts.Workers, 1))
	for i, ad := range decls {
		eg.Go(func() error {
			unit, err := g.Resolve(ad)
			if err != nil {
				return err
			}
			if unit == nil {
				return nil
			}
			out := g.Emit(unit)
			units[i] = &out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	outs := make([]model.Output, 0, len(units)+1)
	outs = append(outs, g.MarkerOutput())
	for _, u := range units {
		if u != nil {
			outs = append(outs, *u)
		}
	}
	g.logger.Info("generated", "declarations", len(decls), "outputs", len(outs)-1)
	return outs, nil
}

func (g *Generator) extension() string {
	if g.Opts.Extension == "" {
		return cfg.DefaultExtension
	}
	return g.Opts.Extension
}

func declarationKey(ad model.AnnotatedDeclaration) string {
	if ad.Declaration == nil {
		return ""
	}
	if ad.Namespace == "" {
		return ad.Name
	}
	return ad.Namespace + "." + ad.Name
}
