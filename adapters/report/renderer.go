package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"coassoc/adapters/chart"
	"coassoc/domain/report"
	"coassoc/internal"
	apperrors "coassoc/internal/errors"
)

// Renderer writes the report document and its figures to an output
// directory.
type Renderer struct {
	outDir string
	name   string
	log    *internal.Logger
}

// NewRenderer creates a renderer targeting outDir/name.{md,html}.
func NewRenderer(outDir, name string) *Renderer {
	return &Renderer{outDir: outDir, name: name, log: internal.DefaultLogger}
}

// Render draws the figures, stamps their file names into the model, and
// writes the markdown and HTML documents. Returns the markdown path.
func (r *Renderer) Render(m *report.Model) (string, error) {
	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return "", apperrors.Wrapf(err, "creating output directory %s", r.outDir)
	}
	if err := r.renderFigures(m); err != nil {
		return "", err
	}

	mdPath := filepath.Join(r.outDir, r.name+".md")
	md := Markdown(m)
	if err := os.WriteFile(mdPath, md, 0o644); err != nil {
		return "", apperrors.Wrapf(err, "writing %s", mdPath)
	}

	htmlPath := filepath.Join(r.outDir, r.name+".html")
	if err := os.WriteFile(htmlPath, HTML(m.Title, md), 0o644); err != nil {
		return "", apperrors.Wrapf(err, "writing %s", htmlPath)
	}

	r.log.Info("report written to %s", mdPath)
	return mdPath, nil
}

func (r *Renderer) renderFigures(m *report.Model) error {
	if m.Age != nil {
		name := "age_density.png"
		err := chart.AgeDensity(filepath.Join(r.outDir, name),
			m.Age.ByOutcome[0], m.Age.GroupValues[0],
			m.Age.ByOutcome[1], m.Age.GroupValues[1])
		if err != nil {
			return apperrors.Wrap(err, "rendering age density plot")
		}
		m.Age.DensityPlot = name
	}

	for i := range m.Loci {
		s := &m.Loci[i]
		if s.OutcomeProportions == nil {
			continue
		}
		name := slug(s.Locus) + "_proportions.png"
		err := chart.GenotypeProportions(filepath.Join(r.outDir, name),
			s.OutcomeProportions, s.OutcomeChiSquare)
		if err != nil {
			return apperrors.Wrapf(err, "rendering proportions for %s", s.Locus)
		}
		s.ProportionPlot = name
	}

	if m.Expr != nil {
		name := "expression_boxplot.png"
		title := fmt.Sprintf("Ct ratio by %s group", m.Expr.Locus)
		err := chart.ExpressionBoxplot(filepath.Join(r.outDir, name), title,
			m.Expr.Groups, m.Expr.GroupValues)
		if err != nil {
			return apperrors.Wrap(err, "rendering expression boxplot")
		}
		m.Expr.BoxPlot = name
	}
	return nil
}

// slug flattens a locus name into a file-name-safe token.
func slug(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
