// Package display renders recipe summaries for the terminal.
//
// [Text] produces a lipgloss-styled report; [YAML] produces a
// machine-readable one. Neither prints: callers decide where the
// output goes.
package display

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/ottocost/internal/domain"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	// BannerStyle is muted slate for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// Recipe headers in soft mint.
	recipeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true)

	costStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	// Dimmed zinc for units, bases and hints.
	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	// Soft coral for errors.
	urgentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))
)

// ── Text report ──────────────────────────────────────────────────

// Text renders a summary as a styled report, one block per recipe in
// summary order.
func Text(summary *domain.Summary) string {
	if summary == nil || summary.Len() == 0 {
		return secondaryStyle.Render("  no recipes") + "\n"
	}

	var b strings.Builder
	first := true
	for pair := summary.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			b.WriteString(sepStyle.Render("  " + strings.Repeat("─", 40)))
			b.WriteByte('\n')
		}
		first = false
		writeRecipe(&b, pair.Key, pair.Value)
	}
	return b.String()
}

func writeRecipe(b *strings.Builder, name string, cost domain.RecipeCost) {
	b.WriteString(recipeStyle.Render("  " + name))
	b.WriteByte('\n')
	b.WriteString(labelStyle.Render("    total cost  "))
	b.WriteString(costStyle.Render(formatCost(cost.TotalCost)))
	b.WriteByte('\n')

	if cost.Nutrients == nil || cost.Nutrients.Len() == 0 {
		b.WriteString(secondaryStyle.Render("    no nutrient data"))
		b.WriteByte('\n')
		return
	}

	width := 0
	for pair := cost.Nutrients.Oldest(); pair != nil; pair = pair.Next() {
		width = max(width, len(pair.Key))
	}
	for pair := cost.Nutrients.Oldest(); pair != nil; pair = pair.Next() {
		fact := pair.Value
		b.WriteString(labelStyle.Render(fmt.Sprintf("    %-*s  ", width, pair.Key)))
		b.WriteString(primaryStyle.Render(formatAmount(fact.QuantityAmount)))
		b.WriteString(secondaryStyle.Render(" per " + formatAmount(fact.QuantityPer)))
		b.WriteByte('\n')
	}
}

// Conversion renders the result of a single unit conversion, the chain of
// units it went through and the composed factor.
func Conversion(from, to domain.UnitOfMeasure, path []domain.UnitKey, factor float64) string {
	var b strings.Builder
	b.WriteString(primaryStyle.Render("  " + formatAmount(from)))
	b.WriteString(sepStyle.Render(" = "))
	b.WriteString(costStyle.Render(formatAmount(to)))
	b.WriteByte('\n')

	if len(path) > 1 {
		names := make([]string, len(path))
		for i, k := range path {
			names[i] = string(k.Name)
		}
		b.WriteString(secondaryStyle.Render("  via " + strings.Join(names, " → ")))
		b.WriteByte('\n')
		b.WriteString(secondaryStyle.Render("  factor " + strconv.FormatFloat(factor, 'g', -1, 64)))
		b.WriteByte('\n')
	}
	return b.String()
}

// Error renders an error line.
func Error(err error) string {
	return urgentStyle.Render("  error: "+err.Error()) + "\n"
}

// ── YAML report ──────────────────────────────────────────────────

type report struct {
	Recipes []recipeReport `yaml:"recipes"`
}

type recipeReport struct {
	Name      string           `yaml:"name"`
	TotalCost float64          `yaml:"totalCost"`
	Nutrients []nutrientReport `yaml:"nutrients,omitempty"`
}

type nutrientReport struct {
	Nutrient string `yaml:"nutrient"`
	Amount   string `yaml:"amount"`
	Per      string `yaml:"per"`
}

// YAML renders a summary as a YAML document. Recipes and nutrients keep
// summary order.
func YAML(summary *domain.Summary) ([]byte, error) {
	rep := report{Recipes: []recipeReport{}}
	if summary != nil {
		for pair := summary.Oldest(); pair != nil; pair = pair.Next() {
			rr := recipeReport{Name: pair.Key, TotalCost: pair.Value.TotalCost}
			if pair.Value.Nutrients != nil {
				for n := pair.Value.Nutrients.Oldest(); n != nil; n = n.Next() {
					rr.Nutrients = append(rr.Nutrients, nutrientReport{
						Nutrient: string(n.Key),
						Amount:   n.Value.QuantityAmount.String(),
						Per:      n.Value.QuantityPer.String(),
					})
				}
			}
			rep.Recipes = append(rep.Recipes, rr)
		}
	}

	out, err := yaml.Marshal(&rep)
	if err != nil {
		return nil, fmt.Errorf("encoding summary: %w", err)
	}
	return out, nil
}

// ── Helpers ──────────────────────────────────────────────────────

func formatCost(c float64) string {
	return fmt.Sprintf("$%.2f", c)
}

// formatAmount rounds to four decimals so float noise
// ("0.10500000000000001 gram") stays out of the report.
func formatAmount(u domain.UnitOfMeasure) string {
	rounded := math.Round(u.Amount*1e4) / 1e4
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + string(u.Name)
}
