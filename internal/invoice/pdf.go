package invoice

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	headerColor = props.Color{Red: 50, Green: 50, Blue: 50}
	mutedColor  = props.Color{Red: 120, Green: 120, Blue: 120}
	lineColor   = props.Color{Red: 200, Green: 200, Blue: 200}
)

// Document lays out inv on A4 pages.
func Document(inv *Invoice) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(12, "Rechnung "+inv.Number, props.Text{
			Style: fontstyle.Bold,
			Size:  16,
			Color: &headerColor,
		}),
	)
	m.AddRow(6,
		text.NewCol(6, fmt.Sprintf("Leistungszeitraum: %s - %s", inv.From, inv.To), props.Text{Size: 10, Color: &mutedColor}),
		text.NewCol(6, "Rechnungsdatum: "+inv.BillingDate, props.Text{Size: 10, Align: align.Right, Color: &mutedColor}),
	)
	m.AddRow(6,
		text.NewCol(12, "Zahlbar bis: "+inv.PayableDate, props.Text{Size: 10, Align: align.Right, Color: &mutedColor}),
	)
	m.AddRow(4, line.NewCol(12, props.Line{Color: &lineColor}))

	bold := props.Text{Style: fontstyle.Bold, Size: 10, Color: &headerColor}
	boldRight := bold
	boldRight.Align = align.Right
	m.AddRow(8,
		text.NewCol(3, "Datum", bold),
		text.NewCol(3, "Stunden", boldRight),
		text.NewCol(3, "Preis/Std. (EUR)", boldRight),
		text.NewCol(3, "Betrag (EUR)", boldRight),
	)

	cell := props.Text{Size: 9}
	cellRight := props.Text{Size: 9, Align: align.Right}
	for _, r := range inv.Rows {
		m.AddRow(6,
			text.NewCol(3, r.Date, cell),
			text.NewCol(3, r.Hours, cellRight),
			text.NewCol(3, r.Price, cellRight),
			text.NewCol(3, r.Total, cellRight),
		)
	}

	m.AddRow(4, line.NewCol(12, props.Line{Color: &lineColor}))
	total := props.Text{Style: fontstyle.Bold, Size: 12, Color: &headerColor}
	totalRight := total
	totalRight.Align = align.Right
	m.AddRow(10,
		text.NewCol(3, "Gesamt", total),
		text.NewCol(3, inv.TotalHours, totalRight),
		text.NewCol(6, inv.TotalPrice+" EUR", totalRight),
	)
	return m
}

// Render writes inv as a PDF to path.
func Render(inv *Invoice, path string) error {
	doc, err := Document(inv).Generate()
	if err != nil {
		return fmt.Errorf("generating PDF: %w", err)
	}
	return doc.Save(path)
}
