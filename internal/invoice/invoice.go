// Package invoice turns a month of day aggregates into billable rows and
// renders them as a PDF.
package invoice

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Tiliavir/toggl-tempo/internal/model"
	"github.com/Tiliavir/toggl-tempo/internal/timecalc"
	"github.com/Tiliavir/toggl-tempo/internal/timesheet"
)

const (
	dateLayout = "02.01.2006"
	paymentDue = 30 // days
)

var printer = message.NewPrinter(language.German)

// Params are the invoice header values given on the command line.
type Params struct {
	Number      string
	HourlyRate  int
	Month       timecalc.Period
	BillingDate time.Time
}

// Row is one billed day.
type Row struct {
	Date  string
	Hours string
	Price string
	Total string
}

// Invoice holds the formatted values of one invoice document.
type Invoice struct {
	Number      string
	From        string
	To          string
	BillingDate string
	PayableDate string
	Rows        []Row
	TotalHours  string
	TotalPrice  string
}

// FormatDecimal renders v with German separators and exactly two
// fraction digits, e.g. 1.234,50.
func FormatDecimal(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// Build computes the invoice for days. Days are billed in the order given.
func Build(days []model.Day, p Params) (*Invoice, error) {
	if !p.Month.IsMonth() {
		return nil, fmt.Errorf("invoice period must be a month, got %q", p.Month.Arg)
	}
	if p.HourlyRate <= 0 {
		return nil, fmt.Errorf("hourly rate must be positive, got %d", p.HourlyRate)
	}

	inv := &Invoice{
		Number:      p.Number,
		From:        p.Month.From.Format(dateLayout),
		To:          p.Month.LastDay().Format(dateLayout),
		BillingDate: p.BillingDate.Format(dateLayout),
		PayableDate: p.BillingDate.AddDate(0, 0, paymentDue).Format(dateLayout),
	}

	rate := float64(p.HourlyRate)
	for _, d := range days {
		date, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid day %q: %w", d.Date, err)
		}
		inv.Rows = append(inv.Rows, Row{
			Date:  date.Format(dateLayout),
			Hours: FormatDecimal(d.HoursTotalDecimal),
			Price: strconv.Itoa(p.HourlyRate),
			Total: FormatDecimal(d.HoursTotalDecimal * rate),
		})
	}

	hours := timesheet.TotalHours(days)
	inv.TotalHours = FormatDecimal(hours)
	inv.TotalPrice = FormatDecimal(hours * rate)
	return inv, nil
}
