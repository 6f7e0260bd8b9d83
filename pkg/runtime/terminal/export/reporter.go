package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/price-atlas/pkg/models/domain"
)

type TableConfig struct {
	CurrencyWidth int
	RateWidth     int
	MeterWidth    int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		CurrencyWidth: 10,
		RateWidth:     24,
		MeterWidth:    38,
	}
}

// Reporter renders derived exchange rates as a console table.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(baseCurrency string, rates []domain.FxRate) error {
	funcMap := template.FuncMap{
		"formatRow": func(currency string, rate interface{}, meter string) string {
			return fmt.Sprintf("| %-*s | %-*v | %-*s |",
				c.config.CurrencyWidth, currency,
				c.config.RateWidth, rate,
				c.config.MeterWidth, meter)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+",
				strings.Repeat("-", c.config.CurrencyWidth+2),
				strings.Repeat("-", c.config.RateWidth+2),
				strings.Repeat("-", c.config.MeterWidth+2))
		},
	}

	tmpl := `
Exchange rates derived from the retail price catalog.
1 {{.Base}} buys the listed amount of each currency.

{{separator}}
{{formatRow "Currency" "Rate" "Reference Meter"}}
{{separator}}
{{range .Rates}}{{formatRow .CurrencyCode .Rate .MeterID}}
{{end}}{{separator}}
`

	t, err := template.New("fxrates").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, struct {
		Base  string
		Rates []domain.FxRate
	}{Base: baseCurrency, Rates: rates})
}
