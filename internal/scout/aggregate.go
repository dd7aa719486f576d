package scout

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

var (
	million  = decimal.NewFromInt(1_000_000)
	thousand = decimal.NewFromInt(1_000)
)

// Aggregate computes the mean statistics of a selection.
// Every mean is 0.0 for an empty selection.
func Aggregate(entries []models.SelectedPlayer) models.AggregateReport {
	field := func(get func(models.SelectedPlayer) int) string {
		values := make([]int, len(entries))
		for i, e := range entries {
			values[i] = get(e)
		}
		return FormatOneDecimal(Mean(values))
	}

	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(ParseMarketValue(e.MarketValue))
	}

	return models.AggregateReport{
		Count:            len(entries),
		Rating:           field(func(p models.SelectedPlayer) int { return p.Rating }),
		Age:              field(func(p models.SelectedPlayer) int { return p.Age }),
		Technical:        field(func(p models.SelectedPlayer) int { return p.Technical }),
		Physical:         field(func(p models.SelectedPlayer) int { return p.Physical }),
		Mental:           field(func(p models.SelectedPlayer) int { return p.Mental }),
		Tactical:         field(func(p models.SelectedPlayer) int { return p.Tactical }),
		TotalMarketValue: FormatMarketValue(total),
	}
}

// Mean returns the arithmetic mean of values, 0 when there are none
func Mean(values []int) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	var sum int64
	for _, v := range values {
		sum += int64(v)
	}
	return decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(len(values))))
}

// FormatOneDecimal renders d rounded to one decimal place ("88.0")
func FormatOneDecimal(d decimal.Decimal) string {
	return d.StringFixed(1)
}

// ParseMarketValue converts "15M", "850K" or a plain amount into a number.
// Unparseable values count as zero.
func ParseMarketValue(s string) decimal.Decimal {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "€")
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return decimal.Zero
	}

	multiplier := decimal.NewFromInt(1)
	switch {
	case strings.HasSuffix(s, "M"):
		multiplier = million
		s = strings.TrimSuffix(s, "M")
	case strings.HasSuffix(s, "K"):
		multiplier = thousand
		s = strings.TrimSuffix(s, "K")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d.Mul(multiplier)
}

// FormatMarketValue renders an amount in the "245.0M" style
func FormatMarketValue(d decimal.Decimal) string {
	switch {
	case d.GreaterThanOrEqual(million):
		return d.Div(million).StringFixed(1) + "M"
	case d.GreaterThanOrEqual(thousand):
		return d.Div(thousand).StringFixed(1) + "K"
	default:
		return d.StringFixed(1)
	}
}
