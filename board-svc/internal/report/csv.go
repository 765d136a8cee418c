package report

import (
	"strconv"
	"strings"
	"time"

	"orderboard/board-svc/internal/domain"
	"orderboard/board-svc/internal/mxtime"
)

var csvHeader = []string{"Fecha (MX)", "ISO", "Restaurante", "Monto"}

// ExportCSV renders one row per order in the given order. Every field is
// quoted and embedded quotes are doubled (RFC 4180). encoding/csv is not
// used because it refuses to quote fields that don't need it, and the
// export contract fixes the quoted shape.
func ExportCSV(orders []domain.Order) string {
	var b strings.Builder
	writeRecord(&b, csvHeader)
	for _, order := range orders {
		local := order.LocalTime
		if local == "" {
			local = mxtime.FormatLocal(order.ISO)
		}
		writeRecord(&b, []string{
			local,
			order.ISO.UTC().Format(time.RFC3339),
			order.Restaurant,
			strconv.FormatFloat(order.Amount, 'f', -1, 64),
		})
	}
	return b.String()
}

func writeRecord(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
