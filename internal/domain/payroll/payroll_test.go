package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Obrix-api/internal/domain/payroll"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestCompute_SeparaHorasExtraPorSemana(t *testing.T) {
	// 2026-10-12 es lunes; 5 días × 9 h = 45 h → 5 h extra.
	var entries []payroll.Entry
	for i := 0; i < 5; i++ {
		entries = append(entries, payroll.Entry{EmployeeID: "e1", WorkDate: day("2026-10-12").AddDate(0, 0, i), Hours: d("9")})
	}
	// Semana siguiente, 10 h: sin extra.
	entries = append(entries, payroll.Entry{EmployeeID: "e1", WorkDate: day("2026-10-19"), Hours: d("10")})

	s := payroll.Compute(entries, map[string]decimal.Decimal{"e1": d("20")})
	require.Len(t, s.Lines, 1)
	line := s.Lines[0]

	assert.True(t, d("50").Equal(line.RegularHours))
	assert.True(t, d("5").Equal(line.OvertimeHours))
	// 50×20 + 5×20×1.5 = 1150
	assert.Equal(t, "1150.00", line.GrossPay.StringFixed(2))
	assert.True(t, d("55").Equal(s.TotalHours))
	assert.True(t, d("1150").Equal(s.TotalGross))
}

func TestCompute_VariosEmpleadosOrdenados(t *testing.T) {
	entries := []payroll.Entry{
		{EmployeeID: "b", WorkDate: day("2026-10-13"), Hours: d("8")},
		{EmployeeID: "a", WorkDate: day("2026-10-13"), Hours: d("4")},
		{EmployeeID: "a", WorkDate: day("2026-10-14"), Hours: d("-3")},
	}
	s := payroll.Compute(entries, map[string]decimal.Decimal{"a": d("10")})
	require.Len(t, s.Lines, 2)
	assert.Equal(t, "a", s.Lines[0].EmployeeID)
	assert.Equal(t, "40.00", s.Lines[0].GrossPay.StringFixed(2), "las horas negativas se ignoran")
	assert.True(t, s.Lines[1].GrossPay.IsZero(), "sin tarifa se liquida a 0")
}

func TestProgress(t *testing.T) {
	assert.Equal(t, "50", payroll.Progress(d("5"), d("10")).String())
	assert.Equal(t, "100", payroll.Progress(d("15"), d("10")).String())
	assert.Equal(t, "0", payroll.Progress(d("-1"), d("10")).String())
	assert.Equal(t, "0", payroll.Progress(d("3"), d("0")).String())
	assert.Equal(t, "33.33", payroll.Progress(d("1"), d("3")).String())
}
