// Package payroll: cálculo de nómina de la cuadrilla (horas regulares/extra por semana)
// y porcentajes de avance usados por Crew y Budget.
package payroll

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// WeeklyRegularHours horas semanales antes de pagar tiempo extra.
	WeeklyRegularHours = decimal.NewFromInt(40)
	// OvertimeMultiplier recargo de la hora extra.
	OvertimeMultiplier = decimal.RequireFromString("1.5")

	hundred = decimal.NewFromInt(100)
)

// Entry horas trabajadas en un día.
type Entry struct {
	EmployeeID string
	WorkDate   time.Time
	Hours      decimal.Decimal
}

// Line resultado de nómina de un empleado.
type Line struct {
	EmployeeID    string
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	HourlyRate    decimal.Decimal
	GrossPay      decimal.Decimal
}

// Summary nómina del período.
type Summary struct {
	Lines         []Line
	TotalHours    decimal.Decimal
	TotalOvertime decimal.Decimal
	TotalGross    decimal.Decimal
}

type weekKey struct {
	employeeID string
	year, week int
}

// Compute agrupa las horas por empleado y semana ISO; lo que excede 40 h/semana es extra.
// Empleados sin tarifa en rates se liquidan a 0.
func Compute(entries []Entry, rates map[string]decimal.Decimal) Summary {
	weekly := make(map[weekKey]decimal.Decimal)
	for _, e := range entries {
		if e.Hours.IsNegative() {
			continue
		}
		y, w := e.WorkDate.ISOWeek()
		k := weekKey{employeeID: e.EmployeeID, year: y, week: w}
		weekly[k] = weekly[k].Add(e.Hours)
	}

	byEmployee := make(map[string]*Line)
	for k, hours := range weekly {
		line, ok := byEmployee[k.employeeID]
		if !ok {
			line = &Line{EmployeeID: k.employeeID, HourlyRate: rates[k.employeeID]}
			byEmployee[k.employeeID] = line
		}
		regular := decimal.Min(hours, WeeklyRegularHours)
		line.RegularHours = line.RegularHours.Add(regular)
		line.OvertimeHours = line.OvertimeHours.Add(hours.Sub(regular))
	}

	var s Summary
	for _, line := range byEmployee {
		line.GrossPay = line.RegularHours.Mul(line.HourlyRate).
			Add(line.OvertimeHours.Mul(line.HourlyRate).Mul(OvertimeMultiplier)).Round(2)
		s.Lines = append(s.Lines, *line)
		s.TotalHours = s.TotalHours.Add(line.RegularHours).Add(line.OvertimeHours)
		s.TotalOvertime = s.TotalOvertime.Add(line.OvertimeHours)
		s.TotalGross = s.TotalGross.Add(line.GrossPay)
	}
	sort.Slice(s.Lines, func(i, j int) bool { return s.Lines[i].EmployeeID < s.Lines[j].EmployeeID })
	return s
}

// Progress porcentaje done/total acotado a [0, 100], con 2 decimales. total ≤ 0 → 0.
func Progress(done, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	p := done.Div(total).Mul(hundred)
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p.Round(2)
}
