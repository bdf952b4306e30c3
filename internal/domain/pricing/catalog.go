// Package pricing modela el catálogo de planes (pricing.json), sus funcionalidades
// (entitlements.json) y las referencias de precio del proveedor de pagos.
package pricing

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Intervalos de cobro.
const (
	IntervalMonth = "month"
	IntervalYear  = "year"
)

// Plan plan publicado.
type Plan struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Interval string          `json:"interval"`
	Features []string        `json:"features"` // texto comercial, no las claves de entitlements
}

// Extend devuelve el nuevo vencimiento al pagar un período del plan.
// Si el plan sigue vigente se suma al vencimiento actual; si no, se cuenta desde now.
func (p Plan) Extend(current *time.Time, now time.Time) time.Time {
	from := now
	if current != nil && current.After(now) {
		from = *current
	}
	if p.Interval == IntervalYear {
		return from.AddDate(1, 0, 0)
	}
	return from.AddDate(0, 1, 0)
}

// Entitlements funcionalidades y límites de un plan.
// Un límite ausente significa ilimitado.
type Entitlements struct {
	Features []string       `json:"features"`
	Limits   map[string]int `json:"limits"`
}

// Has informa si la funcionalidad está incluida.
func (e Entitlements) Has(feature string) bool {
	for _, f := range e.Features {
		if f == feature {
			return true
		}
	}
	return false
}

// Limit devuelve el límite y si está definido.
func (e Entitlements) Limit(name string) (int, bool) {
	n, ok := e.Limits[name]
	return n, ok
}

// PriceRef referencia del plan en el proveedor de pagos (stripe.priceMap.json).
type PriceRef struct {
	PriceID  string          `json:"price_id"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// Catalog los tres archivos cargados.
type Catalog struct {
	Plans        []Plan
	Entitlements map[string]Entitlements
	PriceMap     map[string]PriceRef
}

// Plan busca un plan por id.
func (c *Catalog) Plan(id string) (Plan, bool) {
	for _, p := range c.Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// EntitlementsFor devuelve las funcionalidades del plan; un plan sin entrada no tiene ninguna.
func (c *Catalog) EntitlementsFor(planID string) Entitlements {
	if e, ok := c.Entitlements[planID]; ok {
		return e
	}
	return Entitlements{}
}

// Tipos de diferencia de la conciliación.
const (
	IssueMissing  = "missing"  // plan sin precio en el proveedor
	IssueAmount   = "amount"   // monto distinto
	IssueCurrency = "currency" // moneda distinta
	IssueOrphan   = "orphan"   // precio del proveedor sin plan
)

// Issue una diferencia encontrada.
type Issue struct {
	PlanID   string
	Kind     string
	Expected string
	Actual   string
}

// Reconcile compara los planes pagos contra el mapa de precios del proveedor.
// Los planes con monto 0 no necesitan precio. Resultado ordenado por plan y tipo.
func Reconcile(plans []Plan, priceMap map[string]PriceRef) []Issue {
	var issues []Issue
	known := make(map[string]bool, len(plans))
	for _, p := range plans {
		known[p.ID] = true
		ref, ok := priceMap[p.ID]
		if !ok {
			if p.Amount.IsPositive() {
				issues = append(issues, Issue{PlanID: p.ID, Kind: IssueMissing, Expected: p.Amount.StringFixed(2)})
			}
			continue
		}
		if !ref.Amount.Equal(p.Amount) {
			issues = append(issues, Issue{PlanID: p.ID, Kind: IssueAmount,
				Expected: p.Amount.StringFixed(2), Actual: ref.Amount.StringFixed(2)})
		}
		if ref.Currency != "" && !strings.EqualFold(ref.Currency, p.Currency) {
			issues = append(issues, Issue{PlanID: p.ID, Kind: IssueCurrency, Expected: p.Currency, Actual: ref.Currency})
		}
	}
	for id, ref := range priceMap {
		if !known[id] {
			issues = append(issues, Issue{PlanID: id, Kind: IssueOrphan, Actual: ref.PriceID})
		}
	}
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].PlanID != issues[j].PlanID {
			return issues[i].PlanID < issues[j].PlanID
		}
		return issues[i].Kind < issues[j].Kind
	})
	return issues
}
