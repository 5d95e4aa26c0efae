package order

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"shogun-be/internal/utils"

	"github.com/shopspring/decimal"
)

type OutcomeKind string

const (
	OutcomeApplied             OutcomeKind = "applied"
	OutcomeSkippedInvalid      OutcomeKind = "skipped_invalid"
	OutcomeSkippedUnrecognized OutcomeKind = "skipped_unrecognized"
)

// FieldOutcome records what happened to one key of an update request.
type FieldOutcome struct {
	Field  string      `json:"campo"`
	Kind   OutcomeKind `json:"resultado"`
	Reason string      `json:"motivo,omitempty"`
}

// Assignment is a single column write. A nil Value stores NULL.
type Assignment struct {
	Column string
	Value  interface{}
}

type UpdatePlan struct {
	Assignments []Assignment
	Outcomes    []FieldOutcome
}

// HasChanges reports whether any field was applied.
func (p UpdatePlan) HasChanges() bool {
	return len(p.Assignments) > 0
}

type fieldKind int

const (
	kindText fieldKind = iota
	kindClearableText
	kindEnum
	kindDate
	kindMoney
)

type fieldSpec struct {
	column  string
	kind    fieldKind
	allowed []string
}

var updatableFields = map[string]fieldSpec{
	"cliente":         {column: "cliente_nombre", kind: kindText},
	"telefono":        {column: "cliente_telefono", kind: kindText},
	"direccion":       {column: "direccion_envio", kind: kindText},
	"color":           {column: "color", kind: kindText},
	"personalizacion": {column: "personalizacion_detalles", kind: kindText},
	"email":           {column: "cliente_email", kind: kindClearableText},

	"estatus_produccion": {column: "estado_produccion", kind: kindEnum, allowed: enumValues(productionStatuses)},
	"estatus_pago":       {column: "estado_pago", kind: kindEnum, allowed: enumValues(paymentStatuses)},
	"banco":              {column: "metodo_pago", kind: kindEnum, allowed: enumValues(paymentMethods)},
	"canal":              {column: "canal", kind: kindEnum, allowed: enumValues(channels)},

	"fecha_entrega_real": {column: "fecha_entrega_real", kind: kindDate},

	"precio_producto":    {column: "precio_producto", kind: kindMoney},
	"costo_mano_obra":    {column: "costo_mano_obra", kind: kindMoney},
	"costos_adicionales": {column: "costos_adicionales", kind: kindMoney},
	"precio_envio":       {column: "precio_envio", kind: kindMoney},
	"costo_producto":     {column: "costo_producto", kind: kindMoney},
}

func enumValues[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

// PlanUpdate turns a loosely typed patch into column assignments. Every key
// gets an outcome; a bad value never fails the rest of the patch. Keys are
// processed in sorted order so the resulting statement is stable.
func PlanUpdate(fields map[string]interface{}) UpdatePlan {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var plan UpdatePlan
	for _, key := range keys {
		spec, ok := updatableFields[key]
		if !ok {
			plan.Outcomes = append(plan.Outcomes, FieldOutcome{Field: key, Kind: OutcomeSkippedUnrecognized})
			continue
		}

		value, err := spec.coerce(fields[key])
		if err != nil {
			plan.Outcomes = append(plan.Outcomes, FieldOutcome{Field: key, Kind: OutcomeSkippedInvalid, Reason: err.Error()})
			continue
		}

		plan.Assignments = append(plan.Assignments, Assignment{Column: spec.column, Value: value})
		plan.Outcomes = append(plan.Outcomes, FieldOutcome{Field: key, Kind: OutcomeApplied})
	}
	return plan
}

func (f fieldSpec) coerce(raw interface{}) (interface{}, error) {
	switch f.kind {
	case kindText, kindClearableText:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("se esperaba texto")
		}
		s = strings.TrimSpace(s)
		if s == "" && f.kind == kindText {
			return nil, fmt.Errorf("valor vacío")
		}
		return s, nil

	case kindEnum:
		s, ok := raw.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("valor vacío")
		}
		for _, a := range f.allowed {
			if s == a {
				return s, nil
			}
		}
		return nil, fmt.Errorf("valor no permitido: %s", s)

	case kindDate:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("se esperaba fecha DD/MM/YYYY")
		}
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		t, err := utils.ParseDMY(s)
		if err != nil {
			return nil, fmt.Errorf("se esperaba fecha DD/MM/YYYY")
		}
		return t.Format(utils.DateLayoutISO), nil

	case kindMoney:
		d, err := toDecimal(raw)
		if err != nil {
			return nil, err
		}
		if d.IsNegative() {
			return nil, fmt.Errorf("valor negativo")
		}
		return d, nil
	}
	return nil, fmt.Errorf("campo no soportado")
}

func toDecimal(raw interface{}) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero, fmt.Errorf("número inválido: %s", v)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("se esperaba un número")
	}
}
