package utils

import "github.com/lexpaixao/WaterQuality/models"

const (
	StatusDentro = "Dentro dos padrões de potabilidade"
	StatusFora   = "Fora dos padrões de potabilidade"
)

// Threshold is the acceptable range of one indicator. Nil bounds are open.
type Threshold struct {
	Indicator    string   `json:"indicador"`
	Unit         string   `json:"unidade,omitempty"`
	Min          *float64 `json:"minimo,omitempty"`
	MinExclusive bool     `json:"minimo_exclusivo,omitempty"`
	Max          *float64 `json:"maximo,omitempty"`
	MaxExclusive bool     `json:"maximo_exclusivo,omitempty"`
	Message      string   `json:"mensagem"`

	value func(models.Reading) float64
}

// Accepts reports whether v lies inside the range.
func (t Threshold) Accepts(v float64) bool {
	if t.Min != nil {
		if t.MinExclusive && v <= *t.Min {
			return false
		}
		if !t.MinExclusive && v < *t.Min {
			return false
		}
	}
	if t.Max != nil {
		if t.MaxExclusive && v >= *t.Max {
			return false
		}
		if !t.MaxExclusive && v > *t.Max {
			return false
		}
	}
	return true
}

func bound(v float64) *float64 { return &v }

// Order matters: violations are reported in this sequence.
// Dissolved oxygen is an upper bound only (od <= 5).
var thresholds = []Threshold{
	{
		Indicator: "ph",
		Min:       bound(6.5),
		Max:       bound(8.5),
		Message:   "pH fora dos padrões",
		value:     func(r models.Reading) float64 { return r.PH },
	},
	{
		Indicator: "temperatura",
		Unit:      "°C",
		Min:       bound(5),
		Max:       bound(20),
		Message:   "Temperatura fora dos padrões",
		value:     func(r models.Reading) float64 { return r.Temperatura },
	},
	{
		Indicator:    "turbidez",
		Unit:         "NTU",
		Min:          bound(1),
		MinExclusive: true,
		Max:          bound(5),
		Message:      "Turbidez fora dos padrões",
		value:        func(r models.Reading) float64 { return r.Turbidez },
	},
	{
		Indicator: "cloro",
		Unit:      "mg/L",
		Min:       bound(0.2),
		Max:       bound(2.0),
		Message:   "Cloro fora dos padrões",
		value:     func(r models.Reading) float64 { return r.Cloro },
	},
	{
		Indicator: "od",
		Unit:      "mg/L",
		Max:       bound(5),
		Message:   "Oxigênio dissolvido fora dos padrões",
		value:     func(r models.Reading) float64 { return r.OD },
	},
	{
		Indicator: "condutividade",
		Unit:      "µS/cm",
		Min:       bound(50),
		Max:       bound(500),
		Message:   "Condutividade fora dos padrões",
		value:     func(r models.Reading) float64 { return r.Condutividade },
	},
	{
		Indicator:    "tds",
		Unit:         "mg/L",
		Max:          bound(500),
		MaxExclusive: true,
		Message:      "TDS fora dos padrões",
		value:        func(r models.Reading) float64 { return r.TDS },
	},
}

// Thresholds returns a copy of the threshold table in evaluation order.
func Thresholds() []Threshold {
	out := make([]Threshold, len(thresholds))
	for i, t := range thresholds {
		c := t
		if t.Min != nil {
			c.Min = bound(*t.Min)
		}
		if t.Max != nil {
			c.Max = bound(*t.Max)
		}
		out[i] = c
	}
	return out
}

// Evaluate checks every indicator of r against its range and returns the
// verdict. All checks run; it never fails.
func Evaluate(r models.Reading) models.Verdict {
	violated := []string{}
	for _, t := range thresholds {
		if !t.Accepts(t.value(r)) {
			violated = append(violated, t.Message)
		}
	}

	status := StatusDentro
	if len(violated) > 0 {
		status = StatusFora
	}
	return models.Verdict{Status: status, Violated: violated}
}
