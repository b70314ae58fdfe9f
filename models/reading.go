package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Reading is one water sample: the seven indicators the evaluator checks.
type Reading struct {
	PH            float64 `json:"ph"`
	Temperatura   float64 `json:"temperatura"`
	Turbidez      float64 `json:"turbidez"`
	Cloro         float64 `json:"cloro"`
	OD            float64 `json:"od"`
	Condutividade float64 `json:"condutividade"`
	TDS           float64 `json:"tds"`
}

// Number is a finite real that decodes from a JSON number or a numeric
// string such as "7.2".
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(strings.TrimSpace(s))
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid number %s", b)
	}
	*n = Number(v)
	return nil
}

// ReadingInput is the body of POST /api/processar. Pointers let binding tell
// a missing field apart from an explicit zero.
type ReadingInput struct {
	PH            *Number `json:"ph" binding:"required"`
	Temperatura   *Number `json:"temperatura" binding:"required"`
	Turbidez      *Number `json:"turbidez" binding:"required"`
	Cloro         *Number `json:"cloro" binding:"required"`
	OD            *Number `json:"od" binding:"required"`
	Condutividade *Number `json:"condutividade" binding:"required"`
	TDS           *Number `json:"tds" binding:"required"`
}

// Reading dereferences the input. Only call it after a successful bind.
func (in ReadingInput) Reading() Reading {
	return Reading{
		PH:            float64(*in.PH),
		Temperatura:   float64(*in.Temperatura),
		Turbidez:      float64(*in.Turbidez),
		Cloro:         float64(*in.Cloro),
		OD:            float64(*in.OD),
		Condutividade: float64(*in.Condutividade),
		TDS:           float64(*in.TDS),
	}
}

// Verdict is the outcome of evaluating a Reading.
type Verdict struct {
	Status   string   `json:"status"`
	Violated []string `json:"indicadores_fora"`
}

// WithinStandard reports whether no indicator failed its range check.
func (v Verdict) WithinStandard() bool {
	return len(v.Violated) == 0
}
