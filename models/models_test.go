package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndicadoresValueAndScan(t *testing.T) {
	v, err := Indicadores{"pH fora dos padrões", "TDS fora dos padrões"}.Value()
	require.NoError(t, err)
	assert.Equal(t, "pH fora dos padrões, TDS fora dos padrões", v)

	var got Indicadores
	require.NoError(t, got.Scan(v))
	assert.Equal(t, Indicadores{"pH fora dos padrões", "TDS fora dos padrões"}, got)

	require.NoError(t, got.Scan([]byte("Cloro fora dos padrões")))
	assert.Equal(t, Indicadores{"Cloro fora dos padrões"}, got)

	for _, empty := range []interface{}{nil, "", []byte{}} {
		require.NoError(t, got.Scan(empty))
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}

	assert.Error(t, got.Scan(42))
}

func TestEmptyIndicadoresEncodeAsEmptyArray(t *testing.T) {
	h := NewHistorico(1, Reading{}, Verdict{Status: "ok", Violated: []string{}}, time.Now())
	b, err := json.Marshal(h)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"indicadores_fora":[]`)
}

func TestNumberDecoding(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{raw: `7.2`, want: 7.2},
		{raw: `0`, want: 0},
		{raw: `-3`, want: -3},
		{raw: `"6.5"`, want: 6.5},
		{raw: `" 8 "`, want: 8},
		{raw: `"abc"`, wantErr: true},
		{raw: `""`, wantErr: true},
		{raw: `"NaN"`, wantErr: true},
		{raw: `"Inf"`, wantErr: true},
		{raw: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var n Number
			err := json.Unmarshal([]byte(tt.raw), &n)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, float64(n))
		})
	}
}

func TestReadingInputMissingFieldStaysNil(t *testing.T) {
	var in ReadingInput
	require.NoError(t, json.Unmarshal([]byte(`{"ph": 7, "temperatura": 10}`), &in))
	require.NotNil(t, in.PH)
	assert.Nil(t, in.Turbidez)

	require.NoError(t, json.Unmarshal([]byte(`{"ph":7,"temperatura":10,"turbidez":2,"cloro":1,"od":4,"condutividade":100,"tds":200}`), &in))
	assert.Equal(t, Reading{PH: 7, Temperatura: 10, Turbidez: 2, Cloro: 1, OD: 4, Condutividade: 100, TDS: 200}, in.Reading())
}

func TestNewHistoricoCopiesVerdict(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	r := Reading{PH: 6, Temperatura: 10, Turbidez: 2, Cloro: 1, OD: 4, Condutividade: 100, TDS: 200}
	v := Verdict{Status: "Fora dos padrões de potabilidade", Violated: []string{"pH fora dos padrões"}}

	h := NewHistorico(9, r, v, at)
	v.Violated[0] = "changed"

	assert.Equal(t, uint(9), h.UsuarioID)
	assert.Equal(t, r, h.Reading())
	assert.Equal(t, "Fora dos padrões de potabilidade", h.StatusGeral)
	assert.Equal(t, Indicadores{"pH fora dos padrões"}, h.IndicadoresFora)
	assert.Equal(t, at, h.CriadoEm)
}
