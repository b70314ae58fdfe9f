package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const indicadoresSeparator = ", "

// Indicadores is the list of violation messages, stored as delimited text.
type Indicadores []string

func (i Indicadores) Value() (driver.Value, error) {
	return strings.Join(i, indicadoresSeparator), nil
}

func (i *Indicadores) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case nil:
		s = ""
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("indicadores: unsupported type %T", src)
	}
	if s == "" {
		*i = Indicadores{}
		return nil
	}
	*i = strings.Split(s, indicadoresSeparator)
	return nil
}

// Historico is a persisted evaluation. Rows are only inserted and read.
type Historico struct {
	ID              uint        `json:"id" gorm:"primaryKey"`
	UsuarioID       uint        `json:"usuario_id" gorm:"column:usuario_id;index;not null"`
	Usuario         *Usuario    `json:"-" gorm:"foreignKey:UsuarioID;constraint:OnDelete:CASCADE"`
	PH              float64     `json:"ph" gorm:"column:ph;type:numeric;not null"`
	Temperatura     float64     `json:"temperatura" gorm:"type:numeric;not null"`
	Turbidez        float64     `json:"turbidez" gorm:"type:numeric;not null"`
	Cloro           float64     `json:"cloro" gorm:"type:numeric;not null"`
	OD              float64     `json:"od" gorm:"column:od;type:numeric;not null"`
	Condutividade   float64     `json:"condutividade" gorm:"type:numeric;not null"`
	TDS             float64     `json:"tds" gorm:"column:tds;type:numeric;not null"`
	StatusGeral     string      `json:"status_geral" gorm:"column:status_geral;size:100;not null"`
	IndicadoresFora Indicadores `json:"indicadores_fora" gorm:"column:indicadores_fora;type:text"`
	CriadoEm        time.Time   `json:"criado_em" gorm:"column:criado_em;index"`
}

func (Historico) TableName() string {
	return "historico"
}

// NewHistorico builds the row for a reading and its verdict.
func NewHistorico(userID uint, r Reading, v Verdict, at time.Time) Historico {
	violated := make(Indicadores, len(v.Violated))
	copy(violated, v.Violated)
	return Historico{
		UsuarioID:       userID,
		PH:              r.PH,
		Temperatura:     r.Temperatura,
		Turbidez:        r.Turbidez,
		Cloro:           r.Cloro,
		OD:              r.OD,
		Condutividade:   r.Condutividade,
		TDS:             r.TDS,
		StatusGeral:     v.Status,
		IndicadoresFora: violated,
		CriadoEm:        at,
	}
}

// Reading returns the stored indicator values.
func (h Historico) Reading() Reading {
	return Reading{
		PH:            h.PH,
		Temperatura:   h.Temperatura,
		Turbidez:      h.Turbidez,
		Cloro:         h.Cloro,
		OD:            h.OD,
		Condutividade: h.Condutividade,
		TDS:           h.TDS,
	}
}
