package controllers

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lexpaixao/WaterQuality/models"
	"github.com/lexpaixao/WaterQuality/utils"
)

const csvTimeLayout = "2006-01-02 15:04:05"

// Processar evaluates a reading, stores it in the caller's history and
// returns the verdict.
func (h *Handler) Processar(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var input models.ReadingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Todos os campos são obrigatórios e devem ser numéricos"})
		return
	}

	reading := input.Reading()
	verdict := utils.Evaluate(reading)

	if _, err := h.Store.InsertHistory(c.Request.Context(), userID, reading, verdict, h.Now()); err != nil {
		h.internalError(c, "failed to store history", err)
		return
	}
	h.Metrics.ObserveEvaluation(verdict.Status)

	c.JSON(http.StatusOK, verdict)
}

// Historico returns the caller's analyses, newest first.
func (h *Handler) Historico(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	records, err := h.Store.ListHistory(c.Request.Context(), userID)
	if err != nil {
		h.internalError(c, "failed to list history", err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// HistoricoCSV sends the caller's analyses as a CSV attachment.
func (h *Handler) HistoricoCSV(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	records, err := h.Store.ListHistory(c.Request.Context(), userID)
	if err != nil {
		h.internalError(c, "failed to list history", err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", "attachment; filename=historico.csv")
	c.Status(http.StatusOK)

	writer := csv.NewWriter(c.Writer)
	writer.Write([]string{
		"criado_em", "ph", "temperatura", "turbidez", "cloro", "od",
		"condutividade", "tds", "status_geral", "indicadores_fora",
	})
	for _, record := range records {
		writer.Write([]string{
			record.CriadoEm.Format(csvTimeLayout),
			formatFloat(record.PH),
			formatFloat(record.Temperatura),
			formatFloat(record.Turbidez),
			formatFloat(record.Cloro),
			formatFloat(record.OD),
			formatFloat(record.Condutividade),
			formatFloat(record.TDS),
			record.StatusGeral,
			strings.Join(record.IndicadoresFora, "; "),
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		h.Log.WithError(err).Warn("failed to write csv")
	}
}

// Limites publishes the threshold table used by Processar.
func (h *Handler) Limites(c *gin.Context) {
	c.JSON(http.StatusOK, utils.Thresholds())
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
