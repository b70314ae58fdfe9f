package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lexpaixao/WaterQuality/middlewares"
	"github.com/lexpaixao/WaterQuality/repository"
	"github.com/lexpaixao/WaterQuality/utils"
	"github.com/sirupsen/logrus"
)

// Handler serves the API. Its dependencies are injected at startup.
type Handler struct {
	Store   repository.Store
	Auth    *utils.Authenticator
	Log     *logrus.Logger
	Metrics *middlewares.Metrics
	Now     func() time.Time
}

func NewHandler(store repository.Store, auth *utils.Authenticator, log *logrus.Logger, metrics *middlewares.Metrics) *Handler {
	return &Handler{
		Store:   store,
		Auth:    auth,
		Log:     log,
		Metrics: metrics,
		Now:     time.Now,
	}
}

// internalError logs err with the request id and answers 500 without
// leaking details to the client.
func (h *Handler) internalError(c *gin.Context, msg string, err error) {
	h.Log.WithFields(logrus.Fields{
		"request_id": middlewares.RequestID(c),
		"path":       c.FullPath(),
	}).WithError(err).Error(msg)
	c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro interno do servidor"})
}

func (h *Handler) currentUser(c *gin.Context) (uint, bool) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"erro": "Não autorizado"})
		return 0, false
	}
	return userID, true
}
