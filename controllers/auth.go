package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lexpaixao/WaterQuality/models"
	"github.com/lexpaixao/WaterQuality/repository"
	"github.com/lexpaixao/WaterQuality/utils"
)

// Cadastro registers a new user.
func (h *Handler) Cadastro(c *gin.Context) {
	var req models.CadastroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Preencha todos os campos"})
		return
	}
	nome := strings.TrimSpace(req.NomeUsuario)
	email := strings.TrimSpace(req.Email)
	if nome == "" || email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Preencha todos os campos"})
		return
	}

	hashed, err := h.Auth.HashPassword(req.Senha)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Senha deve ter no máximo 72 bytes"})
		return
	}
	if err != nil {
		h.internalError(c, "failed to hash password", err)
		return
	}

	id, err := h.Store.CreateUser(c.Request.Context(), nome, email, hashed)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Email já cadastrado"})
		return
	}
	if err != nil {
		h.internalError(c, "failed to create user", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"mensagem": "Usuário cadastrado com sucesso", "id": id})
}

// Login checks credentials and returns a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Preencha todos os campos"})
		return
	}

	user, err := h.Store.FindUserByEmail(c.Request.Context(), strings.TrimSpace(req.Email))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Usuário não encontrado"})
		return
	}
	if err != nil {
		h.internalError(c, "failed to look up user", err)
		return
	}

	if !h.Auth.VerifyPassword(req.Senha, user.Senha) {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Senha incorreta"})
		return
	}

	token, err := h.Auth.IssueToken(user.ID)
	if err != nil {
		h.internalError(c, "failed to issue token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Perfil returns the caller's account and a summary of their analyses.
func (h *Handler) Perfil(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	user, err := h.Store.FindUserByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Usuário não encontrado"})
		return
	}
	if err != nil {
		h.internalError(c, "failed to load profile", err)
		return
	}

	total, err := h.Store.CountHistory(ctx, userID, false)
	if err != nil {
		h.internalError(c, "failed to count history", err)
		return
	}
	fora, err := h.Store.CountHistory(ctx, userID, true)
	if err != nil {
		h.internalError(c, "failed to count history", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             user.ID,
		"nome_usuario":   user.NomeUsuario,
		"email":          user.Email,
		"criado_em":      user.CriadoEm,
		"total_analises": total,
		"analises_fora":  fora,
	})
}

