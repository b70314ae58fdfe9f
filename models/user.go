package models

import "time"

// Usuario is a registered account. Senha holds the bcrypt hash only.
type Usuario struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	NomeUsuario string    `json:"nome_usuario" gorm:"column:nome_usuario;size:100;not null"`
	Email       string    `json:"email" gorm:"size:100;uniqueIndex;not null"`
	Senha       string    `json:"-" gorm:"size:255;not null"`
	CriadoEm    time.Time `json:"criado_em" gorm:"column:criado_em;autoCreateTime"`
}

func (Usuario) TableName() string {
	return "usuarios"
}

// CadastroRequest is the body of POST /api/cadastro.
type CadastroRequest struct {
	NomeUsuario string `json:"nome_usuario" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Senha       string `json:"senha" binding:"required"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email string `json:"email" binding:"required"`
	Senha string `json:"senha" binding:"required"`
}
