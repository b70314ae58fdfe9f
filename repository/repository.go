// Package repository stores users and their evaluation history.
//
// It wraps a *gorm.DB opened by the caller and works on both PostgreSQL
// (production) and SQLite (local runs and tests).
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lexpaixao/WaterQuality/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrNotFound       = errors.New("record not found")
)

// Store is the persistence surface the HTTP handlers depend on.
type Store interface {
	CreateUser(ctx context.Context, nome, email, senhaHash string) (uint, error)
	FindUserByEmail(ctx context.Context, email string) (*models.Usuario, error)
	FindUserByID(ctx context.Context, id uint) (*models.Usuario, error)
	InsertHistory(ctx context.Context, userID uint, r models.Reading, v models.Verdict, at time.Time) (uint, error)
	ListHistory(ctx context.Context, userID uint) ([]models.Historico, error)
	CountHistory(ctx context.Context, userID uint, foraOnly bool) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// Repository implements Store on gorm.
type Repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Open wraps db and migrates it. On failure db is closed before returning.
func Open(db *gorm.DB) (*Repository, error) {
	repo := New(db)
	if err := repo.Migrate(); err != nil {
		if cerr := repo.Close(); cerr != nil {
			return nil, errors.Join(err, cerr)
		}
		return nil, err
	}
	return repo, nil
}

// Migrate creates the usuarios and historico tables if they are missing.
func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(&models.Usuario{}, &models.Historico{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (r *Repository) CreateUser(ctx context.Context, nome, email, senhaHash string) (uint, error) {
	var existing int64
	if err := r.db.WithContext(ctx).Model(&models.Usuario{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return 0, fmt.Errorf("check email: %w", err)
	}
	if existing > 0 {
		return 0, ErrDuplicateEmail
	}

	// The unique index still guards concurrent signups.
	user := models.Usuario{NomeUsuario: nome, Email: email, Senha: senhaHash}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return user.ID, nil
}

func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	var user models.Usuario
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (r *Repository) FindUserByID(ctx context.Context, id uint) (*models.Usuario, error) {
	var user models.Usuario
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	return &user, nil
}

func (r *Repository) InsertHistory(ctx context.Context, userID uint, reading models.Reading, verdict models.Verdict, at time.Time) (uint, error) {
	record := models.NewHistorico(userID, reading, verdict, at)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&record).Error; err != nil {
		return 0, fmt.Errorf("insert history: %w", err)
	}
	return record.ID, nil
}

// ListHistory returns the user's records, newest first.
func (r *Repository) ListHistory(ctx context.Context, userID uint) ([]models.Historico, error) {
	records := []models.Historico{}
	err := r.db.WithContext(ctx).
		Where("usuario_id = ?", userID).
		Order("criado_em desc").
		Order("id desc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return records, nil
}

// CountHistory counts the user's records; foraOnly restricts it to readings
// outside the potability standard.
func (r *Repository) CountHistory(ctx context.Context, userID uint, foraOnly bool) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Historico{}).Where("usuario_id = ?", userID)
	if foraOnly {
		query = query.Where("indicadores_fora <> ?", "")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return count, nil
}

func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ Store = (*Repository)(nil)
