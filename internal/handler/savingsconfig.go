package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ahorraya/savings-backend/internal/domain"
	"github.com/ahorraya/savings-backend/internal/logging"
)

type configService interface {
	CreateDefaultConfig(ctx context.Context, userID uuid.UUID) (*domain.SavingsConfig, error)
	Activate(ctx context.Context, configID uuid.UUID) (*domain.SavingsConfig, error)
	Deactivate(ctx context.Context, configID uuid.UUID) (*domain.SavingsConfig, error)
	GetByID(ctx context.Context, configID uuid.UUID) (*domain.SavingsConfig, error)
	GetActiveConfig(ctx context.Context, userID uuid.UUID) (*domain.SavingsConfig, error)
}

type ConfigHandler struct {
	configs configService
}

func NewConfigHandler(configs configService) *ConfigHandler {
	return &ConfigHandler{configs: configs}
}

type configDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Active    bool      `json:"active"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

func toConfigDTO(c *domain.SavingsConfig) configDTO {
	return configDTO{
		ID:        c.ID,
		UserID:    c.UserID,
		Active:    c.Active,
		Version:   c.Version,
		CreatedAt: c.CreatedAt,
	}
}

func (h *ConfigHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, appErr := ownerFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	cfg, err := h.configs.CreateDefaultConfig(r.Context(), userID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to create savings config", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toConfigDTO(cfg))
}

func (h *ConfigHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	userID, appErr := ownerFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	cfg, err := h.configs.GetActiveConfig(r.Context(), userID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toConfigDTO(cfg))
}

func (h *ConfigHandler) Activate(w http.ResponseWriter, r *http.Request) {
	cfg, appErr := h.ownedConfig(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	updated, err := h.configs.Activate(r.Context(), cfg.ID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toConfigDTO(updated))
}

func (h *ConfigHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	cfg, appErr := h.ownedConfig(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	updated, err := h.configs.Deactivate(r.Context(), cfg.ID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toConfigDTO(updated))
}

func (h *ConfigHandler) ownedConfig(r *http.Request) (*domain.SavingsConfig, *AppError) {
	userID, appErr := ownerFromPath(r)
	if appErr != nil {
		return nil, appErr
	}

	configID, err := uuid.Parse(r.PathValue("configID"))
	if err != nil {
		return nil, ErrResourceNotFound
	}

	cfg, svcErr := h.configs.GetByID(r.Context(), configID)
	if svcErr != nil {
		return nil, ErrResourceNotFound
	}
	if cfg.UserID != userID {
		return nil, ErrResourceNotFound
	}
	return cfg, nil
}
