package http

import (
	"github.com/baliestri/calliope/internal/logger"
	"github.com/baliestri/calliope/internal/service"
	"github.com/baliestri/calliope/internal/validators"
)

type Handler struct {
	services  *service.Services
	validator validators.UserValidator

	logger *logger.Logger
}

func NewHandler(services *service.Services, validator validators.UserValidator, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		validator: validator,
		logger:    logger,
	}
}
