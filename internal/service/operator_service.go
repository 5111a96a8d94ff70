package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lotcast/lotcast/internal/models"
	"github.com/lotcast/lotcast/internal/repository"
)

type OperatorService interface {
	GetOperatorInfo(ctx context.Context, operatorID int64) (*models.Operator, error)
}

type operatorService struct {
	o repository.OperatorRepository
}

func NewOperatorService(o repository.OperatorRepository) OperatorService {
	return &operatorService{
		o: o,
	}
}

func (s *operatorService) GetOperatorInfo(ctx context.Context, operatorID int64) (*models.Operator, error) {
	operator, err := s.o.GetByID(ctx, operatorID)
	if err != nil {
		return nil, fmt.Errorf("error getting operator info")
	}

	if operator == nil {
		err = errors.New("Operator doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}

	return operator, nil
}
