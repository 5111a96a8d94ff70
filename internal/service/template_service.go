package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lotcast/lotcast/internal/models"
	"github.com/lotcast/lotcast/internal/repository"
	"github.com/lotcast/lotcast/internal/transfer"
)

type TemplateService interface {
	Create(ctx context.Context, dealershipID int64, t *transfer.TemplateUpdate) (int64, error)
	List(ctx context.Context, dealershipID int64, stage string) ([]*models.LifecycleTemplate, error)
	Update(ctx context.Context, dealershipID, templateID int64, t *transfer.TemplateUpdate) error
	Remove(ctx context.Context, dealershipID, templateID int64) error
}

type templateService struct {
	tr repository.TemplateRepository
}

func NewTemplateService(tr repository.TemplateRepository) TemplateService {
	return &templateService{
		tr: tr,
	}
}

func (s *templateService) Create(ctx context.Context, dealershipID int64, t *transfer.TemplateUpdate) (int64, error) {
	if err := validateTemplate(t); err != nil {
		return 0, err
	}

	id, err := s.tr.Create(ctx, &models.LifecycleTemplate{
		DealershipID: dealershipID,
		Stage:        t.Stage,
		Name:         t.Name,
		Body:         t.Body,
	})
	if err != nil {
		return 0, fmt.Errorf("error saving template")
	}

	return id, nil
}

func (s *templateService) List(ctx context.Context, dealershipID int64, stage string) ([]*models.LifecycleTemplate, error) {
	if stage != "" && !models.IsValidStage(stage) {
		err := fmt.Errorf("unknown stage %q", stage)
		slog.Info(err.Error())
		return nil, err
	}

	templates, err := s.tr.ListByDealershipID(ctx, dealershipID, stage)
	if err != nil {
		return nil, fmt.Errorf("error getting templates")
	}
	return templates, nil
}

func (s *templateService) Update(ctx context.Context, dealershipID, templateID int64, t *transfer.TemplateUpdate) error {
	if err := validateTemplate(t); err != nil {
		return err
	}

	if err := s.checkOwned(ctx, dealershipID, templateID); err != nil {
		return err
	}

	err := s.tr.Update(ctx, &models.LifecycleTemplate{
		ID:    templateID,
		Stage: t.Stage,
		Name:  t.Name,
		Body:  t.Body,
	})
	if err != nil {
		return fmt.Errorf("error updating template")
	}
	return nil
}

func (s *templateService) Remove(ctx context.Context, dealershipID, templateID int64) error {
	if err := s.checkOwned(ctx, dealershipID, templateID); err != nil {
		return err
	}

	if err := s.tr.Remove(ctx, templateID); err != nil {
		return fmt.Errorf("error removing template")
	}
	return nil
}

func (s *templateService) checkOwned(ctx context.Context, dealershipID, templateID int64) error {
	var err error

	if templateID == 0 {
		err = errors.New("TemplateID is not valid")
		slog.Info(err.Error())
		return err
	}

	isValid, err := s.tr.CheckByDealershipID(ctx, templateID, dealershipID)
	if err != nil {
		return err
	}

	if !isValid {
		err = errors.New("Template doesn't exist")
		slog.Info(err.Error())
		return err
	}

	return nil
}

func validateTemplate(t *transfer.TemplateUpdate) error {
	if !models.IsValidStage(t.Stage) {
		err := fmt.Errorf("unknown stage %q", t.Stage)
		slog.Info(err.Error())
		return err
	}
	if t.Name == "" || t.Body == "" {
		err := errors.New("template name and body cannot be empty")
		slog.Info(err.Error())
		return err
	}
	return nil
}
