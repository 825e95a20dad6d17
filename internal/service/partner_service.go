package service

import (
	"context"
	"errors"
	"fmt"

	"soukbot-be/internal/dto"
	"soukbot-be/internal/entity"
	"soukbot-be/internal/pkg/logger"
	"soukbot-be/internal/repository/specification"
	"soukbot-be/internal/repository/unitofwork"
	"soukbot-be/pkg/commerce"
	"soukbot-be/pkg/monitoring"

	"github.com/google/uuid"
)

var ErrPartnerNotFound = errors.New("partner not found")

// IPartnerService exposes direct partner search, bypassing the
// conversational flow, plus the administrative catalog operations.
type IPartnerService interface {
	SearchPartners(ctx context.Context, req *dto.SearchPartnersRequest) (*dto.SearchPartnersResponse, error)
	GetCities(ctx context.Context) (*dto.CitiesResponse, error)
	GetProductTypes(ctx context.Context) (*dto.ProductTypesResponse, error)
	CreatePartner(ctx context.Context, req *dto.CreatePartnerRequest) (*dto.PartnerDTO, error)
	UpdatePartner(ctx context.Context, id uuid.UUID, req *dto.UpdatePartnerRequest) (*dto.PartnerDTO, error)
	DeletePartner(ctx context.Context, id uuid.UUID) error
}

type partnerService struct {
	uowFactory unitofwork.RepositoryFactory
	searcher   *commerce.Searcher
	sink       monitoring.Sink
	logger     logger.ILogger
}

func NewPartnerService(uowFactory unitofwork.RepositoryFactory, searcher *commerce.Searcher, sink monitoring.Sink, logger logger.ILogger) IPartnerService {
	return &partnerService{
		uowFactory: uowFactory,
		searcher:   searcher,
		sink:       sink,
		logger:     logger,
	}
}

func (s *partnerService) SearchPartners(ctx context.Context, req *dto.SearchPartnersRequest) (*dto.SearchPartnersResponse, error) {
	result := s.searcher.Search(ctx, commerce.Criteria{
		ProductType: req.ProductType,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		City:        req.City,
		Country:     req.Country,
	})

	partners := make([]dto.PartnerDTO, len(result.Partners))
	for i, p := range result.Partners {
		id, _ := uuid.Parse(p.ID)
		partners[i] = dto.PartnerDTO{
			Id:            id,
			Name:          p.Name,
			Description:   p.Description,
			Website:       p.Website,
			City:          p.City,
			Country:       p.Country,
			PriceRangeMin: p.PriceRangeMin,
			PriceRangeMax: p.PriceRangeMax,
			ProductTypes:  p.ProductTypes,
			Latitude:      p.Latitude,
			Longitude:     p.Longitude,
		}
	}

	return &dto.SearchPartnersResponse{
		Success:  result.Success,
		Partners: partners,
		Count:    result.Count,
	}, nil
}

func (s *partnerService) GetCities(ctx context.Context) (*dto.CitiesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	cities, err := uow.PartnerRepository().GetCities(ctx)
	if err != nil {
		s.sink.RecordError("partner_cities", "partner_service")
		return nil, err
	}
	return &dto.CitiesResponse{Cities: cities}, nil
}

func (s *partnerService) GetProductTypes(ctx context.Context) (*dto.ProductTypesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	types, err := uow.PartnerRepository().GetProductTypes(ctx)
	if err != nil {
		s.sink.RecordError("partner_product_types", "partner_service")
		return nil, err
	}
	return &dto.ProductTypesResponse{ProductTypes: types}, nil
}

func (s *partnerService) CreatePartner(ctx context.Context, req *dto.CreatePartnerRequest) (*dto.PartnerDTO, error) {
	partner := &entity.Partner{
		Name:          req.Name,
		Description:   req.Description,
		Website:       req.Website,
		City:          req.City,
		Country:       req.Country,
		PriceRangeMin: req.PriceRangeMin,
		PriceRangeMax: req.PriceRangeMax,
		ProductTypes:  req.ProductTypes,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.PartnerRepository().Create(ctx, partner); err != nil {
		return nil, fmt.Errorf("failed to create partner: %w", err)
	}

	s.logger.Info("partner", "partner created", map[string]interface{}{
		"partner_id": partner.Id.String(),
		"name":       partner.Name,
	})
	return toPartnerDTO(partner), nil
}

func (s *partnerService) UpdatePartner(ctx context.Context, id uuid.UUID, req *dto.UpdatePartnerRequest) (*dto.PartnerDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.PartnerRepository()

	partner, err := repo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, ErrPartnerNotFound
	}

	if req.Name != "" {
		partner.Name = req.Name
	}
	if req.Description != "" {
		partner.Description = req.Description
	}
	if req.Website != "" {
		partner.Website = req.Website
	}
	if req.City != "" {
		partner.City = req.City
	}
	if req.Country != "" {
		partner.Country = req.Country
	}
	if req.PriceRangeMin != nil {
		partner.PriceRangeMin = *req.PriceRangeMin
	}
	if req.PriceRangeMax != nil {
		partner.PriceRangeMax = *req.PriceRangeMax
	}
	if req.ProductTypes != nil {
		partner.ProductTypes = req.ProductTypes
	}
	if req.Latitude != nil {
		partner.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		partner.Longitude = *req.Longitude
	}

	if err := repo.Update(ctx, partner); err != nil {
		return nil, fmt.Errorf("failed to update partner: %w", err)
	}
	return toPartnerDTO(partner), nil
}

func (s *partnerService) DeletePartner(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.PartnerRepository()

	partner, err := repo.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if partner == nil {
		return ErrPartnerNotFound
	}

	if err := repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete partner: %w", err)
	}
	s.logger.Info("partner", "partner deleted", map[string]interface{}{
		"partner_id": id.String(),
	})
	return nil
}

func toPartnerDTO(p *entity.Partner) *dto.PartnerDTO {
	return &dto.PartnerDTO{
		Id:            p.Id,
		Name:          p.Name,
		Description:   p.Description,
		Website:       p.Website,
		City:          p.City,
		Country:       p.Country,
		PriceRangeMin: p.PriceRangeMin,
		PriceRangeMax: p.PriceRangeMax,
		ProductTypes:  p.ProductTypes,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
	}
}
