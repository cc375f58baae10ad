package service

import (
	"context"
	"errors"
	"strings"

	"parqueo_api/internal/domain"
	"parqueo_api/internal/logger"
	"parqueo_api/internal/repository"

	"github.com/sirupsen/logrus"
)

// FacilityService manages zones and the spaces inside them.
type FacilityService struct {
	zones   repository.ZoneRepository
	spaces  repository.SpaceRepository
	tickets repository.TicketRepository
}

func NewFacilityService(zones repository.ZoneRepository, spaces repository.SpaceRepository, tickets repository.TicketRepository) *FacilityService {
	return &FacilityService{zones: zones, spaces: spaces, tickets: tickets}
}

// --- Zones ---

func (s *FacilityService) CreateZone(ctx context.Context, dto domain.ZoneDTO) (*domain.Zone, error) {
	if strings.TrimSpace(dto.Nombre) == "" {
		return nil, domain.NewValidationError("nombre is required")
	}
	return s.zones.Create(ctx, &domain.Zone{
		Nombre:      strings.TrimSpace(dto.Nombre),
		Descripcion: domain.NullString(dto.Descripcion),
	})
}

func (s *FacilityService) GetZone(ctx context.Context, id int) (*domain.ZoneDetail, error) {
	z, err := s.zones.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrZoneNotFound)
	}
	return z, nil
}

func (s *FacilityService) ListZones(ctx context.Context) ([]domain.ZoneDetail, error) {
	return s.zones.List(ctx)
}

func (s *FacilityService) UpdateZone(ctx context.Context, id int, dto domain.ZoneDTO) (*domain.Zone, error) {
	if strings.TrimSpace(dto.Nombre) == "" {
		return nil, domain.NewValidationError("nombre is required")
	}
	z, err := s.zones.Update(ctx, &domain.Zone{
		ID:          id,
		Nombre:      strings.TrimSpace(dto.Nombre),
		Descripcion: domain.NullString(dto.Descripcion),
	})
	if err != nil {
		return nil, notFound(err, domain.ErrZoneNotFound)
	}
	return z, nil
}

// DeleteZone refuses while the zone still has spaces.
func (s *FacilityService) DeleteZone(ctx context.Context, id int) error {
	if _, err := s.GetZone(ctx, id); err != nil {
		return err
	}
	n, err := s.spaces.CountByZone(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrInUse("zone", n, "spaces")
	}
	return notFound(s.zones.Delete(ctx, id), domain.ErrZoneNotFound)
}

// --- Spaces ---

func (s *FacilityService) CreateSpace(ctx context.Context, dto domain.SpaceDTO) (*domain.Space, error) {
	space, err := s.spaceFromDTO(ctx, dto, 0)
	if err != nil {
		return nil, err
	}
	space.Disponible = true
	if dto.Disponible != nil {
		space.Disponible = *dto.Disponible
	}
	return s.spaces.Create(ctx, space)
}

func (s *FacilityService) GetSpace(ctx context.Context, id int) (*domain.SpaceDetail, error) {
	sp, err := s.spaces.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrSpaceNotFound)
	}
	return sp, nil
}

func (s *FacilityService) ListSpaces(ctx context.Context, filter domain.SpaceFilterDTO) ([]domain.SpaceDetail, error) {
	return s.spaces.List(ctx, filter)
}

func (s *FacilityService) ListAvailableSpaces(ctx context.Context, filter domain.SpaceFilterDTO) ([]domain.SpaceDetail, error) {
	return s.spaces.ListAvailable(ctx, filter)
}

func (s *FacilityService) UpdateSpace(ctx context.Context, id int, dto domain.SpaceDTO) (*domain.Space, error) {
	current, err := s.GetSpace(ctx, id)
	if err != nil {
		return nil, err
	}
	space, err := s.spaceFromDTO(ctx, dto, id)
	if err != nil {
		return nil, err
	}
	space.ID = id
	space.Disponible = current.Disponible
	if dto.Disponible != nil {
		space.Disponible = *dto.Disponible
	}
	updated, err := s.spaces.Update(ctx, space)
	if err != nil {
		return nil, notFound(err, domain.ErrSpaceNotFound)
	}
	return updated, nil
}

// SetAvailability is the manual override of a space's disponible flag.
func (s *FacilityService) SetAvailability(ctx context.Context, id int, available bool) (*domain.SpaceDetail, error) {
	if err := s.spaces.SetAvailability(ctx, id, available); err != nil {
		return nil, notFound(err, domain.ErrSpaceNotFound)
	}
	logger.FromContext(ctx).WithFields(logrus.Fields{"espacio_id": id, "disponible": available}).Info("space availability overridden")
	return s.GetSpace(ctx, id)
}

// DeleteSpace refuses while tickets reference the space.
func (s *FacilityService) DeleteSpace(ctx context.Context, id int) error {
	if _, err := s.GetSpace(ctx, id); err != nil {
		return err
	}
	n, err := s.tickets.CountBySpace(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrInUse("space", n, "tickets")
	}
	return notFound(s.spaces.Delete(ctx, id), domain.ErrSpaceNotFound)
}

// spaceFromDTO validates the zone and code. selfID is the space being
// updated, which may keep its own code.
func (s *FacilityService) spaceFromDTO(ctx context.Context, dto domain.SpaceDTO, selfID int) (*domain.Space, error) {
	code := domain.NormalizeSpaceCode(dto.Codigo)
	if dto.ZonaID <= 0 || code == "" {
		return nil, domain.NewValidationError("zona_id and codigo are required")
	}
	if _, err := s.zones.FindByID(ctx, dto.ZonaID); err != nil {
		return nil, notFound(err, domain.ErrZoneNotFound)
	}
	existing, err := s.spaces.FindByCode(ctx, code)
	switch {
	case err == nil && existing.ID != selfID:
		return nil, domain.ErrDuplicateSpaceCode
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}
	return &domain.Space{ZonaID: dto.ZonaID, Codigo: code}, nil
}
