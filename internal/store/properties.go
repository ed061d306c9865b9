package store

import (
	"context"

	"rentadmin/internal/api"
	"rentadmin/internal/events"
	"rentadmin/internal/media"
	"rentadmin/internal/models"

	"github.com/rs/zerolog"
)

// PropertyRepository is the transport contract the property store depends on.
type PropertyRepository interface {
	List(ctx context.Context) ([]models.Property, error)
	Get(ctx context.Context, id int64) (models.Property, error)
	Create(ctx context.Context, form *api.Form) (models.Property, error)
	Update(ctx context.Context, id int64, form *api.Form) (models.Property, error)
	Delete(ctx context.Context, id int64) error
}

// PropertyStore owns the canonical property collection.
type PropertyStore struct {
	*collection[models.Property]

	repo     PropertyRepository
	resolver *media.Resolver
	bus      *events.EventBus
	logger   *zerolog.Logger
}

func NewPropertyStore(repo PropertyRepository, resolver *media.Resolver, bus *events.EventBus, logger *zerolog.Logger) *PropertyStore {
	return &PropertyStore{
		collection: newCollection(func(p models.Property) int64 { return p.ID }),
		repo:       repo,
		resolver:   resolver,
		bus:        bus,
		logger:     logger,
	}
}

func (s *PropertyStore) FetchAll(ctx context.Context) error {
	seq := s.begin()
	properties, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("fetch properties failed")
		s.settleErr(seq, "Failed to fetch properties")
		return err
	}

	resolved := make([]models.Property, len(properties))
	for i, p := range properties {
		resolved[i] = s.resolver.Property(p)
	}
	s.settleList(seq, resolved)
	return nil
}

func (s *PropertyStore) FetchOne(ctx context.Context, id int64) (models.Property, error) {
	seq := s.beginSelect()
	property, err := s.repo.Get(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("property_id", id).Msg("fetch property failed")
		s.settleErr(seq, "Failed to fetch property")
		return models.Property{}, err
	}

	property = s.resolver.Property(property)
	s.settleSelected(seq, property)
	return property, nil
}

func (s *PropertyStore) Create(ctx context.Context, form *api.Form) (models.Property, error) {
	seq := s.claimSeq()
	s.clearFieldErrors()

	property, err := s.repo.Create(ctx, form)
	if err != nil {
		if ve, ok := api.AsValidation(err); ok {
			s.setFieldErrors(ve.Messages)
		}
		s.logger.Error().Err(err).Msg("create property failed")
		return models.Property{}, err
	}

	property = s.resolver.Property(property)
	s.settleAppend(seq, property)
	_ = s.bus.PublishJSON(events.EventPropertyCreated, events.EntityEventPayload{EntityID: property.ID, Name: property.Name})
	return property, nil
}

func (s *PropertyStore) Update(ctx context.Context, id int64, form *api.Form) (models.Property, error) {
	seq := s.claimSeq()
	s.clearFieldErrors()

	property, err := s.repo.Update(ctx, id, form)
	if err != nil {
		if ve, ok := api.AsValidation(err); ok {
			s.setFieldErrors(ve.Messages)
		}
		s.logger.Error().Err(err).Int64("property_id", id).Msg("update property failed")
		return models.Property{}, err
	}

	property = s.resolver.Property(property)
	s.settleReplace(seq, property)
	_ = s.bus.PublishJSON(events.EventPropertyUpdated, events.EntityEventPayload{EntityID: property.ID, Name: property.Name})
	return property, nil
}

func (s *PropertyStore) Remove(ctx context.Context, id int64) error {
	seq := s.claimSeq()
	if err := s.repo.Delete(ctx, id); err != nil && !api.IsNotFound(err) {
		s.logger.Error().Err(err).Int64("property_id", id).Msg("delete property failed")
		return err
	}
	s.settleRemove(seq, id)
	_ = s.bus.PublishJSON(events.EventPropertyDeleted, events.EntityEventPayload{EntityID: id})
	return nil
}
