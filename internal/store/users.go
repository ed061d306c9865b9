package store

import (
	"context"

	"rentadmin/internal/api"
	"rentadmin/internal/events"
	"rentadmin/internal/media"
	"rentadmin/internal/models"

	"github.com/rs/zerolog"
)

// UserRepository is the transport contract the user store depends on.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int64) (models.User, error)
	Create(ctx context.Context, form *api.Form) (models.User, error)
	Update(ctx context.Context, id int64, form *api.Form) (models.User, error)
	Delete(ctx context.Context, id int64) error
}

// UserStore owns the canonical user collection.
type UserStore struct {
	*collection[models.User]

	repo     UserRepository
	resolver *media.Resolver
	bus      *events.EventBus
	logger   *zerolog.Logger
}

func NewUserStore(repo UserRepository, resolver *media.Resolver, bus *events.EventBus, logger *zerolog.Logger) *UserStore {
	return &UserStore{
		collection: newCollection(func(u models.User) int64 { return u.ID }),
		repo:       repo,
		resolver:   resolver,
		bus:        bus,
		logger:     logger,
	}
}

// FetchAll replaces the collection wholesale with the backend's list,
// media-resolved. On failure the stale items stay visible.
func (s *UserStore) FetchAll(ctx context.Context) error {
	seq := s.begin()
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("fetch users failed")
		s.settleErr(seq, "Failed to fetch users")
		return err
	}

	resolved := make([]models.User, len(users))
	for i, u := range users {
		resolved[i] = s.resolver.User(u)
	}
	s.settleList(seq, resolved)
	return nil
}

// FetchOne loads a single user into the singular slot, clearing it while
// the request is in flight.
func (s *UserStore) FetchOne(ctx context.Context, id int64) (models.User, error) {
	seq := s.beginSelect()
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", id).Msg("fetch user failed")
		s.settleErr(seq, "Failed to fetch user")
		return models.User{}, err
	}

	user = s.resolver.User(user)
	s.settleSelected(seq, user)
	return user, nil
}

// Create posts a multipart form and appends the server-assigned entity.
// Structured validation failures are retained as field errors.
func (s *UserStore) Create(ctx context.Context, form *api.Form) (models.User, error) {
	seq := s.claimSeq()
	s.clearFieldErrors()

	user, err := s.repo.Create(ctx, form)
	if err != nil {
		if ve, ok := api.AsValidation(err); ok {
			s.setFieldErrors(ve.Messages)
		}
		s.logger.Error().Err(err).Msg("create user failed")
		return models.User{}, err
	}

	user = s.resolver.User(user)
	s.settleAppend(seq, user)
	_ = s.bus.PublishJSON(events.EventUserCreated, events.EntityEventPayload{EntityID: user.ID, Name: user.Name})
	return user, nil
}

// Update replaces the matching item in place, index preserved.
func (s *UserStore) Update(ctx context.Context, id int64, form *api.Form) (models.User, error) {
	seq := s.claimSeq()
	s.clearFieldErrors()

	user, err := s.repo.Update(ctx, id, form)
	if err != nil {
		if ve, ok := api.AsValidation(err); ok {
			s.setFieldErrors(ve.Messages)
		}
		s.logger.Error().Err(err).Int64("user_id", id).Msg("update user failed")
		return models.User{}, err
	}

	user = s.resolver.User(user)
	s.settleReplace(seq, user)
	_ = s.bus.PublishJSON(events.EventUserUpdated, events.EntityEventPayload{EntityID: user.ID, Name: user.Name})
	return user, nil
}

// Remove deletes by id. A backend 404 counts as success: the entity is
// already gone.
func (s *UserStore) Remove(ctx context.Context, id int64) error {
	seq := s.claimSeq()
	if err := s.repo.Delete(ctx, id); err != nil && !api.IsNotFound(err) {
		s.logger.Error().Err(err).Int64("user_id", id).Msg("delete user failed")
		return err
	}
	s.settleRemove(seq, id)
	_ = s.bus.PublishJSON(events.EventUserDeleted, events.EntityEventPayload{EntityID: id})
	return nil
}
