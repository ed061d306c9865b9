package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"rentadmin/internal/models"
)

// UsersService is the user repository over the REST backend.
type UsersService struct {
	client *Client
}

func (s *UsersService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.client.get(ctx, "/users", &users)
	track("users", "list", err)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UsersService) Get(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	err := s.client.get(ctx, fmt.Sprintf("/users/%d", id), &user)
	err = asNotFound(err, "user", id)
	track("users", "get", err)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UsersService) Create(ctx context.Context, form *Form) (models.User, error) {
	var user models.User
	err := s.client.postForm(ctx, "/users", form, &user)
	track("users", "create", err)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Update posts a partial multipart body; the backend uses POST on the
// entity path so file fields can ride along.
func (s *UsersService) Update(ctx context.Context, id int64, form *Form) (models.User, error) {
	var user models.User
	err := s.client.postForm(ctx, fmt.Sprintf("/users/%d", id), form, &user)
	err = asNotFound(err, "user", id)
	track("users", "update", err)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UsersService) Delete(ctx context.Context, id int64) error {
	err := s.client.delete(ctx, fmt.Sprintf("/users/%d", id))
	err = asNotFound(err, "user", id)
	track("users", "delete", err)
	return err
}

// asNotFound converts a bare 404 transport error into a typed
// NotFoundError for the given entity.
func asNotFound(err error, resource string, id int64) error {
	var te *TransportError
	if errors.As(err, &te) && te.Status == http.StatusNotFound {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return err
}
