package api

import (
	"context"
	"fmt"

	"rentadmin/internal/models"
)

// PropertiesService is the property repository over the REST backend.
type PropertiesService struct {
	client *Client
}

func (s *PropertiesService) List(ctx context.Context) ([]models.Property, error) {
	var properties []models.Property
	err := s.client.get(ctx, "/properties", &properties)
	track("properties", "list", err)
	if err != nil {
		return nil, err
	}
	return properties, nil
}

func (s *PropertiesService) Get(ctx context.Context, id int64) (models.Property, error) {
	var property models.Property
	err := s.client.get(ctx, fmt.Sprintf("/properties/%d", id), &property)
	err = asNotFound(err, "property", id)
	track("properties", "get", err)
	if err != nil {
		return models.Property{}, err
	}
	return property, nil
}

func (s *PropertiesService) Create(ctx context.Context, form *Form) (models.Property, error) {
	var property models.Property
	err := s.client.postForm(ctx, "/properties", form, &property)
	track("properties", "create", err)
	if err != nil {
		return models.Property{}, err
	}
	return property, nil
}

func (s *PropertiesService) Update(ctx context.Context, id int64, form *Form) (models.Property, error) {
	var property models.Property
	err := s.client.postForm(ctx, fmt.Sprintf("/properties/%d", id), form, &property)
	err = asNotFound(err, "property", id)
	track("properties", "update", err)
	if err != nil {
		return models.Property{}, err
	}
	return property, nil
}

func (s *PropertiesService) Delete(ctx context.Context, id int64) error {
	err := s.client.delete(ctx, fmt.Sprintf("/properties/%d", id))
	err = asNotFound(err, "property", id)
	track("properties", "delete", err)
	return err
}
