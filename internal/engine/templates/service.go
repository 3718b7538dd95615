package templates

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateTemplate(req *Template) (*Template, error) {
	if err := ValidateTemplate(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByName(req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("template name already taken")
	}

	now := time.Now().Unix()
	t := &Template{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		SymbolKind:  req.SymbolKind,
		Compose:     req.Compose,
		Layout:      req.Layout,
		Status:      "active",
		CreatedBy:   req.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if t.SymbolKind == "" {
		t.SymbolKind = "code128"
	}

	if err := s.repo.Create(t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) GetTemplate(id string) (*Template, error) {
	return s.repo.GetByID(id)
}

func (s *Service) UpdateTemplate(id string, updates *Template) (*Template, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errors.New("template not found")
	}

	if updates.Name != "" {
		existing.Name = updates.Name
	}
	if updates.Code != "" {
		existing.Code = updates.Code
	}
	if updates.Description != "" {
		existing.Description = updates.Description
	}
	if updates.SymbolKind != "" {
		existing.SymbolKind = updates.SymbolKind
	}
	if updates.Compose != (Template{}).Compose {
		existing.Compose = updates.Compose
	}
	if updates.Layout != (Template{}).Layout {
		existing.Layout = updates.Layout
	}

	if err := ValidateTemplate(existing); err != nil {
		return nil, err
	}

	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}

	return existing, nil
}

func (s *Service) ArchiveTemplate(id string) error {
	return s.repo.Delete(id)
}

func (s *Service) ListTemplates(limit, offset int) ([]*Template, error) {
	return s.repo.List(limit, offset)
}
