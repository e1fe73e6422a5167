package sitesvc

import (
	"context"
	"errors"
	"fmt"

	"github.com/waveshop/waveshop/internal/domain/site"
)

var ErrInvalidInput = errors.New("site: invalid input")

type IDGenerator interface {
	NewID() string
}

type Service struct {
	infos site.Repository
	ids   IDGenerator
}

func NewService(infos site.Repository, ids IDGenerator) *Service {
	return &Service{infos: infos, ids: ids}
}

type InfoInput struct {
	Address string
	Hours   string
	Phone   string
	Email   string
}

func (s *Service) Create(ctx context.Context, in InfoInput) (*site.Info, error) {
	if in.Address == "" || in.Email == "" {
		return nil, fmt.Errorf("%w: address and email are required", ErrInvalidInput)
	}
	info := &site.Info{
		ID:      s.ids.NewID(),
		Address: in.Address,
		Hours:   in.Hours,
		Phone:   in.Phone,
		Email:   in.Email,
	}
	if err := s.infos.Insert(ctx, info); err != nil {
		return nil, err
	}
	return info, nil
}

// Get returns the stored document, or an empty one when none exists yet
// (the storefront renders an empty footer rather than an error).
func (s *Service) Get(ctx context.Context) (*site.Info, error) {
	info, err := s.infos.Get(ctx)
	if errors.Is(err, site.ErrNotFound) {
		return &site.Info{}, nil
	}
	return info, err
}

func (s *Service) Update(ctx context.Context, id string, in InfoInput) (*site.Info, error) {
	return s.infos.Update(ctx, id, &site.Info{
		Address: in.Address,
		Hours:   in.Hours,
		Phone:   in.Phone,
		Email:   in.Email,
	})
}
