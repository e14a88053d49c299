package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/weiawesome/wes-storefront-gateway/internal/audit"
	"github.com/weiawesome/wes-storefront-gateway/internal/domain"
	"github.com/weiawesome/wes-storefront-gateway/internal/notify"
	"github.com/weiawesome/wes-storefront-gateway/internal/repository"
	"github.com/weiawesome/wes-storefront-gateway/pkg/log"
)

type customerServiceImpl struct {
	repo      repository.CustomerRepository
	favorites FavoriteService
	notifier  notify.Notifier
}

// NewCustomerService creates a new customer service.
func NewCustomerService(repo repository.CustomerRepository, favorites FavoriteService, notifier notify.Notifier) CustomerService {
	return &customerServiceImpl{
		repo:      repo,
		favorites: favorites,
		notifier:  notifier,
	}
}

func (s *customerServiceImpl) Create(ctx context.Context, req *domain.CreateCustomerRequest) (*domain.Customer, error) {
	l := log.Ctx(ctx)
	id := strings.TrimSpace(req.CustomerID)

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		l.Error().Err(err).Str(log.FieldCustomerID, id).Msg("failed to check customer existence")
		return nil, err
	}
	if exists {
		return nil, ErrCustomerExists
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	customer := &domain.Customer{
		ID:            id,
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Role:          req.Role,
		Phone:         strings.TrimSpace(req.Phone),
		CompanyName:   strings.TrimSpace(req.CompanyName),
		Website:       strings.TrimSpace(req.Website),
		EmployeeCount: req.EmployeeCount,
		Country:       strings.ToUpper(strings.TrimSpace(req.Country)),
		Tags:          tags,
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrCustomerExists) {
			return nil, ErrCustomerExists
		}
		l.Error().Err(err).Str(log.FieldCustomerID, id).Msg("failed to create customer")
		return nil, err
	}

	audit.LogWithDetail(ctx, audit.ActionCustomerCreate, customer.ID, customer.Role, "customer created")

	s.notifier.CustomerRegistered(ctx, customer)

	return customer, nil
}

func (s *customerServiceImpl) Get(ctx context.Context, id string, includeLists bool) (*domain.CustomerDetail, error) {
	l := log.Ctx(ctx)

	var (
		customer *domain.Customer
		lists    []domain.FavoriteList
		getErr   error
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		customer, getErr = s.repo.GetByID(gCtx, id)
		return getErr
	})

	if includeLists {
		g.Go(func() error {
			var err error
			lists, err = s.favorites.GetLists(gCtx, id)
			return err
		})
	}

	err := g.Wait()
	// A missing record wins over a lists failure.
	if errors.Is(getErr, repository.ErrCustomerNotFound) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		l.Error().Err(err).Str(log.FieldCustomerID, id).Msg("failed to get customer")
		return nil, err
	}

	detail := &domain.CustomerDetail{Customer: *customer}
	if includeLists {
		if lists == nil {
			lists = []domain.FavoriteList{}
		}
		detail.Lists = lists
	}
	return detail, nil
}

func (s *customerServiceImpl) Update(ctx context.Context, id string, req *domain.UpdateCustomerRequest) (*domain.Customer, error) {
	l := log.Ctx(ctx)

	if req.IsEmpty() {
		return nil, ErrEmptyUpdate
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &email
	}

	customer, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound
		}
		l.Error().Err(err).Str(log.FieldCustomerID, id).Msg("failed to update customer")
		return nil, err
	}

	audit.Log(ctx, audit.ActionCustomerUpdate, id, "customer updated")
	return customer, nil
}

func (s *customerServiceImpl) Delete(ctx context.Context, id string) error {
	l := log.Ctx(ctx)

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return ErrCustomerNotFound
		}
		l.Error().Err(err).Str(log.FieldCustomerID, id).Msg("failed to delete customer")
		return err
	}

	audit.Log(ctx, audit.ActionCustomerDelete, id, "customer deleted")
	return nil
}

func (s *customerServiceImpl) List(ctx context.Context, q *domain.ListCustomersQuery) (*domain.CustomerPage, error) {
	page, err := s.repo.List(ctx, q)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCursor) {
			return nil, ErrInvalidCursor
		}
		l := log.Ctx(ctx)
		l.Error().Err(err).Msg("failed to list customers")
		return nil, err
	}
	return page, nil
}
