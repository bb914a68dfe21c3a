package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agrodash/agroadmin/internal/common"
	"github.com/agrodash/agroadmin/internal/dbx"
	"github.com/agrodash/agroadmin/internal/server/models"
	"github.com/agrodash/agroadmin/internal/server/repositories/repomanager"
)

// AddressService keeps at most one default address per user. Every change
// that touches the default flag first clears the current default of the
// user and then sets the new one, inside a single transaction.
type AddressService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	validator   Validator
	activity    *ActivityService
}

func NewAddressService(db *sql.DB, m repomanager.RepositoryManager, v Validator, a *ActivityService) *AddressService {
	return &AddressService{db: db, repomanager: m, validator: v, activity: a}
}

// ListByUser returns the user's addresses, default first.
func (s *AddressService) ListByUser(ctx context.Context, userID string) ([]models.Address, error) {
	out, err := s.repomanager.Addresses(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing addresses: %w", err)
	}
	return out, nil
}

func (s *AddressService) Get(ctx context.Context, id string) (*models.Address, error) {
	return s.repomanager.Addresses(s.db).GetByID(ctx, id)
}

// GetDefault returns the default address of the user, or
// common.ErrorNotFound when there is none.
func (s *AddressService) GetDefault(ctx context.Context, userID string) (*models.Address, error) {
	return s.repomanager.Addresses(s.db).GetDefault(ctx, userID)
}

// Create adds an address. The first address of a user is always the
// default, whatever the input says.
func (s *AddressService) Create(ctx context.Context, in models.AddressInput) (*models.Address, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	var created *models.Address
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Addresses(tx)

		hasAny, err := repo.HasAny(ctx, in.UserID)
		if err != nil {
			return fmt.Errorf("error checking addresses: %w", err)
		}

		isDefault := in.IsDefault || !hasAny
		if isDefault && hasAny {
			if err := repo.ClearDefault(ctx, in.UserID); err != nil {
				return fmt.Errorf("error clearing default address: %w", err)
			}
		}

		created, err = repo.Create(ctx, &models.Address{
			UserID:     in.UserID,
			Label:      in.Label,
			Line1:      in.Line1,
			Line2:      in.Line2,
			City:       in.City,
			Region:     in.Region,
			PostalCode: in.PostalCode,
			Phone:      in.Phone,
			IsDefault:  isDefault,
		})
		if err != nil {
			return fmt.Errorf("error creating address: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "create", "address", created.ID, created.UserID)
	return created, nil
}

// Update applies patch to the address. Setting is_default=true moves the
// default from its sibling; setting it to false is applied as is, which can
// leave the user without a default.
func (s *AddressService) Update(ctx context.Context, id string, patch models.AddressPatch) (*models.Address, error) {
	if err := s.validator.Validate(patch); err != nil {
		return nil, err
	}

	var updated *models.Address
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Addresses(tx)

		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.IsDefault != nil && *patch.IsDefault {
			if err := repo.ClearDefault(ctx, current.UserID); err != nil {
				return fmt.Errorf("error clearing default address: %w", err)
			}
		}

		patch.Apply(current)
		updated, err = repo.Update(ctx, current)
		if err != nil {
			return fmt.Errorf("error updating address: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "update", "address", id, updated.UserID)
	return updated, nil
}

// SetDefault makes the address the default of its user.
func (s *AddressService) SetDefault(ctx context.Context, id string) (*models.Address, error) {
	on := true
	return s.Update(ctx, id, models.AddressPatch{IsDefault: &on})
}

// Delete removes the address. When it was the default, the most recently
// created remaining address of the user becomes the default.
func (s *AddressService) Delete(ctx context.Context, id string) error {
	var target *models.Address
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Addresses(tx)

		var err error
		target, err = repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("error deleting address: %w", err)
		}

		if !target.IsDefault {
			return nil
		}

		next, err := repo.MostRecent(ctx, target.UserID)
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error finding next default address: %w", err)
		}
		if err := repo.SetDefault(ctx, next.ID); err != nil {
			return fmt.Errorf("error promoting default address: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.activity.Record(ctx, "delete", "address", id, target.UserID)
	return nil
}
