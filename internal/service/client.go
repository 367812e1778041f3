package service

import (
	"context"
	"errors"
	"time"

	"github.com/KrishKoria/Qest/internal/integration"
	"github.com/KrishKoria/Qest/internal/model"
	"github.com/KrishKoria/Qest/internal/repository"
)

// CreateClientInput is the orchestrator-level client creation request.
type CreateClientInput struct {
	Name             string
	Email            string
	Phone            string
	Birthday         *time.Time
	Address          string
	EmergencyContact map[string]string
	Notes            string
}

// CreateClientResult reports client creation. On a duplicate, Success is
// false and ExistingClientID carries the conflicting client's id.
type CreateClientResult struct {
	Success          bool
	Message          string
	ClientID         uint64
	ExistingClientID uint64
	Client           model.Client
}

// CreateClient inserts a new active client unless one already exists with
// the same email or phone, in which case the existing id is returned and
// nothing is written. The duplicate check and the insert are separate store
// calls; the unique key on email backstops the race between them. CRM sync
// and the welcome notification fire after the insert and cannot fail it.
func (s *Service) CreateClient(ctx context.Context, in CreateClientInput) (CreateClientResult, error) {
	if existing, err := s.Clients.FindByEmailOrPhone(ctx, in.Email, in.Phone); err == nil {
		return duplicateClientResult(existing), nil
	} else if !errors.Is(err, repository.ErrClientNotFound) {
		return CreateClientResult{}, err
	}

	now := s.now()
	c := model.Client{
		Name:             in.Name,
		Email:            in.Email,
		Phone:            in.Phone,
		Status:           model.ClientActive,
		EnrolledServices: []string{},
		RegistrationDate: now,
		Birthday:         in.Birthday,
		LastActivity:     &now,
		Address:          in.Address,
		EmergencyContact: in.EmergencyContact,
		Notes:            in.Notes,
	}
	id, err := s.Clients.Create(ctx, &c)
	if errors.Is(err, repository.ErrDuplicateClient) {
		// Lost the race to a concurrent creation with the same email.
		if existing, lookupErr := s.Clients.FindByEmailOrPhone(ctx, in.Email, in.Phone); lookupErr == nil {
			return duplicateClientResult(existing), nil
		}
		return CreateClientResult{}, err
	}
	if err != nil {
		return CreateClientResult{}, err
	}

	s.Sim.CRMSync("new_client", map[string]any{
		"client_id": id,
		"name":      in.Name,
		"email":     in.Email,
		"phone":     in.Phone,
	})
	s.Sim.SendNotification(ctx, integration.NotifyWelcome, in.Email, in.Name,
		"Welcome to our fitness studio! We're excited to have you join us.")

	return CreateClientResult{
		Success:  true,
		Message:  "Client created successfully",
		ClientID: id,
		Client:   c,
	}, nil
}

func duplicateClientResult(existing model.Client) CreateClientResult {
	return CreateClientResult{
		Success:          false,
		Message:          "Client already exists with this email or phone number",
		ExistingClientID: existing.ID,
		Client:           existing,
	}
}
