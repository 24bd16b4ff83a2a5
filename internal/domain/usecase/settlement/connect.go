package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/auctionly/auction-processor/internal/domain/entity"
	errs "github.com/auctionly/auction-processor/internal/domain/error"
	"github.com/auctionly/auction-processor/internal/domain/port/payment"
)

// OnboardingResult carries the payout account and its onboarding link
type OnboardingResult struct {
	AccountID     string
	OnboardingURL string
}

// GetOrCreateOnboarding ensures the caller has a payout account and returns
// an onboarding link for it. A local record pointing at a provider account
// that no longer exists is self-healed by creating a replacement and
// overwriting the record. Account creation stays committed even if the
// subsequent link request fails; the account remains valid and retryable.
func (s *Service) GetOrCreateOnboarding(ctx context.Context, token string) (*OnboardingResult, error) {
	ident, err := s.verifier.VerifyToken(ctx, token)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByUserID(ctx, ident.UID)
	switch {
	case err == nil:
		account, err = s.revalidateAccount(ctx, ident.UID, account)
		if err != nil {
			return nil, err
		}
	case errors.Is(err, errs.ErrAccountNotFound):
		account, err = s.createAccount(ctx, ident.UID, ident.Email)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("look up connect account: %w", err)
	}

	url, err := s.provider.CreateAccountLink(ctx, account.ProviderAccountID, s.cfg.OnboardingRefreshURL, s.cfg.OnboardingReturnURL)
	if err != nil {
		return nil, fmt.Errorf("create onboarding link: %w", err)
	}

	return &OnboardingResult{
		AccountID:     account.ProviderAccountID,
		OnboardingURL: url,
	}, nil
}

// DashboardLink returns a login link to the provider dashboard for the
// caller's existing payout account.
func (s *Service) DashboardLink(ctx context.Context, token string) (string, error) {
	ident, err := s.verifier.VerifyToken(ctx, token)
	if err != nil {
		return "", err
	}

	account, err := s.accounts.GetByUserID(ctx, ident.UID)
	if err != nil {
		return "", err
	}

	url, err := s.provider.CreateLoginLink(ctx, account.ProviderAccountID)
	if err != nil {
		return "", fmt.Errorf("create login link: %w", err)
	}
	return url, nil
}

// revalidateAccount syncs the local record against the provider. A dangling
// record (remote account deleted) gets a replacement remote account rather
// than an error.
func (s *Service) revalidateAccount(ctx context.Context, userID string, account *entity.ConnectAccount) (*entity.ConnectAccount, error) {
	remote, err := s.provider.RetrieveAccount(ctx, account.ProviderAccountID)
	if err != nil {
		if !errors.Is(err, errs.ErrProviderAccountMissing) {
			return nil, fmt.Errorf("retrieve connect account: %w", err)
		}

		s.logger.Warn("Connect account missing at provider, creating replacement", map[string]any{
			"user_id":             userID,
			"provider_account_id": account.ProviderAccountID,
		})

		remote, err = s.provider.CreateAccount(ctx, payment.AccountParams{
			Email:   "",
			Country: s.cfg.AccountCountry,
		})
		if err != nil {
			return nil, fmt.Errorf("create replacement connect account: %w", err)
		}
	}

	account.SyncProviderState(remote.ID, remote.ChargesEnabled, remote.PayoutsEnabled, remote.DetailsSubmitted, s.timeProvider.Now())
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("update connect account: %w", err)
	}
	return account, nil
}

// createAccount creates both the remote account and the local record
func (s *Service) createAccount(ctx context.Context, userID, email string) (*entity.ConnectAccount, error) {
	remote, err := s.provider.CreateAccount(ctx, payment.AccountParams{
		Email:   email,
		Country: s.cfg.AccountCountry,
	})
	if err != nil {
		return nil, fmt.Errorf("create connect account: %w", err)
	}

	account := entity.NewConnectAccount(userID, remote.ID, s.timeProvider.Now())
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("persist connect account: %w", err)
	}

	s.logger.Info("Connect account created", map[string]any{
		"user_id":             userID,
		"provider_account_id": remote.ID,
	})
	return account, nil
}
