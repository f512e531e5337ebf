package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/pasarmart/pasarmart/internal/domain/errors"
	"github.com/pasarmart/pasarmart/internal/domain/model"
	"github.com/pasarmart/pasarmart/internal/domain/repository"
	pkgAuth "github.com/pasarmart/pasarmart/internal/pkg/auth"
)

// AuthUseCase authenticates sellers and manages their tokens. Seller
// accounts are provisioned out of band; there is no registration path.
type AuthUseCase struct {
	sellers repository.SellerRepository
	hasher  pkgAuth.PasswordHasher
	tokens  pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(sellers repository.SellerRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{sellers: sellers, hasher: hasher, tokens: strategy}
}

// Authenticate validates credentials and returns an auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.Seller, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	seller, err := u.sellers.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(seller.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(seller.ID)
	if err != nil {
		return nil, "", err
	}

	return seller, token, nil
}

// ParseToken extracts the seller ID from the provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}
