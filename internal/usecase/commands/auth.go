package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"airaa-jewels/internal/domain/auth"
	"airaa-jewels/internal/domain/cart"
	"airaa-jewels/internal/domain/user"
	reqdto "airaa-jewels/internal/handler/dto/request"
	"airaa-jewels/internal/infra"
	"airaa-jewels/internal/pkg/errs"
	"airaa-jewels/internal/pkg/jwt"
	"airaa-jewels/internal/pkg/password"
	"airaa-jewels/internal/usecase/queries"
	"airaa-jewels/internal/usecase/shared"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrEmailTaken           = errs.New("email already registered")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrTokenValidation      = errs.New("token validation failed")
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type LoginResult struct {
	UserID    uuid.UUID
	TokenPair *TokenPair
}

type AuthCommands interface {
	Register(ctx context.Context, req reqdto.RegisterRequest) (*LoginResult, error)
	// Login merges any guest-session cart into the user's cart;
	// sessionID may be empty.
	Login(ctx context.Context, req reqdto.LoginRequest, sessionID string) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	readStore  queries.UserReadStore
	guestCarts GuestCartStore
	jwtService *jwt.Service
}

func NewAuthCommands(
	uow shared.UnitOfWork,
	readStore queries.UserReadStore,
	guestCarts GuestCartStore,
	jwtService *jwt.Service,
) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		readStore:  readStore,
		guestCarts: guestCarts,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, req reqdto.RegisterRequest) (*LoginResult, error) {
	credentials, err := auth.NewCredentials(req.Email, req.Password)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	hash, err := password.HashPassword(credentials.Password().Value())
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	newUser := user.NewUser(credentials.Email(), hash, user.RoleCustomer, req.GetDisplayName())

	var userID uuid.UUID
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, createErr := tx.Users().Create(ctx, tx.DB(), newUser)
		if createErr != nil {
			return createErr
		}
		userID = id
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	tokenPair, err := a.issueTokens(userID, user.RoleCustomer)
	if err != nil {
		return nil, err
	}

	return &LoginResult{UserID: userID, TokenPair: tokenPair}, nil
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest, sessionID string) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	userView, err := a.validateUser(ctx, credentials)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(userView.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	tokenPair, err := a.issueTokens(userView.ID, role)
	if err != nil {
		return nil, err
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if updateErr := tx.Users().UpdateLastLogin(ctx, tx.DB(), userView.ID); updateErr != nil {
			slog.Warn("failed to update last login", "user_id", userView.ID, "error", updateErr.Error())
			// Continue without failing - this is not critical
		}
		return a.mergeGuestCart(ctx, tx, sessionID, userView.ID)
	})
	if err != nil {
		slog.Warn("post-login housekeeping failed", "user_id", userView.ID, "error", err.Error())
		// Login itself succeeded; cart merge failures must not block it
	}

	return &LoginResult{UserID: userView.ID, TokenPair: tokenPair}, nil
}

// mergeGuestCart folds the session cart into the user's persisted cart.
// Lines merge by (product, mode); the user's coupon wins when both have one.
func (a *authCommandsImpl) mergeGuestCart(ctx context.Context, tx shared.Tx, sessionID string, userID uuid.UUID) error {
	if sessionID == "" || a.guestCarts == nil {
		return nil
	}

	guestCart, err := a.guestCarts.Get(ctx, sessionID)
	if err != nil || guestCart == nil || guestCart.IsEmpty() {
		return err
	}

	userCart, err := tx.Carts().FindByUser(ctx, tx.DB(), userID)
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			return err
		}
		userCart = nil
	}
	if userCart == nil {
		userCart = cart.NewCart(userID)
	}

	for _, line := range guestCart.Lines() {
		userCart.AddLine(line)
	}
	if userCart.Coupon() == nil && guestCart.Coupon() != nil {
		userCart.ApplyCoupon(guestCart.Coupon().CouponID, guestCart.Coupon().Code)
	}

	if err := tx.Carts().Save(ctx, tx.DB(), userCart); err != nil {
		return err
	}
	return a.guestCarts.Delete(ctx, sessionID)
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrTokenValidation
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	// Validate user still exists and is active
	userView, err := a.readStore.FindByID(ctx, claims.UserID)
	if err != nil || userView == nil {
		return nil, ErrUserNotFound
	}

	if !userView.IsActive {
		return nil, ErrUserInactive
	}

	return a.issueTokens(claims.UserID, role)
}

func (a *authCommandsImpl) issueTokens(userID uuid.UUID, role user.Role) (*TokenPair, error) {
	accessToken, err := a.jwtService.GenerateAccessToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	refreshToken, err := a.jwtService.GenerateRefreshToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (a *authCommandsImpl) validateUser(ctx context.Context, credentials auth.Credentials) (*queries.AuthorizedUserView, error) {
	userView, hashedPassword, err := a.readStore.FindByEmail(ctx, credentials.Email().Value())
	if err != nil {
		// Return same error as password mismatch to prevent user enumeration attacks
		return nil, ErrInvalidCredentials
	}

	if userView == nil {
		return nil, ErrUserNotFound
	}

	if !userView.IsActive {
		return nil, ErrUserInactive
	}

	if err := password.ComparePassword(hashedPassword, credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	return userView, nil
}
