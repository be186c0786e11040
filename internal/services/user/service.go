// Package user registers accounts, issues access tokens and manages agent
// approval.
package user

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "paywallet/internal/errors"
	"paywallet/internal/models"
	"paywallet/internal/repositories"
	"paywallet/internal/services/systemconfig"
	"paywallet/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Name     string      `json:"name" validate:"required,min=2,max=100"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8,max=72"`
	Role     models.Role `json:"role" validate:"omitempty,oneof=USER AGENT ADMIN SUPER_ADMIN"`
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	ApproveAgent(ctx context.Context, agentID uint, rate *decimal.Decimal) (*models.User, error)
	SuspendAgent(ctx context.Context, agentID uint) (*models.User, error)
}

type Options struct {
	JWTSecret       string
	TokenTTL        time.Duration
	StartingBalance decimal.Decimal
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

type service struct {
	store  *repositories.Store
	config systemconfig.Service
	opts   Options
}

func NewService(store *repositories.Store, config systemconfig.Service, opts Options) Service {
	if store == nil {
		panic("store is required")
	}
	if config == nil {
		panic("config service is required")
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.TokenTTL == 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	return &service{
		store:  store,
		config: config,
		opts:   opts,
	}
}

// Register creates the user and its wallet together. Customers and agents
// start with the configured starting balance, administrators with zero.
func (s *service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, apperrors.New(apperrors.CodeInvalidInput, "email and password are required")
	}
	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, apperrors.Newf(apperrors.CodeInvalidInput, "unknown role %q", role)
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.opts.BcryptCost)
	if err != nil {
		return nil, apperrors.Newf(apperrors.CodeInvalidInput, "failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}
	if role == models.RoleAgent {
		user.ApprovalStatus = models.ApprovalPending
	}

	balance := decimal.Zero
	if !role.IsAdmin() {
		balance = models.RoundMoney(s.opts.StartingBalance)
	}

	err = s.store.ExecuteInTransaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		wallet := &models.Wallet{UserID: user.ID, Balance: balance}
		if err := tx.Wallets().Create(ctx, wallet); err != nil {
			return err
		}
		user.Wallet = wallet
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return nil, apperrors.ErrDuplicateUser
		}
		zap.L().Error("failed to register user", zap.String("email", email), zap.Error(err))
		return nil, apperrors.Internal(err)
	}

	zap.L().Info("user registered",
		zap.Uint("user_id", user.ID),
		zap.String("role", string(user.Role)),
		zap.String("starting_balance", balance.String()))
	return user, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			zap.L().Info("login failed: unknown email")
			return nil, "", apperrors.ErrInvalidCredentials
		}
		zap.L().Error("failed to load user for login", zap.Error(err))
		return nil, "", apperrors.Internal(err)
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		zap.L().Info("login failed: incorrect password", zap.Uint("user_id", user.ID))
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(s.opts.JWTSecret, s.opts.TokenTTL, user)
	if err != nil {
		zap.L().Error("failed to sign token", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, "", apperrors.Internal(err)
	}
	return user, token, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

// ApproveAgent lets an agent perform cash-in and cash-out. A nil rate takes
// the configured default commission rate.
func (s *service) ApproveAgent(ctx context.Context, agentID uint, rate *decimal.Decimal) (*models.User, error) {
	var r decimal.Decimal
	if rate != nil {
		r = *rate
	} else {
		cfg, err := s.config.GetConfig(ctx)
		if err != nil {
			return nil, err
		}
		r = cfg.AgentCommissionRate
	}
	if r.IsNegative() || r.GreaterThan(decimal.NewFromInt(100)) {
		return nil, apperrors.Newf(apperrors.CodeInvalidAmount, "commission rate must be between 0 and 100, got %s", r)
	}

	return s.setApproval(ctx, agentID, models.ApprovalApproved, decimal.NewNullDecimal(r))
}

// SuspendAgent revokes agent capabilities. The commission rate is cleared
// since only approved agents carry one.
func (s *service) SuspendAgent(ctx context.Context, agentID uint) (*models.User, error) {
	return s.setApproval(ctx, agentID, models.ApprovalSuspended, decimal.NullDecimal{})
}

func (s *service) setApproval(ctx context.Context, agentID uint, status models.ApprovalStatus, rate decimal.NullDecimal) (*models.User, error) {
	user, err := s.GetByID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleAgent {
		return nil, apperrors.Newf(apperrors.CodeInvalidInput, "user %d is not an agent", agentID)
	}

	if err := s.store.Users().UpdateAgentApproval(ctx, agentID, status, rate); err != nil {
		zap.L().Error("failed to update agent approval", zap.Uint("agent_id", agentID), zap.Error(err))
		return nil, apperrors.Internal(err)
	}

	zap.L().Info("agent approval changed",
		zap.Uint("agent_id", agentID),
		zap.String("status", string(status)))
	return s.GetByID(ctx, agentID)
}
