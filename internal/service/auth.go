package service

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/SocialApp/social-api/internal/dto"
	"github.com/SocialApp/social-api/internal/model"
	"github.com/SocialApp/social-api/internal/repository"
	"github.com/SocialApp/social-api/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenExpiry  = time.Hour * 3
	refreshTokenExpiry = time.Hour * 24 * 7 * 2

	uniqueViolationCode = "23505"
)

type authService struct {
	logger *zap.Logger
	repo *repository.Repository
}

func newAuthService(logger *zap.Logger, repo *repository.Repository) Auth {
	return &authService{
		logger: logger,
		repo: repo,
	}
}

func (s *authService) SignUp(ctx context.Context, createUserDto dto.CreateUserDto) (*dto.GetUserDto, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(createUserDto.Password), 10)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate password hash: %s", err.Error())
		return nil, ErrInternal
	}

	user := model.User{
		Email: createUserDto.Email,
		Username: createUserDto.Username,
		PasswordHash: string(passwordHash),
	}
	createdUser, err := s.repo.Postgres.User.Create(ctx, user)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, ErrEmailOrUsernameTaken
		}

		s.logger.Sugar().Errorf("failed to create user in postgres: %s", err.Error())
		return nil, ErrInternal
	}

	return dto.GetUserDtoFromUser(*createdUser), nil
}

func (s *authService) SignIn(ctx context.Context, signInDto dto.SignInDto) (*dto.GetUserDto, *utils.JWTPair, error) {
	user, err := s.repo.Postgres.User.FindByEmail(ctx, signInDto.Email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, ErrInvalidCredentials
		}

		s.logger.Sugar().Errorf("failed to get user(email: %s) from postgres: %s", signInDto.Email, err.Error())
		return nil, nil, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(signInDto.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	jwtPair, err := s.generateJWTPair(user.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate jwt pair: %s", err.Error())
		return nil, nil, ErrInternal
	}

	return dto.GetUserDtoFromUser(*user), jwtPair, nil
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*utils.JWTPair, error) {
	claims, err := utils.DecodeJWT(refreshToken, []byte(os.Getenv("REFRESH_SECRET")))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	idString, ok := claims["id"].(string)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	id, err := uuid.Parse(idString)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	exists, err := s.repo.Postgres.User.ExistsWithID(ctx, id)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check user(%s) existence in postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	jwtPair, err := s.generateJWTPair(id)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate jwt pair: %s", err.Error())
		return nil, ErrInternal
	}

	return jwtPair, nil
}

// Profile returns the user sans credential, with the pending requests on
// both sides resolved to {id, username} so the client can render
// accept/cancel controls without extra lookups.
func (s *authService) Profile(ctx context.Context, userID uuid.UUID) (*dto.ProfileDto, error) {
	user, err := s.repo.Postgres.User.FindByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(%s) in postgres: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	received, err := s.repo.Postgres.Relation.FindReceivedFollowRequests(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find received follow requests of user(%s) in postgres: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}
	if received == nil {
		received = []*model.UserPreview{}
	}

	sent, err := s.repo.Postgres.Relation.FindSentFollowRequests(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find sent follow requests of user(%s) in postgres: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}
	if sent == nil {
		sent = []*model.UserPreview{}
	}

	return &dto.ProfileDto{
		GetUserDto: *dto.GetUserDtoFromUser(*user),
		ReceivedFollowRequests: received,
		SentFollowRequests: sent,
	}, nil
}

func (s *authService) generateJWTPair(id uuid.UUID) (*utils.JWTPair, error) {
	return utils.GenerateJWTPair(utils.GenerateJWTPairDto{
		Method: jwt.SigningMethodHS256,
		AccessSecret: []byte(os.Getenv("ACCESS_SECRET")),
		AccessClaims: jwt.MapClaims{
			"id": id.String(),
		},
		AccessExpiry: accessTokenExpiry,
		RefreshSecret: []byte(os.Getenv("REFRESH_SECRET")),
		RefreshClaims: jwt.MapClaims{
			"id": id.String(),
		},
		RefreshExpiry: refreshTokenExpiry,
	})
}
