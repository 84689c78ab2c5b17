package jwt

import (
	"errors"
	"time"

	"wedding-booking/internal/domain/booking"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims: the subject is the actor id; role is couple or vendor.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Service struct {
	secretKey     []byte
	tokenDuration time.Duration
	issuer        string
}

func NewService(secretKey string, tokenDuration time.Duration, issuer string) *Service {
	return &Service{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
		issuer:        issuer,
	}
}

func (s *Service) GenerateToken(actorID uuid.UUID, role booking.ActorRole) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actorID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(s.issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Authenticate validates the token and resolves the booking party it speaks for.
func (s *Service) Authenticate(tokenString string) (booking.Actor, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return booking.Actor{}, err
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil || id == uuid.Nil {
		return booking.Actor{}, ErrInvalidToken
	}
	role, err := booking.ParseActorRole(claims.Role)
	if err != nil {
		return booking.Actor{}, ErrInvalidToken
	}
	return booking.Actor{Role: role, ID: id}, nil
}
