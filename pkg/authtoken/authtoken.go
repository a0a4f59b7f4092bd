// Package authtoken проверяет bearer-токены внешнего identity-провайдера.
// Сервис не выпускает токены сам: он только валидирует подпись HS256
// общим секретом и извлекает identity вызывающего.
package authtoken

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Роли вызывающих, которые различает сервис
const (
	RoleStaff   = "staff"
	RoleService = "service"
)

var (
	// ErrInvalidToken возвращается, когда токен не прошел проверку подписи или формата
	ErrInvalidToken = errors.New("authtoken: invalid token")

	// ErrUnknownRole возвращается, когда роль в токене не поддерживается
	ErrUnknownRole = errors.New("authtoken: unknown role")
)

// Identity разрешенная личность вызывающего
type Identity struct {
	Email string
	Role  string
}

// Claims структура claims токена identity-провайдера
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier проверяет токены общим HS256-секретом
type Verifier struct {
	secret []byte
}

// NewVerifier создает верификатор с указанным секретом
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify проверяет токен и возвращает identity вызывающего
func (v *Verifier) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Role != RoleStaff && claims.Role != RoleService {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, claims.Role)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: missing email claim", ErrInvalidToken)
	}

	return &Identity{Email: claims.Email, Role: claims.Role}, nil
}
