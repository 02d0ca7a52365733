package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más el alcance que consume el motor de stock.
// BranchID vacío = usuario sin restricción de sucursal.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	BranchID string `json:"branch_id,omitempty"`
	Role     string `json:"role"`
}

// Principal datos extraídos de un token válido.
type Principal struct {
	UserID   string
	BranchID string
	Role     string
}

// Generate genera un token JWT firmado (HS256) con el alcance del usuario.
func Generate(secret, issuer string, p Principal, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:   p.UserID,
		BranchID: p.BranchID,
		Role:     p.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve el principal.
// Retorna error si el token es inválido, expirado, de otro emisor o tiene firma incorrecta.
func Parse(secret, issuer, tokenString string) (Principal, error) {
	if secret == "" {
		return Principal{}, fmt.Errorf("jwt: secret vacío")
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return Principal{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return Principal{}, fmt.Errorf("claims inválidos")
	}
	return Principal{UserID: claims.UserID, BranchID: claims.BranchID, Role: claims.Role}, nil
}
