package user

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type CustomClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// VerifierConfig selects how bearer tokens are checked. PublicKeyPEM wins
// over Secret when both are set.
type VerifierConfig struct {
	Secret       string
	PublicKeyPEM string
	Issuer       string
	Audience     string
}

type Verifier struct {
	hmacKey []byte
	ecKey   *ecdsa.PublicKey
	opts    []jwt.ParserOption
}

func NewVerifier(cfg VerifierConfig) (*Verifier, error) {
	v := &Verifier{}

	switch {
	case strings.TrimSpace(cfg.PublicKeyPEM) != "":
		// env files usually carry the PEM with literal \n
		pem := strings.ReplaceAll(cfg.PublicKeyPEM, `\n`, "\n")
		key, err := jwt.ParseECPublicKeyFromPEM([]byte(pem))
		if err != nil {
			return nil, fmt.Errorf("parse JWT_PUBLIC_KEY: %w", err)
		}
		v.ecKey = key
		v.opts = append(v.opts, jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()}))
	case cfg.Secret != "":
		v.hmacKey = []byte(cfg.Secret)
		v.opts = append(v.opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	default:
		return nil, ErrNoVerifierKey
	}

	if cfg.Issuer != "" {
		v.opts = append(v.opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		v.opts = append(v.opts, jwt.WithAudience(cfg.Audience))
	}
	v.opts = append(v.opts, jwt.WithExpirationRequired())

	return v, nil
}

func (v *Verifier) keyFunc(token *jwt.Token) (interface{}, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodHMAC:
		if v.hmacKey == nil {
			return nil, errors.New("unexpected signing method")
		}
		return v.hmacKey, nil
	case *jwt.SigningMethodECDSA:
		if v.ecKey == nil {
			return nil, errors.New("unexpected signing method")
		}
		return v.ecKey, nil
	default:
		return nil, errors.New("unexpected signing method")
	}
}

// Parse verifies tokenStr and returns its claims. A token without a subject
// is rejected.
func (v *Verifier) Parse(tokenStr string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, v.keyFunc, v.opts...)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	return claims, nil
}
