package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry extracts the expiration instant from a compact JWS
// without verifying the signature.
//
// Render tickets are signed by the server and the client holds no
// verification key. The claims are inspected only to skip artifact
// fetches through tickets that already lapsed, never to grant trust.
//
// Returns an error if the string is not a parseable JWT or carries
// no "exp" claim.
//
// Example usage:
//
//	exp, err := utils.TokenExpiry(ticket.Token)
//	if err == nil && time.Now().After(exp) {
//	    // request a fresh ticket instead of a doomed fetch
//	}
func TokenExpiry(tokenString string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return time.Time{}, errors.New("invalid token claims")
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, errors.New("token has no expiry claim")
	}

	return exp.Time, nil
}
