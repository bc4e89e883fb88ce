package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Session cookie names. The same token is written under both aliases.
const (
	CookieJWT        = "jwt"
	CookieAdminToken = "adminToken"
	CookieSessionID  = "JSESSIONID"
)

const bearerScheme = "Bearer"

// TokenExtractor pulls a raw credential from one location of the request
type TokenExtractor func(c *fiber.Ctx) (string, bool)

var (
	cookieExtractors  = []TokenExtractor{FromCookie(CookieJWT), FromCookie(CookieAdminToken)}
	requestExtractors = append([]TokenExtractor{FromBearer()}, cookieExtractors...)
)

// ExtractToken returns the first usable credential, checking the
// Authorization bearer header, then the jwt cookie, then adminToken.
func ExtractToken(c *fiber.Ctx) (string, bool) {
	return extract(c, requestExtractors)
}

// ExtractCookieToken is ExtractToken restricted to the session cookies
func ExtractCookieToken(c *fiber.Ctx) (string, bool) {
	return extract(c, cookieExtractors)
}

func extract(c *fiber.Ctx, extractors []TokenExtractor) (string, bool) {
	for _, fn := range extractors {
		if token, ok := fn(c); ok {
			return token, true
		}
	}
	return "", false
}

// FromBearer reads "Authorization: Bearer <token>"
func FromBearer() TokenExtractor {
	return func(c *fiber.Ctx) (string, bool) {
		h := c.Get(fiber.HeaderAuthorization)
		l := len(bearerScheme)
		if len(h) <= l || !strings.EqualFold(h[:l], bearerScheme) || h[l] != ' ' {
			return "", false
		}
		return usable(h[l+1:])
	}
}

// FromCookie reads the named cookie
func FromCookie(name string) TokenExtractor {
	return func(c *fiber.Ctx) (string, bool) {
		return usable(c.Cookies(name))
	}
}

// usable rejects empty values and the literal "null" some clients store
func usable(raw string) (string, bool) {
	token := strings.TrimSpace(raw)
	if token == "" || token == "null" {
		return "", false
	}
	return token, true
}
