// Proxy-header authentication. Identity arrives resolved from the authentik
// proxy provider through forward auth:
//
//	X-Authentik-Username, X-Authentik-Email, X-Authentik-Name,
//	X-Authentik-Uid, X-Authentik-Groups (comma separated)
//
// When PROXY_AUTH_SECRET is configured the proxy must also send it in
// X-Proxy-Auth-Secret, so a directly exposed instance rejects spoofed
// headers.
package middleware

import (
	"fmt"
	"log"
	"strings"

	config "github.com/GDG-on-Campus-ASU/GDGoC-certs/configs"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs/models"
	"github.com/gofiber/fiber/v2"
)

const identityLocal = "identity"

const defaultAdminGroup = "GDGoC-Admins"

// Protected builds a ResolvedIdentity from the proxy headers and stores it
// in the request locals. Requests without uid and email are rejected.
func Protected() fiber.Handler {
	proxySecret := config.Config("PROXY_AUTH_SECRET")

	return func(c *fiber.Ctx) error {
		if proxySecret != "" && c.Get("X-Proxy-Auth-Secret") != proxySecret {
			log.Println("🔥 Proxy authentication failed: invalid or missing proxy secret")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized. Request must come from authenticated proxy.",
			})
		}

		uid := c.Get("X-Authentik-Uid")
		email := c.Get("X-Authentik-Email")
		if uid == "" || email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required. Please ensure you are accessing through the authenticated proxy.",
			})
		}

		name := c.Get("X-Authentik-Name")
		if name == "" {
			name = email
		}
		username := c.Get("X-Authentik-Username")
		if username == "" {
			username = email
		}

		identity := models.ResolvedIdentity{
			SubjectID: uid,
			Email:     email,
			Name:      name,
			Username:  username,
			Groups:    parseGroups(c.Get("X-Authentik-Groups")),
		}

		c.Locals(identityLocal, identity)
		return c.Next()
	}
}

// AdminGroupRequired gates login provisioning on admin-group membership.
// The proxy enforces this via authentik policies already; this is the
// backend's own validation layer.
func AdminGroupRequired() fiber.Handler {
	group := config.ConfigOr("ADMIN_GROUP", defaultAdminGroup)

	return func(c *fiber.Ctx) error {
		identity := IdentityFromCtx(c)
		if !identity.InGroup(group) {
			log.Printf("Access denied: user %s not in %s group", identity.SubjectID, group)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": fmt.Sprintf("Access denied. %s group membership required.", group),
			})
		}
		return c.Next()
	}
}

// IdentityFromCtx returns the identity stored by Protected. Zero value when
// the middleware did not run.
func IdentityFromCtx(c *fiber.Ctx) models.ResolvedIdentity {
	identity, _ := c.Locals(identityLocal).(models.ResolvedIdentity)
	return identity
}

func parseGroups(header string) []string {
	if header == "" {
		return []string{}
	}
	parts := strings.Split(header, ",")
	groups := make([]string, 0, len(parts))
	for _, p := range parts {
		if g := strings.TrimSpace(p); g != "" {
			groups = append(groups, g)
		}
	}
	return groups
}
