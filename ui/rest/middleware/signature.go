package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/saharabot/sahara/core/config"
	pkgError "github.com/saharabot/sahara/pkg/error"
	"github.com/saharabot/sahara/pkg/identity"
	"github.com/saharabot/sahara/pkg/signature"
	"github.com/saharabot/sahara/pkg/utils"
	"github.com/sirupsen/logrus"
)

// SignatureVerification rejects webhook posts whose gateway signature does
// not match the shared secret. Authentication failures never reach the
// pipeline.
//
// The development bypass only works outside production and logs every
// request it waves through.
func SignatureVerification(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.Channel.SkipSignatureCheck && !cfg.IsProduction() {
			logrus.Warn("[SIGNATURE] verification bypass engaged, accepting unsigned request")
			return c.Next()
		}

		params := make(map[string]string)
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			params[string(key)] = string(value)
		})

		fullURL := signature.RequestURL(
			c.Protocol(),
			c.Hostname(),
			c.OriginalURL(),
			c.Get(fiber.HeaderXForwardedProto),
			c.Get(fiber.HeaderXForwardedHost),
		)

		if !signature.Verify(fullURL, params, c.Get(signature.Header), cfg.Channel.AuthToken) {
			logrus.WithFields(logrus.Fields{
				"sender": identity.MaskSender(params["From"]),
				"url":    fullURL,
			}).Warn("[SIGNATURE] rejected request with invalid gateway signature")
			authErr := pkgError.AuthError("invalid gateway signature")
			return c.Status(authErr.StatusCode()).JSON(utils.ResponseData{
				Status:  authErr.StatusCode(),
				Code:    authErr.ErrCode(),
				Message: authErr.Error(),
			})
		}

		return c.Next()
	}
}
