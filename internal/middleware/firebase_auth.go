package middleware

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"

	firebase "firebase.google.com/go/v4"
	"github.com/gofiber/fiber/v2"
	"google.golang.org/api/option"
)

// FirebaseAuth creates a Fiber middleware that validates Firebase JWT tokens
func FirebaseAuth(firebaseApp *firebase.App) fiber.Handler {
	// Get Auth client
	authClient, err := firebaseApp.Auth(context.Background())
	if err != nil {
		panic("failed to initialize Firebase Auth client: " + err.Error())
	}

	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "missing authorization header",
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "invalid authorization header format, expected 'Bearer <token>'",
			})
		}

		decodedToken, err := authClient.VerifyIDToken(context.Background(), parts[1])
		if err != nil {
			if strings.Contains(err.Error(), "expired") {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"success": false,
					"error":   "token expired",
				})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "invalid token",
			})
		}

		c.Locals(UserIDKey, decodedToken.UID)

		return c.Next()
	}
}

// InitFirebase initializes Firebase Admin SDK with environment variables
func InitFirebase(projectID, privateKeyB64, clientEmail string) (*firebase.App, error) {
	// Decode base64 private key
	privateKey, err := base64.StdEncoding.DecodeString(privateKeyB64)
	if err != nil {
		return nil, err
	}

	credentialsJSON := map[string]interface{}{
		"type":         "service_account",
		"project_id":   projectID,
		"private_key":  string(privateKey),
		"client_email": clientEmail,
	}

	app, err := firebase.NewApp(context.Background(), nil, option.WithCredentialsJSON(mustMarshalJSON(credentialsJSON)))
	if err != nil {
		return nil, err
	}

	return app, nil
}

// mustMarshalJSON is a helper to marshal JSON or panic
func mustMarshalJSON(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
