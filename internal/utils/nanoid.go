package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const tokenIDSize = 21

// GenerateTokenID returns a random URL-safe id used as a JWT "jti".
func GenerateTokenID() (string, error) {
	return gonanoid.New(tokenIDSize)
}
