package utils

import (
	"fmt"
	"medportal-service/internal/pkg/constvars"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func GenerateBrowserSessionID() string {
	return uuid.New().String()
}

func GenerateBrowserSessionJWT(sessionID, secret string, jwtExpiryTimeInHours int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		constvars.BrowserSessionClaimID: sessionID,
		"exp":                           time.Now().Add(time.Duration(jwtExpiryTimeInHours) * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.New().String()
}

// GenerateObjectName names a staged upload after its owner, keeping the original extension.
func GenerateObjectName(prefix, owner, fileName string) string {
	fileExtension := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("%s/%s/%s%s", prefix, owner, uuid.New().String(), fileExtension)
}
