package aws_handler

import (
	"context"
	"encoding/json"
	"fmt"

	"fleet/src/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
)

type SecretManager struct {
	svc secretsmanageriface.SecretsManagerAPI
}

func NewSecretManager(svc secretsmanageriface.SecretsManagerAPI) *SecretManager {
	return &SecretManager{svc: svc}
}

func (s *SecretManager) GetSecretValue(ctx context.Context, secretID string) (string, error) {
	result, err := s.svc.GetSecretValueWithContext(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return "", err
	}
	if result.SecretString == nil {
		return "", fmt.Errorf("secret %s has no string value", secretID)
	}
	return *result.SecretString, nil
}

// secretField returns key from a JSON secret, or the raw value for plain text secrets.
func secretField(raw, key string) string {
	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return raw
	}
	if v, ok := fields[key].(string); ok {
		return v
	}
	return raw
}

// ApplySecrets overrides the JWT signing secret and database password with the
// values stored in Secrets Manager when their secret ids are configured.
func (s *SecretManager) ApplySecrets(ctx context.Context, cfg *config.Config) error {
	if id := cfg.Secrets.JWTSecretID; id != "" {
		raw, err := s.GetSecretValue(ctx, id)
		if err != nil {
			return fmt.Errorf("reading jwt secret: %w", err)
		}
		cfg.Auth.JWTSecret = secretField(raw, "jwtSecret")
	}
	if id := cfg.Secrets.DBPasswordSecret; id != "" {
		raw, err := s.GetSecretValue(ctx, id)
		if err != nil {
			return fmt.Errorf("reading database password: %w", err)
		}
		cfg.Databases.SQL.Password = secretField(raw, "password")
	}
	return nil
}
