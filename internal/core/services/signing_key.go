package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/karangnongko_farm/internal/apperrors"
	portsrepo "github.com/SscSPs/karangnongko_farm/internal/core/ports/repositories"
	"github.com/SscSPs/karangnongko_farm/internal/middleware"
	"github.com/SscSPs/karangnongko_farm/internal/utils"
)

const signingKeyBytes = 32

// ResolveSigningKey returns configured when it is set. Otherwise it returns the
// installation key from the signing_key slot, generating and saving one on first run.
func ResolveSigningKey(ctx context.Context, store portsrepo.SlotStore, configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	logger := middleware.GetLoggerFromCtx(ctx)
	slot := NewJSONSlot[string](store, portsrepo.SlotSigningKey)

	key, found, err := slot.Load(ctx)
	if err != nil && errors.Is(err, apperrors.ErrUnavailable) {
		return "", fmt.Errorf("load signing key: %w", err)
	}
	if err == nil && found && key != "" {
		return key, nil
	}
	if err != nil {
		logger.Warn("Replacing unreadable signing key", slog.String("error", err.Error()))
	}

	key, err = utils.GenerateSecureRandomString(signingKeyBytes)
	if err != nil {
		return "", fmt.Errorf("generate signing key: %w", err)
	}
	if err := slot.Save(ctx, key); err != nil {
		return "", fmt.Errorf("save signing key: %w", err)
	}
	logger.Info("Generated installation signing key")
	return key, nil
}
