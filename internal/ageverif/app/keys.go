package app

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aussiebroadwan/ageverif/pkg/cryptox"
	"github.com/aussiebroadwan/ageverif/pkg/jwtx"
)

// InitVerifier builds the assurance token verifier.
//
// AGEVERIF_PUBLIC_KEY may hold the key itself (a PEM public key for RS256 or
// the HMAC secret for HS256) or the path of a file containing it. A value
// that names an existing file is read; anything else is used as is.
//
// Signatures are only checked in production. Outside production a configured
// key is loaded but unused, which is logged once here.
func InitVerifier(cfg Config, logger *slog.Logger) (*jwtx.Verifier, error) {
	key, err := resolveKeyMaterial(cfg.PublicKey)
	if err != nil {
		return nil, err
	}

	verifier := jwtx.NewVerifier(key)
	switch {
	case verifier == nil && cfg.Production():
		logger.Warn("no verification key configured, assurance tokens are decoded without signature checks")
	case verifier == nil:
		logger.Info("no verification key configured")
	case !cfg.Production():
		logger.Warn("verification key configured but not enforced outside production", "env", cfg.Env)
	default:
		logger.Info("assurance token signature verification enabled")
	}

	return verifier, nil
}

func resolveKeyMaterial(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.Contains(value, "-----BEGIN") {
		return value, nil
	}

	info, err := os.Stat(value)
	if err != nil || info.IsDir() {
		return value, nil
	}

	data, err := os.ReadFile(value)
	if err != nil {
		return "", fmt.Errorf("read verification key file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// InitLedgerSealer builds the sealer for raw tokens in the attempts ledger
// from MASTER_KEY_PATH or AGEVERIF_MASTER_KEY. Without either the key is
// generated per process and sealed tokens cannot be opened after a restart.
func InitLedgerSealer(cfg Config, logger *slog.Logger) (*cryptox.Sealer, error) {
	if cfg.MasterKeyPath != "" {
		logger.Info("master key path configured", "path", cfg.MasterKeyPath)
	}

	sealer, err := cryptox.LoadSealer(cfg.MasterKeyPath, cfg.MasterKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ledger sealer: %w", err)
	}

	if sealer.Ephemeral {
		if cfg.Production() {
			logger.Warn("no master key configured, sealed ledger tokens will be unreadable after restart")
		} else {
			logger.Info("using ephemeral ledger master key")
		}
	}

	return sealer, nil
}
