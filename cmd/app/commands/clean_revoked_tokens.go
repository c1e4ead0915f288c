package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	authUseCase "github.com/allisson/accounts/internal/auth/usecase"
)

// RunCleanRevokedTokens purges blacklist entries whose tokens already expired.
// Expired entries can no longer influence validation, so removing them only
// reclaims storage. Supports dry-run mode to preview the deletion count and
// both text/JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunCleanRevokedTokens(
	ctx context.Context,
	revokedTokenRepo authUseCase.RevokedTokenRepository,
	logger *slog.Logger,
	out io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}

	// days adds a grace period past expiry before an entry is purged.
	before := time.Now().UTC().AddDate(0, 0, -days)

	logger.Info("cleaning revoked tokens",
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	var count int64
	var err error
	if dryRun {
		count, err = revokedTokenRepo.CountExpired(ctx, before)
	} else {
		count, err = revokedTokenRepo.DeleteExpired(ctx, before)
	}
	if err != nil {
		return fmt.Errorf("failed to clean revoked tokens: %w", err)
	}

	if format == "json" {
		outputCleanJSON(out, count, dryRun)
	} else {
		outputCleanText(out, count, dryRun)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}

// outputCleanText outputs the result in human-readable text format.
func outputCleanText(out io.Writer, count int64, dryRun bool) {
	if dryRun {
		fmt.Fprintf(out, "Dry-run mode: Would delete %d expired blacklist entry(ies)\n", count)
	} else {
		fmt.Fprintf(out, "Successfully deleted %d expired blacklist entry(ies)\n", count)
	}
}

// outputCleanJSON outputs the result in JSON format for machine consumption.
func outputCleanJSON(out io.Writer, count int64, dryRun bool) {
	result := map[string]interface{}{
		"count":   count,
		"dry_run": dryRun,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(out, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Fprintln(out, string(jsonBytes))
}
