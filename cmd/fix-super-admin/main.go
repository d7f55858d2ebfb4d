// Command fix-super-admin re-grants every permission in the catalog to
// role 1. Run after a migration adds new permission codes so the
// superadmin role picks them up.
package main

import (
	"context"
	"fmt"

	"github.com/smklab/lms-backend/internal/config"
	"github.com/smklab/lms-backend/internal/database"
	"github.com/smklab/lms-backend/internal/logger"
	"github.com/smklab/lms-backend/internal/repository"
)

const superadminRoleID = 1

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	roleRepo := repository.NewRoleRepository(pool)

	rows, err := pool.Query(ctx, "SELECT code FROM permissions")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to query permissions")
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			log.Fatal().Err(err).Msg("Failed to scan permission code")
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		log.Fatal().Err(err).Msg("Error iterating over permissions")
	}

	if len(codes) == 0 {
		fmt.Println("No permissions found. Run migrations first.")
		return
	}
	fmt.Printf("Found %d permissions in the database.\n", len(codes))

	if err := roleRepo.DeleteAllPermissionsFromRole(ctx, superadminRoleID); err != nil {
		log.Fatal().Err(err).Msg("Failed to clear superadmin permissions")
	}
	if err := roleRepo.AssignPermissionsToRole(ctx, superadminRoleID, codes); err != nil {
		log.Fatal().Err(err).Msg("Failed to assign permissions to superadmin")
	}

	fmt.Println("Superadmin now holds every permission, including newly added ones.")
}
