// Command create-admin interactively creates a staff account. Used once
// after the first deploy to bootstrap the superadmin, and occasionally to
// add accounts without going through the API.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/smklab/lms-backend/internal/config"
	"github.com/smklab/lms-backend/internal/database"
	"github.com/smklab/lms-backend/internal/logger"
	"github.com/smklab/lms-backend/internal/model"
	"github.com/smklab/lms-backend/internal/repository"
	"github.com/smklab/lms-backend/internal/service"
	"golang.org/x/term"
)

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(userRepo, roleRepo, authService)

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("=== Create New Staff User ===")

	name := prompt(reader, "Enter Name: ")
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	email := prompt(reader, "Enter Email: ")
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	nip := prompt(reader, "Enter NIP (optional): ")

	fmt.Print("Enter Password: ")
	rawPassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Println("Error reading password")
		return
	}
	password := string(rawPassword)
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	roleID := 1
	if s := prompt(reader, "Enter Role ID (default 1 = superadmin): "); s != "" {
		roleID, err = strconv.Atoi(s)
		if err != nil {
			fmt.Println("Error: Role ID must be a number")
			return
		}
	}

	user, err := userService.Create(ctx, &model.CreateUserRequest{
		Email:    email,
		Name:     name,
		NIP:      nip,
		Password: password,
		RoleID:   roleID,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create user")
	}

	fmt.Printf("\nSuccess! User '%s' (%s) created with ID: %d\n", user.Name, user.Email, user.ID)
}
