// Command seeduser creates the first admin login, or any other login, directly
// against the configured database. It prints the generated password when none is given.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	"github.com/SscSPs/produce_settlement_app/internal/core/services"
	"github.com/SscSPs/produce_settlement_app/internal/dto"
	"github.com/SscSPs/produce_settlement_app/internal/platform/config"
	"github.com/SscSPs/produce_settlement_app/internal/platform/storage"
	"github.com/SscSPs/produce_settlement_app/internal/utils"
	"github.com/SscSPs/produce_settlement_app/pkg/logging"
)

// seedCaller is the identity recorded as creator of seeded users.
var seedCaller = domain.Caller{UserID: "seeduser", Role: domain.RoleAdmin}

func main() {
	username := flag.String("username", "admin", "login name")
	name := flag.String("name", "Administrator", "display name")
	password := flag.String("password", "", "password (generated when empty)")
	role := flag.String("role", string(domain.RoleAdmin), "admin, branch_manager or producer")
	producerID := flag.String("producer", "", "producer id for producer logins")
	branches := flag.String("branches", "", "comma separated branch ids for branch managers")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := logging.Setup(os.Stderr, cfg.LogLevel, cfg.IsProduction)

	generated := *password == ""
	if generated {
		*password, err = utils.GenerateSecureRandomString(12)
		if err != nil {
			logger.Error("Failed to generate password", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	req := dto.CreateUserRequest{
		Username: *username,
		Name:     *name,
		Password: *password,
		Role:     domain.Role(*role),
	}
	if *producerID != "" {
		req.ProducerID = producerID
	}
	for _, b := range strings.Split(*branches, ",") {
		if b = strings.TrimSpace(b); b != "" {
			req.BranchIDs = append(req.BranchIDs, b)
		}
	}

	ctx := context.Background()
	repos, closeDB, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeDB()

	users := services.NewUserService(repos.UserRepo, repos.ProducerRepo)
	user, err := users.CreateUser(ctx, seedCaller, req)
	if err != nil {
		logger.Error("Failed to create user", slog.String("error", err.Error()))
		closeDB()
		os.Exit(1)
	}

	fmt.Printf("created %s user %q (%s)\n", user.Role, user.Username, user.UserID)
	if generated {
		fmt.Printf("password: %s\n", *password)
	}
}
