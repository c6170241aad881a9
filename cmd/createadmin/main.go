package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/recipe-share-api/config"
	"github.com/oksasatya/recipe-share-api/internal/application"
	pginfra "github.com/oksasatya/recipe-share-api/internal/infrastructure/postgres"
	"github.com/oksasatya/recipe-share-api/pkg/helpers"
)

// createadmin provisions a staff + superuser account.
func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password (min 8 characters)")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}
	if len(*password) < 8 {
		log.Fatal("password must be at least 8 characters")
	}

	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	svc := application.NewUserService(pginfra.NewUserRepository(pool), nil, logger)
	u, err := svc.CreateSuperuser(ctx, *email, *password)
	if err != nil {
		log.Fatalf("failed to create superuser: %v", err)
	}
	fmt.Printf("created superuser: id=%d email=%s\n", u.ID, u.Email)
}
