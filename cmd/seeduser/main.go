// cmd/seeduser/main.go — creates or resets a user account directly in the
// store. Usage: go run ./cmd/seeduser -username admin -password secret -role admin
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"storepos/internal/config"
	"storepos/internal/infra"
	"storepos/internal/repository"
	"storepos/internal/service"

	"storepos/internal/apperr"
)

func main() {
	username := flag.String("username", "admin", "account username")
	password := flag.String("password", "", "account password (required)")
	role := flag.String("role", "admin", "account role: admin | user")
	flag.Parse()

	if *password == "" {
		log.Fatal("missing -password")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	db, err := infra.NewDatabase(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("store open error: %v", err)
	}

	repo := repository.NewUserRepository(db)
	svc := service.NewAuthService(repo, cfg)
	ctx := context.Background()

	id, err := svc.CreateUser(ctx, *username, *password, *role)
	if apperr.IsConflict(err) {
		// Account exists: rotate its password instead.
		u, ferr := repo.FindByUsername(ctx, *username)
		if ferr != nil {
			log.Fatalf("lookup error: %v", ferr)
		}
		if err := svc.ChangePassword(ctx, u.ID, *password); err != nil {
			log.Fatalf("password change error: %v", err)
		}
		fmt.Printf("user %q password updated\n", *username)
		return
	}
	if err != nil {
		log.Fatalf("create error: %v", err)
	}
	fmt.Printf("user %q created with id %d\n", *username, id)
}
