package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"pointage/adapters/sqlite"
	"pointage/domain/core"
	"pointage/internal/auth"
	"pointage/internal/config"
	"pointage/models"
)

// migrate applies the schema and optionally seeds a user or workstation.
//
// Usage:
//
//	migrate up
//	migrate seed-user -username alice -password secret123 -name "Alice Martin" -role employee
//	migrate seed-workstation -code WS-ATELIER-1 -name "Atelier 1"
func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		log.Fatal("usage: migrate <up|seed-user|seed-workstation> [flags]")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}

	db, err := sqlite.Open(cfg.Database)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	if err := sqlite.NewMigrator(db).Up(ctx); err != nil {
		log.Fatalf("migrations: %v", err)
	}
	log.Printf("schema up to date at %s", cfg.Database.Path)

	switch os.Args[1] {
	case "up":
		// Migrations already ran above.
	case "seed-user":
		if err := seedUser(ctx, db, os.Args[2:]); err != nil {
			log.Fatalf("seed-user: %v", err)
		}
	case "seed-workstation":
		if err := seedWorkstation(ctx, db, os.Args[2:]); err != nil {
			log.Fatalf("seed-workstation: %v", err)
		}
	default:
		log.Fatalf("unknown command %q", os.Args[1])
	}
}

func seedUser(ctx context.Context, db *sqlx.DB, args []string) error {
	fs := flag.NewFlagSet("seed-user", flag.ExitOnError)
	username := fs.String("username", "", "login name")
	password := fs.String("password", "", "initial password")
	fullName := fs.String("name", "", "display name")
	role := fs.String("role", string(models.RoleEmployee), "employee, supervisor or admin")
	station := fs.String("workstation", "", "default workstation code (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		return err
	}

	var stationID *models.Workstation
	if *station != "" {
		stationID, err = sqlite.NewWorkstationRepository(db).GetByCode(ctx, *station)
		if err != nil {
			return err
		}
	}

	now := time.Now()
	user := &models.User{
		ID:           core.NewUUID(),
		Username:     *username,
		PasswordHash: hash,
		FullName:     *fullName,
		Role:         models.Role(*role),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if stationID != nil {
		user.WorkstationID = &stationID.ID
	}

	if err := sqlite.NewUserRepository(db).Create(ctx, user); err != nil {
		return err
	}
	log.Printf("created user %s (%s)", user.Username, user.ID)
	return nil
}

func seedWorkstation(ctx context.Context, db *sqlx.DB, args []string) error {
	fs := flag.NewFlagSet("seed-workstation", flag.ExitOnError)
	code := fs.String("code", "", "QR code value")
	name := fs.String("name", "", "display name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	now := time.Now()
	ws := &models.Workstation{
		ID:        core.NewUUID(),
		Code:      *code,
		Name:      *name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := sqlite.NewWorkstationRepository(db).Create(ctx, ws); err != nil {
		return err
	}
	log.Printf("created workstation %s (%s)", ws.Code, ws.ID)
	return nil
}
