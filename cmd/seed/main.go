package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/unn-housing/service-booking/internal/auth"
	"github.com/unn-housing/service-booking/internal/config"
	"github.com/unn-housing/service-booking/internal/database"
	"github.com/unn-housing/service-booking/internal/domain"
	lodgeDomain "github.com/unn-housing/service-booking/internal/domain/lodge"
	userDomain "github.com/unn-housing/service-booking/internal/domain/user"
	"github.com/unn-housing/service-booking/internal/logger"
	"github.com/unn-housing/service-booking/internal/repository"
)

const seedPassword = "password123"

type seedUser struct {
	email     string
	firstName string
	lastName  string
	role      auth.Role
}

var seedUsers = []seedUser{
	{"admin@unn.edu.ng", "Site", "Admin", auth.RoleAdmin},
	{"landlord@unn.edu.ng", "Emeka", "Nwosu", auth.RolePropertyOwner},
	{"student@unn.edu.ng", "Amaka", "Obi", auth.RoleTenant},
}

var seedLodges = []lodgeDomain.Details{
	{
		Title:     "Self-contained room near Hilltop gate",
		Location:  "Hilltop, Nsukka",
		Type:      lodgeDomain.TypeSelfContained,
		Rent:      180000,
		Deposit:   20000,
		Bedrooms:  1,
		Bathrooms: 1,
		Amenities: []string{"prepaid meter", "borehole", "tiled floor"},
	},
	{
		Title:     "Two-bedroom flat off Odim gate",
		Location:  "Odim, Nsukka",
		Type:      lodgeDomain.TypeApartment,
		Rent:      350000,
		Deposit:   50000,
		Bedrooms:  2,
		Bathrooms: 2,
		Amenities: []string{"fenced compound", "security"},
	},
}

// Seeds demo accounts and listings. Existing accounts are left untouched,
// so the tool can be run repeatedly.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewNamed(cfg.AppEnv, "seed")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("failed to run auto-migration", zap.Error(err))
	}

	ctx := context.Background()
	users := repository.NewGormUserRepository(db)
	lodges := repository.NewGormLodgeRepository(db)

	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		log.Fatal("failed to hash seed password", zap.Error(err))
	}

	var owner *userDomain.User
	for _, su := range seedUsers {
		u, err := users.FindByEmail(ctx, su.email)
		switch {
		case err == nil:
			log.Info("user already exists", zap.String("email", su.email))
		case domain.IsNotFound(err):
			u, err = userDomain.NewUser(su.email, hash, su.firstName, su.lastName, su.role)
			if err != nil {
				log.Fatal("invalid seed user", zap.String("email", su.email), zap.Error(err))
			}
			if err := users.Save(ctx, u); err != nil {
				log.Fatal("failed to save user", zap.String("email", su.email), zap.Error(err))
			}
			log.Info("user created", zap.String("email", su.email), zap.String("role", string(su.role)))
		default:
			log.Fatal("failed to look up user", zap.String("email", su.email), zap.Error(err))
		}
		if su.role == auth.RolePropertyOwner {
			owner = u
		}
	}

	existing, err := lodges.FindByOwnerID(ctx, owner.ID())
	if err != nil {
		log.Fatal("failed to load owner lodges", zap.Error(err))
	}
	if len(existing) > 0 {
		log.Info("lodges already seeded", zap.Int("count", len(existing)))
		return
	}

	for _, details := range seedLodges {
		l, err := lodgeDomain.NewLodge(owner.ID(), details)
		if err != nil {
			log.Fatal("invalid seed lodge", zap.String("title", details.Title), zap.Error(err))
		}
		if err := lodges.Save(ctx, l); err != nil {
			log.Fatal("failed to save lodge", zap.String("title", details.Title), zap.Error(err))
		}
		log.Info("lodge created", zap.String("id", l.ID().String()), zap.String("title", details.Title))
	}

	log.Info("seed completed", zap.String("password", seedPassword))
}
