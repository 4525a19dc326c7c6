package main

import (
	"context"
	"fmt"
	"time"

	"propertyhub-api/internal/models"
	"propertyhub-api/internal/repositories"
	"propertyhub-api/internal/seed"
	"propertyhub-api/internal/services"
	"propertyhub-api/internal/stats"
	"propertyhub-api/internal/validators"
	"propertyhub-api/pkg/cache"
	"propertyhub-api/pkg/config"
	"propertyhub-api/pkg/database"
	"propertyhub-api/pkg/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
)

// Default administrator created by the admin command.
const (
	AdminName     = "Admin User"
	AdminEmail    = "admin@propertyhub.com"
	AdminPassword = "Admin@123"
	AdminPhone    = "+1234567890"
)

const commandTimeout = 2 * time.Minute

var (
	success = color.New(color.FgGreen, color.Bold)
	warning = color.New(color.FgYellow)
	detail  = color.New(color.FgCyan)
)

// env bundles what every command needs.
type env struct {
	cfg        *config.Config
	store      cache.Store
	users      repositories.UserRepository
	properties repositories.PropertyRepository
	cities     repositories.CityRepository
}

// connect loads configuration and opens MongoDB, plus Redis when reachable
// so seeded data does not hide behind stale cache entries.
func connect(configPath string) (*env, func(), error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger.InitLogger(cfg.Server.Env, cfg.Server.LogLevel)

	if err := database.InitDB(cfg); err != nil {
		return nil, nil, err
	}

	var store cache.Store = cache.NoopStore{}
	if err := cache.InitRedis(cfg.Redis); err != nil {
		warning.Printf("Redis unavailable, cached results may be stale: %v\n", err)
	} else {
		store = cache.NewRedisStore(cache.RedisClient)
	}

	closeAll := func() {
		database.CloseDB()
		cache.CloseRedis()
	}
	return &env{
		cfg:        cfg,
		store:      store,
		users:      repositories.NewUserRepository(database.DB),
		properties: repositories.NewPropertyRepository(database.DB),
		cities:     repositories.NewCityRepository(database.DB),
	}, closeAll, nil
}

// run wraps a command body with connection setup and a timeout.
func run(configPath *string, body func(ctx context.Context, e *env) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		e, closeAll, err := connect(*configPath)
		if err != nil {
			return err
		}
		defer closeAll()

		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
		defer cancel()
		return body(ctx, e)
	}
}

func CitiesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "cities",
		Short: "Insert or refresh the default city list",
		RunE: run(configPath, func(ctx context.Context, e *env) error {
			svc := services.NewCityService(e.cities, e.store, e.cfg.Redis.StatsTTL)
			n, err := svc.Seed(ctx, seed.Cities())
			if err != nil {
				return fmt.Errorf("failed to seed cities after %d: %v", n, err)
			}
			success.Printf("Seeded %d cities\n", n)
			return nil
		}),
	}
}

// ensureAdmin returns the default administrator, creating it when missing.
func ensureAdmin(ctx context.Context, e *env) (*models.User, bool, error) {
	existing, err := e.users.FindByEmail(ctx, AdminEmail)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	active := true
	svc := services.NewAdminService(e.users, e.properties, stats.NewAggregator(e.properties, e.users), e.store)
	admin, err := svc.CreateUser(ctx, &validators.AdminCreateUserInput{
		Name:     AdminName,
		Email:    AdminEmail,
		Password: AdminPassword,
		Phone:    AdminPhone,
		Role:     models.RoleAdmin,
		IsActive: &active,
	})
	if err != nil {
		return nil, false, err
	}
	return admin, true, nil
}

func AdminCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "admin",
		Short: "Create the default administrator account",
		RunE: run(configPath, func(ctx context.Context, e *env) error {
			_, created, err := ensureAdmin(ctx, e)
			if err != nil {
				return fmt.Errorf("failed to create admin user: %v", err)
			}
			if created {
				success.Println("Admin user created successfully!")
			} else {
				warning.Println("Admin user already exists")
			}
			detail.Printf("Email: %s\nPassword: %s\n", AdminEmail, AdminPassword)
			return nil
		}),
	}
}

func PropertiesCmd(configPath *string) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "Insert the demo listings, owned by the default administrator",
		RunE: run(configPath, func(ctx context.Context, e *env) error {
			existing, err := e.properties.Count(ctx, bson.D{})
			if err != nil {
				return err
			}
			if existing > 0 && !force {
				warning.Printf("Database already has %d properties. Skipping seed.\n", existing)
				warning.Println("Run `seed clear` first or pass --force to add them anyway.")
				return nil
			}

			admin, _, err := ensureAdmin(ctx, e)
			if err != nil {
				return fmt.Errorf("failed to resolve listing owner: %v", err)
			}

			listings := seed.Properties(admin.ID)
			inserted, err := e.properties.InsertMany(ctx, listings)
			if err != nil {
				return fmt.Errorf("failed to insert properties: %v", err)
			}
			if err := e.store.Invalidate(ctx, cache.TagListings); err != nil {
				warning.Printf("Cache invalidation failed: %v\n", err)
			}

			success.Printf("Successfully seeded %d properties!\n", inserted)
			printBreakdown(listings)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&force, "force", false, "seed even when listings already exist")
	return cmd
}

func printBreakdown(listings []models.Property) {
	var homesForSale, homesForRent, plots, commercial int
	for _, p := range listings {
		switch {
		case p.PropertyType == models.TypeHome && p.Purpose == models.PurposeBuy:
			homesForSale++
		case p.PropertyType == models.TypeHome:
			homesForRent++
		case p.PropertyType == models.TypePlot:
			plots++
		default:
			commercial++
		}
	}
	detail.Printf("  - Homes for sale: %d\n  - Homes for rent: %d\n  - Plots for sale: %d\n  - Commercial properties: %d\n",
		homesForSale, homesForRent, plots, commercial)
}

func ClearCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every listing",
		RunE: run(configPath, func(ctx context.Context, e *env) error {
			deleted, err := e.properties.DeleteAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to clear properties: %v", err)
			}
			if err := e.store.Invalidate(ctx, cache.TagListings); err != nil {
				warning.Printf("Cache invalidation failed: %v\n", err)
			}
			success.Printf("Deleted %d properties\n", deleted)
			return nil
		}),
	}
}

func IndexesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the MongoDB indexes",
		RunE: run(configPath, func(ctx context.Context, e *env) error {
			if err := database.Current().EnsureIndexes(ctx); err != nil {
				return err
			}
			success.Println("Indexes created")
			return nil
		}),
	}
}
