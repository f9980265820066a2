// cmd/dealctl/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/bradyhq/dealdesk/db/migrations"
	"github.com/bradyhq/dealdesk/internal/auth"
	"github.com/bradyhq/dealdesk/internal/config"
	"github.com/bradyhq/dealdesk/internal/email"
	"github.com/bradyhq/dealdesk/internal/metrics"
	"github.com/bradyhq/dealdesk/internal/model"
	"github.com/bradyhq/dealdesk/internal/repository"
	"github.com/bradyhq/dealdesk/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	sweepDate string
	verbose   bool
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	sweepCmd.Flags().StringVar(&sweepDate, "date", "", "Reference date for the sweep (YYYY-MM-DD, defaults to today)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(anonymizeCmd)
}

var rootCmd = &cobra.Command{
	Use:   "dealctl",
	Short: "dealctl is the operational CLI for the deal registration service",
	Long:  `dealctl runs database migrations, the scheduled expiry sweep, demo seeding, and data-retention jobs.`,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		if err := migrations.Run(cfg.DSN()); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		fmt.Println("Migrations applied successfully")
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Expire overdue deals and warn on deals nearing expiry",
	Long: `Force-expires every deal whose expiry date has elapsed, writing an audit
entry per deal, then emails warnings for deals expiring inside the
configured look-ahead window. Safe to run repeatedly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		today := time.Now().UTC().Truncate(24 * time.Hour)
		if sweepDate != "" {
			parsed, err := time.Parse("2006-01-02", sweepDate)
			if err != nil {
				log.Fatalf("Invalid --date %q: %v", sweepDate, err)
			}
			today = parsed
		}

		db := openDB(cfg)
		dealService, notificationService, dealRepo := buildServices(cfg, db)

		ctx := context.Background()

		expired, err := dealService.RunExpirySweep(ctx, today)
		if err != nil {
			log.Fatalf("Expiry sweep failed: %v", err)
		}
		fmt.Printf("Expired %d deals\n", expired)

		// Warning pass: deals still open whose expiry falls inside the window.
		window := today.AddDate(0, 0, cfg.Deals.ExpiryWarningDays)
		expiring, err := dealRepo.FindExpiringBetween(ctx, today, window)
		if err != nil {
			log.Fatalf("Failed to list expiring deals: %v", err)
		}
		for _, deal := range expiring {
			if err := notificationService.WarnExpiring(ctx, deal); err != nil {
				slog.Warn("expiry warning failed", "deal_id", deal.ID, "error", err)
			}
		}
		fmt.Printf("Sent expiry warnings for %d deals\n", len(expiring))
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed demo partner organisations, users and deals",
	Long:  `Seed a local database with demo data for manual testing. Not for production use.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		db := openDB(cfg)

		if err := seedDemo(context.Background(), cfg, db); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
		fmt.Println("Demo data seeded successfully")
	},
}

var anonymizeCmd = &cobra.Command{
	Use:   "anonymize",
	Short: "Anonymize end-customer names on all deals",
	Long:  `Blanks end-customer names for data retention. Irreversible.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		db := openDB(cfg)

		dealRepo := repository.NewDealRepository(db)
		count, err := dealRepo.AnonymizeEndCustomers(context.Background())
		if err != nil {
			log.Fatalf("Failed to anonymize deals: %v", err)
		}
		fmt.Printf("Anonymized %d deals\n", count)
	},
}

func openDB(cfg *config.Config) *gorm.DB {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
	if verbose {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func buildServices(cfg *config.Config, db *gorm.DB) (*service.DealService, *service.NotificationService, *repository.DealRepository) {
	userRepo := repository.NewUserRepository(db)
	dealRepo := repository.NewDealRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	emailService, err := email.NewEmailService(cfg, email.ProviderSendgrid)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	m := metrics.New()
	notificationService := service.NewNotificationService(
		notificationRepo,
		userRepo,
		emailService,
		nil, // no unread-count cache in one-shot runs
		m,
		cfg.BaseURL,
	)
	dealService := service.NewDealService(dealRepo, notificationService, m, cfg)

	return dealService, notificationService, dealRepo
}

// seedDemo populates two partner organisations, one user per role and a
// spread of deals across statuses, including one already past its expiry date
// so the sweep has something to pick up.
func seedDemo(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	partnerRepo := repository.NewPartnerRepository(db)
	userRepo := repository.NewUserRepository(db)
	dealRepo := repository.NewDealRepository(db)

	userService := service.NewUserService(
		userRepo,
		partnerRepo,
		auth.NewPasswordHasher(),
		auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryPeriod),
	)

	acme := &model.PartnerOrganisation{Name: "Acme Integrations", Status: model.PartnerActive}
	if err := partnerRepo.Create(ctx, acme); err != nil {
		return fmt.Errorf("creating partner: %w", err)
	}
	northwind := &model.PartnerOrganisation{Name: "Northwind Labelling", Status: model.PartnerActive}
	if err := partnerRepo.Create(ctx, northwind); err != nil {
		return fmt.Errorf("creating partner: %w", err)
	}

	users := []service.CreateUserInput{
		{Username: "alice", Email: "alice@acme.example", FirstName: "Alice", LastName: "Nguyen", Password: "demo-password-1", Role: model.RolePartner, PartnerOrganisationID: &acme.ID},
		{Username: "noor", Email: "noor@northwind.example", FirstName: "Noor", LastName: "Haddad", Password: "demo-password-1", Role: model.RolePartner, PartnerOrganisationID: &northwind.ID},
		{Username: "brady.reviewer", Email: "reviewer@brady.example", FirstName: "Bea", LastName: "Reviewer", Password: "demo-password-1", Role: model.RoleBrady},
		{Username: "brady.admin", Email: "admin@brady.example", FirstName: "Ada", LastName: "Admin", Password: "demo-password-1", Role: model.RoleAdmin},
	}
	byUsername := make(map[string]uuid.UUID, len(users))
	for _, input := range users {
		user, err := userService.CreateUser(ctx, input)
		if err != nil {
			return fmt.Errorf("creating user %s: %w", input.Username, err)
		}
		byUsername[input.Username] = user.ID
	}

	reviewerID := byUsername["brady.reviewer"]
	closeDate := time.Now().UTC().AddDate(0, 2, 0)
	pastExpiry := time.Now().UTC().AddDate(0, 0, -3)
	futureExpiry := time.Now().UTC().AddDate(0, 0, 45)

	deals := []*model.Deal{
		{
			PartnerID:       acme.ID,
			EndCustomerName: "Globex Manufacturing",
			ProjectName:     "Warehouse relabelling",
			EstimatedValue:  decimal.NewFromInt(42000),
			ProductCategory: model.CategoryLabels,
			Region:          "EMEA",
			DealType:        model.DealTypeNew,
			Status:          model.StatusDraft,
		},
		{
			PartnerID:         acme.ID,
			EndCustomerName:   "Initech Logistics",
			ProjectName:       "RFID pilot",
			EstimatedValue:    decimal.NewFromInt(118500),
			ExpectedCloseDate: &closeDate,
			ProductCategory:   model.CategoryRFID,
			Region:            "Americas",
			DealType:          model.DealTypeExpansion,
			Status:            model.StatusSubmitted,
		},
		{
			PartnerID:       northwind.ID,
			EndCustomerName: "Umbrella Pharma",
			ProjectName:     "Lab printer refresh",
			EstimatedValue:  decimal.NewFromInt(76300),
			ProductCategory: model.CategoryPrinters,
			Region:          "APAC",
			DealType:        model.DealTypeReplacement,
			Status:          model.StatusApproved,
			InternalOwnerID: &reviewerID,
			ExpiryDate:      &futureExpiry,
		},
		{
			PartnerID:       northwind.ID,
			EndCustomerName: "Soylent Foods",
			ProjectName:     "Scanner rollout",
			EstimatedValue:  decimal.NewFromInt(25400),
			ProductCategory: model.CategoryScanners,
			Region:          "EMEA",
			DealType:        model.DealTypeNew,
			Status:          model.StatusApproved,
			InternalOwnerID: &reviewerID,
			ExpiryDate:      &pastExpiry,
		},
	}
	for _, deal := range deals {
		if err := dealRepo.Create(ctx, deal); err != nil {
			return fmt.Errorf("creating deal %s: %w", deal.EndCustomerName, err)
		}
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
