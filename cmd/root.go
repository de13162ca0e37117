package cmd

import (
	"context"
	"os"
	"time"

	coreconfig "github.com/saharabot/sahara/core/config"
	settings "github.com/saharabot/sahara/core/settings/application"
	coreDB "github.com/saharabot/sahara/core/database"
	domainChatbot "github.com/saharabot/sahara/domains/chatbot"
	domainRefdata "github.com/saharabot/sahara/domains/refdata"
	infraRefdata "github.com/saharabot/sahara/infrastructure/refdata"
	"github.com/saharabot/sahara/infrastructure/valkey"
	"github.com/saharabot/sahara/integrations/nlu"
	"github.com/saharabot/sahara/pkg/utils"
	"github.com/saharabot/sahara/usecase"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	db          *gorm.DB
	cacheClient *valkey.Client

	refDataStore   domainRefdata.IRefDataStore
	intentDetector domainChatbot.IIntentDetector
	chatbotUsecase domainChatbot.IChatbotUsecase
)

// flag targets, merged over the env config in initApp
var (
	flagPort          string
	flagDebug         bool
	flagNLU           bool
	flagSkipSignature bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sahara",
	Short: "Refugee support chatbot over HTTP",
	Long: `Sahara answers refugees' questions about registration, food, shelter,
healthcare and emergency contacts through a messaging-gateway webhook.`,
}

func init() {
	// Load environment variables first
	utils.LoadConfig(".")

	time.Local = time.UTC

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	initFlags()

	cobra.OnInitialize(initApp)
}

func initFlags() {
	rootCmd.PersistentFlags().StringVarP(
		&flagPort,
		"port", "p",
		"",
		"change port number with --port <number> | example: --port=8080",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&flagDebug,
		"debug", "d",
		false,
		"hide or displaying log with --debug <true/false> | example: --debug=true",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&flagNLU,
		"nlu", "",
		false,
		"enable the remote intent detector --nlu <true/false> | example: --nlu=true",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&flagSkipSignature,
		"skip-signature", "",
		false,
		"skip webhook signature verification, refused in production | example: --skip-signature=true",
	)
}

func initApp() {
	cfg, err := coreconfig.LoadConfig()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	// Flags win over environment.
	if flagPort != "" {
		cfg.App.Port = flagPort
	}
	if flagDebug {
		cfg.App.Debug = true
	}
	if flagNLU {
		cfg.NLU.Enabled = true
	}
	if flagSkipSignature {
		cfg.Channel.SkipSignatureCheck = true
	}

	if cfg.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := utils.CreateFolder(cfg.Paths.Storages); err != nil {
		logrus.Errorln(err)
	}

	db, err = coreDB.NewDatabase(cfg)
	if err != nil {
		logrus.Fatalf("failed to open database: %v", err)
	}

	gormStore := infraRefdata.NewGormStore(db)
	if err := gormStore.AutoMigrate(); err != nil {
		logrus.Fatalf("failed to migrate reference data tables: %v", err)
	}
	refDataStore = gormStore

	// Operator overrides stored in the database win over the environment.
	settingsSvc := settings.NewSettingsService(db)
	if dynamic, err := settingsSvc.GetDynamicSettings(context.Background()); err != nil {
		logrus.WithError(err).Warn("[SETTINGS] failed to load dynamic settings, using environment only")
	} else {
		dynamic.ApplyTo(cfg)
	}

	if cfg.Valkey.Enabled {
		cacheClient, err = valkey.NewClient(valkey.Config{
			Address:   cfg.Valkey.Address,
			Password:  cfg.Valkey.Password,
			DB:        cfg.Valkey.DB,
			KeyPrefix: cfg.Valkey.KeyPrefix,
		})
		if err != nil {
			logrus.WithError(err).Warn("[CACHE] valkey unavailable, serving reference data without cache")
			cacheClient = nil
		} else {
			refDataStore = infraRefdata.NewCachedStore(refDataStore, cacheClient, cfg.Valkey.TTL)
			logrus.Info("[CACHE] valkey read-through cache enabled for reference data")
		}
	}

	if cfg.NLU.Enabled {
		intentDetector, err = nlu.NewDetector(cfg.NLU)
		if err != nil {
			logrus.WithError(err).Warn("[NLU] remote detector unavailable, falling back to keyword matching")
			intentDetector = nil
		} else {
			logrus.Infof("[NLU] remote intent detection enabled via %s", cfg.NLU.Provider)
		}
	}

	chatbotUsecase = usecase.NewChatbotService(intentDetector, refDataStore, cfg.Channel.RegistrationOffice, cfg.Channel.RegistrationHotline)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// StopApp performs a clean shutdown of the database and cache connections.
func StopApp() {
	logrus.Info("[APP] Stopping application...")

	if cacheClient != nil {
		cacheClient.Close()
	}

	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logrus.WithError(err).Error("[APP] Failed to close database")
			}
		}
	}

	logrus.Info("[APP] Application stopped cleanly.")
}
