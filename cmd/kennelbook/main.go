package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/kennelbook/internal/api"
	"github.com/terraincognita07/kennelbook/internal/cli"
	"github.com/terraincognita07/kennelbook/internal/db"
	"github.com/terraincognita07/kennelbook/internal/services"
)

var CLI struct {
	TZ string `help:"IANA time zone used for calendar dates." env:"TZ" default:"UTC"`

	Serve        ServeCmd            `cmd:"" help:"Run the HTTP API and reminder notifier." default:"1"`
	NextHeat     cli.NextHeatCmd     `cmd:"" help:"Estimate the heat interval and next heat from dates."`
	Pregnancy    cli.PregnancyCmd    `cmd:"" help:"Show gestation progress for a mating date."`
	MatingWindow cli.MatingWindowCmd `cmd:"" help:"Infer the mating window from progesterone readings."`
}

type ServeCmd struct {
	DBPath           string        `help:"SQLite database path." env:"DB_PATH" default:"data/kennelbook.db"`
	Port             string        `help:"HTTP listen port." env:"PORT" default:"8080"`
	TelegramBotToken string        `help:"Telegram bot token for reminder delivery." env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string        `help:"Telegram chat receiving reminders." env:"TELEGRAM_CHAT_ID"`
	NotifyInterval   time.Duration `help:"How often reminders are checked." env:"NOTIFY_INTERVAL" default:"6h"`
	NotifyMedium     bool          `help:"Also send medium priority reminders." env:"NOTIFY_MEDIUM"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("kennelbook"),
		kong.Description("Breeding kennel cycle, pregnancy and mating window estimates"),
		kong.UsageOnError(),
	)

	location := mustLoadLocation(CLI.TZ)
	time.Local = location

	appCtx := &cli.Context{
		Out:      os.Stdout,
		Location: location,
		Now:      time.Now,
	}
	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (c *ServeCmd) Run(appCtx *cli.Context) error {
	location := appCtx.Location

	database, err := db.OpenSQLite(c.DBPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	handler, err := api.NewHandler(database, location)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := newApp(handler)

	notifier := services.NewReminderNotifier(handler.ReminderSource(), services.ReminderNotifierConfig{
		BotToken:     c.TelegramBotToken,
		ChatID:       c.TelegramChatID,
		Interval:     c.NotifyInterval,
		NotifyMedium: c.NotifyMedium,
	}, location)
	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	notifier.Start(lifecycleCtx)
	if !notifier.Enabled() {
		log.Printf("reminder notifier disabled: TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are not set")
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Kennelbook listening on http://0.0.0.0:%s (db: %s, tz: %s)", c.Port, c.DBPath, location.String())
	if err := app.Listen(":" + c.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newApp(handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Kennelbook",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)
	return app
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}
