package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/kong"
	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"

	"github.com/JasirTK/shopifysmartpromo/components/content"
	contentrouter "github.com/JasirTK/shopifysmartpromo/components/content/gorouter"
	"github.com/JasirTK/shopifysmartpromo/pkg/app"
	"github.com/JasirTK/shopifysmartpromo/pkg/config"
)

type cli struct {
	Serve serveCmd `cmd:"" default:"1" help:"Run the Smart Promo server."`
}

type serveCmd struct {
	Config        string `type:"path" help:"Path to the YAML config file." default:"smartpromo.yaml"`
	AdminUser     string `env:"SMARTPROMO_ADMIN_USER" default:"admin" help:"Admin account to ensure on boot."`
	AdminPassword string `env:"SMARTPROMO_ADMIN_PASSWORD" help:"Password for the admin account. Skipped when empty."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Smart Promo marketing site and content editor."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

func (cmd *serveCmd) Run(ctx context.Context) error {
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}

	application, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	if cmd.AdminPassword != "" {
		if err := application.EnsureAdminUser(ctx, cmd.AdminUser, cmd.AdminPassword); err != nil {
			return fmt.Errorf("ensure admin user: %w", err)
		}
	}

	server := router.NewFiberAdapter()
	appRouter := server.Router()

	if err := contentrouter.Register(contentrouter.Config[*fiber.App]{
		Router:     appRouter,
		Controller: application.Controller,
		API:        application.Executor,
		Broadcast:  application.Broadcast,
		Auth:       application.Auth,
		Chat:       application.Chat,
		Insights:   application.Insights,
		Uploader:   application.Uploads,
		Renderer:   application.Renderer,
		StaticFS:   content.StaticAssetsFS(),
	}); err != nil {
		return fmt.Errorf("register routes: %w", err)
	}

	appRouter.Static(cfg.UploadURL, ".", router.Static{
		FS:   os.DirFS(application.Uploads.Dir()),
		Root: ".",
	})

	log.Printf("smartpromo listening on %s (admin console at /admin)", cfg.Addr)
	return server.Serve(cfg.Addr)
}
