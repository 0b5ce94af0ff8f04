// Package app assembles the Smart Promo services from configuration: storage,
// content editing, chat, auth, uploads, and the command executor the HTTP
// layer runs on.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/JasirTK/shopifysmartpromo/components/chat"
	"github.com/JasirTK/shopifysmartpromo/components/content"
	"github.com/JasirTK/shopifysmartpromo/components/content/commands"
	"github.com/JasirTK/shopifysmartpromo/components/content/httpapi"
	"github.com/JasirTK/shopifysmartpromo/components/content/queries"
	"github.com/JasirTK/shopifysmartpromo/pkg/activity"
	"github.com/JasirTK/shopifysmartpromo/pkg/activity/usersink"
	"github.com/JasirTK/shopifysmartpromo/pkg/auth"
	"github.com/JasirTK/shopifysmartpromo/pkg/config"
	"github.com/JasirTK/shopifysmartpromo/pkg/store"
	"github.com/JasirTK/shopifysmartpromo/pkg/telemetry"
	"github.com/JasirTK/shopifysmartpromo/pkg/uploads"
)

// App holds every wired service. Fields are exported so transports and CLIs
// can pick what they need.
type App struct {
	Config *config.Config

	DB        *store.DB
	Telemetry *telemetry.Recorder
	Activity  *activity.Emitter

	Content    *content.Service
	Controller *content.Controller
	Renderer   content.Renderer
	Broadcast  *content.BroadcastHook
	Executor   *httpapi.CommandExecutor

	Auth     *auth.Service
	Uploads  *uploads.Store
	Chat     *chat.Service
	Insights *chat.Insights
}

// Option customizes the assembled App.
type Option func(*options)

type options struct {
	hooks activity.Hooks
}

// WithActivitySink forwards activity events to a go-users activity log in
// addition to telemetry.
func WithActivitySink(sink usersink.Sink) Option {
	return func(o *options) {
		o.hooks = append(o.hooks, usersink.Hook{Sink: sink})
	}
}

// New opens the database and wires all services. The caller owns the
// returned App and should Close it on shutdown.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("app: invalid config: %w", err)
	}

	recorder, err := telemetry.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("app: telemetry: %w", err)
	}

	db, err := store.Open(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("app: open database: %w", err)
	}
	if cfg.SeedOnBoot {
		if err := content.SeedSections(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("app: seed content: %w", err)
		}
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	hooks := activity.Hooks{
		activity.HookFunc(func(ctx context.Context, evt activity.Event) error {
			recorder.Record(ctx, "activity."+evt.Verb, map[string]any{
				"actor_id":    evt.ActorID,
				"object_type": evt.ObjectType,
				"object_id":   evt.ObjectID,
				"channel":     evt.Channel,
			})
			return nil
		}),
	}
	hooks = append(hooks, o.hooks...)
	emitter := activity.NewEmitter(hooks, activity.Config{Enabled: true})

	return build(cfg, db, recorder, emitter)
}

// build wires services on top of an open database. Split out so tests and
// the demo can run against an in-memory store.
func build(cfg *config.Config, db *store.DB, recorder *telemetry.Recorder, emitter *activity.Emitter) (*App, error) {
	renderer, err := content.NewTemplateRenderer()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("app: templates: %w", err)
	}

	broadcast := content.NewBroadcastHook()
	contentSvc := content.NewService(content.Options{
		Store:       db,
		RefreshHook: broadcast,
		Telemetry:   recorder,
	})

	controller, err := content.NewController(content.ControllerOptions{
		Service:  contentSvc,
		Renderer: renderer,
		Forms:    content.FormRenderer{UploadURL: "/api/upload/"},
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("app: controller: %w", err)
	}

	cmdTelemetry := &activityTelemetry{recorder: recorder, emitter: emitter}
	executor := &httpapi.CommandExecutor{
		UpdateCmd:  commands.NewUpdateSectionCommand(contentSvc, cmdTelemetry),
		SeedCmd:    commands.NewSeedContentCommand(db, cmdTelemetry),
		RefreshCmd: commands.NewRefreshContentCommand(contentSvc, cmdTelemetry),
		SectionQ:   queries.NewSectionQuery(contentSvc),
		ListQ:      queries.NewListSectionsQuery(contentSvc),
	}

	uploadStore, err := uploads.NewStore(cfg.UploadDir, cfg.UploadURL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("app: uploads: %w", err)
	}

	var responder chat.Responder
	if cfg.OpenAIKey != "" {
		responder, err = chat.NewOpenAIResponder(cfg.OpenAIKey, cfg.OpenAIModel)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("app: openai responder: %w", err)
		}
	}

	return &App{
		Config:     cfg,
		DB:         db,
		Telemetry:  recorder,
		Activity:   emitter,
		Content:    contentSvc,
		Controller: controller,
		Renderer:   renderer,
		Broadcast:  broadcast,
		Executor:   executor,
		Auth:       auth.NewService(db, []byte(cfg.SecretKey)),
		Uploads:    uploadStore,
		Chat: chat.NewService(chat.Options{
			Logs:      db,
			Responder: responder,
			Telemetry: recorder,
		}),
		Insights: chat.NewInsights(db),
	}, nil
}

// EnsureAdminUser creates the admin account if it does not exist yet.
// An existing account is never modified.
func (a *App) EnsureAdminUser(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return errors.New("app: admin username and password are required")
	}
	if _, err := a.DB.GetUser(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, auth.ErrUserNotFound) {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = a.DB.CreateUser(ctx, auth.User{Username: username, HashedPassword: hash})
	return err
}

// Close releases the database and flushes telemetry.
func (a *App) Close() error {
	err := a.DB.Close()
	a.Broadcast.Close()
	_ = a.Telemetry.Sync()
	return err
}

// activityTelemetry records command telemetry and mirrors section updates
// into the activity stream.
type activityTelemetry struct {
	recorder *telemetry.Recorder
	emitter  *activity.Emitter
}

func (t *activityTelemetry) Record(ctx context.Context, event string, payload map[string]any) {
	t.recorder.Record(ctx, event, payload)
	if event != "content.section.update" {
		return
	}
	actor, _ := payload["actor_id"].(string)
	key, _ := payload["key"].(string)
	_ = t.emitter.Emit(ctx, activity.Event{
		Verb:       "section:update",
		ActorID:    actor,
		ObjectType: "section",
		ObjectID:   key,
	})
}
