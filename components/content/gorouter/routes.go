package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/JasirTK/shopifysmartpromo/components/chat"
	"github.com/JasirTK/shopifysmartpromo/components/content"
	"github.com/JasirTK/shopifysmartpromo/components/content/commands"
	"github.com/JasirTK/shopifysmartpromo/components/content/httpapi"
	"github.com/JasirTK/shopifysmartpromo/components/tools"
	"github.com/JasirTK/shopifysmartpromo/pkg/auth"
)

const defaultMaxUploadBytes = 8 << 20

// Config wires go-router with the marketing site, the editor console, and the
// public JSON API.
type Config[T any] struct {
	Router     router.Router[T]
	Controller *content.Controller
	API        httpapi.Executor
	Broadcast  *content.BroadcastHook
	Auth       *auth.Service
	Chat       *chat.Service
	Insights   *chat.Insights
	Uploader   content.Uploader
	// Renderer renders standalone pages (insights) that the controller
	// does not own. Usually the same renderer passed to the controller.
	Renderer content.Renderer
	// StaticFS, when set, is mounted at Routes.Assets and serves the site
	// stylesheet, browser scripts, and uploaded images.
	StaticFS       fs.FS
	MaxUploadBytes int64
	Routes         RouteConfig
}

// RouteConfig customizes the paths used for site and editor endpoints.
type RouteConfig struct {
	Landing       string
	AllContent    string
	PublicContent string
	AdminContent  string
	Upload        string
	ChatMessage   string
	AuthToken     string
	Banner        string
	Admin         string
	Login         string
	Logout        string
	Save          string
	AddItem       string
	RemoveItem    string
	Insights      string
	WebSocket     string
	Assets        string
}

// Register mounts the landing page, editor console, JSON API, chat, and the
// refresh WebSocket on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := cfg.routes()
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}

	if cfg.StaticFS != nil && routes.Assets != "" {
		cfg.Router.Static(routes.Assets, ".", router.Static{
			FS:     cfg.StaticFS,
			Root:   ".",
			MaxAge: 86400,
		})
	}

	r := cfg.Router

	r.Get(routes.Landing, router.WrapHandler(func(ctx router.Context) error {
		html, err := cfg.Controller.LandingPage(ctx.Context())
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return sendHTML(ctx, html)
	}))

	if cfg.API != nil {
		registerAPI(r, cfg.API, cfg.Auth, routes)
	}
	if cfg.Uploader != nil {
		registerUpload(r, cfg.Uploader, cfg.Auth, routes.Upload, maxUpload)
	}
	if cfg.Chat != nil {
		registerChat(r, cfg.Chat, routes.ChatMessage)
	}
	if cfg.Auth != nil {
		registerAuthToken(r, cfg.Auth, routes.AuthToken)
	}

	registerAdmin(r, cfg, routes)

	if cfg.Broadcast != nil {
		registerWebSocket(r, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, guard *auth.Service, routes RouteConfig) {
	r.Get(routes.AllContent, router.WrapHandler(func(ctx router.Context) error {
		sections, err := api.Sections(ctx.Context())
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		if sections == nil {
			sections = []content.ContentSection{}
		}
		return ctx.JSON(http.StatusOK, sections)
	}))

	r.Get(routes.PublicContent, router.WrapHandler(func(ctx router.Context) error {
		key := ctx.Param("key")
		section, err := api.Section(ctx.Context(), key)
		if errors.Is(err, content.ErrSectionNotFound) {
			return respondError(ctx, http.StatusNotFound, err)
		}
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, section)
	}))

	r.Put(routes.AdminContent, router.WrapHandler(func(ctx router.Context) error {
		session, err := authorize(ctx, guard)
		if err != nil {
			return respondError(ctx, http.StatusUnauthorized, err)
		}
		key := ctx.Param("key")
		var payload struct {
			Content content.Value `json:"content"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		input := commands.UpdateSectionInput{
			Key:     key,
			Content: payload.Content,
			ActorID: session.Username,
		}
		if err := api.Update(ctx.Context(), input); err != nil {
			if errors.Is(err, content.ErrInvalidContent) {
				return respondError(ctx, http.StatusUnprocessableEntity, err)
			}
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		section, err := api.Section(ctx.Context(), key)
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, section)
	}))
}

func registerUpload[T any](r router.Router[T], uploader content.Uploader, guard *auth.Service, path string, maxBytes int64) {
	r.Post(path, router.WrapHandler(func(ctx router.Context) error {
		if _, err := authorize(ctx, guard); err != nil {
			return respondError(ctx, http.StatusUnauthorized, err)
		}
		name, data, err := uploadedFile(ctx, maxBytes)
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		url, err := uploader.Save(ctx.Context(), name, data)
		if err != nil {
			return respondError(ctx, http.StatusUnprocessableEntity, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"url": url})
	}))
}

func registerChat[T any](r router.Router[T], svc *chat.Service, path string) {
	r.Post(path, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			SessionID string `json:"session_id"`
			Message   string `json:"message"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		reply, err := svc.Reply(ctx.Context(), payload.SessionID, payload.Message)
		if err != nil {
			return respondError(ctx, http.StatusUnprocessableEntity, err)
		}
		return ctx.JSON(http.StatusOK, reply)
	}))
}

func registerAuthToken[T any](r router.Router[T], svc *auth.Service, path string) {
	r.Post(path, router.WrapHandler(func(ctx router.Context) error {
		form, err := url.ParseQuery(string(ctx.Body()))
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		token, err := svc.Login(ctx.Context(), form.Get("username"), form.Get("password"))
		if errors.Is(err, auth.ErrBadCredentials) {
			return respondError(ctx, http.StatusUnauthorized, err)
		}
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{
			"access_token": token,
			"token_type":   "bearer",
		})
	}))
}

func registerAdmin[T any](r router.Router[T], cfg Config[T], routes RouteConfig) {
	ctl := cfg.Controller

	r.Get(routes.Login, router.WrapHandler(func(ctx router.Context) error {
		html, err := ctl.LoginPage(ctx.Query("error"))
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return sendHTML(ctx, html)
	}))

	r.Post(routes.Login, router.WrapHandler(func(ctx router.Context) error {
		if cfg.Auth == nil {
			return respondError(ctx, http.StatusNotImplemented, errors.New("authentication is not configured"))
		}
		form, err := url.ParseQuery(string(ctx.Body()))
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		token, err := cfg.Auth.Login(ctx.Context(), form.Get("username"), form.Get("password"))
		if errors.Is(err, auth.ErrBadCredentials) {
			html, rerr := ctl.LoginPage("Invalid username or password")
			if rerr != nil {
				return respondError(ctx, http.StatusInternalServerError, rerr)
			}
			return sendHTML(ctx, html)
		}
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Set-Cookie", cfg.Auth.SessionCookie(token))
		return redirect(ctx, routes.Admin)
	}))

	r.Post(routes.Logout, router.WrapHandler(func(ctx router.Context) error {
		if cfg.Auth != nil {
			ctx.SetHeader("Set-Cookie", cfg.Auth.ClearCookie())
		}
		if session, err := authorize(ctx, cfg.Auth); err == nil {
			ctl.Sessions().Drop(session.Username)
		}
		return redirect(ctx, routes.Login)
	}))

	r.Get(routes.Admin, router.WrapHandler(func(ctx router.Context) error {
		session, err := authorize(ctx, cfg.Auth)
		if err != nil {
			return redirect(ctx, routes.Login)
		}
		var html string
		if key := ctx.Query("section"); key != "" {
			html, err = ctl.SelectSection(ctx.Context(), session.Username, key)
		} else {
			html, err = ctl.AdminPage(ctx.Context(), session.Username)
		}
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return sendHTML(ctx, html)
	}))

	r.Post(routes.Save, router.WrapHandler(func(ctx router.Context) error {
		_, editor, err := editorSession(ctx, cfg)
		if err != nil {
			return redirect(ctx, routes.Login)
		}
		form, err := url.ParseQuery(string(ctx.Body()))
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if key := form.Get("section"); key != "" && key != editor.Selected() {
			if err := editor.Select(key); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
		}
		if err := applyFormEdits(editor, form); err != nil {
			return respondError(ctx, http.StatusUnprocessableEntity, err)
		}
		if err := editor.Save(ctx.Context()); err != nil && !errors.Is(err, content.ErrSaveInFlight) {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return redirect(ctx, adminSectionPath(routes.Admin, editor.Selected()))
	}))

	r.Post(routes.AddItem, router.WrapHandler(func(ctx router.Context) error {
		_, editor, err := editorSession(ctx, cfg)
		if err != nil {
			return redirect(ctx, routes.Login)
		}
		form, err := url.ParseQuery(string(ctx.Body()))
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		path, err := content.ParsePath(form.Get("path"))
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := editor.AddItem(path, ctl.Templates()); err != nil {
			return respondError(ctx, http.StatusUnprocessableEntity, err)
		}
		return redirect(ctx, adminSectionPath(routes.Admin, editor.Selected()))
	}))

	r.Post(routes.RemoveItem, router.WrapHandler(func(ctx router.Context) error {
		_, editor, err := editorSession(ctx, cfg)
		if err != nil {
			return redirect(ctx, routes.Login)
		}
		form, err := url.ParseQuery(string(ctx.Body()))
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		path, err := content.ParsePath(form.Get("path"))
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := editor.RemoveAt(path); err != nil {
			return respondError(ctx, http.StatusUnprocessableEntity, err)
		}
		return redirect(ctx, adminSectionPath(routes.Admin, editor.Selected()))
	}))

	if cfg.Insights != nil && cfg.Renderer != nil {
		r.Get(routes.Insights, router.WrapHandler(func(ctx router.Context) error {
			if _, err := authorize(ctx, cfg.Auth); err != nil {
				return redirect(ctx, routes.Login)
			}
			days, _ := strconv.Atoi(ctx.Query("days"))
			report, err := cfg.Insights.Report(ctx.Context(), days)
			if err != nil {
				return respondError(ctx, http.StatusInternalServerError, err)
			}
			topics := make([]map[string]any, 0, len(report.Topics))
			for _, row := range report.Topics {
				topics = append(topics, map[string]any{
					"topic": row.Topic,
					"count": row.Count,
				})
			}
			html, err := cfg.Renderer.Render("insights", map[string]any{
				"chart":  report.ChartHTML,
				"topics": topics,
				"total":  report.Total,
			})
			if err != nil {
				return respondError(ctx, http.StatusInternalServerError, err)
			}
			return sendHTML(ctx, html)
		}))
	}

	r.Post(routes.Banner, router.WrapHandler(func(ctx router.Context) error {
		if _, err := authorize(ctx, cfg.Auth); err != nil {
			return respondError(ctx, http.StatusUnauthorized, err)
		}
		var spec tools.BannerSpec
		if err := json.Unmarshal(ctx.Body(), &spec); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		banner, err := tools.BuildBanner(spec)
		if err != nil {
			return respondError(ctx, http.StatusUnprocessableEntity, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{
			"html":    banner,
			"preview": tools.BrowserFrame("Banner preview", banner),
		})
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *content.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

// editorSession authenticates the request and returns the viewer's editor
// session, keyed by username so a login keeps one buffer across tabs.
func editorSession[T any](ctx router.Context, cfg Config[T]) (*auth.Session, *content.EditorSession, error) {
	session, err := authorize(ctx, cfg.Auth)
	if err != nil {
		return nil, nil, err
	}
	editor, err := cfg.Controller.Session(ctx.Context(), session.Username)
	if err != nil {
		return nil, nil, err
	}
	return session, editor, nil
}

// applyFormEdits maps posted form fields back onto the edit buffer. Field
// names are dotted paths; values are coerced to the kind already stored at
// that path so numeric steps and boolean flags survive the text round trip.
func applyFormEdits(editor *content.EditorSession, form url.Values) error {
	buffer := editor.Buffer()
	for name, values := range form {
		if name == "section" || len(values) == 0 {
			continue
		}
		path, err := content.ParsePath(name)
		if err != nil {
			continue
		}
		if err := editor.Edit(path, coerceValue(buffer, path, values[0])); err != nil {
			return err
		}
	}
	return nil
}

func coerceValue(buffer content.Value, path content.Path, raw string) content.Value {
	existing, ok := buffer.At(path)
	if !ok {
		return content.String(raw)
	}
	switch existing.Kind() {
	case content.KindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return content.String(raw)
		}
		return content.Bool(b)
	case content.KindNumber:
		if _, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err != nil {
			return content.String(raw)
		}
		return content.Number(strings.TrimSpace(raw))
	default:
		return content.String(raw)
	}
}

func uploadedFile(ctx router.Context, maxBytes int64) (string, []byte, error) {
	mediaType, params, err := mime.ParseMediaType(ctx.Header("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return "", nil, errors.New("multipart form upload expected")
	}
	body := ctx.Body()
	if int64(len(body)) > maxBytes {
		return "", nil, errors.New("upload exceeds size limit")
	}
	reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	form, err := reader.ReadForm(maxBytes)
	if err != nil {
		return "", nil, err
	}
	defer form.RemoveAll()
	files := form.File["file"]
	if len(files) == 0 {
		return "", nil, errors.New("file field is required")
	}
	file, err := files[0].Open()
	if err != nil {
		return "", nil, err
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, err
	}
	return files[0].Filename, data, nil
}

func authorize(ctx router.Context, svc *auth.Service) (*auth.Session, error) {
	if svc == nil {
		return nil, errors.New("gorouter: authentication is not configured")
	}
	return svc.Authenticate(ctx.Header("Authorization"), ctx.Header("Cookie"))
}

func sendHTML(ctx router.Context, html string) error {
	ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.Send([]byte(html))
}

// redirect issues a 303 so form posts land back on a GET page. The JSON body
// is a courtesy for API clients that follow the console routes directly.
func redirect(ctx router.Context, location string) error {
	ctx.SetHeader("Location", location)
	return ctx.JSON(http.StatusSeeOther, map[string]string{"location": location})
}

func adminSectionPath(adminRoute, key string) string {
	if key == "" {
		return adminRoute
	}
	return adminRoute + "?section=" + url.QueryEscape(key)
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"detail": err.Error()})
}

func (cfg Config[T]) routes() RouteConfig {
	return defaultRouteConfig(cfg.Routes)
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Landing == "" {
		routes.Landing = "/"
	}
	if routes.AllContent == "" {
		routes.AllContent = "/api/public/all-content"
	}
	if routes.PublicContent == "" {
		routes.PublicContent = "/api/public/content/:key"
	}
	if routes.AdminContent == "" {
		routes.AdminContent = "/api/admin/content/:key"
	}
	if routes.Upload == "" {
		routes.Upload = "/api/upload/"
	}
	if routes.ChatMessage == "" {
		routes.ChatMessage = "/api/chat/message"
	}
	if routes.AuthToken == "" {
		routes.AuthToken = "/api/auth/token"
	}
	if routes.Banner == "" {
		routes.Banner = "/api/tools/banner"
	}
	if routes.Admin == "" {
		routes.Admin = "/admin"
	}
	if routes.Login == "" {
		routes.Login = "/admin/login"
	}
	if routes.Logout == "" {
		routes.Logout = "/admin/logout"
	}
	if routes.Save == "" {
		routes.Save = "/admin/save"
	}
	if routes.AddItem == "" {
		routes.AddItem = "/admin/items/add"
	}
	if routes.RemoveItem == "" {
		routes.RemoveItem = "/admin/items/remove"
	}
	if routes.Insights == "" {
		routes.Insights = "/admin/insights"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/ws/content"
	}
	if routes.Assets == "" {
		routes.Assets = "/static"
	}
	return routes
}
