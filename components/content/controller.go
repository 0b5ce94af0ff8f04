package content

import (
	"context"
	"errors"
)

// Controller prepares page view models and renders them with the configured
// template renderer.
type Controller struct {
	service   *Service
	templates *TemplateRegistry
	renderer  Renderer
	forms     FormRenderer
	sessions  *SessionRegistry
}

// ControllerOptions configures a Controller.
type ControllerOptions struct {
	Service   *Service
	Templates *TemplateRegistry
	Renderer  Renderer
	Forms     FormRenderer
	Sessions  *SessionRegistry
}

// NewController wires the service and renderer into a controller.
func NewController(opts ControllerOptions) (*Controller, error) {
	if opts.Service == nil {
		return nil, errors.New("content: controller requires a service")
	}
	if opts.Renderer == nil {
		return nil, errors.New("content: controller requires a renderer")
	}
	if opts.Templates == nil {
		opts.Templates = NewTemplateRegistry()
	}
	if opts.Sessions == nil {
		opts.Sessions = NewSessionRegistry()
	}
	return &Controller{
		service:   opts.Service,
		templates: opts.Templates,
		renderer:  opts.Renderer,
		forms:     opts.Forms,
		sessions:  opts.Sessions,
	}, nil
}

// Sessions exposes the editor session registry for route handlers.
func (c *Controller) Sessions() *SessionRegistry { return c.sessions }

// Templates exposes the array-item template registry.
func (c *Controller) Templates() *TemplateRegistry { return c.templates }

// Session returns the editor session for the given id, creating one against
// the controller's content service on first use.
func (c *Controller) Session(ctx context.Context, sessionID string) (*EditorSession, error) {
	return c.sessions.GetOrCreate(ctx, sessionID, c.service)
}

// LandingPage renders the public marketing page from the stored sections.
// Sections arrive in canonical order; templates index them by key.
func (c *Controller) LandingPage(ctx context.Context) (string, error) {
	sections, err := c.service.List(ctx)
	if err != nil {
		return "", err
	}
	byKey := make(map[string]any, len(sections))
	for _, s := range sections {
		byKey[s.Key] = s.Content.Interface()
	}
	seo := map[string]any{}
	if v, ok := byKey["seo"].(map[string]any); ok {
		seo = v
	}
	return c.renderer.Render("landing", map[string]any{
		"sections": byKey,
		"seo":      seo,
	})
}

// LoginPage renders the admin sign-in form. An optional error message is
// shown after a failed attempt.
func (c *Controller) LoginPage(errMsg string) (string, error) {
	return c.renderer.Render("login", map[string]any{
		"error": errMsg,
	})
}

// AdminPage renders the admin console: a section switcher plus the dynamic
// edit form for the selected section, generated from that session's buffer.
func (c *Controller) AdminPage(ctx context.Context, sessionID string) (string, error) {
	session, err := c.sessions.GetOrCreate(ctx, sessionID, c.service)
	if err != nil {
		return "", err
	}
	return c.renderAdmin(session)
}

// SelectSection switches the session's edited section and re-renders the
// console. The previous buffer is gone once this returns.
func (c *Controller) SelectSection(ctx context.Context, sessionID, key string) (string, error) {
	session, err := c.sessions.GetOrCreate(ctx, sessionID, c.service)
	if err != nil {
		return "", err
	}
	if err := session.Select(key); err != nil {
		return "", err
	}
	return c.renderAdmin(session)
}

func (c *Controller) renderAdmin(session *EditorSession) (string, error) {
	sections := session.Sections()
	nav := make([]map[string]any, 0, len(sections))
	for _, s := range sections {
		nav = append(nav, map[string]any{
			"key":      s.Key,
			"label":    humanizeKey(s.Key),
			"selected": s.Key == session.Selected(),
		})
	}
	formHTML := ""
	if key := session.Selected(); key != "" {
		form, err := BuildForm(key, session.Buffer())
		switch {
		case errors.Is(err, ErrInvalidContent):
			// Non-object content gets an inline error, the switcher stays up.
			formHTML = c.forms.RenderInvalid(key)
		case err != nil:
			return "", err
		default:
			formHTML = c.forms.RenderForm(form)
		}
	}
	return c.renderer.Render("admin", map[string]any{
		"nav":      nav,
		"selected": session.Selected(),
		"form":     formHTML,
		"saving":   session.State() == StateSaving,
		"notice":   session.Notice(),
	})
}
