package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"github.com/JasirTK/shopifysmartpromo/components/content"
	"github.com/JasirTK/shopifysmartpromo/pkg/auth"
	"github.com/JasirTK/shopifysmartpromo/pkg/promoapi"
	"github.com/JasirTK/shopifysmartpromo/pkg/store"
)

type cli struct {
	Seed       seedCmd       `cmd:"" help:"Seed the content store with the default marketing sections."`
	CreateUser createUserCmd `cmd:"" name:"create-user" help:"Create an admin console account."`
	Export     exportCmd     `cmd:"" help:"Export every content section as JSON."`
	Import     importCmd     `cmd:"" help:"Import content sections from a JSON export."`
	Template   templateCmd   `cmd:"" help:"Record a new-item template in a YAML manifest."`
	Pull       pullCmd       `cmd:"" help:"Download every section from a running deployment as JSON."`
	Push       pushCmd       `cmd:"" help:"Upload sections from a JSON export to a running deployment."`
}

type dbFlags struct {
	DB string `type:"path" default:"smartpromo.db" help:"Path to the SQLite database."`
}

func (f dbFlags) open() (*store.DB, error) {
	db, err := store.Open(f.DB)
	if err != nil {
		return nil, fmt.Errorf("promoctl: open %s: %w", f.DB, err)
	}
	return db, nil
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Content administration utility for Smart Promo deployments."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

type seedCmd struct {
	dbFlags
}

func (cmd *seedCmd) Run(ctx context.Context) error {
	db, err := cmd.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := content.SeedSections(ctx, db); err != nil {
		return fmt.Errorf("promoctl: seed sections: %w", err)
	}
	sections, err := db.ListSections(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Store %s holds %d sections\n", cmd.DB, len(sections))
	return nil
}

type createUserCmd struct {
	dbFlags
	Username string `required:"" help:"Login name for the new account."`
	Password string `required:"" help:"Password for the new account."`
}

func (cmd *createUserCmd) Run(ctx context.Context) error {
	db, err := cmd.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.GetUser(ctx, cmd.Username); err == nil {
		return fmt.Errorf("promoctl: user %s already exists", cmd.Username)
	} else if !errors.Is(err, auth.ErrUserNotFound) {
		return err
	}
	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return err
	}
	if _, err := db.CreateUser(ctx, auth.User{Username: cmd.Username, HashedPassword: hash}); err != nil {
		return fmt.Errorf("promoctl: create user: %w", err)
	}
	fmt.Fprintf(os.Stdout, "✓ Created user %s\n", cmd.Username)
	return nil
}

type exportCmd struct {
	dbFlags
	Out string `type:"path" help:"Destination file (defaults to stdout)."`
}

func (cmd *exportCmd) Run(ctx context.Context) error {
	db, err := cmd.open()
	if err != nil {
		return err
	}
	defer db.Close()

	sections, err := db.ListSections(ctx)
	if err != nil {
		return err
	}
	sections = content.SortSections(sections, nil)

	var out io.Writer = os.Stdout
	if cmd.Out != "" {
		file, err := os.Create(cmd.Out)
		if err != nil {
			return fmt.Errorf("promoctl: create %s: %w", cmd.Out, err)
		}
		defer file.Close()
		out = file
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(sections); err != nil {
		return fmt.Errorf("promoctl: write export: %w", err)
	}
	if cmd.Out != "" {
		fmt.Fprintf(os.Stdout, "✓ Exported %d sections to %s\n", len(sections), cmd.Out)
	}
	return nil
}

type importCmd struct {
	dbFlags
	File string `arg:"" type:"path" help:"JSON export produced by promoctl export."`
}

func (cmd *importCmd) Run(ctx context.Context) error {
	data, err := os.ReadFile(cmd.File)
	if err != nil {
		return fmt.Errorf("promoctl: read %s: %w", cmd.File, err)
	}
	var sections []content.ContentSection
	if err := json.Unmarshal(data, &sections); err != nil {
		return fmt.Errorf("promoctl: parse %s: %w", cmd.File, err)
	}

	db, err := cmd.open()
	if err != nil {
		return err
	}
	defer db.Close()

	for _, section := range sections {
		if section.Key == "" {
			return fmt.Errorf("promoctl: %s contains a section without a key", cmd.File)
		}
		if _, err := db.UpsertSection(ctx, section); err != nil {
			return fmt.Errorf("promoctl: import section %s: %w", section.Key, err)
		}
	}
	fmt.Fprintf(os.Stdout, "✓ Imported %d sections into %s\n", len(sections), cmd.DB)
	return nil
}

type templateCmd struct {
	Section      string `required:"" help:"Section key the template belongs to."`
	Field        string `required:"" help:"Array field within the section."`
	ItemPath     string `name:"item" type:"path" help:"JSON file holding the template item (defaults to a title/description stub)."`
	ManifestPath string `name:"manifest" required:"" type:"path" help:"Path to the template manifest YAML file to update."`
	Name         string `help:"Manifest display name (recorded on first write)."`
	Overwrite    bool   `help:"Replace an existing entry for the same section and field."`
}

func (cmd *templateCmd) Run(_ context.Context) error {
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("promoctl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}
	if cmd.Name != "" {
		doc.Name = cmd.Name
	}

	item, err := cmd.loadItem()
	if err != nil {
		return err
	}
	entry := content.ManifestTemplate{Section: cmd.Section, Field: cmd.Field, Item: item}

	replaced := false
	for idx := range doc.Templates {
		if doc.Templates[idx].Section == cmd.Section && doc.Templates[idx].Field == cmd.Field {
			if !cmd.Overwrite {
				return fmt.Errorf("promoctl: manifest already defines %s.%s (use --overwrite to replace)", cmd.Section, cmd.Field)
			}
			doc.Templates[idx] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Templates = append(doc.Templates, entry)
	}
	sort.Slice(doc.Templates, func(i, j int) bool {
		if doc.Templates[i].Section != doc.Templates[j].Section {
			return doc.Templates[i].Section < doc.Templates[j].Section
		}
		return doc.Templates[i].Field < doc.Templates[j].Field
	})

	if err := doc.Validate(); err != nil {
		return err
	}
	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Recorded template %s.%s in %s\n", cmd.Section, cmd.Field, manifestPath)
	return nil
}

func (cmd *templateCmd) loadItem() (yaml.Node, error) {
	data := []byte(`{"title": "New Item", "description": ""}`)
	if cmd.ItemPath != "" {
		var err error
		data, err = os.ReadFile(cmd.ItemPath)
		if err != nil {
			return yaml.Node{}, fmt.Errorf("promoctl: read item file: %w", err)
		}
	}
	if _, err := content.ParseValue(data); err != nil {
		return yaml.Node{}, fmt.Errorf("promoctl: item is not valid JSON content: %w", err)
	}
	// JSON is a YAML subset, so decoding through yaml keeps key order intact.
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return yaml.Node{}, fmt.Errorf("promoctl: decode item: %w", err)
	}
	if len(doc.Content) == 0 {
		return yaml.Node{}, errors.New("promoctl: item file is empty")
	}
	return *doc.Content[0], nil
}

type pullCmd struct {
	URL string `required:"" help:"Base URL of the deployment (e.g. https://promo.example.com)."`
	Out string `type:"path" help:"Destination file (defaults to stdout)."`
}

func (cmd *pullCmd) Run(ctx context.Context) error {
	client, err := promoapi.New(promoapi.Config{BaseURL: cmd.URL})
	if err != nil {
		return err
	}
	sections := client.GetAllContent(ctx)
	if len(sections) == 0 {
		return fmt.Errorf("promoctl: %s returned no sections", cmd.URL)
	}

	var out io.Writer = os.Stdout
	if cmd.Out != "" {
		file, err := os.Create(cmd.Out)
		if err != nil {
			return fmt.Errorf("promoctl: create %s: %w", cmd.Out, err)
		}
		defer file.Close()
		out = file
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(sections); err != nil {
		return fmt.Errorf("promoctl: write export: %w", err)
	}
	if cmd.Out != "" {
		fmt.Fprintf(os.Stdout, "✓ Pulled %d sections from %s\n", len(sections), cmd.URL)
	}
	return nil
}

type pushCmd struct {
	URL      string `required:"" help:"Base URL of the deployment."`
	Username string `required:"" help:"Admin account used to authenticate."`
	Password string `required:"" help:"Password for the admin account."`
	File     string `arg:"" type:"path" help:"JSON export produced by promoctl export or pull."`
}

func (cmd *pushCmd) Run(ctx context.Context) error {
	data, err := os.ReadFile(cmd.File)
	if err != nil {
		return fmt.Errorf("promoctl: read %s: %w", cmd.File, err)
	}
	var sections []content.ContentSection
	if err := json.Unmarshal(data, &sections); err != nil {
		return fmt.Errorf("promoctl: parse %s: %w", cmd.File, err)
	}

	client, err := promoapi.New(promoapi.Config{BaseURL: cmd.URL})
	if err != nil {
		return err
	}
	if _, err := client.Login(ctx, cmd.Username, cmd.Password); err != nil {
		return err
	}
	for _, section := range sections {
		if section.Key == "" {
			return fmt.Errorf("promoctl: %s contains a section without a key", cmd.File)
		}
		if _, err := client.UpdateContent(ctx, section.Key, section.Content); err != nil {
			return fmt.Errorf("promoctl: push section %s: %w", section.Key, err)
		}
	}
	fmt.Fprintf(os.Stdout, "✓ Pushed %d sections to %s\n", len(sections), cmd.URL)
	return nil
}

func loadOrInitManifest(path string) (*content.TemplateManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			doc := &content.TemplateManifestDocument{
				Version:   content.TemplateManifestVersion,
				Templates: []content.ManifestTemplate{},
				Source:    path,
			}
			return doc, nil
		}
		return nil, fmt.Errorf("promoctl: stat manifest: %w", err)
	}
	doc, err := content.ReadTemplateManifest(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func writeManifest(path string, doc *content.TemplateManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("promoctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmpDoc := *doc
	tmpDoc.Source = ""

	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("promoctl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(tmpDoc); err != nil {
		return fmt.Errorf("promoctl: write manifest: %w", err)
	}
	return nil
}
