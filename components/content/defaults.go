package content

import (
	"context"
	"errors"
	"fmt"
)

var defaultSectionDefinitions = []SectionDefinition{
	{
		Key:         "hero",
		Name:        "Hero",
		Description: "Rotating hero slides at the top of the landing page",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"slides"},
			"properties": map[string]any{
				"slides": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type":     "object",
						"required": []string{"title"},
					},
				},
			},
		},
	},
	{
		Key:         "features",
		Name:        "Features",
		Description: "Feature grid",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"title", "items"},
			"properties": map[string]any{
				"title": map[string]any{"type": "string"},
				"items": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "object"},
				},
			},
		},
	},
	{
		Key:         "how_it_works",
		Name:        "How It Works",
		Description: "Numbered onboarding steps",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"title", "steps"},
			"properties": map[string]any{
				"title": map[string]any{"type": "string"},
				"steps": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "object"},
				},
			},
		},
	},
	{
		Key:         "shopify_integration",
		Name:        "Shopify Integration",
		Description: "Platform integration highlights",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"title"},
			"properties": map[string]any{
				"title":    map[string]any{"type": "string"},
				"subtitle": map[string]any{"type": "string"},
				"features": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "object"},
				},
			},
		},
	},
	{
		Key:         "pricing",
		Name:        "Pricing",
		Description: "Plan cards",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"title", "plans"},
			"properties": map[string]any{
				"title":    map[string]any{"type": "string"},
				"subtitle": map[string]any{"type": "string"},
				"plans": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []string{"name", "price"},
					},
				},
			},
		},
	},
	{
		Key:         "testimonials",
		Name:        "Testimonials",
		Description: "Customer quotes",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"title", "items"},
			"properties": map[string]any{
				"title": map[string]any{"type": "string"},
				"items": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "object"},
				},
			},
		},
	},
	{
		Key:         "cta_bottom",
		Name:        "Bottom CTA",
		Description: "Closing call-to-action band",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"title"},
			"properties": map[string]any{
				"title":    map[string]any{"type": "string"},
				"subtitle": map[string]any{"type": "string"},
				"cta_main": map[string]any{"type": "string"},
			},
		},
	},
	{
		Key:         "seo",
		Name:        "SEO",
		Description: "Page title and meta description",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"title", "description"},
			"properties": map[string]any{
				"title":       map[string]any{"type": "string"},
				"description": map[string]any{"type": "string"},
			},
		},
	},
}

var defaultSeedContent = map[string]Value{
	"hero": MustParseValue(`{
		"slides": [
			{
				"title": "The Native AI Growth Engine for Shopify",
				"subtitle": "Seamlessly integrates with your Shopify store to automate promotions and boost retention.",
				"cta_primary": "Install Shopify App",
				"cta_primary_url": "#",
				"cta_secondary": "View Demo Store",
				"cta_secondary_url": "#",
				"style": "gradient-indigo",
				"image_url": ""
			},
			{
				"title": "Turn Shopify Visitors into Customers",
				"subtitle": "Smart popups that sync with your Shopify inventory and customer tags.",
				"cta_primary": "Start Free Trial",
				"cta_primary_url": "#",
				"cta_secondary": "Explore Features",
				"cta_secondary_url": "#",
				"style": "dark-mode",
				"image_url": "https://images.unsplash.com/photo-1556742049-0cfed4f7a07d?auto=format&fit=crop&q=80&w=1000"
			},
			{
				"title": "Deep Sync with Shopify Data",
				"subtitle": "Analyze 12 months of Shopify Order history to predict your next bestseller.",
				"cta_primary": "Connect Store",
				"cta_primary_url": "#",
				"cta_secondary": "Read Case Study",
				"cta_secondary_url": "#",
				"style": "light-mode",
				"image_url": ""
			}
		]
	}`),
	"features": MustParseValue(`{
		"title": "Built Exclusively for Shopify Plus",
		"items": [
			{"title": "Shopify Flow Integration", "desc": "Trigger advanced automation directly from your Shopify Admin Flow.", "icon": "Zap"},
			{"title": "Sync Orders & Customers", "desc": "Real-time bi-directional sync with your Shopify customer database.", "icon": "Users"},
			{"title": "Smart Discount Codes", "desc": "Auto-generate unique Shopify discount codes based on user behavior.", "icon": "Tag"},
			{"title": "Theme App Extension", "desc": "Works with Online Store 2.0 themes without slowing down your site.", "icon": "Layout"},
			{"title": "POS Compatibility", "desc": "Capture emails in-store and sync them to your online marketing lists.", "icon": "Smartphone"},
			{"title": "Multi-Currency Support", "desc": "Native support for Shopify Markets and international currencies.", "icon": "Globe"}
		]
	}`),
	"how_it_works": MustParseValue(`{
		"title": "Launch in 3 Simple Steps",
		"steps": [
			{"step": 1, "title": "Install from App Store", "desc": "Find 'Smart Promo' on the official Shopify App Store and click Install."},
			{"step": 2, "title": "One-Click OAuth", "desc": "Securely authorize access to your store via Shopify's official API."},
			{"step": 3, "title": "Watch Sales Grow", "desc": "We instantly analyze your past orders and deploy optimized campaigns."}
		]
	}`),
	"shopify_integration": MustParseValue(`{
		"title": "Deeply Integrated with Shopify",
		"subtitle": "We don't just sit on top of your store. We are woven into the fabric of the Shopify ecosystem.",
		"features": [
			{"title": "Shopify Flow", "desc": "Trigger Smart Promo campaigns directly from Shopify Flow workflows. No coding required.", "icon": "Workflow"},
			{"title": "Checkout Extensibility", "desc": "Native checkout upsells that look and feel exactly like your brand's checkout experience.", "icon": "CreditCard"},
			{"title": "Hydrogen Ready", "desc": "Headless storefront? No problem. Our React components are 100% compatible with Hydrogen.", "icon": "Code"},
			{"title": "Shopify Markets", "desc": "Automatically adjust currency and language for your international customers.", "icon": "Globe"}
		]
	}`),
	"pricing": MustParseValue(`{
		"title": "Simple Plans for Every Stage",
		"subtitle": "Choose the perfect plan for your Shopify store size. Upgrade or downgrade anytime.",
		"plans": [
			{
				"name": "Starter",
				"price": "$29",
				"period": "mo",
				"description": "Perfect for essential sales automation and basic insights.",
				"features": ["Up to 500 Orders/mo", "Basic Cohort Analysis", "1 Automated Campaign", "Email Support"],
				"cta": "Start Free Trial",
				"cta_url": "#",
				"highlight": false
			},
			{
				"name": "Growth",
				"price": "$79",
				"period": "mo",
				"description": "Advanced tools for scaling brands with serious revenue goals.",
				"features": ["Up to 2,500 Orders/mo", "Predictive Analytics", "Unlimited Campaigns", "Chatbot Assistant", "Priority Support"],
				"cta": "Start Free Trial",
				"cta_url": "#",
				"highlight": true
			},
			{
				"name": "Scale",
				"price": "$299",
				"period": "mo",
				"description": "Enterprise-grade power for high-volume Shopify Plus merchants.",
				"features": ["Unlimited Orders", "Custom AI Models", "Dedicated Success Manager", "Shopify Flow Actions", "API Access"],
				"cta": "Contact Sales",
				"cta_url": "#",
				"highlight": false
			}
		]
	}`),
	"testimonials": MustParseValue(`{
		"title": "Trusted by 5,000+ Shopify Merchants",
		"items": [
			{"name": "Sarah Jenkins", "role": "Owner, EcoWear", "quote": "The best Shopify app we've installed this year. ROI was positive in day 3.", "avatar": "https://i.pravatar.cc/150?u=a042581f4e29026024d"},
			{"name": "David Chen", "role": "CTO, TechGear", "quote": "Finally, an AI tool that actually respects Shopify's API rate limits. Rock solid.", "avatar": "https://i.pravatar.cc/150?u=a042581f4e29026704d"},
			{"name": "Elena Rodriguez", "role": "Marketing VP, GlowUp", "quote": "Syncs perfectly with our theme. No liquid code changes needed!", "avatar": "https://i.pravatar.cc/150?u=a042581f4e29026703d"}
		]
	}`),
	"cta_bottom": MustParseValue(`{
		"title": "Ready to scale your Shopify brand?",
		"subtitle": "Join the fastest growing merchants on the Shopify platform.",
		"cta_main": "Install on Shopify",
		"cta_main_url": "#",
		"cta_sub": "14-day free trial • Cancel anytime"
	}`),
	"seo": MustParseValue(`{
		"title": "Smart Promo - #1 AI App for Shopify",
		"description": "Boost sales with AI-powered promotions. The highest rated growth app on the Shopify App Store."
	}`),
}

// DefaultSectionDefinitions returns copies of the built-in section definitions.
func DefaultSectionDefinitions() []SectionDefinition {
	out := make([]SectionDefinition, len(defaultSectionDefinitions))
	copy(out, defaultSectionDefinitions)
	return out
}

// DefaultSectionContent returns a deep copy of the starter content for key.
func DefaultSectionContent(key string) (Value, bool) {
	v, ok := defaultSeedContent[key]
	if !ok {
		return Null(), false
	}
	return v.Clone(), true
}

// SeedSections writes the starter content for every section that does not
// already exist in the store. Existing sections are left untouched so reseeding
// a live install never clobbers edits.
func SeedSections(ctx context.Context, store SectionStore) error {
	if store == nil {
		return errMissingSectionStore
	}
	var seedErr error
	for _, key := range DefaultSectionOrder {
		seed, ok := DefaultSectionContent(key)
		if !ok {
			continue
		}
		if _, err := store.GetSection(ctx, key); err == nil {
			continue
		} else if !errors.Is(err, ErrSectionNotFound) {
			seedErr = errors.Join(seedErr, fmt.Errorf("seed %s: %w", key, err))
			continue
		}
		if _, err := store.UpsertSection(ctx, ContentSection{Key: key, Content: seed}); err != nil {
			seedErr = errors.Join(seedErr, fmt.Errorf("seed %s: %w", key, err))
		}
	}
	return seedErr
}
