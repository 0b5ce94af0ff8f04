package chat

import "strings"

// topicAnswers maps a topic key to its canned markdown answer.
var topicAnswers = map[string]string{
	"pricing": "We offer three tiers:\n\n* **Starter ($29/mo)**: For new stores.\n* **Growth ($79/mo)**: Our most popular plan for scaling brands.\n* **Scale ($299/mo)**: Enterprise power for Shopify Plus.\n\nAll plans include a 14-day free trial!",

	"seo": "**Shopify SEO Best Practices:**\n\n1. **Keywords**: Use relevant terms in product titles and descriptions.\n2. **Alt Text**: Always describe your images for accessibility and search.\n3. **Site Structure**: Use collections to organize products logically.\n4. **Speed**: Our app ensures your store remains lightning fast ⚡.\n5. **Blog**: Publish content to drive organic traffic.",

	"speed": "Site speed is crucial! 🏎️\n\n* **Optimize Images**: Compress images before uploading.\n* **Limit Apps**: Only keep essential apps installed.\n* **Smart Promo**: We use 'Theme App Extensions' which load strictly after your main content, ensuring **zero** impact on your Core Web Vitals.",

	"install": "Installation is 1-click:\n\n1. Visit the Shopify App Store.\n2. Click 'Add App'.\n3. You'll be redirected here.\n4. Enable the 'App Embed' in your Theme Editor.",

	"customers": "We automatically sync with your Shopify Customer segments.\n\nTarget users by:\n* **VIP**: High LTV customers.\n* **At Risk**: Haven't ordered in 60 days.\n* **Local**: Customers in specific regions.\n* **Whales**: High average order value (AOV).",

	"support": "We're here 24/7!\n\n* 📧 Email: **support@smartpromo.io**\n* 💬 Chat: Right here!\n* 📚 Docs: Visit help.smartpromo.io",

	"shopify": "Shopify is the #1 commerce platform globally.\n\nIt handles:\n* **Hosting**: Secure and infinite scaling.\n* **Payments**: Integrated processing via Shopify Payments.\n* **Checkout**: The world's highest converting checkout.\n* **Channels**: Sell on Web, IG, TikTok, and Google at once.",

	"marketing": "To grow your store & **Increase Sales**:\n\n1. **Email Marketing**: Use Shopify Email or Klaviyo to retarget abandoned carts.\n2. **Social Ads**: Run Meta/TikTok ads targeting lookalikes of your best customers.\n3. **Content**: Post Reels/TikToks showing product usage.\n4. **Smart Promo**: Use our app to create urgent offers (e.g. \"Flash Sale\") that convert visitors into buyers!",

	"dropshipping": "**Dropshipping** lets you sell without holding inventory.\n\n1. Find suppliers (AliExpress, CJ, DSers).\n2. Import products to Shopify.\n3. When a customer buys, the supplier ships directly to them.\n\n*Tip: Focus on branding and fast shipping times to succeed.*",

	"payments": "Shopify Payments is the easiest way to accept money.\n\n* **Fees**: No transaction fees (unlike 3rd party gateways).\n* **Methods**: Visa, MC, Amex, Apple Pay, Google Pay.\n* **Payouts**: Fast deposits to your bank account.",

	"shipping": "Shipping strategies:\n\n* **Free Shipping**: Increases conversion (absorb cost in product price).\n* **Flat Rate**: Simple for customers to understand.\n* **Real-time**: Charge exact carrier rates (UPS/FedEx).\n\n*Tip: Use Shopify Shipping to buy labels at a discount!*",

	"inventory": "Manage stock efficiently:\n\n* **Track Quantity**: Enable this for all products.\n* **Transfers**: Log incoming stock from suppliers.\n* **ABC Analysis**: Focus on your top-selling 20% of products.",

	"apps": "Essential Shopify Apps stack:\n\n1. **Smart Promo** (Sales & Offers)\n2. **Klaviyo** (Email/SMS)\n3. **Loox/Yotpo** (Reviews)\n4. **PageFly** (Landing Pages)",

	"theme": "Your theme is your storefront.\n\n* **Dawn**: The standard, fast free theme.\n* **Premium**: Impulse, Prestige, or customized themes.\n* **Customization**: Use the Online Store > Editor to change colors, fonts, and layout without code.",

	"domains": "A custom domain builds trust!\n\n1. Go to **Settings > Domains**.\n2. Buy a new domain (e.g. `mystore.com`) or connect an existing one.\n3. It usually costs ~$14/year.",

	"analytics": "Use Shopify Analytics to understand your business:\n\n* **Total Sales**: Your gross revenue.\n* **Conversion Rate**: Goal is >2%.\n* **AOV**: Average Order Value (Try to increase this with upsells).",

	"refunds": "Handling returns is part of business.\n\n1. Go to **Orders**.\n2. Select the order and click **Return** or **Refund**.\n3. You can restock items automatically.\n\n*Tip: Have a clear Refund Policy on your store!*",
}

type keywordRule struct {
	keyword string
	topic   string
}

// keywordRules maps synonyms to topics. Order matters: the scan stops at the
// first keyword found in the message, so the slice encodes match priority.
var keywordRules = []keywordRule{
	{"price", "pricing"}, {"cost", "pricing"}, {"pay", "pricing"}, {"subscription", "pricing"},
	{"plan", "pricing"}, {"expensive", "pricing"}, {"cheap", "pricing"}, {"money", "pricing"}, {"bill", "pricing"},

	{"seo", "seo"}, {"search", "seo"}, {"google", "seo"}, {"rank", "seo"}, {"traffic", "seo"}, {"keywords", "seo"},

	{"speed", "speed"}, {"fast", "speed"}, {"slow", "speed"}, {"performance", "speed"},
	{"load", "speed"}, {"optimization", "speed"},

	{"install", "install"}, {"setup", "install"}, {"start", "install"}, {"configure", "install"}, {"guide", "install"},

	{"customer", "customers"}, {"user", "customers"}, {"client", "customers"},
	{"segment", "customers"}, {"audience", "customers"},

	{"support", "support"}, {"help", "support"}, {"contact", "support"}, {"email", "support"},
	{"bug", "support"}, {"issue", "support"}, {"error", "support"},

	{"shopify", "shopify"}, {"platform", "shopify"}, {"ecommerce", "shopify"},

	{"marketing", "marketing"}, {"market", "marketing"}, {"ad", "marketing"}, {"ads", "marketing"},
	{"promote", "marketing"}, {"promotion", "marketing"}, {"social", "marketing"},
	{"instagram", "marketing"}, {"tiktok", "marketing"}, {"facebook", "marketing"},
	{"sales", "marketing"}, {"sale", "marketing"}, {"revenue", "marketing"},
	{"grow", "marketing"}, {"growth", "marketing"}, {"selling", "marketing"},

	{"dropshipping", "dropshipping"}, {"dropship", "dropshipping"}, {"supplier", "dropshipping"},
	{"aliexpress", "dropshipping"}, {"sourcing", "dropshipping"},

	{"payment", "payments"}, {"payments", "payments"}, {"gateway", "payments"},
	{"visa", "payments"}, {"mastercard", "payments"}, {"paypal", "payments"}, {"stripe", "payments"},

	{"shipping", "shipping"}, {"ship", "shipping"}, {"delivery", "shipping"}, {"deliver", "shipping"},
	{"fulfillment", "shipping"}, {"courier", "shipping"}, {"labels", "shipping"},

	{"inventory", "inventory"}, {"stock", "inventory"}, {"product", "inventory"},
	{"warehouse", "inventory"}, {"sku", "inventory"},

	{"app", "apps"}, {"apps", "apps"}, {"plugin", "apps"}, {"extension", "apps"}, {"tool", "apps"},

	{"theme", "theme"}, {"themes", "theme"}, {"design", "theme"}, {"template", "theme"},
	{"look", "theme"}, {"liquid", "theme"}, {"editor", "theme"},

	{"domain", "domains"}, {"url", "domains"}, {"website", "domains"},
	{"analytic", "analytics"}, {"report", "analytics"}, {"data", "analytics"}, {"conversion", "analytics"},
	{"refund", "refunds"}, {"return", "refunds"}, {"cancel", "refunds"},
}

const (
	greetingReply = "Hello! 👋\n\nI am your **Shopify Knowledge Expert**.\n\nAsk me about:\n* Marketing & Sales\n* SEO & Speed\n* Shipping & Payments\n* Our App Features"
	thanksReply   = "You're welcome! Let me know if you need anything else to grow your business. 🚀"
	byeReply      = "Goodbye! Good luck with your sales! 💸"
	unknownReply  = "That's a great question. 🤔\n\nI'm constantly learning. While I don't have a specific answer for that yet, I'd recommend checking the **Shopify Help Center** or asking about **marketing**, **sales**, or **setup**."
)

// MatchTopic scans a message for known keywords and returns the canned
// answer and topic. Matching is case-insensitive substring search, first
// rule wins. ok is false when no keyword matched.
func MatchTopic(message string) (answer, topic string, ok bool) {
	msg := strings.ToLower(message)
	for _, rule := range keywordRules {
		if strings.Contains(msg, rule.keyword) {
			if answer, found := topicAnswers[rule.topic]; found {
				return answer, rule.topic, true
			}
		}
	}
	return "", "", false
}

// FallbackReply covers conversational small talk when no topic matched.
func FallbackReply(message string) string {
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "hello"), strings.Contains(msg, "hi"), strings.Contains(msg, "hey"):
		return greetingReply
	case strings.Contains(msg, "thank"):
		return thanksReply
	case strings.Contains(msg, "bye"):
		return byeReply
	default:
		return unknownReply
	}
}

// Topics lists the known topic keys.
func Topics() []string {
	out := make([]string, 0, len(topicAnswers))
	seen := map[string]bool{}
	for _, rule := range keywordRules {
		if !seen[rule.topic] {
			seen[rule.topic] = true
			out = append(out, rule.topic)
		}
	}
	return out
}
