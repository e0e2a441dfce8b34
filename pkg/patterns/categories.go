package patterns

// =============================================================================
// TOKEN DEFINITIONS BY CATEGORY
// All curated lists are registered here at package init.
// This provides a single source of truth for all phishing token lists.
// =============================================================================

// --- SUSPICIOUS KEYWORDS (URL LEXICAL SIGNALS) ---
// Words historically overrepresented in phishing URLs. Each one becomes a
// named word_<token> feature; the aggregate count feeds combo detection.
func (r *Registry) registerSuspiciousKeywords() {
	cat := CategorySuspiciousKeyword

	r.register("login", cat, MatchSubstring, 60, "Credential harvesting page")
	r.register("secure", cat, MatchSubstring, 50, "False sense of security")
	r.register("account", cat, MatchSubstring, 55, "Account takeover lure")
	r.register("update", cat, MatchSubstring, 55, "Forced update lure")
	r.register("bank", cat, MatchSubstring, 65, "Banking impersonation")
	r.register("verify", cat, MatchSubstring, 60, "Verification lure")
	r.register("webscr", cat, MatchSubstring, 70, "PayPal webscr imitation")
	r.register("confirm", cat, MatchSubstring, 55, "Confirmation lure")
	r.register("signin", cat, MatchSubstring, 60, "Credential harvesting page")
	r.register("submit", cat, MatchSubstring, 45, "Form submission lure")
	r.register("admin", cat, MatchSubstring, 45, "Admin panel imitation")
	r.register("wp", cat, MatchSubstring, 35, "Compromised WordPress host")
	r.register("host", cat, MatchSubstring, 35, "Throwaway hosting")
	r.register("invoice", cat, MatchSubstring, 55, "Invoice fraud lure")
	r.register("pay", cat, MatchSubstring, 50, "Payment lure")
	r.register("password", cat, MatchSubstring, 65, "Password reset lure")
	r.register("ebayisapi", cat, MatchSubstring, 70, "eBay ISAPI imitation")
	r.register("paypal", cat, MatchSubstring, 65, "PayPal impersonation")
	r.register("support", cat, MatchSubstring, 45, "Fake support page")
	r.register("help", cat, MatchSubstring, 40, "Fake help desk")
	r.register("reset", cat, MatchSubstring, 55, "Password reset lure")
}

// --- SUSPICIOUS TLDs ---
// Public suffixes historically overrepresented in abuse feeds.
func (r *Registry) registerSuspiciousTLDs() {
	cat := CategorySuspiciousTLD

	for _, tld := range []string{
		"tk", "ml", "ga", "cf", "gq", "xyz", "top", "work",
		"zip", "review", "fit", "club",
	} {
		r.register(tld, cat, MatchExact, 60, "TLD overrepresented in abuse")
	}
}

// --- BRAND NAMES ---
// Brands commonly impersonated in lookalike hostnames. A brand appearing in
// the host of a domain the brand does not own is a strong phishing signal.
func (r *Registry) registerBrands() {
	cat := CategoryBrand

	for _, brand := range []string{
		"paypal", "apple", "amazon", "microsoft", "google", "facebook",
		"netflix", "ebay", "chase", "wellsfargo", "bankofamerica",
		"instagram", "whatsapp", "linkedin", "dropbox", "adobe",
	} {
		r.register(brand, cat, MatchSubstring, 70, "Commonly impersonated brand")
	}
}

// --- TRUSTED ROOT DOMAINS ---
// The built-in a-priori-safe list. The trust gate checks the registered
// domain against this set; membership also surfaces as an informational
// feature for the classifier.
func (r *Registry) registerTrustedDomains() {
	cat := CategoryTrustedDomain

	for _, domain := range []string{
		"coursera.org", "google.com", "github.com", "microsoft.com", "apple.com", "wikipedia.org",
		"amazon.com", "facebook.com", "linkedin.com", "twitter.com", "instagram.com", "youtube.com",
		"outlook.com", "yahoo.com", "gmail.com", "dropbox.com", "adobe.com", "stackoverflow.com",
		"paypal.com", "office.com", "mozilla.org", "bbc.com", "espn.com", "cnn.com", "nytimes.com",
		"reddit.com", "quora.com", "cloudflare.com", "netflix.com", "whatsapp.com", "udemy.com",
		"khanacademy.org", "spotify.com", "slack.com", "zoom.us", "airbnb.com", "booking.com",
		"github.io", "icloud.com", "medium.com", "forbes.com", "bloomberg.com", "salesforce.com",
		"trello.com", "asana.com", "atlassian.net", "bitbucket.org", "digitalocean.com", "heroku.com",
		"doordash.com", "uber.com", "lyft.com", "stripe.com", "visa.com", "mastercard.com",
		"americanexpress.com", "capitalone.com", "chase.com", "bankofamerica.com", "usbank.com",
		"citibank.com", "discover.com", "samsung.com", "huawei.com", "hbo.com", "disneyplus.com",
		"primevideo.com", "coursera.com", "edx.org", "pluralsight.com", "udacity.com", "datacamp.com",
		"alibaba.com", "taobao.com", "weibo.com", "baidu.com", "163.com", "qq.com", "tmall.com",
	} {
		r.register(domain, cat, MatchExact, 0, "Known-safe root domain")
	}
}

// --- PHISHING PHRASES (EMAIL BODY SIGNALS) ---
func (r *Registry) registerPhishingPhrases() {
	cat := CategoryPhishingPhrase

	r.register("urgent action required", cat, MatchSubstring, 65, "Urgency pressure")
	r.register("verify your account", cat, MatchSubstring, 65, "Verification lure")
	r.register("reset your password", cat, MatchSubstring, 60, "Password reset lure")
	r.register("click here", cat, MatchSubstring, 45, "Link bait")
	r.register("confirm your identity", cat, MatchSubstring, 65, "Identity confirmation lure")
	r.register("scholarship offer", cat, MatchSubstring, 50, "Too-good-to-be-true offer")
	r.register("bank account", cat, MatchSubstring, 55, "Banking lure")
}

// --- BLACKLISTED TLD MARKERS (EMBEDDED URL CHECK) ---
// Placeholder for a real reputation service. Kept behind a pluggable
// predicate in pkg/detect so a live blacklist can replace it.
func (r *Registry) registerBlacklistedTLDs() {
	cat := CategoryBlacklistedTLD

	r.register(".ru", cat, MatchSubstring, 50, "TLD on the embedded-URL blocklist")
	r.register(".cn", cat, MatchSubstring, 50, "TLD on the embedded-URL blocklist")
}

// ConfusableRunes is the fixed set of characters commonly substituted for
// visually similar letters in spoofed hostnames.
var ConfusableRunes = map[rune]bool{
	'0': true, '1': true, 'l': true, 'i': true, '5': true, '3': true,
	'2': true, '8': true, '6': true, '9': true, '@': true, '$': true,
}
