package crawl

import "regexp"

// excludePatterns match URLs that are never worth fetching: auth and admin
// surfaces, search and calendar endpoints, and non-document assets.
var excludePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)/admin/`),
	regexp.MustCompile(`(?i)/login`),
	regexp.MustCompile(`(?i)/logout`),
	regexp.MustCompile(`(?i)/signin`),
	regexp.MustCompile(`(?i)/signup`),
	regexp.MustCompile(`(?i)/register`),
	regexp.MustCompile(`(?i)/cart`),
	regexp.MustCompile(`(?i)/checkout`),
	regexp.MustCompile(`(?i)/search\?`),
	regexp.MustCompile(`(?i)/calendar/`),
	regexp.MustCompile(`(?i)/events\?`),
	regexp.MustCompile(`(?i)\.(?:jpg|jpeg|png|gif|svg|ico|css|js|zip|exe|dmg|mp3|mp4|avi|mov|woff2?|ttf)(?:\?|$)`),
	regexp.MustCompile(`^mailto:`),
	regexp.MustCompile(`^tel:`),
	regexp.MustCompile(`#`),
}

// ShouldCrawl reports whether a URL passes the exclusion denylist.
func ShouldCrawl(url string) bool {
	for _, re := range excludePatterns {
		if re.MatchString(url) {
			return false
		}
	}
	return true
}
