package drivers

import (
	"fmt"
	"regexp"
	"strings"
)

// CaptchaDetection is the result of CAPTCHA detection on a page.
type CaptchaDetection struct {
	Detected bool
	Type     string // recaptcha, hcaptcha, cloudflare, unknown
	Message  string
}

type captchaPattern struct {
	pattern     *regexp.Regexp
	captchaType string
}

// captchaPatterns are checked in order against lowercased page HTML.
var captchaPatterns = []captchaPattern{
	{regexp.MustCompile(`recaptcha`), "recaptcha"},
	{regexp.MustCompile(`hcaptcha`), "hcaptcha"},
	{regexp.MustCompile(`g-recaptcha`), "recaptcha"},
	{regexp.MustCompile(`h-captcha`), "hcaptcha"},
	{regexp.MustCompile(`cf-turnstile`), "cloudflare"},
	{regexp.MustCompile(`captcha-container`), "unknown"},
	{regexp.MustCompile(`verify.*human`), "unknown"},
	{regexp.MustCompile(`not.*robot`), "unknown"},
	{regexp.MustCompile(`challenge-form`), "unknown"},
}

// DetectCaptcha checks page HTML for CAPTCHA indicators. Applications
// are never submitted automatically through a CAPTCHA; the pipeline
// pauses and notifies instead.
func DetectCaptcha(pageHTML string) CaptchaDetection {
	htmlLower := strings.ToLower(pageHTML)

	for _, p := range captchaPatterns {
		if p.pattern.MatchString(htmlLower) {
			return CaptchaDetection{
				Detected: true,
				Type:     p.captchaType,
				Message:  fmt.Sprintf("CAPTCHA detected (%s). Please solve it manually.", p.captchaType),
			}
		}
	}
	return CaptchaDetection{}
}
