package http

import (
	"net/http"

	"github.com/unrolled/secure"
)

// defaultContentSecurityPolicy is the policy sent with every response.
const defaultContentSecurityPolicy = "default-src 'self';base-uri 'self';font-src 'self' https: data:;" +
	"form-action 'self';frame-ancestors 'self';img-src 'self' data:;object-src 'none';" +
	"script-src 'self';script-src-attr 'none';style-src 'self' https: 'unsafe-inline';" +
	"upgrade-insecure-requests"

// hardeningHeaders are set on every response in addition to what
// [secure.Secure] writes.
var hardeningHeaders = map[string]string{
	"Cross-Origin-Opener-Policy":        "same-origin",
	"Cross-Origin-Resource-Policy":      "same-origin",
	"Origin-Agent-Cluster":              "?1",
	"X-DNS-Prefetch-Control":            "off",
	"X-Download-Options":                "noopen",
	"X-Permitted-Cross-Domain-Policies": "none",
	"X-XSS-Protection":                  "0",
}

func newSecurity() *secure.Secure {
	return secure.New(secure.Options{
		STSSeconds:              15552000,
		STSIncludeSubdomains:    true,
		ForceSTSHeader:          true,
		CustomFrameOptionsValue: "SAMEORIGIN",
		ContentTypeNosniff:      true,
		ContentSecurityPolicy:   defaultContentSecurityPolicy,
		ReferrerPolicy:          "no-referrer",
	})
}

// withSecurity sets the hardening headers before anything else can answer,
// so rejected responses carry them too.
func (h *Handler) withSecurity() func(http.Handler) http.Handler {
	s := newSecurity()

	return func(next http.Handler) http.Handler {
		return s.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := w.Header()
			for key, value := range hardeningHeaders {
				header.Set(key, value)
			}
			next.ServeHTTP(w, r)
		}))
	}
}
