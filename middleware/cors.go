package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// CORSConfig holds the configuration for the CORS middleware.
type CORSConfig struct {
	// AllowOrigins lists origins cross-domain requests may come from.
	// "*" allows every origin. Default: ["*"].
	AllowOrigins []string

	// AllowMethods lists methods the client may use.
	// Default: ["GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"].
	AllowMethods []string

	// AllowHeaders lists headers the client may send.
	// Default: ["Content-Type", "Authorization"].
	AllowHeaders []string

	// AllowCredentials allows requests to include credentials.
	AllowCredentials bool

	// MaxAge is how long (in seconds) preflight results may be cached.
	MaxAge int
}

// CORS returns a middleware that answers preflight requests and sets CORS
// headers. Passing nil uses a permissive configuration suitable for
// development.
func CORS(cfg *CORSConfig) func(http.Handler) http.Handler {
	if cfg == nil {
		cfg = &CORSConfig{}
	}

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	methods := cfg.AllowMethods
	if len(methods) == 0 {
		methods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	headers := cfg.AllowHeaders
	if len(headers) == 0 {
		headers = []string{"Content-Type", "Authorization"}
	}

	wildcard := slices.Contains(origins, "*")
	methodList := strings.Join(methods, ", ")
	headerList := strings.Join(headers, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			switch {
			case wildcard && !cfg.AllowCredentials:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && (wildcard || slices.Contains(origins, origin)):
				// Browsers reject "*" together with credentials, so echo
				// the requesting origin.
				w.Header().Set("Access-Control-Allow-Origin", origin)
			}
			if cfg.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methodList)
				w.Header().Set("Access-Control-Allow-Headers", headerList)
				if cfg.MaxAge > 0 {
					w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
