// Package envx merges configuration from the places an age verification
// deployment can receive it: values passed in by the caller, a platform
// dotenv file, values baked in at build time and the process environment.
package envx

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// BuildEnv holds KEY=VALUE pairs baked in at build time, separated by ';' or
// newlines. Set it with:
//
//	go build -ldflags "-X github.com/aussiebroadwan/ageverif/pkg/envx.BuildEnv=ENV=prod;LOG_FORMAT=json"
var BuildEnv string

// DefaultPlatformFile is the dotenv file read when Options.PlatformFile is empty.
const DefaultPlatformFile = ".env"

// Sources records which inputs contributed at least one non-empty value.
type Sources struct {
	Provided       bool `json:"provided"`
	PlatformGlobal bool `json:"platformGlobal"`
	BuildTimeEnv   bool `json:"buildTimeEnv"`
	ProcessEnv     bool `json:"processEnv"`
}

// Resolved is the merged view of every source.
type Resolved struct {
	Merged  map[string]string
	Sources Sources
}

// Options controls where Resolve looks for values. The zero value reads
// ./.env, BuildEnv and os.Environ.
type Options struct {
	PlatformFile string
	BuildEnv     string
	Environ      func() []string

	// SkipPlatform disables the dotenv source entirely.
	SkipPlatform bool
}

// Resolve merges all sources into one map. Precedence, lowest first:
// provided < platform-global < build-time < process-env. Empty values never
// override a value from an earlier source. Missing configuration is not an
// error; callers treat absent keys as "not configured".
func Resolve(provided map[string]string, opts Options) Resolved {
	res := Resolved{Merged: make(map[string]string)}

	res.Sources.Provided = res.merge(provided)

	if !opts.SkipPlatform {
		path := opts.PlatformFile
		if path == "" {
			path = DefaultPlatformFile
		}
		res.Sources.PlatformGlobal = res.merge(readPlatformFile(path))
	}

	build := opts.BuildEnv
	if build == "" {
		build = BuildEnv
	}
	res.Sources.BuildTimeEnv = res.merge(ParsePairs(build))

	environ := opts.Environ
	if environ == nil {
		environ = os.Environ
	}
	res.Sources.ProcessEnv = res.merge(pairsFromEnviron(environ()))

	return res
}

func (r *Resolved) merge(src map[string]string) bool {
	contributed := false
	for k, v := range src {
		if k == "" || v == "" {
			continue
		}
		r.Merged[k] = v
		contributed = true
	}
	return contributed
}

// Get returns the value for key or "".
func (r Resolved) Get(key string) string {
	return r.Merged[key]
}

// Lookup reports whether key has a non-empty value.
func (r Resolved) Lookup(key string) (string, bool) {
	v, ok := r.Merged[key]
	return v, ok
}

// First returns the value of the first key that is set. Useful for aliases
// such as SHOPIFY_STORE_DOMAIN / PUBLIC_STORE_DOMAIN.
func (r Resolved) First(keys ...string) string {
	for _, k := range keys {
		if v, ok := r.Merged[k]; ok {
			return v
		}
	}
	return ""
}

// ParsePairs parses "A=1;B=2" (or newline separated) into a map. Malformed
// entries are skipped.
func ParsePairs(s string) map[string]string {
	out := make(map[string]string)
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '\n' })
	for _, f := range fields {
		k, v, ok := strings.Cut(strings.TrimSpace(f), "=")
		if !ok {
			continue
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}

func pairsFromEnviron(env []string) map[string]string {
	out := make(map[string]string, len(env))
	for _, kv := range env {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		out[k] = v
	}
	return out
}

// readPlatformFile loads a dotenv file with viper. A missing or unreadable
// file yields no values.
func readPlatformFile(path string) map[string]string {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return nil
	}

	// viper lower-cases keys; environment keys are conventionally upper case.
	out := make(map[string]string)
	for _, k := range v.AllKeys() {
		out[strings.ToUpper(k)] = v.GetString(k)
	}
	return out
}
