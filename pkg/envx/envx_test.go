package envx_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/ageverif/pkg/envx"
	"github.com/stretchr/testify/require"
)

func environ(kv ...string) func() []string {
	return func() []string { return kv }
}

func TestResolvePrecedence(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("STORE=platform\nONLY_PLATFORM=p\nBUILD=platform\n"), 0o600))

	res := envx.Resolve(
		map[string]string{"STORE": "provided", "ONLY_PROVIDED": "x", "PROC": "provided"},
		envx.Options{
			PlatformFile: dotenv,
			BuildEnv:     "BUILD=build;PROC=build",
			Environ:      environ("PROC=process"),
		},
	)

	require.Equal(t, "platform", res.Get("STORE"))
	require.Equal(t, "x", res.Get("ONLY_PROVIDED"))
	require.Equal(t, "p", res.Get("ONLY_PLATFORM"))
	require.Equal(t, "build", res.Get("BUILD"))
	require.Equal(t, "process", res.Get("PROC"))

	require.Equal(t, envx.Sources{
		Provided:       true,
		PlatformGlobal: true,
		BuildTimeEnv:   true,
		ProcessEnv:     true,
	}, res.Sources)
}

func TestResolveEmptyValuesDoNotOverride(t *testing.T) {
	res := envx.Resolve(
		map[string]string{"SECRET": "kept"},
		envx.Options{SkipPlatform: true, Environ: environ("SECRET=")},
	)

	require.Equal(t, "kept", res.Get("SECRET"))
	require.False(t, res.Sources.ProcessEnv)
}

func TestResolveMissingConfigIsNotAnError(t *testing.T) {
	res := envx.Resolve(nil, envx.Options{
		PlatformFile: filepath.Join(t.TempDir(), "missing.env"),
		Environ:      environ(),
	})

	require.Empty(t, res.Merged)
	require.Equal(t, envx.Sources{}, res.Sources)

	_, ok := res.Lookup("SHOPIFY_ADMIN_API_TOKEN")
	require.False(t, ok)
}

func TestFirstHonoursAliasOrder(t *testing.T) {
	res := envx.Resolve(nil, envx.Options{
		SkipPlatform: true,
		Environ:      environ("PUBLIC_STORE_DOMAIN=shop.example.com"),
	})

	require.Equal(t, "shop.example.com", res.First("SHOPIFY_STORE_DOMAIN", "PUBLIC_STORE_DOMAIN"))
	require.Empty(t, res.First("NOPE"))
}

func TestParsePairs(t *testing.T) {
	got := envx.ParsePairs("A=1; B = 2\nbroken\nC=x=y")
	require.Equal(t, map[string]string{"A": "1", "B": "2", "C": "x=y"}, got)
}
