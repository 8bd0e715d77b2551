package main

import (
	"bytes"
	"context"
	"errors"
	"net"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const runMainEnv = "SCAVENGR_RUN_MAIN"

func TestMain(m *testing.M) {
	if os.Getenv(runMainEnv) == "1" {
		main()
		os.Exit(0)
	}
	os.Exit(m.Run())
}

// startWithout 以子程序執行 main，移除指定的憑證
func startWithout(t *testing.T, missing ...string) (int, string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=^$")
	cmd.Dir = t.TempDir()

	env := []string{runMainEnv + "=1", "APP_PORT=" + freePort(t)}
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "SPOONACULAR_API_KEY=") || strings.HasPrefix(kv, "GEMINI_API_KEY=") {
			continue
		}
		env = append(env, kv)
	}
	for _, key := range []string{"SPOONACULAR_API_KEY", "GEMINI_API_KEY"} {
		if !contains(missing, key) {
			env = append(env, key+"=test-"+strings.ToLower(key))
		}
	}
	cmd.Env = env

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	err := cmd.Run()
	require.NoError(t, ctx.Err(), "process kept running")

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), output.String()
	}
	require.NoError(t, err)
	return 0, output.String()
}

func freePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	_, port, err := net.SplitHostPort(l.Addr().String())
	require.NoError(t, err)
	return port
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func TestMissingCredentialExitsNonZero(t *testing.T) {
	tests := []struct {
		name    string
		missing []string
		message string
	}{
		{name: "spoonacular", missing: []string{"SPOONACULAR_API_KEY"}, message: "SPOONACULAR_API_KEY is required"},
		{name: "gemini", missing: []string{"GEMINI_API_KEY"}, message: "GEMINI_API_KEY is required"},
		{name: "both", missing: []string{"SPOONACULAR_API_KEY", "GEMINI_API_KEY"}, message: "is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, output := startWithout(t, tt.missing...)
			assert.Equal(t, 1, code)
			assert.Contains(t, output, "Failed to load config")
			assert.Contains(t, output, tt.message)
			assert.NotContains(t, output, "啟動應用")
		})
	}
}
