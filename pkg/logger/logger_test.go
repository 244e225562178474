package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitParsesLevels(t *testing.T) {
	defer Init("info")
	cases := map[string]string{
		"debug":    "debug",
		"WARN":     "warn",
		"warning":  "warn",
		" Error ":  "error",
		"fatal":    "fatal",
		"nonsense": "info",
		"":         "info",
	}
	for in, want := range cases {
		Init(in)
		require.Equal(t, want, LevelString(), "Init(%q)", in)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	setOutput(&buf)
	defer setOutput(os.Stdout)
	defer Init("info")

	Init("warn")
	Debugf("subscriber %s", "dbg")
	Infof("subscriber %s", "inf")
	Println("reactivated")
	Warnf("slot %s", "taken")
	Errorf("insert %s", "failed")

	out := buf.String()
	require.NotContains(t, out, "dbg")
	require.NotContains(t, out, "inf")
	require.NotContains(t, out, "reactivated")
	require.Contains(t, out, "WARN")
	require.Contains(t, out, "slot taken")
	require.Contains(t, out, "insert failed")

	Init("info")
	buf.Reset()
	Println("reactivated", 1)
	require.Contains(t, buf.String(), "reactivated 1")
}

func TestStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	setOutput(&buf)
	defer setOutput(os.Stdout)
	Init("info")

	L().Info("request", zap.String("route", "/api/partner"), zap.Int("status", 201))
	out := buf.String()
	require.Contains(t, out, `"route": "/api/partner"`)
	require.Contains(t, out, `"status": 201`)
}
