package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, cfg Config) *bytes.Buffer {
	var buf bytes.Buffer
	SetOutput(&buf)
	require.Nil(t, Setup(cfg))
	t.Cleanup(func() {
		SetDebug(false)
		SetOutput(logrus.StandardLogger().Out)
	})
	return &buf
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	var m map[string]interface{}
	require.Nil(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestSetup(t *testing.T) {
	buf := capture(t, Config{Level: "debug", JSON: true})
	require.True(t, DebugEnabled())

	Debug("created engine", Fields{"name": "mt19937"})
	m := decode(t, buf)
	require.Equal(t, "created engine", m["msg"])
	require.Equal(t, "mt19937", m["name"])
	require.Equal(t, "debug", m["level"])

	require.NotNil(t, Setup(Config{Level: "loud"}))
}

func TestDebugDisabled(t *testing.T) {
	buf := capture(t, Config{JSON: true})
	require.False(t, DebugEnabled())

	Debug("hidden")
	require.Equal(t, 0, buf.Len())

	SetDebug(true)
	require.True(t, DebugEnabled())
	SetDebug(false)
	require.False(t, DebugEnabled())
}

func TestMergeFielders(t *testing.T) {
	buf := capture(t, Config{JSON: true})

	first := Fields{"a": 1}
	Info("merged", first, nil, Err(errors.Wrap(errBoom, "context")))
	m := decode(t, buf)
	require.EqualValues(t, 1, m["a"])
	require.Equal(t, "context: boom", m["2.error"])
	require.Equal(t, "*errors.fundamental", m["2.type"])

	// The caller's map is left untouched.
	require.Equal(t, Fields{"a": 1}, first)
}

var errBoom = errors.New("boom")
