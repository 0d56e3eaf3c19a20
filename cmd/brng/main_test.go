package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/storage"
)

const testConfig = `
brng:
  log:
    level: warn
  http:
    addr: 127.0.0.1:0
  resp:
    addr: ${BRNG_TEST_RESP_ADDR}
  storage:
    name: memory
  streams:
    - name: lottery
      engine: mt19937
      options:
        seed: 7
`

func writeConfig(t *testing.T) string {
	t.Setenv("BRNG_TEST_RESP_ADDR", "127.0.0.1:0")
	path := filepath.Join(t.TempDir(), "brng.yaml")
	require.Nil(t, os.WriteFile(path, []byte(testConfig), 0o600))
	return path
}

func TestParseConfigFile(t *testing.T) {
	cfgFile, err := ParseConfigFile(writeConfig(t))
	require.Nil(t, err)

	cfg := cfgFile.Brng
	require.Equal(t, "warn", cfg.Log.Level)
	require.Equal(t, "127.0.0.1:0", cfg.HTTPConfig.Addr)
	require.Equal(t, "127.0.0.1:0", cfg.RESPConfig.Addr)
	require.Equal(t, "memory", cfg.Storage.Name)
	require.Len(t, cfg.Streams, 1)
	require.Equal(t, "mt19937", cfg.Streams[0].Engine)

	_, err = ParseConfigFile("")
	require.NotNil(t, err)

	_, err = ParseConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NotNil(t, err)
}

func TestStorageConfig(t *testing.T) {
	store, err := storageConfig{}.New()
	require.Nil(t, err)
	require.Empty(t, store.Stop().Wait())

	_, err = storageConfig{Name: "nope"}.New()
	require.Equal(t, storage.ErrDriverDoesNotExist, err)
}

// stopRun stops r and fails the test if it takes longer than five seconds.
func stopRun(t *testing.T, r *Run, keepStore bool) storage.CheckpointStore {
	type result struct {
		store storage.CheckpointStore
		err   error
	}
	done := make(chan result, 1)
	go func() {
		store, err := r.Stop(keepStore)
		done <- result{store, err}
	}()

	select {
	case res := <-done:
		require.Nil(t, res.err)
		return res.store
	case <-time.After(5 * time.Second):
		t.Fatal("stop did not return in time")
		return nil
	}
}

func TestRun(t *testing.T) {
	r, err := NewRun(writeConfig(t))
	require.Nil(t, err)

	store := stopRun(t, r, true)
	require.NotNil(t, store)

	cp, err := store.Get("lottery")
	require.Nil(t, err)
	require.Equal(t, "mt19937", cp.Engine)

	// Restarting with the kept store resumes the configured stream.
	require.Nil(t, r.Start(store))
	require.Nil(t, stopRun(t, r, false))
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGen(t *testing.T) {
	src, err := engine.New("splitmix64", []byte("seed: 7"))
	require.Nil(t, err)
	src.Discard(2)
	var want []string
	for i := 0; i < 3; i++ {
		want = append(want, strconv.FormatUint(src.Next(), 10))
	}

	out, err := execute(t, genCmd(), "splitmix64", "--seed", "7", "--skip", "2", "-n", "3")
	require.Nil(t, err)
	require.Equal(t, want, strings.Fields(out))

	out, err = execute(t, genCmd(), "splitmix64", "--seed", "7", "--skip", "5", "-n", "3", "--reverse")
	require.Nil(t, err)
	require.Equal(t, []string{want[2], want[1], want[0]}, strings.Fields(out))

	out, err = execute(t, genCmd(), "mt19937", "-n", "1", "--hex")
	require.Nil(t, err)
	require.Equal(t, "d091bb5c\n", out)

	_, err = execute(t, genCmd(), "nope")
	require.NotNil(t, err)

	_, err = execute(t, genCmd(), "mt19937", "--seed", "1", "--passphrase", "x")
	require.NotNil(t, err)
}

func TestList(t *testing.T) {
	out, err := execute(t, listCmd())
	require.Nil(t, err)
	require.Contains(t, out, "NAME")

	var found bool
	for _, line := range strings.Split(out, "\n") {
		if fields := strings.Fields(line); len(fields) == 4 && fields[0] == "mt19937" {
			found = true
			require.Equal(t, []string{"mt19937", "32", "0", "4294967295"}, fields)
		}
	}
	require.True(t, found)
}

func TestCheck(t *testing.T) {
	_, err := execute(t, checkCmd(), "mt19937", "pcg32", "arc4", "-n", "2000", "--seeds", "1,2,3")
	require.Nil(t, err)

	_, err = execute(t, checkCmd(), "nope")
	require.NotNil(t, err)

	_, err = execute(t, checkCmd(), "mt19937", "-n", "0")
	require.NotNil(t, err)
}

func TestRetrace(t *testing.T) {
	for _, name := range engine.Drivers() {
		src, err := engine.New(name, []byte("seed: 42"))
		require.Nil(t, err)
		require.Nil(t, retrace(src, 100), name)
	}
}

func TestBench(t *testing.T) {
	out, err := execute(t, benchCmd(), "splitmix64", "xoshiro256plus", "-n", "1000", "--parallel")
	require.Nil(t, err)
	require.Contains(t, out, "splitmix64")
	require.Contains(t, out, "xoshiro256plus")
}
