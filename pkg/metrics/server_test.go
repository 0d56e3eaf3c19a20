package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordWords(t *testing.T) {
	before := testutil.ToFloat64(WordsGenerated.WithLabelValues("test_engine", Forward))
	RecordWords("test_engine", Forward, 3)
	RecordWords("test_engine", Backward, 2)
	require.Equal(t, before+3, testutil.ToFloat64(WordsGenerated.WithLabelValues("test_engine", Forward)))
}

func TestHandler(t *testing.T) {
	RecordWords("test_handler", Forward, 1)

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.Nil(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.Nil(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, strings.Contains(string(body), `brng_words_generated_total{direction="forward",engine="test_handler"} 1`))
}
