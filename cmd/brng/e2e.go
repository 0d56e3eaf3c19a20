package main

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/random"
)

const e2eSteps = 16

func e2eCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "e2e",
		Short: "exec e2e tests",
		Long:  "Execute the brng end-to-end test suite against running frontends",
		RunE:  EndToEndRunCmdFunc,
	}
	cmd.Flags().String("httpaddr", "http://127.0.0.1:6880", "address of the HTTP frontend")
	cmd.Flags().String("respaddr", "127.0.0.1:6881", "address of the RESP frontend")
	cmd.Flags().Duration("delay", time.Second, "delay between moving a stream forwards and back")
	return cmd
}

// EndToEndRunCmdFunc implements a Cobra command that runs the end-to-end test
// suite for a brng build.
func EndToEndRunCmdFunc(cmd *cobra.Command, args []string) error {
	setupZerolog(cmd)

	delay, err := cmd.Flags().GetDuration("delay")
	if err != nil {
		return err
	}

	// Test the HTTP frontend.
	httpAddr, err := cmd.Flags().GetString("httpaddr")
	if err != nil {
		return err
	}

	if len(httpAddr) != 0 {
		zlog.Info().Msg("testing HTTP...")
		if err := testHTTP(httpAddr, delay); err != nil {
			return err
		}
		zlog.Info().Msg("success")
	}

	// Test the RESP frontend.
	respAddr, err := cmd.Flags().GetString("respaddr")
	if err != nil {
		return err
	}

	if len(respAddr) != 0 {
		zlog.Info().Msg("testing RESP...")
		if err := testRESP(respAddr, delay); err != nil {
			return err
		}
		zlog.Info().Msg("success")
	}

	return nil
}

func generateStreamName() string {
	src, err := engine.New("splitmix64", []byte("seed: "+strconv.FormatInt(time.Now().UnixNano(), 10)))
	if err != nil {
		panic(err)
	}
	return "e2e-" + random.AlphaNumericString(src, 16)
}

// expectRetraced checks that back holds the values of forth in reverse.
func expectRetraced(forth, back []uint64) error {
	if len(forth) != e2eSteps || len(back) != e2eSteps {
		return fmt.Errorf("expected %d values each way, got %d and %d", e2eSteps, len(forth), len(back))
	}
	for i := range forth {
		if back[len(back)-1-i] != forth[i] {
			return fmt.Errorf("value %d stepping back is %d, expected %d", i, back[len(back)-1-i], forth[i])
		}
	}
	return nil
}

func httpDo(method, url, body string, want int) (gjson.Result, error) {
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		return gjson.Result{}, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return gjson.Result{}, errors.Wrapf(err, "%s %s failed", method, url)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, err
	}
	if resp.StatusCode != want {
		return gjson.Result{}, fmt.Errorf("%s %s: expected status %d, got %d: %s", method, url, want, resp.StatusCode, b)
	}
	return gjson.ParseBytes(b), nil
}

func uint64s(r gjson.Result) []uint64 {
	var out []uint64
	for _, v := range r.Array() {
		out = append(out, v.Uint())
	}
	return out
}

func testHTTP(addr string, delay time.Duration) error {
	name := generateStreamName()
	base := strings.TrimSuffix(addr, "/") + "/v1/streams"

	body := fmt.Sprintf(`{"name":%q,"engine":"mt19937","options":{"seed":7}}`, name)
	if _, err := httpDo("POST", base, body, http.StatusCreated); err != nil {
		return err
	}

	doc, err := httpDo("POST", fmt.Sprintf("%s/%s/next?count=%d", base, name, e2eSteps), "", http.StatusOK)
	if err != nil {
		return err
	}
	forth := uint64s(doc.Get("values"))

	time.Sleep(delay)

	doc, err = httpDo("POST", fmt.Sprintf("%s/%s/prev?count=%d", base, name, e2eSteps), "", http.StatusOK)
	if err != nil {
		return err
	}
	if err := expectRetraced(forth, uint64s(doc.Get("values"))); err != nil {
		return err
	}
	if pos := doc.Get("position").Int(); pos != 0 {
		return fmt.Errorf("expected position 0, got %d", pos)
	}

	_, err = httpDo("DELETE", base+"/"+name, "", http.StatusNoContent)
	return err
}

func redisUint64s(reply interface{}, err error) ([]uint64, error) {
	replies, err := redis.Values(reply, err)
	if err != nil {
		return nil, err
	}
	out := make([]uint64, len(replies))
	for i, r := range replies {
		if out[i], err = redis.Uint64(r, nil); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func testRESP(addr string, delay time.Duration) error {
	conn, err := redis.Dial("tcp", addr)
	if err != nil {
		return errors.Wrap(err, "failed to dial")
	}
	defer conn.Close()

	name := generateStreamName()
	if _, err := redis.Int64(conn.Do("OPEN", name, "xoshiro256starstar", "SEEDS", "1,2,3")); err != nil {
		return errors.Wrap(err, "OPEN failed")
	}

	forth, err := redisUint64s(conn.Do("NEXT", name, e2eSteps))
	if err != nil {
		return errors.Wrap(err, "NEXT failed")
	}

	time.Sleep(delay)

	back, err := redisUint64s(conn.Do("PREV", name, e2eSteps))
	if err != nil {
		return errors.Wrap(err, "PREV failed")
	}
	if err := expectRetraced(forth, back); err != nil {
		return err
	}

	pos, err := redis.Int64(conn.Do("POS", name))
	if err != nil {
		return errors.Wrap(err, "POS failed")
	}
	if pos != 0 {
		return fmt.Errorf("expected position 0, got %d", pos)
	}

	_, err = conn.Do("DEL", name)
	return errors.Wrap(err, "DEL failed")
}
