package http

import (
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/chihaya/brng/frontend"
	"github.com/chihaya/brng/stream"
)

const maxBodySize = 1 << 16

// ErrInvalidBody is returned for a request body that is not a JSON object
// describing a stream.
var ErrInvalidBody = frontend.ClientError("body must be a JSON object with a name and an engine")

// ParseStreamConfig parses a JSON request body of the form
//
//	{"name": "a", "engine": "mt19937", "options": {"seed": 7}}
//
// where options may hold one of seed, seeds and passphrase.
func ParseStreamConfig(r *http.Request) (stream.Config, error) {
	var cfg stream.Config

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return cfg, err
	}
	if !gjson.ValidBytes(body) {
		return cfg, ErrInvalidBody
	}

	doc := gjson.ParseBytes(body)
	name, eng := doc.Get("name"), doc.Get("engine")
	if !doc.IsObject() || name.Type != gjson.String || eng.Type != gjson.String {
		return cfg, ErrInvalidBody
	}
	cfg.Name = name.String()
	cfg.Engine = eng.String()

	opts := doc.Get("options")
	if !opts.Exists() {
		return cfg, nil
	}
	if !opts.IsObject() {
		return cfg, ErrInvalidBody
	}

	cfg.Options = make(map[string]interface{})
	if seed := opts.Get("seed"); seed.Exists() {
		if seed.Type != gjson.Number {
			return cfg, frontend.ErrInvalidSeed
		}
		cfg.Options["seed"] = seed.Uint()
	}
	if seeds := opts.Get("seeds"); seeds.Exists() {
		if !seeds.IsArray() {
			return cfg, frontend.ErrInvalidSeeds
		}
		var words []uint32
		for _, v := range seeds.Array() {
			if v.Type != gjson.Number || v.Uint() > 0xffffffff {
				return cfg, frontend.ErrInvalidSeeds
			}
			words = append(words, uint32(v.Uint()))
		}
		cfg.Options["seeds"] = words
	}
	if pass := opts.Get("passphrase"); pass.Exists() {
		cfg.Options["passphrase"] = pass.String()
	}

	return cfg, nil
}

// ParseSeedParams reads the seeding query parameters of a values request.
func ParseSeedParams(r *http.Request) frontend.SeedParams {
	q := r.URL.Query()
	return frontend.SeedParams{
		Seed:       q.Get("seed"),
		Seeds:      q.Get("seeds"),
		Passphrase: q.Get("passphrase"),
		Skip:       q.Get("skip"),
	}
}
