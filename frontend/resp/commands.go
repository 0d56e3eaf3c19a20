package resp

import (
	"strconv"
	"strings"

	"github.com/tidwall/redcon"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/frontend"
	"github.com/chihaya/brng/stream"
)

// Errors specific to the RESP frontend.
var (
	ErrUnknownCommand = frontend.ClientError("unknown command")
	ErrWrongNumArgs   = frontend.ClientError("wrong number of arguments")
	ErrSyntax         = frontend.ClientError("syntax error")
)

type command struct {
	minArgs int
	maxArgs int // -1 for unbounded
	fn      func(f *Frontend, conn redcon.Conn, args []string) error
}

// Each command's arity counts the command name.
var commands = map[string]command{
	"ping":    {1, 2, (*Frontend).ping},
	"quit":    {1, 1, (*Frontend).quit},
	"engines": {1, 1, (*Frontend).engines},
	"values":  {2, -1, (*Frontend).values},
	"streams": {1, 2, (*Frontend).streams},
	"open":    {3, -1, (*Frontend).open},
	"next":    {2, 3, (*Frontend).next},
	"prev":    {2, 3, (*Frontend).prev},
	"seek":    {3, 3, (*Frontend).seek},
	"pos":     {2, 2, (*Frontend).pos},
	"del":     {2, 2, (*Frontend).del},
}

// PING [message]
func (f *Frontend) ping(conn redcon.Conn, args []string) error {
	if len(args) == 2 {
		conn.WriteBulkString(args[1])
	} else {
		conn.WriteString("PONG")
	}
	return nil
}

// QUIT
func (f *Frontend) quit(conn redcon.Conn, _ []string) error {
	conn.WriteString("OK")
	conn.Close()
	return nil
}

// ENGINES
func (f *Frontend) engines(conn redcon.Conn, _ []string) error {
	names := engine.Drivers()
	conn.WriteArray(len(names))
	for _, name := range names {
		conn.WriteBulkString(name)
	}
	return nil
}

// VALUES engine [COUNT n] [SEED s | SEEDS a,b,c | PASSPHRASE p] [SKIP n]
func (f *Frontend) values(conn redcon.Conn, args []string) error {
	kv, err := parsePairs(args[2:], "count", "seed", "seeds", "passphrase", "skip")
	if err != nil {
		return err
	}
	n, err := frontend.ParseCount(kv["count"], f.MaxCount)
	if err != nil {
		return err
	}

	values, _, err := frontend.Values(args[1], seedParams(kv), n)
	if err != nil {
		return err
	}
	writeValues(conn, values)
	return nil
}

// STREAMS [pattern]
func (f *Frontend) streams(conn redcon.Conn, args []string) error {
	names, err := f.logic.Names()
	if err != nil {
		return err
	}
	if len(args) == 2 {
		names = frontend.MatchNames(names, args[1])
	}
	conn.WriteArray(len(names))
	for _, name := range names {
		conn.WriteBulkString(name)
	}
	return nil
}

// OPEN name engine [SEED s | SEEDS a,b,c | PASSPHRASE p]
func (f *Frontend) open(conn redcon.Conn, args []string) error {
	kv, err := parsePairs(args[3:], "seed", "seeds", "passphrase")
	if err != nil {
		return err
	}
	options, err := seedParams(kv).StreamOptions()
	if err != nil {
		return err
	}

	s, err := f.logic.Open(stream.Config{Name: args[1], Engine: args[2], Options: options})
	if err != nil {
		return frontend.TranslateError(err)
	}
	conn.WriteInt64(s.Position())
	return nil
}

// NEXT name [count]
func (f *Frontend) next(conn redcon.Conn, args []string) error {
	return f.step(conn, args, f.logic.Next)
}

// PREV name [count]
func (f *Frontend) prev(conn redcon.Conn, args []string) error {
	return f.step(conn, args, f.logic.Prev)
}

func (f *Frontend) step(conn redcon.Conn, args []string, op func(string, int) ([]uint64, error)) error {
	var count string
	if len(args) == 3 {
		count = args[2]
	}
	n, err := frontend.ParseCount(count, f.MaxCount)
	if err != nil {
		return err
	}

	values, err := op(args[1], n)
	if err != nil {
		return frontend.TranslateError(err)
	}
	writeValues(conn, values)
	return nil
}

// SEEK name position
func (f *Frontend) seek(conn redcon.Conn, args []string) error {
	pos, err := frontend.ParsePosition(args[2])
	if err != nil {
		return err
	}

	current, err := f.logic.Position(args[1])
	if err != nil {
		return frontend.TranslateError(err)
	}
	if err := frontend.CheckDistance(current, pos); err != nil {
		return err
	}
	if err := f.logic.SeekTo(args[1], pos); err != nil {
		return frontend.TranslateError(err)
	}
	conn.WriteString("OK")
	return nil
}

// POS name
func (f *Frontend) pos(conn redcon.Conn, args []string) error {
	pos, err := f.logic.Position(args[1])
	if err != nil {
		return frontend.TranslateError(err)
	}
	conn.WriteInt64(pos)
	return nil
}

// DEL name
func (f *Frontend) del(conn redcon.Conn, args []string) error {
	if err := f.logic.Delete(args[1]); err != nil {
		return frontend.TranslateError(err)
	}
	conn.WriteInt(1)
	return nil
}

// parsePairs reads case-insensitive KEY value pairs, allowing only the given
// keys.
func parsePairs(args []string, allowed ...string) (map[string]string, error) {
	if len(args)%2 != 0 {
		return nil, ErrSyntax
	}

	kv := make(map[string]string, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key := strings.ToLower(args[i])
		found := false
		for _, a := range allowed {
			if key == a {
				found = true
				break
			}
		}
		if !found {
			return nil, ErrSyntax
		}
		kv[key] = args[i+1]
	}
	return kv, nil
}

func seedParams(kv map[string]string) frontend.SeedParams {
	return frontend.SeedParams{
		Seed:       kv["seed"],
		Seeds:      kv["seeds"],
		Passphrase: kv["passphrase"],
		Skip:       kv["skip"],
	}
}

// writeValues replies with an array of decimal bulk strings, since RESP
// integers are signed.
func writeValues(conn redcon.Conn, values []uint64) {
	conn.WriteArray(len(values))
	for _, v := range values {
		conn.WriteBulkString(strconv.FormatUint(v, 10))
	}
}
