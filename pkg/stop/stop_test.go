package stop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stopper struct {
	err error
}

func (s stopper) Stop() Result {
	return ErrorFunc(func() error { return s.err })()
}

func TestDoneDropsNil(t *testing.T) {
	c := make(Channel)
	go c.Done(nil, nil)
	require.Nil(t, c.Result().Wait())

	boom := errors.New("boom")
	c = make(Channel)
	go c.Done(nil, boom)
	require.Equal(t, []error{boom}, c.Result().Wait())
}

func TestAlreadyStopped(t *testing.T) {
	require.Nil(t, AlreadyStoppedFunc().Wait())
}

func TestGroup(t *testing.T) {
	a, b := errors.New("a"), errors.New("b")

	g := NewGroup()
	g.Add(stopper{a})
	g.Add(stopper{})
	g.AddFunc(AlreadyStoppedFunc)
	g.AddFunc(ErrorFunc(func() error { return b }))
	require.Equal(t, 4, g.Len())

	require.ElementsMatch(t, []error{a, b}, g.Stop().Wait())
	require.Equal(t, 0, g.Len())
	require.Nil(t, g.Stop().Wait())
}

func TestGroupNilResult(t *testing.T) {
	g := NewGroup()
	g.AddFunc(func() Result { return nil })
	require.Panics(t, func() { g.Stop() })
}

func TestWaitContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	never := make(Channel)
	_, err := never.Result().WaitContext(ctx)
	require.Equal(t, context.DeadlineExceeded, err)

	errs, err := AlreadyStopped.WaitContext(context.Background())
	require.Nil(t, err)
	require.Nil(t, errs)
}
