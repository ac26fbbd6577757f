package main

import (
	"context"
	"errors"
	"sync"

	"github.com/jmylchreest/devconsole/internal/console"
)

var errNoFeeds = errors.New("headless mode needs a feed: pipe stdin, --follow or --demo")

// runHeadless captures the feeds without the TUI. Appends are serialised on
// a console.Loop; it returns once every feed has ended, or ctx is done and
// the feeds have stopped, with everything they printed in the store.
func runHeadless(ctx context.Context, c *console.Console, feeds []func(context.Context)) error {
	if len(feeds) == 0 {
		return errNoFeeds
	}

	loopCtx, stopLoop := context.WithCancel(context.Background())
	loop := console.NewLoop()
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		loop.Run(loopCtx)
	}()
	defer func() {
		stopLoop()
		<-loopDone
	}()

	c.SetDispatcher(loop)
	defer c.SetDispatcher(console.Immediate{})

	var wg sync.WaitGroup
	for _, feed := range feeds {
		wg.Go(func() { feed(ctx) })
	}
	wg.Wait()

	// The loop runs in order, so this returns after every queued append.
	return loop.Sync(context.Background(), func() {})
}
