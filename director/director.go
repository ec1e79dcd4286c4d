// Package director starts long-running components and restarts them when
// they fail.
package director

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

var (
	ErrDisabled = errors.New("disabled")
	ErrFinished = errors.New("finished successfully")
)

// StartFunc launches a component. It returns once startup has either failed
// or progressed far enough to hand off to background goroutines; those report
// eventual termination through quitf.
type StartFunc func(ctx context.Context, quitf func(err error)) error

type Component struct {
	Name         string
	RestartDelay time.Duration
}

type Director struct {
	wg sync.WaitGroup
}

func New() *Director {
	return &Director{}
}

// Start launches the component and keeps it running until ctx is cancelled.
// A failure on the initial launch is returned to the caller; failures after
// that are logged and lead to a restart after the component's delay.
func (dr *Director) Start(ctx context.Context, comp *Component, startf StartFunc) error {
	quitc := make(chan error, 1)
	quitf := func(err error) { quitc <- err }

	log.Printf("[start] %s", comp.Name)
	err := startf(ctx, quitf)
	if err == ErrDisabled {
		return nil
	} else if err != nil {
		return err
	}

	dr.wg.Add(1)
	go func() {
		defer dr.wg.Done()
		dr.keepRunning(ctx, comp, startf, quitc, quitf)
	}()
	return nil
}

// Wait blocks until all started components have quit for good.
func (dr *Director) Wait() {
	dr.wg.Wait()
}

func (dr *Director) keepRunning(ctx context.Context, comp *Component, startf StartFunc, quitc chan error, quitf func(err error)) {
	for {
		err := <-quitc
		if err == ErrDisabled {
			return
		}
		if err == nil {
			if ctx.Err() != nil {
				log.Printf("[done] %s", comp.Name)
				return
			}
			err = ErrFinished
		}
		log.Printf("ERROR: [failed] %s: %v", comp.Name, err)

		select {
		case <-time.After(comp.RestartDelay):
		case <-ctx.Done():
			return
		}

		log.Printf("[restart] %s", comp.Name)
		if err := startf(ctx, quitf); err != nil {
			go quitf(err)
		}
	}
}
