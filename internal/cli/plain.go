package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/texteffects/scramble/internal/reveal"
	"github.com/texteffects/scramble/internal/watch"
)

// lineTarget rewrites one terminal line in place.
type lineTarget struct {
	mu  sync.Mutex
	out io.Writer
}

func (t *lineTarget) SetText(text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := fmt.Fprintf(t.out, "\r\x1b[K%s", text)
	return err
}

// runPlain animates on the invoking line without taking over the screen.
// With --watch the process stays alive and rebinds on every file change.
func runPlain(cmd *cobra.Command, rcfg reveal.Config, opts options) error {
	target := &lineTarget{out: cmd.OutOrStdout()}
	binder := reveal.NewBinder()
	defer binder.ReleaseAll()

	done := make(chan struct{}, 1)
	dopts := reveal.Options{
		OnComplete: func() {
			select {
			case done <- struct{}{}:
			default:
			}
		},
	}

	if _, err := binder.Bind(target, rcfg, dopts); err != nil {
		return err
	}

	if opts.watch != "" {
		w, err := watch.NewTextWatcher(opts.watch, func(text string) {
			cfg := rcfg
			cfg.Text = text
			if _, err := binder.Bind(target, cfg, dopts); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "\rscramble: %v\n", err)
			}
		}, nil)
		if err != nil {
			return err
		}
		defer w.Close()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	// A once-mode run without a watch exits when it settles. Everything else
	// animates until interrupted.
	if opts.watch == "" && rcfg.Mode == reveal.ModeOnce {
		select {
		case <-done:
		case <-sig:
		}
	} else {
		<-sig
	}

	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}
