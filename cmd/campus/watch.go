package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jacksmith/campus/internal/cli"
	"github.com/jacksmith/campus/internal/collection"
	"github.com/jacksmith/campus/internal/kv"
)

const clearScreen = "\033[H\033[2J"

// listing renders one view of a collection as a paged table.
type listing[T any] struct {
	view   *collection.View[T]
	noun   string // plural, for the empty message
	header []string
	row    func(*T) []string
	wrap   []int // free text columns, truncated to cli.DefaultMaxTextWidth
	footer func() string
}

func (l listing[T]) render(page, size int) error {
	if page < 1 {
		return &cli.ValidationError{Field: "page", Message: "must be at least 1"}
	}
	rows, pages := l.view.Page(page, size)
	total := l.view.Len()

	if total == 0 {
		fmt.Printf("No %s.\n", l.noun)
	} else {
		table := cli.NewTable()
		for _, col := range l.wrap {
			table.SetMaxWidth(col, cli.DefaultMaxTextWidth)
		}
		table.SetHeader(l.header...)
		for i := range rows {
			table.AddRow(l.row(&rows[i])...)
		}
		table.Render(os.Stdout)
		fmt.Println(cli.Pagination(page, pages, total))
	}
	if l.footer != nil {
		fmt.Println(l.footer())
	}
	return nil
}

// show renders the listing once, or keeps re-rendering it on store changes
// when watch is set.
func (l listing[T]) show(sess *session, page, size int, watch bool) error {
	if !watch {
		return l.render(page, size)
	}
	return watchStore(sess, func() error {
		if cli.IsTerminal(os.Stdout) {
			fmt.Print(clearScreen)
		}
		return l.render(page, size)
	})
}

// watchStore calls render, then reloads the session and calls it again for
// every change the store reports until the process is interrupted.
func watchStore(sess *session, render func() error) error {
	w, ok := sess.svc.Store().(kv.Watcher)
	if !ok {
		return &cli.ValidationError{
			Field:   "watch",
			Message: fmt.Sprintf("not supported by the %s backend", sess.storage.Backend()),
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchChanges(ctx, sess, w, render)
}

func watchChanges(ctx context.Context, sess *session, w kv.Watcher, render func() error) error {
	changes, err := w.Watch(ctx)
	if err != nil {
		return err
	}
	if err := render(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case key, ok := <-changes:
			if !ok {
				return nil
			}
			sess.logger.Debug("store changed", "key", key)
			sess.svc.Reload()
			if err := render(); err != nil {
				return err
			}
		}
	}
}
