// Command askfeed opens a live merged view of one AMA and prints the
// ranked question feed to stdout every time the view changes. It is the
// reference consumer of the feed; a UI would subscribe the same way.
//
// Usage: askfeed -slug <ama-slug> [-sort hot|new] [-token <jwt>]
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/openama/askfeed/internal/app"
	"github.com/openama/askfeed/internal/domain"
)

func main() {
	var (
		slug     = flag.String("slug", "", "public slug of the AMA to follow")
		sortName = flag.String("sort", "hot", "feed ordering: hot or new")
		token    = flag.String("token", "", "optional access token for authenticated identity")
	)
	flag.Parse()

	if *slug == "" {
		log.Fatal("missing required -slug")
	}

	mode, err := domain.ParseSortMode(*sortName)
	if err != nil {
		log.Fatalf("invalid -sort: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *slug, mode, *token); err != nil {
		slog.Error("askfeed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, slug string, mode domain.SortMode, token string) error {
	a, err := app.New(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if token != "" {
		if a.Verifier == nil {
			return fmt.Errorf("token given but auth is not configured")
		}
		ctx, err = a.Verifier.Authenticate(ctx, token)
		if err != nil {
			return err
		}
	}

	session, err := a.OpenFeed(ctx, slug)
	if err != nil {
		return err
	}
	defer session.Close()

	a.Log.InfoContext(ctx, "following ama",
		slog.String("slug", slug),
		slog.String("title", session.AMA.Title),
		slog.String("sort", mode.String()),
	)

	render(session.AMA.Title, session.Live.Rows(mode))

	for {
		select {
		case <-ctx.Done():
			return nil
		case rows, ok := <-session.Live.Snapshots():
			if !ok {
				return nil
			}
			render(session.AMA.Title, domain.Rank(rows, mode))
		}
	}
}

func render(title string, rows []domain.MergedRow) {
	fmt.Printf("\n== %s (%d questions)\n", title, len(rows))
	for i, row := range rows {
		author := "anonymous"
		if row.Question.AuthorName != nil {
			author = *row.Question.AuthorName
		}
		fmt.Printf("%2d. [%d] %s — %s\n", i+1, row.Question.VoteCount, row.Question.Content, author)
		if row.Answer != nil {
			fmt.Printf("      answered [%d]: %s\n", row.Answer.VoteCount, row.Answer.Content)
		}
		if row.FollowUp != nil {
			fmt.Printf("      follow-up: %s\n", row.FollowUp.Content)
		}
	}
}
