package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/yatube-go/yatube/internal/posts"
	"github.com/yatube-go/yatube/internal/repository"
	"github.com/yatube-go/yatube/pkg/slug"
)

func groupsCommand() *cli.Command {
	return &cli.Command{
		Name:  "groups",
		Usage: "manage post groups",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "create a group",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Required: true},
					&cli.StringFlag{Name: "slug", Usage: "derived from the title when empty"},
					&cli.StringFlag{Name: "description"},
				},
				Action: createGroup,
			},
			{
				Name:   "list",
				Usage:  "list groups",
				Action: listGroups,
			},
		},
	}
}

func createGroup(c *cli.Context) error {
	title := c.String("title")
	s := c.String("slug")
	if s == "" {
		s = slug.Make(title, slug.MaxLength(50))
	}
	if !slug.Valid(s) {
		return fmt.Errorf("invalid slug %q", s)
	}

	cfg, log, flush, err := setup(c)
	if err != nil {
		return err
	}
	defer flush()

	pool, err := connectDB(c.Context, cfg, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := repository.New(pool)
	grp, err := store.CreateGroup(c.Context, repository.CreateGroupParams{
		Title:       title,
		Slug:        s,
		Description: c.String("description"),
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return fmt.Errorf("group %q already exists", s)
	}
	if err != nil {
		return err
	}

	// Running servers share the cache only through Redis.
	rdb, err := connectRedis(c.Context, cfg, log)
	if err != nil {
		log.WarnContext(c.Context, "group cache not cleared", "error", err)
	} else if rdb != nil {
		defer rdb.Close()
		caches := newGroupCaches(cfg.Cache, rdb)
		if err := posts.NewGroups(store, caches.bySlug, caches.all, cfg.Cache.GroupTTL).Invalidate(c.Context); err != nil {
			log.WarnContext(c.Context, "group cache not cleared", "error", err)
		}
	}

	fmt.Fprintf(c.App.Writer, "created group %d: %s (/group/%s/)\n", grp.ID, grp.Title, grp.Slug)
	return nil
}

func listGroups(c *cli.Context) error {
	cfg, log, flush, err := setup(c)
	if err != nil {
		return err
	}
	defer flush()

	pool, err := connectDB(c.Context, cfg, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	groups, err := repository.New(pool).ListGroups(c.Context)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSLUG\tTITLE")
	for _, g := range groups {
		fmt.Fprintf(w, "%d\t%s\t%s\n", g.ID, g.Slug, g.Title)
	}
	return w.Flush()
}
