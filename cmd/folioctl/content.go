package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	goerrors "github.com/goliatone/go-errors"
	"github.com/spf13/cobra"

	"folio/types"
)

var postsJSON bool

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List the publication's most recent posts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := newGateway()
		if err != nil {
			return err
		}
		posts, err := gw.ListRecentPosts(cmd.Context())
		if err != nil {
			return err
		}
		if postsJSON {
			return writeJSON(cmd.OutOrStdout(), posts)
		}
		return renderPosts(cmd.OutOrStdout(), posts)
	},
}

var pageCmd = &cobra.Command{
	Use:   "page <slug>",
	Short: "Print a static page as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := newGateway()
		if err != nil {
			return err
		}
		page, ok, err := gw.GetPageBySlug(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			return goerrors.New(fmt.Sprintf("page %q not found on %s", args[0], gw.Host()), goerrors.CategoryNotFound)
		}
		return writeJSON(cmd.OutOrStdout(), page)
	},
}

func init() {
	postsCmd.Flags().BoolVar(&postsJSON, "json", false, "print posts as JSON")
	rootCmd.AddCommand(postsCmd, pageCmd)
}

func renderPosts(w io.Writer, posts []types.Post) error {
	if len(posts) == 0 {
		_, err := fmt.Fprintln(w, "No posts.")
		return err
	}

	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		cover := ""
		if p.HasCover() {
			cover = "yes"
		}
		rows = append(rows, []string{p.PublishedAt.Format("2006-01-02"), p.Title, p.Slug, cover})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("PUBLISHED", "TITLE", "SLUG", "COVER").
		Rows(rows...)
	_, err := fmt.Fprintln(w, t.String())
	return err
}
