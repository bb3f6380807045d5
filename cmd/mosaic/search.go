package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type searchOptions struct {
	page       int
	jsonOutput bool
}

func newSearchCmd(flags *rootFlags) *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Print one page of search results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, flags, opts, strings.Join(args, " "))
		},
	}

	cmd.Flags().IntVar(&opts.page, "page", 1, "Result page to fetch")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runSearch(cmd *cobra.Command, flags *rootFlags, opts *searchOptions, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return newCommandError("search", "reading the query", errors.New("query is blank"), "Pass at least one search term.")
	}
	if opts.page < 1 {
		return newCommandError("search", "reading the page", fmt.Errorf("page %d is not positive", opts.page), "Pages start at 1.")
	}

	app, err := newAppContext(cmd, flags, appOptions{})
	if err != nil {
		return err
	}
	defer app.Close()

	client, err := app.Source("search")
	if err != nil {
		return err
	}

	app.Logger.WithFields(map[string]any{"query": query, "page": opts.page}).Debug("searching")
	records, err := client.Search(cmd.Context(), query, opts.page, app.Config.API.PerPage)
	if err != nil {
		return newCommandError("search", fmt.Sprintf("fetching page %d of %q", opts.page, query), err,
			"Check your network connection and UNSPLASH_ACCESS_KEY.")
	}

	if opts.jsonOutput {
		return renderImagesJSON(cmd.OutOrStdout(), imagesJSONPayload{Query: query, Page: opts.page}, records, app.Favorites)
	}
	if len(records) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No content found for %q.\n", query)
		return nil
	}
	return renderImagesTable(cmd.OutOrStdout(), records, app.Favorites)
}

