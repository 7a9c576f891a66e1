package command

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"comicvault/internal/microservices/http-api/dto"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all comics",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := newClient().ListComics()
		if err != nil {
			return fmt.Errorf("failed to list comics: %w", err)
		}
		if resp.Total == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No comics found.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Found %d comics:\n\n", resp.Total)
		printComics(cmd.OutOrStdout(), resp.Data)
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Get a comic by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient().GetComic(args[0])
		if err != nil {
			return fmt.Errorf("failed to get comic: %w", err)
		}
		printComic(cmd.OutOrStdout(), *c)
		return nil
	},
}

var (
	filterTitle     string
	filterAuthor    string
	filterPublisher string
	filterVolume    int
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter comics by title, author, publisher or volume",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		if filterTitle != "" {
			params.Set("title", filterTitle)
		}
		if filterAuthor != "" {
			params.Set("author", filterAuthor)
		}
		if filterPublisher != "" {
			params.Set("publisher", filterPublisher)
		}
		if cmd.Flags().Changed("volume") {
			params.Set("volume", strconv.Itoa(filterVolume))
		}

		resp, err := newClient().FilterComics(params)
		if err != nil {
			return fmt.Errorf("failed to filter comics: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Found %d comics:\n\n", resp.Total)
		printComics(cmd.OutOrStdout(), resp.Data)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a comic by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient().DeleteComic(args[0])
		if err != nil {
			return fmt.Errorf("failed to delete comic: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q (%s)\n", c.Title, c.ID)
		return nil
	},
}

func init() {
	filterCmd.Flags().StringVar(&filterTitle, "title", "", "title contains (case-insensitive)")
	filterCmd.Flags().StringVar(&filterAuthor, "author", "", "author contains (case-insensitive)")
	filterCmd.Flags().StringVar(&filterPublisher, "publisher", "", "publisher contains (case-insensitive)")
	filterCmd.Flags().IntVar(&filterVolume, "volume", 0, "exact volume number")

	rootCmd.AddCommand(listCmd, getCmd, filterCmd, deleteCmd)
}

func printComics(w io.Writer, list []dto.ComicResponse) {
	for _, c := range list {
		printComic(w, c)
		fmt.Fprintln(w, strings.Repeat("-", 50))
	}
}

func printComic(w io.Writer, c dto.ComicResponse) {
	fmt.Fprintf(w, "ID: %s\n", c.ID)
	fmt.Fprintf(w, "Title: %s\n", c.Title)
	fmt.Fprintf(w, "Author: %s\n", c.Author)
	if c.Issue != nil {
		fmt.Fprintf(w, "Issue: %d\n", *c.Issue)
	}
	if c.Volume != nil {
		fmt.Fprintf(w, "Volume: %d\n", *c.Volume)
	}
	if c.Publisher != nil {
		fmt.Fprintf(w, "Publisher: %s\n", *c.Publisher)
	}
	if c.Condition != nil {
		fmt.Fprintf(w, "Condition: %s\n", *c.Condition)
	}
	if len(c.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(c.Tags, ", "))
	}
	fmt.Fprintf(w, "Read: %t\n", c.IsRead)
}
