package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/alexisbeaulieu97/mosaic/internal/gallery"
)

const maxDescriptionWidth = 48

type imageJSON struct {
	ID          string   `json:"id"`
	URL         string   `json:"url"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	Favorite    bool     `json:"favorite"`
}

type imagesJSONPayload struct {
	Version string      `json:"version"`
	Query   string      `json:"query,omitempty"`
	Page    int         `json:"page,omitempty"`
	Count   int         `json:"count"`
	Images  []imageJSON `json:"images"`
}

func renderImagesJSON(out io.Writer, payload imagesJSONPayload, records []gallery.ImageRecord, favorites *gallery.Favorites) error {
	payload.Version = "1.0"
	payload.Count = len(records)
	payload.Images = make([]imageJSON, len(records))
	for i, r := range records {
		payload.Images[i] = imageJSON{
			ID:          r.ID,
			URL:         r.URL,
			Author:      r.Author,
			Description: r.Description,
			Tags:        r.Tags,
			Favorite:    favorites.Contains(r.ID),
		}
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func renderImagesTable(out io.Writer, records []gallery.ImageRecord, favorites *gallery.Favorites) error {
	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "#\tID\tFAV\tAUTHOR\tDESCRIPTION")

	useUnicode := supportsUnicode(out)
	for i, r := range records {
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\n",
			i+1,
			r.ID,
			favoriteMark(favorites.Contains(r.ID), useUnicode),
			valueOrFallback(r.Author, "(unknown)"),
			truncate(valueOrFallback(r.Description, "(no description)"), maxDescriptionWidth),
		)
	}

	return writer.Flush()
}

func supportsUnicode(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

func favoriteMark(favorite, useUnicode bool) string {
	switch {
	case !favorite:
		return ""
	case useUnicode:
		return "♥"
	default:
		return "*"
	}
}

func valueOrFallback(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func truncate(value string, width int) string {
	runes := []rune(value)
	if len(runes) <= width {
		return value
	}
	return string(runes[:width-3]) + "..."
}
