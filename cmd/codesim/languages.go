package main

import (
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/codesim/internal/parser"
	"github.com/ludo-technologies/codesim/service"
)

// LanguagesCommand lists the supported languages
type LanguagesCommand struct {
	json bool
}

// languageEntry is the JSON form of one registry entry
type languageEntry struct {
	Language   string   `json:"language"`
	Extensions []string `json:"extensions"`
	Keywords   int      `json:"keywords"`
}

// NewLanguagesCommand creates a new languages command
func NewLanguagesCommand() *LanguagesCommand {
	return &LanguagesCommand{}
}

// CreateCobraCommand creates the cobra command for listing languages
func (l *LanguagesCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List supported languages and their file extensions",
		Args:  cobra.NoArgs,
		RunE:  l.runLanguages,
	}
	cmd.Flags().BoolVar(&l.json, "json", false, "Print the list as JSON")
	return cmd
}

func (l *LanguagesCommand) entries() []languageEntry {
	registry := parser.NewDefaultRegistry()
	var entries []languageEntry
	for _, lang := range registry.Languages() {
		spec, err := registry.Lookup(lang)
		if err != nil {
			continue
		}
		entries = append(entries, languageEntry{
			Language:   string(lang),
			Extensions: spec.Extensions(),
			Keywords:   len(spec.Keywords()),
		})
	}
	return entries
}

func (l *LanguagesCommand) runLanguages(cmd *cobra.Command, args []string) error {
	entries := l.entries()
	if l.json {
		return service.WriteJSON(cmd.OutOrStdout(), entries)
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Language", "Extensions", "Keywords"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	for _, e := range entries {
		table.Append([]string{e.Language, strings.Join(e.Extensions, " "), strconv.Itoa(e.Keywords)})
	}
	table.Render()
	return nil
}

// NewLanguagesCmd creates and returns the languages cobra command
func NewLanguagesCmd() *cobra.Command {
	return NewLanguagesCommand().CreateCobraCommand()
}
