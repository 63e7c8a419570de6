package commands

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/promptforge/config"
	"github.com/teranos/promptforge/errors"
	"github.com/teranos/promptforge/source"
	"github.com/teranos/promptforge/store"
)

var (
	librarySaveName        string
	librarySaveFile        string
	librarySaveDescription string
	librarySavePlaceholder string
	libraryShowVersions    bool
	libraryListLimit       int
)

// LibraryCmd groups template library subcommands.
var LibraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the named template library",
	Long: `library — Manage the named template library

Templates saved to the library can be used by name with 'format --library'.
Saving an existing name creates a new version; earlier versions are kept.

Examples:
  promptforge library save -n copywriter -f template.json -d "branding persona"
  promptforge library ls
  promptforge library show copywriter
  promptforge library show copywriter --versions
  promptforge library rm copywriter`,
}

var librarySaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a template file to the library",
	RunE:  runLibrarySave,
}

var libraryListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List library templates",
	RunE:    runLibraryList,
}

var libraryShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print a library template",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryShow,
}

var libraryRemoveCmd = &cobra.Command{
	Use:     "rm NAME",
	Aliases: []string{"remove"},
	Short:   "Remove a template (all versions) from the library",
	Args:    cobra.ExactArgs(1),
	RunE:    runLibraryRemove,
}

func init() {
	librarySaveCmd.Flags().StringVarP(&librarySaveName, "name", "n", "", "Template name (required)")
	librarySaveCmd.Flags().StringVarP(&librarySaveFile, "file", "f", "", "Template file to store (required)")
	librarySaveCmd.Flags().StringVarP(&librarySaveDescription, "description", "d", "", "Short description")
	librarySaveCmd.Flags().StringVar(&librarySavePlaceholder, "placeholder", "", "Placeholder token this template uses")
	_ = librarySaveCmd.MarkFlagRequired("name")
	_ = librarySaveCmd.MarkFlagRequired("file")

	libraryShowCmd.Flags().BoolVar(&libraryShowVersions, "versions", false, "List all stored versions instead of the body")
	libraryListCmd.Flags().IntVar(&libraryListLimit, "limit", 0, "Maximum templates to list")

	LibraryCmd.AddCommand(librarySaveCmd)
	LibraryCmd.AddCommand(libraryListCmd)
	LibraryCmd.AddCommand(libraryShowCmd)
	LibraryCmd.AddCommand(libraryRemoveCmd)
}

func openLibrary() (*store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}
	return store.Open(cfg.Library.Path)
}

func runLibrarySave(cmd *cobra.Command, args []string) error {
	// Parse through source so .hjson/.yaml templates are normalized to JSON
	// before storage; the library keeps plain JSON bodies only.
	tmpl, err := source.ReadTemplate(librarySaveFile)
	if err != nil {
		return err
	}

	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	saved, err := lib.Save(cmd.Context(), &store.Template{
		Name:        librarySaveName,
		Body:        tmpl.EncodeJSON(),
		Placeholder: librarySavePlaceholder,
		Description: librarySaveDescription,
	})
	if err != nil {
		return err
	}

	pterm.Success.Printf("Saved '%s' (version %d)\n", saved.Name, saved.Version)
	return nil
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	templates, err := lib.List(cmd.Context(), libraryListLimit)
	if err != nil {
		return err
	}
	if len(templates) == 0 {
		fmt.Println("Library is empty")
		return nil
	}

	rows := pterm.TableData{{"NAME", "VERSION", "PLACEHOLDER", "UPDATED", "DESCRIPTION"}}
	for _, t := range templates {
		rows = append(rows, []string{
			t.Name,
			fmt.Sprintf("%d", t.Version),
			t.Placeholder,
			t.CreatedAt.Format("2006-01-02 15:04"),
			t.Description,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func runLibraryShow(cmd *cobra.Command, args []string) error {
	name := args[0]

	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	if libraryShowVersions {
		versions, err := lib.Versions(cmd.Context(), name, 0)
		if err != nil {
			return err
		}
		if len(versions) == 0 {
			return errors.NewNotFoundError("template '%s' is not in the library", name)
		}
		for _, t := range versions {
			fmt.Printf("version %d  %s  %s\n", t.Version, t.CreatedAt.Format("2006-01-02 15:04"), t.ID)
		}
		return nil
	}

	tpl, err := lib.GetByName(cmd.Context(), name)
	if err != nil {
		return err
	}
	v, err := tpl.Parse()
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, v.EncodeJSONIndent("", "  "))
	return nil
}

func runLibraryRemove(cmd *cobra.Command, args []string) error {
	lib, err := openLibrary()
	if err != nil {
		return err
	}
	defer lib.Close()

	if err := lib.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	pterm.Success.Printf("Removed '%s'\n", args[0])
	return nil
}
