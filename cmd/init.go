package cmd

import (
	"github.com/itsmostafa/gobook/internal/config"
	"github.com/itsmostafa/gobook/internal/project"
	"github.com/itsmostafa/gobook/internal/ui"
	"github.com/spf13/cobra"
)

var initTheme bool
var initTitle string
var initAuthor string
var initDescription string
var initSrc string
var initNoGitignore bool

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a new book",
	Long: `Create the book directory layout: book.yaml, src/SUMMARY.md, a file for
every chapter the outline names and a .gitignore for the output directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}

		p, err := project.Open(bookDir(args), log)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("title") {
			p.SetTitle(initTitle)
		}
		if flags.Changed("author") {
			p.SetAuthor(initAuthor)
		}
		if flags.Changed("description") {
			p.SetDescription(initDescription)
		}
		if flags.Changed("src") {
			p.SetSrc(initSrc)
		}
		if err := p.Config().Validate(p.Root()); err != nil {
			return err
		}

		if err := p.Init(); err != nil {
			return err
		}

		changed := flags.Changed("title") || flags.Changed("author") || flags.Changed("description") || flags.Changed("src")
		if config.Path(p.Root()) == "" || changed {
			if err := p.SaveConfig(); err != nil {
				return err
			}
		}
		if !initNoGitignore {
			if err := p.CreateGitignore(); err != nil {
				return err
			}
		}
		if initTheme {
			if err := p.CopyTheme(); err != nil {
				return err
			}
		}

		ui.FormatCreated(cmd.OutOrStdout(), p.Root())
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initTheme, "theme", false, "Copy the default theme into src/theme for customisation")
	initCmd.Flags().StringVar(&initTitle, "title", "", "Book title written to book.yaml")
	initCmd.Flags().StringVar(&initAuthor, "author", "", "Author written to book.yaml")
	initCmd.Flags().StringVar(&initDescription, "description", "", "Description written to book.yaml")
	initCmd.Flags().StringVar(&initSrc, "src", "src", "Source directory, relative to the book root")
	initCmd.Flags().BoolVar(&initNoGitignore, "no-gitignore", false, "Skip creating a .gitignore")

	rootCmd.AddCommand(initCmd)
}
