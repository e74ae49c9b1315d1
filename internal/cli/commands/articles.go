package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/myblog-dev/myblog/internal/cli/client"
)

// NewArticlesCmd creates the articles command group
func NewArticlesCmd(factory AppFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "articles",
		Aliases: []string{"article"},
		Short:   "List, read, write and delete articles",
	}

	cmd.AddCommand(newArticlesListCmd(factory))
	cmd.AddCommand(newArticlesGetCmd(factory))
	cmd.AddCommand(newArticlesCreateCmd(factory))
	cmd.AddCommand(newArticlesEditCmd(factory))
	cmd.AddCommand(newArticlesDeleteCmd(factory))

	return cmd
}

func newArticlesListCmd(factory AppFactory) *cobra.Command {
	var page, size int

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List published articles",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(factory, cmd, func(app *App) error {
				result, err := app.API.ListArticles(cmd.Context(), page, size)
				if err != nil {
					return err
				}

				if len(result.Data) == 0 {
					fmt.Fprintln(app.Out, "No articles found.")
					return nil
				}

				w := tabwriter.NewWriter(app.Out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tCREATED")
				for _, a := range result.Data {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, a.Title, a.Author, a.CreatedAt)
				}
				if err := w.Flush(); err != nil {
					return err
				}

				p := result.Pagination
				fmt.Fprintf(app.Out, "\nPage %d (%d per page), %d total\n", p.Page, p.Size, p.Total)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&size, "size", 10, "Articles per page")

	return cmd
}

func newArticlesGetCmd(factory AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(factory, cmd, func(app *App) error {
				a, err := app.API.GetArticle(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				fmt.Fprintln(app.Out, a.Title)
				fmt.Fprintf(app.Out, "by %s, %s\n", a.Author, a.CreatedAt)
				if a.Summary != "" {
					fmt.Fprintf(app.Out, "\n%s\n", a.Summary)
				}
				fmt.Fprintf(app.Out, "\n%s\n", a.Content)
				return nil
			})
		},
	}
}

func newArticlesCreateCmd(factory AppFactory) *cobra.Command {
	var (
		title, summary, contentFile string
		draft                       bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Write a new article",
		Long: `Write a new article.

The body is read from --file, or from stdin when --file is "-".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(factory, cmd, func(app *App) error {
				if title == "" {
					return fmt.Errorf("--title is required")
				}

				content, err := readContent(cmd, contentFile)
				if err != nil {
					return err
				}

				a, err := app.API.CreateArticle(cmd.Context(), client.CreateArticleRequest{
					Title:     title,
					Summary:   summary,
					Content:   content,
					Published: !draft,
				})
				if err != nil {
					return err
				}

				fmt.Fprintf(app.Out, "✓ Created article %s\n", a.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Article title")
	cmd.Flags().StringVar(&summary, "summary", "", "Short summary")
	cmd.Flags().StringVarP(&contentFile, "file", "f", "-", "File holding the article body (- for stdin)")
	cmd.Flags().BoolVar(&draft, "draft", false, "Save without publishing")

	return cmd
}

func newArticlesEditCmd(factory AppFactory) *cobra.Command {
	var (
		title, summary, contentFile string
		publish, draft              bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit one of your articles",
		Long: `Edit one of your articles. Only the given fields change.

The body is replaced only when --file is given ("-" reads stdin).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(factory, cmd, func(app *App) error {
				flags := cmd.Flags()
				var req client.UpdateArticleRequest

				if flags.Changed("title") {
					req.Title = &title
				}
				if flags.Changed("summary") {
					req.Summary = &summary
				}
				if flags.Changed("file") {
					content, err := readContent(cmd, contentFile)
					if err != nil {
						return err
					}
					req.Content = &content
				}
				switch {
				case publish && draft:
					return fmt.Errorf("--publish and --draft are mutually exclusive")
				case publish || draft:
					published := publish
					req.Published = &published
				}

				if req == (client.UpdateArticleRequest{}) {
					return fmt.Errorf("nothing to change (use --title, --summary, --file, --publish or --draft)")
				}

				a, err := app.API.UpdateArticle(cmd.Context(), args[0], req)
				if err != nil {
					return err
				}

				fmt.Fprintf(app.Out, "✓ Updated article %s\n", a.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&summary, "summary", "", "New summary")
	cmd.Flags().StringVarP(&contentFile, "file", "f", "", "File holding the new body (- for stdin)")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish the article")
	cmd.Flags().BoolVar(&draft, "draft", false, "Unpublish the article")

	return cmd
}

func readContent(cmd *cobra.Command, file string) (string, error) {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read article body: %w", err)
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		return "", fmt.Errorf("article body is empty")
	}
	return content, nil
}

func newArticlesDeleteCmd(factory AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete one of your articles",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(factory, cmd, func(app *App) error {
				if err := app.API.DeleteArticle(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(app.Out, "✓ Deleted article %s\n", args[0])
				return nil
			})
		},
	}
}
