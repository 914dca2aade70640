package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

// defaultTopK is the number of chunks retrieved per question.
const defaultTopK = 3

// exec parses args with a command tree for the current page. The tree is
// built per line so flag values never leak from one command to the next.
func (a *App) exec(ctx context.Context, args []string) error {
	root := a.commands()
	root.SetArgs(args)
	root.SetOut(a.out)
	root.SetErr(a.out)
	return root.ExecuteContext(ctx)
}

func (a *App) commands() *cobra.Command {
	root := &cobra.Command{
		Use:               "ragdesk",
		Short:             "Documents, questions and data analysis against the RAG backend",
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	root.AddCommand(&cobra.Command{
		Use:   "theme",
		Short: "Toggle between the dark and light theme",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, _ []string) error { return a.ToggleTheme(cmd.Context()) },
	})

	if a.page == PageDashboard {
		a.dashboardCommands(root)
	} else {
		a.authCommands(root)
	}
	return root
}

func (a *App) authCommands(root *cobra.Command) {
	root.AddCommand(
		&cobra.Command{
			Use:   "login [username]",
			Short: "Sign in",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.Login(cmd.Context(), firstArg(args))
			},
		},
		&cobra.Command{
			Use:   "signup",
			Short: "Create an account",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, _ []string) error { return a.Signup(cmd.Context()) },
		},
		&cobra.Command{
			Use:   "forgot [email]",
			Short: "Request a password reset link",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.ForgotPassword(cmd.Context(), firstArg(args))
			},
		},
		&cobra.Command{
			Use:   "reset <link>",
			Short: "Set a new password using the link from the reset email",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.ResetPassword(cmd.Context(), args[0])
			},
		},
	)
}

func (a *App) dashboardCommands(root *cobra.Command) {
	var (
		topK     int
		filter   string
		selected []string
	)
	ask := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about your documents",
		Example: `  ask what is the refund policy
  ask -k 5 -d 1 -d report.pdf "summarize the findings"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(selected) > 0 && !cmd.Flags().Changed("filter") {
				filter = "selected"
			}
			return a.Ask(cmd.Context(), strings.Join(args, " "), topK, filter, selected)
		},
	}
	ask.Flags().IntVarP(&topK, "top-k", "k", defaultTopK, "number of passages to retrieve")
	ask.Flags().StringVar(&filter, "filter", "all", "document filter: all or selected")
	ask.Flags().StringSliceVarP(&selected, "doc", "d", nil, "document name or list number (implies --filter selected)")

	var newUsername, newEmail string
	profile := &cobra.Command{
		Use:   "profile",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, _ []string) error { return a.ShowProfile(cmd.Context()) },
	}
	update := &cobra.Command{
		Use:   "update",
		Short: "Change username and/or email (prompts when no flag is given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("username") && !cmd.Flags().Changed("email") {
				return a.UpdateProfileInteractive(cmd.Context())
			}
			return a.UpdateProfile(cmd.Context(), newUsername, newEmail,
				cmd.Flags().Changed("username"), cmd.Flags().Changed("email"))
		},
	}
	update.Flags().StringVarP(&newUsername, "username", "u", "", "new username")
	update.Flags().StringVarP(&newEmail, "email", "e", "", "new email")
	profile.AddCommand(update)

	data := &cobra.Command{
		Use:   "data",
		Short: "Analyze a tabular file",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, _ []string) error { return a.DataStatus(cmd.Context()) },
	}
	data.AddCommand(
		&cobra.Command{
			Use:   "upload <file>",
			Short: "Upload a CSV/Excel file and analyze it",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.UploadData(cmd.Context(), firstArg(args))
			},
		},
		&cobra.Command{
			Use:   "insights",
			Short: "Show the generated insights for the active file",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, _ []string) error { return a.DataInsights(cmd.Context()) },
		},
		&cobra.Command{
			Use:   "charts",
			Short: "Render the charts of the active file to an HTML page",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, _ []string) error { return a.DataCharts(cmd.Context()) },
		},
		&cobra.Command{
			Use:   "ask <question>",
			Short: "Ask a question about the active file",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.AskData(cmd.Context(), strings.Join(args, " "))
			},
		},
	)

	root.AddCommand(
		&cobra.Command{
			Use:     "docs",
			Aliases: []string{"ls", "documents"},
			Short:   "List your documents",
			Args:    cobra.NoArgs,
			RunE:    func(cmd *cobra.Command, _ []string) error { return a.ListDocuments(cmd.Context()) },
		},
		&cobra.Command{
			Use:   "upload <file>...",
			Short: "Upload one or more documents",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.Upload(cmd.Context(), args)
			},
		},
		&cobra.Command{
			Use:   "delete <document|number>",
			Short: "Delete a document",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.Delete(cmd.Context(), args[0])
			},
		},
		ask,
		&cobra.Command{
			Use:   "history [number]",
			Short: "List recent conversations or expand one",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.History(cmd.Context(), firstArg(args))
			},
		},
		profile,
		&cobra.Command{
			Use:   "passwd",
			Short: "Change your password",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, _ []string) error { return a.ChangePassword(cmd.Context()) },
		},
		data,
		&cobra.Command{
			Use:   "logout",
			Short: "Sign out",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, _ []string) error { return a.Logout(cmd.Context()) },
		},
	)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
