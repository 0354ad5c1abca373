package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/piwi3910/SeatShuffle/internal/model"
	"github.com/piwi3910/SeatShuffle/internal/project"
	"github.com/spf13/cobra"
)

// NewTemplateCommand creates the template command group.
func NewTemplateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage saved class templates",
		Long: `Class templates store a class size, room dimensions and standing
constraints under a name, so a new chart for the same class is one command:

  seatshuffle shuffle -t 3B`,
	}

	cmd.AddCommand(newTemplateListCommand(rootOpts))
	cmd.AddCommand(newTemplateSaveCommand(rootOpts))
	cmd.AddCommand(newTemplateShowCommand(rootOpts))
	cmd.AddCommand(newTemplateDeleteCommand(rootOpts))
	cmd.AddCommand(newTemplateExportCommand(rootOpts))
	cmd.AddCommand(newTemplateImportCommand(rootOpts))
	return cmd
}

func newTemplateListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd, "template")
			if err != nil {
				return err
			}
			store, err := project.LoadDefaultTemplates()
			if err != nil {
				return s.out.Fail(err)
			}

			if s.out.JSON() {
				return s.out.Success(store.Templates)
			}
			if len(store.Templates) == 0 {
				fmt.Fprintln(s.out.Writer, "No templates saved.")
				return nil
			}
			tw := tabwriter.NewWriter(s.out.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSTUDENTS\tROOM\tPAIRS\tFIXED")
			for _, t := range store.Templates {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%dx%d\t%d\t%d\n",
					t.ID, t.Name, t.Students, t.Rows, t.Cols, len(t.ForbiddenPairs), len(t.FixedSeats))
			}
			return tw.Flush()
		},
	}
}

func newTemplateSaveCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		rf          requestFlags
		description string
	)

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a class setup as a template",
		Long: `Save a class setup as a template. The setup is assembled like a shuffle
request (--request, --template, flags and --constraints). Saving under an
existing name replaces that template.`,
		Example: `  seatshuffle template save 3B -n 28 --rows 4 --cols 7 --forbid 1:2`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd, "template")
			if err != nil {
				return err
			}
			req, err := rf.build(cmd, s)
			if err != nil {
				return s.out.Fail(err)
			}
			if err := req.Validate(); err != nil {
				return s.out.Fail(err)
			}

			store, err := project.LoadDefaultTemplates()
			if err != nil {
				return s.out.Fail(err)
			}
			store.Add(model.NewClassTemplate(args[0], description, req))
			if err := project.SaveDefaultTemplates(store); err != nil {
				return s.out.Fail(err)
			}
			saved := store.FindByName(args[0])
			s.log.WithField("template", saved.ID).Debug("template saved")

			if s.out.JSON() {
				return s.out.Success(saved)
			}
			fmt.Fprintf(s.out.Writer, "Saved template %q (%s)\n", saved.Name, saved.ID)
			return nil
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVarP(&description, "description", "d", "", "template description")
	return cmd
}

func newTemplateShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name|id>",
		Short: "Show a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd, "template")
			if err != nil {
				return err
			}
			tmpl, err := findTemplate(args[0])
			if err != nil {
				return s.out.Fail(err)
			}

			if s.out.JSON() {
				return s.out.Success(tmpl)
			}
			fmt.Fprintf(s.out.Writer, "Template: %s (%s)\n", tmpl.Name, tmpl.ID)
			if tmpl.Description != "" {
				fmt.Fprintf(s.out.Writer, "Description: %s\n", tmpl.Description)
			}
			fmt.Fprintf(s.out.Writer, "Updated: %s\n", tmpl.UpdatedAt)
			fmt.Fprint(s.out.Writer, describeRequest(tmpl.ToRequest()))
			return nil
		},
	}
}

func newTemplateDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name|id>",
		Aliases: []string{"rm"},
		Short:   "Delete a template",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd, "template")
			if err != nil {
				return err
			}
			store, err := project.LoadDefaultTemplates()
			if err != nil {
				return s.out.Fail(err)
			}
			if !store.Remove(args[0]) {
				return s.out.Fail(fmt.Errorf("%w: unknown template %q", model.ErrInvalidInput, args[0]))
			}
			if err := project.SaveDefaultTemplates(store); err != nil {
				return s.out.Fail(err)
			}

			if s.out.JSON() {
				return s.out.Success(map[string]string{"deleted": args[0]})
			}
			fmt.Fprintf(s.out.Writer, "Deleted template %q\n", args[0])
			return nil
		},
	}
}

func newTemplateExportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <name|id> <file.json>",
		Short: "Export a template to share it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd, "template")
			if err != nil {
				return err
			}
			tmpl, err := findTemplate(args[0])
			if err != nil {
				return s.out.Fail(err)
			}
			if err := project.ExportTemplate(args[1], tmpl); err != nil {
				return s.out.Fail(err)
			}

			if s.out.JSON() {
				return s.out.Success(map[string]string{"exported": tmpl.Name, "path": args[1]})
			}
			fmt.Fprintf(s.out.Writer, "Exported template %q to %s\n", tmpl.Name, args[1])
			return nil
		},
	}
}

func newTemplateImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import a shared template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd, "template")
			if err != nil {
				return err
			}
			tmpl, err := project.ImportTemplate(args[0])
			if err != nil {
				return s.out.Fail(err)
			}
			store, err := project.LoadDefaultTemplates()
			if err != nil {
				return s.out.Fail(err)
			}
			store.Add(tmpl)
			if err := project.SaveDefaultTemplates(store); err != nil {
				return s.out.Fail(err)
			}

			if s.out.JSON() {
				return s.out.Success(store.FindByName(tmpl.Name))
			}
			fmt.Fprintf(s.out.Writer, "Imported template %q\n", tmpl.Name)
			return nil
		},
	}
}

// findTemplate looks a template up by name, then by ID.
func findTemplate(nameOrID string) (model.ClassTemplate, error) {
	store, err := project.LoadDefaultTemplates()
	if err != nil {
		return model.ClassTemplate{}, err
	}
	if t := store.FindByName(nameOrID); t != nil {
		return *t, nil
	}
	if t := store.FindByID(nameOrID); t != nil {
		return *t, nil
	}
	return model.ClassTemplate{}, fmt.Errorf("%w: unknown template %q", model.ErrInvalidInput, nameOrID)
}
