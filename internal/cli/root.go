// Package cli holds the aster command line.
package cli

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Ramsey-B/aster/config"
	"github.com/Ramsey-B/aster/internal/app"
	"github.com/Ramsey-B/aster/pkg/logging"
	"github.com/Ramsey-B/aster/pkg/parse"
	"github.com/Ramsey-B/aster/pkg/presentation"
	"github.com/Ramsey-B/aster/pkg/reconcile"
)

type rootOptions struct {
	output   string
	envFiles []string
}

func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "aster",
		Short:         "Attio connector: reconcile emails and domains into Attio records",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.output = strings.ToLower(opts.output)
			if opts.output != OutputJSON && opts.output != OutputYAML {
				return fmt.Errorf("unknown output format '%s', expected json or yaml", opts.output)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", OutputJSON, "output format: json or yaml")
	root.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, "env files to load before reading the environment")

	root.AddCommand(
		newServeCommand(opts),
		newClassifyCommand(opts),
		newParseDomainCommand(opts),
		newParseEmailsCommand(opts),
		newAssertCommand(opts),
		newAddEntryCommand(opts),
		newCollectionsCommand(opts),
	)
	return root
}

// load builds the application from the environment.
func (o *rootOptions) load() (*app.App, error) {
	cfg, err := config.Load(o.envFiles...)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.PrettyLogs)
	if err != nil {
		return nil, err
	}

	return app.New(cfg, logger), nil
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return a.Serve(ctx)
		},
	}
}

func newClassifyCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <input>",
		Short: "Classify an input as an email, a domain, or neither",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return write(cmd.OutOrStdout(), opts.output, parse.Classify(args[0]))
		},
	}
}

func newParseDomainCommand(opts *rootOptions) *cobra.Command {
	var subdomain bool

	cmd := &cobra.Command{
		Use:   "parse-domain <url>",
		Short: "Resolve the registrable domain of a URL, hostname or email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			domain, err := parse.ParseDomain(args[0], subdomain)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), opts.output, map[string]string{"domain": domain})
		},
	}
	cmd.Flags().BoolVar(&subdomain, "subdomain", false, "keep the full hostname")
	return cmd
}

func newParseEmailsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse-emails <addresses>",
		Short: "Parse every mailbox in an RFC 5322 address list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return write(cmd.OutOrStdout(), opts.output, presentation.NewParsedEmailViews(parse.ParseEmails(args[0])))
		},
	}
}

func newAssertCommand(opts *rootOptions) *cobra.Command {
	var updateName bool

	cmd := &cobra.Command{
		Use:   "assert <email-or-domain>",
		Short: "Find or create the person or company for an input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			defer a.Close()

			record, err := a.Engine.AssertRecord(commandContext(cmd), args[0], reconcile.AssertOptions{UpdateName: updateName})
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), opts.output, presentation.NewRecordView(record))
		},
	}
	cmd.Flags().BoolVar(&updateName, "update-name", false, "send the mailbox display name along with the address")
	return cmd
}

func newAddEntryCommand(opts *rootOptions) *cobra.Command {
	var allowDuplicate bool

	cmd := &cobra.Command{
		Use:   "add-entry <collection-id> <email-or-domain>",
		Short: "Add the record for an input to a collection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			defer a.Close()

			entry, err := a.Engine.AddRecordToCollection(commandContext(cmd), reconcile.AddToCollectionInput{
				CollectionID:   args[0],
				Input:          args[1],
				AllowDuplicate: allowDuplicate,
			})
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), opts.output, presentation.NewEntryView(entry))
		},
	}
	cmd.Flags().BoolVar(&allowDuplicate, "allow-duplicate", false, "create a new entry even if the record is already in the collection")
	return cmd
}

func newCollectionsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "collections",
		Short: "List the workspace's collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load()
			if err != nil {
				return err
			}
			defer a.Close()

			collections, err := a.Attio.ListCollections(commandContext(cmd))
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), opts.output, presentation.NewCollectionViews(collections))
		},
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
