package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/grammalecte-api/internal/app"
)

func newCheckCmd() *cobra.Command {
	var (
		formatText bool
		rawOpts    map[string]string
	)

	cmd := &cobra.Command{
		Use:   "check [file|-]",
		Short: "Check a file or standard input",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			opts, err := parseOptionFlags(rawOpts)
			if err != nil {
				return err
			}

			res, err := clientFromConfig().Check(cmd.Context(), checkRequest{
				Text:       text,
				FormatText: formatText,
				Options:    opts,
			})
			if err != nil {
				return err
			}

			if err := render(cmd.OutOrStdout(), outputFormat(), res, func(w io.Writer) error {
				return renderCheckText(w, text, res)
			}); err != nil {
				return err
			}
			if res.Error != nil {
				return fmt.Errorf("check failed: %s", *res.Error)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&formatText, "format-text", false, "apply typographic formatting before checking")
	cmd.Flags().StringToStringVar(&rawOpts, "opt", nil, "engine option override, e.g. --opt typo=false")
	return cmd
}

func newSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <token>",
		Short: "Spelling suggestions for a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := clientFromConfig().Suggest(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), outputFormat(), res, func(w io.Writer) error {
				for _, s := range res.Suggestions {
					if _, err := fmt.Fprintln(w, s); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show server health and engine version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := clientFromConfig().Health(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), outputFormat(), res, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s: %s %s (%s)\n", res.Service, res.Status, res.Version, res.Lang)
				return err
			})
		},
	}
}

func newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List engine options and their defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := clientFromConfig().Options(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), outputFormat(), res, func(w io.Writer) error {
				return renderOptionsText(w, res)
			})
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "grammarctl %s\n", app.BuildVersion())
		},
	}
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func parseOptionFlags(raw map[string]string) (map[string]bool, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]bool, len(raw))
	for name, v := range raw {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("--opt %s=%s: value must be true or false", name, v)
		}
		out[name] = b
	}
	return out, nil
}
