package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/inkvault/inkvault/cmd/app/commands"
	"github.com/inkvault/inkvault/internal/password"
)

func getPasswordCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate-password",
			Usage: "Generate a random password",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "length",
					Aliases: []string{"l"},
					Value:   password.DefaultLength,
					Usage:   "Password length",
				},
				&cli.BoolFlag{
					Name:  "no-symbols",
					Usage: "Exclude symbol characters",
				},
				&cli.BoolFlag{
					Name:  "exclude-similar",
					Usage: "Exclude similar-looking characters (Il1O0)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				opts := password.DefaultOptions()
				opts.Length = int(cmd.Int("length"))
				opts.Symbols = !cmd.Bool("no-symbols")
				opts.ExcludeSimilar = cmd.Bool("exclude-similar")

				return commands.RunGeneratePassword(commands.DefaultIO().Writer, opts, cmd.String("format"))
			},
		},
		{
			Name:      "score-password",
			Usage:     "Score a password's strength",
			ArgsUsage: "PASSWORD",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunScorePassword(
					commands.DefaultIO().Writer,
					cmd.Args().First(),
					cmd.String("format"),
				)
			},
		},
	}
}
