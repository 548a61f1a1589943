package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/inkvault/inkvault/cmd/app/commands"
	"github.com/inkvault/inkvault/internal/app"
	"github.com/inkvault/inkvault/internal/config"
)

func getDocumentCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "encrypt",
			Usage:     "Encrypt files in place",
			ArgsUsage: "FILE [FILE...]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "mode",
					Aliases: []string{"m"},
					Value:   "fallback",
					Usage:   "Encryption mode: 'fallback' or 'custom'",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Password for custom mode",
				},
				&cli.IntFlag{
					Name:    "workers",
					Aliases: []string{"w"},
					Value:   4,
					Usage:   "Number of files to process concurrently",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunEncryptFiles(
					ctx,
					container.CryptoWorkflow(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("mode"),
					cmd.String("password"),
					cmd.Args().Slice(),
					int(cmd.Int("workers")),
				)
			},
		},
		{
			Name:      "decrypt",
			Usage:     "Decrypt files in place",
			ArgsUsage: "FILE [FILE...]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Password for password-protected files (fallback key is tried first)",
				},
				&cli.IntFlag{
					Name:    "workers",
					Aliases: []string{"w"},
					Value:   4,
					Usage:   "Number of files to process concurrently",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunDecryptFiles(
					ctx,
					container.CryptoWorkflow(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("password"),
					cmd.Args().Slice(),
					int(cmd.Int("workers")),
				)
			},
		},
	}
}
