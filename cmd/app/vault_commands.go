package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/allisson/accountvault/cmd/app/commands"
	"github.com/allisson/accountvault/internal/app"
	"github.com/allisson/accountvault/internal/config"
)

func getVaultCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-user",
			Usage: "Register a vault user",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Login email",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Login password (omit to be prompted)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				userUseCase, err := container.UserUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateUser(
					ctx,
					userUseCase,
					container.Logger(),
					cmd.String("email"),
					cmd.String("password"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "derive-otp",
			Usage: "Print the one-time code of a Base32 seed",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "seed",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Base32 seed, spaces and padding optional",
				},
				&cli.Int64Flag{
					Name:  "at",
					Usage: "Unix time to derive the code for (defaults to now)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())

				generator, err := container.TotpGenerator()
				if err != nil {
					return err
				}

				at := time.Now()
				if cmd.IsSet("at") {
					at = time.Unix(cmd.Int64("at"), 0)
				}

				return commands.RunDeriveOTP(
					generator,
					cmd.String("seed"),
					at,
					cmd.String("format"),
					commands.DefaultIO().Writer,
				)
			},
		},
		{
			Name:  "encrypt-value",
			Usage: "Encrypt a value with the configured secret cipher",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "value",
					Aliases: []string{"v"},
					Usage:   "Value to encrypt (omit to read it from stdin)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				cipher, err := container.SecretCipher()
				if err != nil {
					return err
				}

				return commands.RunEncryptValue(cipher, cmd.String("value"), cmd.String("format"), commands.DefaultIO())
			},
		},
		{
			Name:  "wrap-secret",
			Usage: "Encrypt APP_SECRET or JWT_SECRET with a KMS key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "kms-key-uri",
					Required: true,
					Usage:    "KMS key URI (awskms://, gcpkms://, azurekeyvault://, hashivault:// or base64key://)",
				},
				&cli.StringFlag{
					Name:    "name",
					Aliases: []string{"n"},
					Value:   "APP_SECRET",
					Usage:   "Variable to wrap: APP_SECRET or JWT_SECRET",
				},
				&cli.StringFlag{
					Name:    "value",
					Aliases: []string{"v"},
					Usage:   "Plaintext secret (omit to be prompted)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())

				return commands.RunWrapSecret(
					ctx,
					container.KMSService(),
					cmd.String("kms-key-uri"),
					cmd.String("name"),
					cmd.String("value"),
					commands.DefaultIO(),
				)
			},
		},
	}
}
