// Command hook-deploy builds a hook project with the external toolchain
// and installs the result on a Hooks-enabled node.
//
// Thin glue only: all behavior lives in the library package.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	cli "github.com/jawher/mow.cli"
	log "github.com/xlab/suplog"

	hooks "github.com/branched-services/go-hooks"
)

// config carries environment defaults; flags override.
type config struct {
	NodeURL string `env:"HOOKS_NODE_URL" envDefault:"http://localhost:5005"`
	Seed    string `env:"HOOKS_WALLET_SEED"`
	Workdir string `env:"HOOKS_WORKDIR" envDefault:"."`
}

func main() {
	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		log.WithError(err).Fatalln("failed to parse environment")
	}

	app := cli.App("hook-deploy", "Build and deploy compiled hooks")

	workdir := app.StringOpt("w workdir", cfg.Workdir, "Hook project directory")

	app.Command("build", "Run the build toolchain and print the hook code", func(cmd *cli.Cmd) {
		name := cmd.StringArg("NAME", "", "Artifact name (without extension)")
		legacy := cmd.BoolOpt("continue-on-error", false, "Log stage failures and keep going (legacy)")

		cmd.Action = func() {
			payload, err := buildPayload(*workdir, *name, *legacy)
			if err != nil {
				log.WithError(err).Errorln("build failed")
				os.Exit(1)
			}
			fmt.Println(payload.CreateCode)
		}
	})

	app.Command("deploy", "Build the hook and install it on the network", func(cmd *cli.Cmd) {
		name := cmd.StringArg("NAME", "", "Artifact name (without extension)")
		nodeURL := cmd.StringOpt("n node-url", cfg.NodeURL, "Node JSON-RPC endpoint")
		seed := cmd.StringOpt("s seed", cfg.Seed, "Wallet seed of the deploying account")

		cmd.Action = func() {
			if *seed == "" {
				log.Fatalln("a wallet seed is required (--seed or HOOKS_WALLET_SEED)")
			}

			payload, err := buildPayload(*workdir, *name, false)
			if err != nil {
				log.WithError(err).Errorln("build failed")
				os.Exit(1)
			}

			ctx := context.Background()
			client, err := hooks.Dial(ctx, *nodeURL)
			if err != nil {
				log.WithError(err).Fatalln("failed to connect to node")
			}
			defer client.Close()

			result, err := hooks.NewDeployer(client).Deploy(ctx, *seed, payload)
			if err != nil {
				log.WithError(err).Errorln("deploy failed")
				os.Exit(1)
			}

			log.WithField("hash", result.TxHash).
				WithField("engine", result.EngineResult).
				Infoln("hook installed")
			fmt.Println(result.TxHash)
		}
	})

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatalln("command failed")
	}
}

func buildPayload(workdir, name string, legacy bool) (hooks.SetHookPayload, error) {
	pipeline := hooks.NewPipeline(workdir, hooks.WithContinueOnError(legacy))
	return pipeline.Build(context.Background(), name)
}
