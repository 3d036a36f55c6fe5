// Command aptos-mcp serves the Aptos agent tools over MCP on stdio.
//
// Transactions run against an in-memory dry-run account, so the server can
// be attached to any MCP client without keys or network access.
package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"

	"github.com/hamzaessahbaoui/aptos-agent-kit/agentkit"
	"github.com/hamzaessahbaoui/aptos-agent-kit/config"
	"github.com/hamzaessahbaoui/aptos-agent-kit/mcpserver"
	"github.com/hamzaessahbaoui/aptos-agent-kit/runtime"
	"github.com/hamzaessahbaoui/aptos-agent-kit/schema"
	"github.com/hamzaessahbaoui/aptos-agent-kit/toolkit"
)

func main() {
	envFile := flag.String("env", ".env", "path to the .env file")
	fund := flag.String("fund", "10", "APT credited to the dry-run account at startup")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := cfg.Logger()
	schema.SetLogger(logger.WithPrefix("schema"))
	toolkit.SetLogger(logger.WithPrefix("toolkit"))

	rt := runtime.NewDryRun(cfg.AccountAddress, logger)
	if err := fundAccount(rt, *fund); err != nil {
		logger.Fatal("funding dry-run account", "err", err)
	}

	tk := agentkit.New(rt, logger)
	srv := mcpserver.New(tk, mcpserver.Info{Name: cfg.Name, Version: cfg.Version}, logger)

	logger.Info("starting MCP server", "network", cfg.Network, "address", cfg.AccountAddress, "tools", len(srv.Registered()))
	if err := srv.ServeStdio(); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

func fundAccount(rt *runtime.DryRun, apt string) error {
	amount, err := runtime.ToOnChain(apt, 8)
	if err != nil {
		return err
	}
	if amount.Cmp(big.NewInt(0)) == 0 {
		return nil
	}
	return rt.Fund(runtime.AptosCoin, amount)
}
