package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/ouaf/widgets/cmd"
	"github.com/ouaf/widgets/config"
)

func main() {
	root := cmd.NewRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(config.AppVersion),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
