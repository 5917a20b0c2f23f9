package main

import (
	"context"
	_ "embed"

	goversion "github.com/caarlos0/go-version"
	"github.com/goaux/headline"

	"github.com/takumakei/typed-extconf-gen/generator"
)

//go:embed usage.md
var usage string

var (
	version   = ""
	commit    = ""
	treeState = ""
	date      = ""
	builtBy   = ""
)

func main() {
	generator.Main(context.Background(), generator.Config{
		Use:     "extconf-gen",
		Short:   headline.Get(usage),
		Long:    usage,
		Version: buildVersion().String(),
	})
}

func buildVersion() goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails("extconf-gen", headline.Get(usage), "https://github.com/takumakei/typed-extconf-gen"),
		func(i *goversion.Info) {
			if commit != "" {
				i.GitCommit = commit
			}
			if version != "" {
				i.GitVersion = version
			}
			if treeState != "" {
				i.GitTreeState = treeState
			}
			if date != "" {
				i.BuildDate = date
			}
			if builtBy != "" {
				i.BuiltBy = builtBy
			}
		},
	)
}
