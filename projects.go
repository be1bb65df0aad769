package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/tisane-lang/tisane/lib/pkgcache"
	"github.com/tisane-lang/tisane/lib/project"
	"github.com/tisane-lang/tisane/util"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:     "init",
		Usage:    "Initialize a new Tisane project",
		Category: "project",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "The name of the project",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Accept all defaults without prompting",
			},
		},
		Action: initProject,
	}, &cli.Command{
		Name:    "install",
		Aliases: []string{"i"},
		Usage:   "Install a library and add it to the project",
		Description: "Clones a library from a remote git repository into the package cache.\n" +
			"Without a url argument, installs every dependency listed in tisane.yaml,\n" +
			"refreshing the ones already cached.",
		Category:  "project",
		ArgsUsage: "[url[@branch]]",
		Action:    install,
	})
}

func initProject(c *cli.Context) error {
	var conf project.Config
	conf.CreateDefault(c.String("name"))

	if !c.Bool("yes") {
		conf.Name = util.PromptString("Project name", conf.Name)
		conf.Description = util.PromptString("Description", conf.Description)
		conf.Version = util.PromptString("Version", conf.Version)
		conf.Main = util.PromptString("Main file", conf.Main)
		conf.Author = util.PromptString("Author", conf.Author)
		conf.License = util.PromptString("License", conf.License)
	}

	overwrite := true
	if _, err := project.Load("."); err == nil {
		overwrite = util.PromptYN(project.ConfigFile+" already exists. Overwrite?", false)
	}
	if !overwrite {
		return nil
	}

	if err := conf.Save(project.ConfigFile, true); err != nil {
		return cli.Exit(color.RedString("Error saving config: %s", err), 1)
	}

	color.Green("Initialized project %s", conf.Name)
	return nil
}

func install(c *cli.Context) error {
	cache := &pkgcache.Cache{}
	if err := cache.Init(); err != nil {
		return cli.Exit(color.RedString("Error opening package cache: %s", err), 1)
	}
	if err := cache.Scan(); err != nil {
		return cli.Exit(color.RedString("Error scanning package cache: %s", err), 1)
	}

	liburl := c.Args().First()
	if liburl == "" {
		return installDependencies(cache)
	}

	pkg, err := cache.Install(liburl)
	if err != nil {
		return cli.Exit(color.RedString("Error installing library: %s", err), 1)
	}

	conf, err := project.Load(".")
	if err == nil {
		conf.Dependencies = append(conf.Dependencies, project.Dependency{
			Package:    pkg.Name,
			Version:    pkg.Version,
			Identifier: pkg.Identifier,
		})
		if err := conf.Save(project.ConfigFile, true); err != nil {
			return cli.Exit(color.RedString("Error saving config: %s", err), 1)
		}
		fmt.Println("Added library", pkg.Name, "to the project.")
	}

	color.Green("Installed %s %s", pkg.Name, pkg.Version)
	return nil
}

// installDependencies fetches every dependency in tisane.yaml, pulling
// the latest revision of those already cached.
func installDependencies(cache *pkgcache.Cache) error {
	conf, err := project.Load(".")
	if err != nil {
		return cli.Exit(color.RedString("Error reading %s: %s", project.ConfigFile, err), 1)
	}

	for _, dep := range conf.Dependencies {
		if pkg, ok := cache.Find(dep.Identifier, dep.Version); ok {
			if err := cache.Update(pkg); err != nil {
				return cli.Exit(color.RedString("Error updating %s: %s", dep.Identifier, err), 1)
			}
			continue
		}

		color.Yellow("Library %s not found locally, cloning...", dep.Identifier)
		pkg, err := cache.Install(dep.Identifier)
		if err != nil {
			return cli.Exit(color.RedString("Error installing %s: %s", dep.Identifier, err), 1)
		}
		color.Green("Installed %s %s", pkg.Name, pkg.Version)
	}

	return nil
}
