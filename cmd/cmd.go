// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func idArgument() []cli.Argument {
	return []cli.Argument{
		&cli.StringArg{
			Name:      "id",
			UsageText: "movie id",
		},
	}
}

// movieFlags are shared by add and update.
func movieFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "title",
			Aliases: []string{"t"},
			Usage:   "Movie title",
		},
		&cli.StringFlag{
			Name:    "genre",
			Aliases: []string{"g"},
			Usage:   "Genre",
		},
		&cli.StringFlag{
			Name:    "year",
			Aliases: []string{"y"},
			Usage:   "Release year; anything without a leading number is sent as null",
		},
		&cli.StringFlag{
			Name:    "rating",
			Aliases: []string{"r"},
			Usage:   "Rating out of 10; anything without a leading number is sent as null",
		},
		&cli.BoolFlag{
			Name:    "watched",
			Aliases: []string{"w"},
			Usage:   "Mark as watched",
		},
		&cli.StringFlag{
			Name:    "notes",
			Aliases: []string{"n"},
			Usage:   "Free-form notes",
		},
	}
}

func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List movies in server order",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "Show all, watched or unwatched movies",
				Value:   "all",
			},
			&cli.StringFlag{
				Name:  "where",
				Usage: `Expression over id, title, genre, year, rating, watched, notes (e.g. 'rating >= 8 && !watched')`,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.List,
	}
}

func getCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Aliases:   []string{"show"},
		Usage:     "Show a single movie",
		Arguments: idArgument(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Get,
	}
}

func addCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a movie under the given id",
		Arguments: idArgument(),
		Flags:     movieFlags(),
		Action:    r.Add,
	}
}

func updateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Aliases:   []string{"edit"},
		Usage:     "Update a movie; fields not given keep their current values",
		Arguments: idArgument(),
		Flags:     movieFlags(),
		Action:    r.Update,
	}
}

func deleteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a movie",
		Arguments: idArgument(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "yes",
				Usage: "Skip the confirmation prompt",
			},
		},
		Action: r.Delete,
	}
}

func metricsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "metrics",
		Usage: "Show watchlist counts",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Metrics,
	}
}

func idsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "ids",
		Usage:  "List stored movie ids",
		Action: r.IDs,
	}
}

func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Check backend health",
		Action: r.Status,
	}
}

func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the watchlist to csv, md, txt, html or json",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format",
				Value:   "csv",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: watchlist.<format>)",
			},
			&cli.BoolFlag{
				Name:  "stdout",
				Usage: "Write to stdout instead of a file",
			},
			&cli.StringFlag{
				Name:  "where",
				Usage: "Only export movies matching this expression",
			},
		},
		Action: r.Export,
	}
}

func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Create movies from a CSV file with id and title columns",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "file",
			},
		},
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Create requests per second (default: import.rate_limit)",
			},
			&cli.IntFlag{
				Name:  "burst",
				Usage: "Requests allowed at once (default: import.burst)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Parse and print the rows without sending them",
			},
		},
		Action: r.Import,
	}
}

func dumpCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "dump",
		Usage: "Fetch health, movies, ids and metrics in one go",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Dump,
	}
}

func previewCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "preview",
		Usage: "Serve a read-only HTML view of the watchlist",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address",
				Value: "127.0.0.1:8080",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the preview in a browser once listening",
			},
		},
		Action: r.Preview,
	}
}

func openCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "open",
		Usage:  "Open the backend in a browser",
		Action: r.Open,
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	pathArg := func() []cli.Argument {
		return []cli.Argument{&cli.StringArg{Name: "path"}}
	}
	dataFlag := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "JSON body to send",
			},
		}
	}

	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the backend",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Direct GET, prints the response body",
				Arguments: pathArg(),
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output compact JSON",
					},
				},
				Action: r.APIGet,
			},
			{
				Name:      "post",
				Usage:     "Direct POST with JSON body",
				Arguments: pathArg(),
				Flags:     dataFlag(),
				Action:    r.APISend,
			},
			{
				Name:      "put",
				Usage:     "Direct PUT with JSON body",
				Arguments: pathArg(),
				Flags:     dataFlag(),
				Action:    r.APISend,
			},
			{
				Name:      "delete",
				Usage:     "Direct DELETE",
				Arguments: pathArg(),
				Action:    r.APISend,
			},
		},
	}
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Interactive watchlist",
		Action: r.TUI,
	}
}
