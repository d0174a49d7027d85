package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	httpctrl "github.com/vidly-dev/vidly/pkg/controller/http"
	"github.com/vidly-dev/vidly/pkg/repository/memory"
	"github.com/vidly-dev/vidly/pkg/usecase"
)

var methodColors = map[string]*color.Color{
	http.MethodGet:    color.New(color.FgGreen),
	http.MethodPost:   color.New(color.FgYellow),
	http.MethodPut:    color.New(color.FgBlue),
	http.MethodDelete: color.New(color.FgRed),
}

func cmdRoutes() *cli.Command {
	var noColor bool

	return &cli.Command{
		Name:  "routes",
		Usage: "Print the HTTP routes the server registers",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable colored output",
				Destination: &noColor,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := usecase.New(memory.New())
			if err != nil {
				return goerr.Wrap(err, "failed to initialize use cases")
			}
			server, err := httpctrl.New(uc)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}

			routes, err := server.Routes()
			if err != nil {
				return err
			}
			return printRoutes(c.Root().Writer, routes, noColor)
		},
	}
}

func printRoutes(w io.Writer, routes []httpctrl.Route, noColor bool) error {
	for _, route := range routes {
		method := fmt.Sprintf("%-6s", route.Method)
		if clr, ok := methodColors[route.Method]; ok && !noColor {
			method = clr.Sprint(method)
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", method, route.Pattern); err != nil {
			return goerr.Wrap(err, "failed to write route")
		}
	}
	return nil
}
