package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/desertthunder/mwl/internal/services"
	"github.com/desertthunder/mwl/internal/shared"
	"github.com/urfave/cli/v3"
)

func apiPath(cmd *cli.Command) (string, error) {
	path := strings.TrimSpace(cmd.StringArg("path"))
	if path == "" {
		return "", fmt.Errorf("%w: request path", shared.ErrMissingArgument)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path, nil
}

// APIGet makes a direct GET request to the backend
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path, err := apiPath(cmd)
	if err != nil {
		return err
	}

	r.logger.Info("GET request", "path", path)

	resp, err := r.api.Get(ctx, path)
	if err != nil {
		return err
	}

	if !resp.OK() {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	return r.writeResponse(resp, !cmd.Bool("json"))
}

// APISend makes a direct POST, PUT or DELETE request; the method is the subcommand name.
func (r *Runner) APISend(ctx context.Context, cmd *cli.Command) error {
	path, err := apiPath(cmd)
	if err != nil {
		return err
	}

	method := strings.ToUpper(cmd.Name)
	var body []byte
	if method != http.MethodDelete {
		data := cmd.String("data")
		if data == "" {
			return fmt.Errorf("%w: --data flag is required", shared.ErrMissingArgument)
		}

		var jsonTest any
		if err := json.Unmarshal([]byte(data), &jsonTest); err != nil {
			return fmt.Errorf("%w: data is not valid JSON: %v", shared.ErrInvalidInput, err)
		}
		body = []byte(data)
	}

	r.logger.Info(method+" request", "path", path)

	resp, err := r.api.Do(ctx, method, path, body)
	if err != nil {
		return err
	}

	if !resp.OK() {
		return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, services.ErrorMessage(resp.Body))
	}

	return r.writeResponse(resp, true)
}

func (r *Runner) writeResponse(resp *services.APIResponse, pretty bool) error {
	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, pretty)
	}
	if len(resp.Body) == 0 {
		return r.writePlain("%d %s\n", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	r.output.Write(resp.Body)
	r.output.Write([]byte("\n"))
	return nil
}
