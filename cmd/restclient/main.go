// Command restclient performs one GET against the configured API and prints
// the converted body.
//
//	restclient --as list /users
//	restclient --as status --expect 204 /health
//	RESTCLIENT_CLIENT_BASE_URL=https://api.example.com restclient /users/1
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/pflag"

	"github.com/kbukum/restclient/config"
	"github.com/kbukum/restclient/convert"
	"github.com/kbukum/restclient/errors"
	"github.com/kbukum/restclient/httpclient/rest"
	"github.com/kbukum/restclient/logger"
	"github.com/kbukum/restclient/observability"
	"github.com/kbukum/restclient/version"
)

const name = "restclient"

type flags struct {
	configFile string
	envFile    string
	as         string
	expect     int
	headers    []string
	query      []string
	debug      bool
	version    bool
}

func main() {
	var f flags
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringVarP(&f.configFile, "config", "c", "", "config file (default: discovered)")
	fs.StringVar(&f.envFile, "env-file", "", ".env file (default: discovered)")
	fs.StringVarP(&f.as, "as", "a", "json", "conversion: json, list, text, status or health")
	fs.IntVarP(&f.expect, "expect", "e", 0, "accept only this status code")
	fs.StringArrayVarP(&f.headers, "header", "H", nil, "request header as 'Name: value' (repeatable)")
	fs.StringArrayVarP(&f.query, "query", "q", nil, "query parameter as key=value (repeatable)")
	fs.BoolVar(&f.debug, "debug", false, "debug logging")
	fs.BoolVarP(&f.version, "version", "v", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <path>\n\nFlags:\n", name)
		fs.PrintDefaults()
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}
	if f.version {
		fmt.Println(version.Get().String())
		return
	}

	path := "/"
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, f, path, os.Stdout)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, f flags, path string, out io.Writer) int {
	var cfg config.ServiceConfig
	var opts []config.LoaderOption
	if f.configFile != "" {
		opts = append(opts, config.WithConfigFile(f.configFile))
	}
	if f.envFile != "" {
		opts = append(opts, config.WithEnvFile(f.envFile))
	}
	if err := config.LoadConfig(name, &cfg, opts...); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}
	if f.debug {
		cfg.Debug = true
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	logger.Init(cfg.Logging, cfg.Name)
	log := logger.WithComponent("cli")

	shutdown := setupTelemetry(ctx, &cfg, log)
	defer shutdown()

	var clientOpts []rest.Option
	clientOpts = append(clientOpts, rest.WithLogger(logger.GetGlobalLogger()))
	if cfg.Metrics.Enabled {
		m, err := observability.NewClientMetrics(observability.Meter(name))
		if err != nil {
			log.Warn("metrics disabled", logger.MergeWithError(nil, err))
		} else {
			clientOpts = append(clientOpts, rest.WithMetrics(m))
		}
	}

	client, err := rest.New(cfg.Client, clientOpts...)
	if err != nil {
		log.Error("client setup failed", logger.MergeWithError(nil, err))
		return 1
	}
	defer client.Close(ctx)

	reqOpts, err := requestOptions(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	result, err := fetch(ctx, client, f, path, reqOpts)
	if err != nil {
		log.Error("request failed", logger.MergeWithError(logger.Fields(logger.FieldPath, path), err))
		return exitCode(err)
	}
	if err := render(out, result); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func fetch(ctx context.Context, c *rest.Client, f flags, path string, opts []rest.RequestOption) (any, error) {
	switch f.as {
	case "status":
		code, err := rest.GetStatusCode(ctx, c, path, opts...)
		if err != nil {
			return nil, err
		}
		if f.expect != 0 {
			if err := convert.Expect(f.expect).Check(code); err != nil {
				return nil, err
			}
		}
		return code, nil
	case "health":
		return c.CheckHealth(ctx), nil
	case "text":
		if f.expect != 0 {
			return rest.GetExpect[string](ctx, c, path, f.expect, opts...)
		}
		return rest.Get[string](ctx, c, path, opts...)
	case "list":
		if f.expect != 0 {
			return rest.GetListExpect[any](ctx, c, path, f.expect, opts...)
		}
		return rest.GetList[any](ctx, c, path, opts...)
	case "json":
		if f.expect != 0 {
			return rest.GetExpect[any](ctx, c, path, f.expect, opts...)
		}
		return rest.Get[any](ctx, c, path, opts...)
	default:
		return nil, errors.InvalidInput("as", fmt.Sprintf("unknown conversion %q", f.as))
	}
}

func requestOptions(f flags) ([]rest.RequestOption, error) {
	var opts []rest.RequestOption
	if len(f.headers) > 0 {
		h := make(map[string]string, len(f.headers))
		for _, raw := range f.headers {
			k, v, ok := strings.Cut(raw, ":")
			if !ok || strings.TrimSpace(k) == "" {
				return nil, fmt.Errorf("invalid header %q, expected 'Name: value'", raw)
			}
			h[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
		opts = append(opts, rest.WithHeaders(h))
	}
	if len(f.query) > 0 {
		q := make(map[string]string, len(f.query))
		for _, raw := range f.query {
			k, v, ok := strings.Cut(raw, "=")
			if !ok || k == "" {
				return nil, fmt.Errorf("invalid query parameter %q, expected key=value", raw)
			}
			q[k] = v
		}
		opts = append(opts, rest.WithQuery(q))
	}
	return opts, nil
}

func setupTelemetry(ctx context.Context, cfg *config.ServiceConfig, log *logger.Logger) func() {
	var shutdowns []func(context.Context) error
	if cfg.Tracing.Enabled {
		tp, err := observability.InitTracer(ctx, cfg.Tracing)
		if err != nil {
			log.Warn("tracing disabled", logger.MergeWithError(nil, err))
		} else {
			shutdowns = append(shutdowns, tp.Shutdown)
		}
	}
	if cfg.Metrics.Enabled {
		mp, err := observability.InitMeter(ctx, cfg.Metrics)
		if err != nil {
			log.Warn("metrics disabled", logger.MergeWithError(nil, err))
		} else {
			shutdowns = append(shutdowns, mp.Shutdown)
		}
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, fn := range shutdowns {
			if err := fn(ctx); err != nil {
				log.Warn("telemetry shutdown failed", logger.MergeWithError(nil, err))
			}
		}
	}
}

func render(w io.Writer, v any) error {
	switch t := v.(type) {
	case string:
		_, err := fmt.Fprintln(w, t)
		return err
	case int:
		_, err := fmt.Fprintln(w, t)
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitCode maps error kinds onto distinct process exit codes.
func exitCode(err error) int {
	switch {
	case errors.IsStatusMismatch(err):
		return 3
	case errors.IsConversion(err):
		return 4
	case errors.IsConfiguration(err), errors.IsInvalidInput(err):
		return 5
	case errors.IsTransport(err):
		return 6
	default:
		return 1
	}
}
