package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/jeremyhahn/go-totp/internal/config"
	"github.com/jeremyhahn/go-totp/internal/logger"
	"github.com/jeremyhahn/go-totp/pkg/clock"
	"github.com/jeremyhahn/go-totp/pkg/totp"
)

var (
	errUsage    = errors.New("usage: totpctl <secret|code|verify|uri|parse> [flags]")
	errNoSecret = errors.New("one of --secret or --uri is required")
	errRejected = errors.New("code rejected")
)

// command holds everything a subcommand needs once flags and config are loaded.
type command struct {
	fs     *pflag.FlagSet
	cfg    *config.Config
	engine *totp.Engine
	log    zerolog.Logger
	out    io.Writer
}

type handler func(context.Context, *command) error

var commands = map[string]handler{
	"secret": runSecret,
	"code":   runCode,
	"verify": runVerify,
	"uri":    runURI,
	"parse":  runParse,
}

// run executes one subcommand and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, errUsage)
		return 1
	}

	h, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n%v\n", args[0], errUsage)
		return 1
	}

	fs := pflag.NewFlagSet("totpctl "+args[0], pflag.ContinueOnError)
	fs.SetOutput(stderr)
	config.RegisterFlags(fs)
	fs.String("secret", "", "base32 secret")
	fs.String("uri", "", "otpauth://totp/ URI to read the token from")
	fs.Int64("at", 0, "Unix time to use instead of the clock")

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 1
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(stderr, "totpctl: %v\n", err)
		return 1
	}

	log := logger.Setup(stderr, cfg.Logger.Level, cfg.Logger.Format)

	c := &command{
		fs:  fs,
		cfg: cfg,
		engine: totp.NewEngine(
			totp.WithClock(clock.NewOffset(clock.New(), cfg.Token.ClockOffset)),
			totp.WithLogger(log),
		),
		log: log,
		out: stdout,
	}

	if err := h(ctx, c); err != nil {
		if !errors.Is(err, errRejected) {
			log.Error().Err(err).Str("command", args[0]).Msg("command failed")
		}
		fmt.Fprintf(stderr, "totpctl: %v\n", err)
		return 1
	}
	return 0
}

// token builds the configuration named by --uri or --secret on top of the
// configured defaults.
func (c *command) token(requireSecret bool) (*totp.Config, error) {
	tc, err := c.cfg.Token.TOTP()
	if err != nil {
		return nil, err
	}

	uri, _ := c.fs.GetString("uri")
	secret, _ := c.fs.GetString("secret")

	switch {
	case uri != "":
		if !c.engine.TryParseURI(tc, uri) {
			return nil, fmt.Errorf("%w: %s", totp.ErrMalformedURI, uri)
		}
	case secret != "":
		tc.Secret = strings.ToUpper(strings.ReplaceAll(secret, " ", ""))
		if !tc.HasValidSecret() {
			return nil, totp.ErrInvalidSecret
		}
	case requireSecret:
		return nil, errNoSecret
	}
	return tc, nil
}

// timestamp reports the --at value, if given.
func (c *command) timestamp() (int64, bool) {
	if !c.fs.Changed("at") {
		return 0, false
	}
	at, _ := c.fs.GetInt64("at")
	return at, true
}

func runSecret(_ context.Context, c *command) error {
	secret, err := totp.GenerateSecret(c.cfg.Secret.Bits)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, secret)
	return nil
}

func runCode(ctx context.Context, c *command) error {
	tc, err := c.token(true)
	if err != nil {
		return err
	}

	var code string
	if at, ok := c.timestamp(); ok {
		code, err = c.engine.Token(tc, at)
	} else {
		code, err = c.engine.TokenNow(ctx, tc)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, code)
	return nil
}

func runVerify(ctx context.Context, c *command) error {
	if c.fs.NArg() != 1 {
		return errors.New("verify takes exactly one code")
	}
	tc, err := c.token(true)
	if err != nil {
		return err
	}

	code := c.fs.Arg(0)

	var valid bool
	if at, ok := c.timestamp(); ok {
		valid, err = c.engine.Validate(tc, code, at)
	} else {
		valid, err = c.engine.ValidateNow(ctx, tc, code)
	}
	if err != nil {
		return err
	}

	if !valid {
		fmt.Fprintln(c.out, "invalid")
		return errRejected
	}
	fmt.Fprintln(c.out, "valid")
	return nil
}

func runURI(_ context.Context, c *command) error {
	tc, err := c.token(false)
	if err != nil {
		return err
	}
	if tc.Secret == "" {
		if err := tc.GenerateNewSecret(c.cfg.Secret.Bits); err != nil {
			return err
		}
	}

	uri, err := tc.URI()
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, uri)
	return nil
}

func runParse(_ context.Context, c *command) error {
	if c.fs.NArg() != 1 {
		return errors.New("parse takes exactly one URI")
	}

	tc, err := c.cfg.Token.TOTP()
	if err != nil {
		return err
	}
	if !c.engine.TryParseURI(tc, c.fs.Arg(0)) {
		return totp.ErrMalformedURI
	}

	issuer := "(none)"
	if tc.Issuer != nil {
		issuer = *tc.Issuer
	}

	fmt.Fprintf(c.out, "label:     %s\n", tc.Label)
	fmt.Fprintf(c.out, "issuer:    %s\n", issuer)
	fmt.Fprintf(c.out, "secret:    %s\n", tc.Secret)
	fmt.Fprintf(c.out, "period:    %d\n", tc.Period)
	fmt.Fprintf(c.out, "digits:    %d\n", tc.Digits)
	fmt.Fprintf(c.out, "algorithm: %s\n", tc.Algorithm.Short())
	return nil
}
