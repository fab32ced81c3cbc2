// Command totpctl generates secrets, computes and verifies TOTP codes, and
// builds or inspects otpauth:// provisioning URIs.
//
// Usage:
//
//	totpctl secret [--bits N]
//	totpctl code   (--secret S | --uri U) [--at UNIX]
//	totpctl verify (--secret S | --uri U) [--at UNIX] CODE
//	totpctl uri    [--secret S] [--label L] [--issuer I]
//	totpctl parse  URI
//
// Token parameters (--period, --digits, --algorithm, --output, --extra-gap)
// default to the values in totpctl.yaml or TOTPCTL_ environment variables.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
