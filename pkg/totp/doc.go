// Package totp generates and validates time-based one-time passwords
// (RFC 6238), including the Steam Guard variant, and reads and writes the
// otpauth://totp/ URIs used by authenticator apps.
//
// # Configuration
//
// A Config carries everything needed to compute a code: the base32 secret,
// the period, the number of digits, the HMAC algorithm, the output alphabet
// and how many earlier periods validation tolerates:
//
//	cfg := totp.NewConfig()
//	if err := cfg.GenerateNewSecret(160); err != nil {
//	    log.Fatal(err)
//	}
//	cfg.Label = "user@example.com"
//	cfg.SetIssuer("MyApp")
//
// # Codes
//
// An Engine turns a Config and a point in time into a code. The engine keeps
// no reference to the Config between calls:
//
//	engine := totp.NewEngine()
//
//	code, err := engine.TokenNow(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ok, err := engine.ValidateNow(ctx, cfg, code)
//
// Validation accepts the current period and cfg.ExtraGap periods before it.
// All candidates are compared in constant time.
//
// Setting Digits to zero, or OutputType to OutputSteam, writes codes in the
// 26 character Steam Guard alphabet instead of decimal digits.
//
// # URIs
//
// URI builds the provisioning URI, leaving out parameters that equal their
// defaults. TryParseURI reads one back; on failure the Config is left as it
// was:
//
//	uri, err := cfg.URI()
//	// otpauth://totp/user@example.com?secret=...&issuer=MyApp
//
//	imported := totp.NewConfig()
//	if !imported.TryParseURI(uri) {
//	    log.Fatal("not a TOTP URI")
//	}
//
// # Authenticator
//
// For the common case of checking user input against one fixed
// configuration, NewAuthenticator validates the configuration once and
// returns an Authenticator whose Authenticate method returns ErrInvalidCode
// on mismatch.
//
// # Thread Safety
//
// Engine and Authenticator are safe for concurrent use. A Config is plain
// data; callers must not mutate one while another goroutine is using it.
package totp
