package totp_test

import (
	"fmt"

	"github.com/jeremyhahn/go-totp/pkg/hmacalg"
	"github.com/jeremyhahn/go-totp/pkg/totp"
)

func ExampleEngine_Token() {
	cfg := totp.NewConfig()
	cfg.Secret = totp.EncodeSecret([]byte("12345678901234567890"))
	cfg.Digits = 8

	code, err := totp.NewEngine().Token(cfg, 59)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(code)
	// Output: 94287082
}

func ExampleEngine_Token_steam() {
	cfg := totp.NewConfig()
	cfg.Secret = totp.EncodeSecret([]byte("12345678901234567890"))
	cfg.Digits = 5
	cfg.OutputType = totp.OutputSteam

	code, err := totp.NewEngine().Token(cfg, 1234567890)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(code)
	// Output: VHHQY
}

func ExampleConfig_URI() {
	cfg := totp.NewConfig()
	cfg.Secret = "JTQZIMD5U2PXT5MJ"
	cfg.Label = "alice@example.com"
	cfg.SetIssuer("Example Co")
	cfg.Period = 60
	cfg.Algorithm = hmacalg.SHA256

	uri, err := cfg.URI()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(uri)
	// Output: otpauth://totp/alice@example.com?secret=JTQZIMD5U2PXT5MJ&issuer=Example+Co&period=60&algorithm=SHA256
}

func ExampleConfig_TryParseURI() {
	cfg := totp.NewConfig()
	ok := cfg.TryParseURI("otpauth://totp/ACME:bob?secret=JTQZIMD5U2PXT5MJ&digits=8&algorithm=sha512")

	fmt.Println(ok, cfg.Label, cfg.Digits, cfg.Algorithm)
	// Output: true ACME:bob 8 HMACSHA512
}
