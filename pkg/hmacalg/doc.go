// Package hmacalg names the keyed-hash algorithms used for one-time password
// generation and provides the registry that turns a name into an HMAC.
//
// An algorithm is identified by a canonical name such as "HMACSHA256". The
// short form used in otpauth URIs ("SHA256") is derived by stripping the
// "HMAC" prefix:
//
//	name, err := hmacalg.Parse("sha256")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(name, name.Short()) // HMACSHA256 SHA256
//
// The zero Name is equivalent to SHA1, which is the otpauth default.
//
// # Providers
//
// A Provider decides which names are computable. The package-level Default
// registry knows MD5, SHA1, SHA256, SHA384, SHA512 and SM3. Additional digests
// can be registered without touching the token engine:
//
//	hmacalg.Default.Register(hmacalg.New("HMACSHA3-256"), sha3.New256)
//
// Registries are safe for concurrent use.
package hmacalg
