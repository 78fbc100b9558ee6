/*
Package crypto holds the keys used to sign transactions. Only ed25519 is
supported. A public key is turned into a signature condition, the identity
of a party in the marketplace:

	addr := key.PublicKey().Condition().Address()
*/
package crypto
