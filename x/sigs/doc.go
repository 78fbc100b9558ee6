/*
Package sigs provides basic authentication
middleware to verify the signatures on the transaction,
and maintain nonces for replay protection.

Every signer has a sequence number stored under the address of its public
key. A signature is valid only for the current sequence, which is
incremented each time the signature is accepted. Replaying a transaction
therefore always fails.
*/
package sigs
