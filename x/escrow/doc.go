/*
Package escrow implements a two party conditional transfer.

An escrow holds one asset on behalf of the sender. It commits to the
identity of a lock key, the exchange key. The recipient resolves the
escrow by presenting that key together with the container it opens: the
content of the container goes to the sender and the escrowed asset goes to
the recipient. The sender can instead take the asset back at any time
before the escrow is resolved.

An escrow is resolved exactly once. Its record is deleted on resolution,
so any later attempt fails with ErrNotFound.
*/
package escrow
