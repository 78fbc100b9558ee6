/*
Package cash keeps the coin balances of all addresses.

Each address owns at most one wallet. A wallet that becomes empty is
removed from the store. Other extensions move coins through the
Controller, which is the only code that modifies wallets.
*/
package cash
