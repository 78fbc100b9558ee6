/*
Package lock implements the sealed container primitive.

A container holds exactly one asset and can only be opened with the key
created together with it. Both objects are owned by an address and can be
handed over independently. Opening the container destroys both the
container and the key, so a key can be used only once.

Container and key identifiers are allocated from one sequence. A key
identifier never equals a container identifier.
*/
package lock
