/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
Each bucket contains only one type of model and is
identified by a unique name. A bucket may maintain any
number of secondary indexes that map a value computed
from the model to the primary keys of models sharing it.

Sequences generate monotonic 8 byte identifiers that
sort in creation order.
*/
package orm
