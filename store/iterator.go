package store

// SliceIterator wraps an Iterator over a slice of models
//
// TODO: make this lazy and only load as needed?
type SliceIterator struct {
	data []Model
	idx  int
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator creates a new Iterator over this data
func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{data: data}
}

// Valid implements Iterator and returns true iff it can be read
func (s *SliceIterator) Valid() bool {
	return s.idx < len(s.data)
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
//
// If Valid returns false, this method will panic.
func (s *SliceIterator) Next() {
	s.assertValid()
	s.idx++
}

// Key returns the key of the cursor.
func (s *SliceIterator) Key() []byte {
	s.assertValid()
	return s.data[s.idx].Key
}

// Value returns the key of the cursor.
func (s *SliceIterator) Value() []byte {
	s.assertValid()
	return s.data[s.idx].Value
}

// Close releases the Iterator.
func (s *SliceIterator) Close() {
	s.data = nil
}

func (s *SliceIterator) assertValid() {
	if !s.Valid() {
		panic("Passed end of iterator")
	}
}

// ReadAll consumes given iterator and returns all models it points to. The
// iterator is closed.
func ReadAll(it Iterator) []Model {
	defer it.Close()
	var res []Model
	for ; it.Valid(); it.Next() {
		res = append(res, Model{Key: it.Key(), Value: it.Value()})
	}
	return res
}
